// Package export renders section rows as CSV downloads.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
)

const dateLayout = "2006-01-02"

// Supports reports whether section can be exported.
func Supports(section string) bool {
	switch sectiondata.Section(section) {
	case sectiondata.SectionTasks, sectiondata.SectionInventory, sectiondata.SectionOrders, sectiondata.SectionInvoices:
		return true
	default:
		return false
	}
}

// Write serialises the payload of section. data must be the backend payload
// type of the section.
func Write(w io.Writer, section sectiondata.Section, data any) error {
	switch d := data.(type) {
	case backend.TasksData:
		return WriteTasksCSV(w, d.Tasks)
	case backend.InventoryData:
		return WriteInventoryCSV(w, d.Items)
	case backend.OrdersData:
		return WriteOrdersCSV(w, d.Orders)
	case backend.InvoicesData:
		return WriteInvoicesCSV(w, d.Invoices)
	default:
		return fmt.Errorf("export: section %s not exportable (%T)", section, data)
	}
}

// WriteTasksCSV emits one row per task.
func WriteTasksCSV(w io.Writer, tasks []backend.Task) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"ID", "Title", "Priority", "Status", "Due Date", "Assigned To"}); err != nil {
		return err
	}
	for _, t := range tasks {
		if err := writer.Write([]string{
			t.ID,
			t.Title,
			t.Priority,
			t.Status,
			formatDate(t.DueDate),
			t.AssignedTo,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteInventoryCSV emits one row per stocked item.
func WriteInventoryCSV(w io.Writer, items []backend.InventoryItem) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"ID", "Name", "Category", "Current Stock", "Minimum Required", "Unit", "Price", "Supplier", "Status"}); err != nil {
		return err
	}
	for _, item := range items {
		if err := writer.Write([]string{
			item.ID,
			item.Name,
			item.Category,
			strconv.Itoa(item.CurrentStock),
			strconv.Itoa(item.MinimumRequired),
			item.Unit,
			item.Price.StringFixed(2),
			item.Supplier,
			item.Status,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteOrdersCSV emits one row per order.
func WriteOrdersCSV(w io.Writer, orders []backend.Order) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"ID", "Customer", "Items", "Total", "Status", "Order Date", "Delivery Date"}); err != nil {
		return err
	}
	for _, o := range orders {
		delivered := ""
		if o.DeliveryDate != nil {
			delivered = formatDate(*o.DeliveryDate)
		}
		if err := writer.Write([]string{
			o.ID,
			o.CustomerName,
			strconv.Itoa(len(o.Items)),
			o.Total.StringFixed(2),
			o.Status,
			formatDate(o.OrderDate),
			delivered,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteInvoicesCSV emits one row per invoice.
func WriteInvoicesCSV(w io.Writer, invoices []backend.Invoice) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()
	if err := writer.Write([]string{"ID", "Customer", "Amount", "Status", "Issue Date", "Due Date"}); err != nil {
		return err
	}
	for _, inv := range invoices {
		if err := writer.Write([]string{
			inv.ID,
			inv.CustomerName,
			inv.Amount.StringFixed(2),
			inv.Status,
			formatDate(inv.IssueDate),
			formatDate(inv.DueDate),
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateLayout)
}
