package dashboard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/buildtrack/buildtrack/internal/backend"
)

// Derived metrics. Every function is pure and recomputed per render.

// CountTasks counts tasks in status.
func CountTasks(tasks []backend.Task, status string) int {
	n := 0
	for _, t := range tasks {
		if t.Status == status {
			n++
		}
	}
	return n
}

// OverdueTasks counts unfinished tasks due before now.
func OverdueTasks(tasks []backend.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if t.DueDate.Before(now) && t.Status != backend.StatusCompleted {
			n++
		}
	}
	return n
}

// TasksDueOn counts tasks due on the calendar day of now.
func TasksDueOn(tasks []backend.Task, now time.Time) int {
	n := 0
	for _, t := range tasks {
		if sameDay(t.DueDate, now) {
			n++
		}
	}
	return n
}

// ActiveOrders counts pending or processing orders.
func ActiveOrders(orders []backend.Order) int {
	n := 0
	for _, o := range orders {
		if o.Status == backend.OrderPending || o.Status == backend.OrderProcessing {
			n++
		}
	}
	return n
}

// CountOrders counts orders in status.
func CountOrders(orders []backend.Order, status string) int {
	n := 0
	for _, o := range orders {
		if o.Status == status {
			n++
		}
	}
	return n
}

// OrderRevenue sums the order totals.
func OrderRevenue(orders []backend.Order) decimal.Decimal {
	sum := decimal.Zero
	for _, o := range orders {
		sum = sum.Add(o.Total)
	}
	return sum
}

// DeliveriesOn counts orders delivered on the calendar day of now.
func DeliveriesOn(orders []backend.Order, now time.Time) int {
	n := 0
	for _, o := range orders {
		if o.DeliveryDate != nil && sameDay(*o.DeliveryDate, now) {
			n++
		}
	}
	return n
}

// LowStockCount counts items that are low or out of stock.
func LowStockCount(items []backend.InventoryItem) int {
	return len(backend.LowStock(items))
}

// CountStock counts items in stock status.
func CountStock(items []backend.InventoryItem, status string) int {
	n := 0
	for _, item := range items {
		if item.Status == status {
			n++
		}
	}
	return n
}

// InventoryValue sums price times current stock.
func InventoryValue(items []backend.InventoryItem) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Price.Mul(decimal.NewFromInt(int64(item.CurrentStock))))
	}
	return sum
}

// CountInvoices counts invoices in status.
func CountInvoices(invoices []backend.Invoice, status string) int {
	n := 0
	for _, inv := range invoices {
		if inv.Status == status {
			n++
		}
	}
	return n
}

// OutstandingAmount sums the invoices that are not paid.
func OutstandingAmount(invoices []backend.Invoice) decimal.Decimal {
	sum := decimal.Zero
	for _, inv := range invoices {
		if inv.Status != backend.InvoicePaid {
			sum = sum.Add(inv.Amount)
		}
	}
	return sum
}

// CountUsers counts system users in status.
func CountUsers(users []backend.SystemUser, status string) int {
	n := 0
	for _, u := range users {
		if u.Status == status {
			n++
		}
	}
	return n
}

// UnresolvedAlerts counts open alerts of the given severity. An empty
// severity matches every alert.
func UnresolvedAlerts(alerts []backend.SecurityAlert, severity string) int {
	n := 0
	for _, a := range alerts {
		if !a.Resolved && (severity == "" || a.Severity == severity) {
			n++
		}
	}
	return n
}

// ActiveMembers counts members with active status.
func ActiveMembers(members []backend.TeamMember) int {
	n := 0
	for _, m := range members {
		if m.Status == backend.MemberActive {
			n++
		}
	}
	return n
}

// AveragePerformance is the mean member performance, rounded down.
func AveragePerformance(members []backend.TeamMember) int {
	if len(members) == 0 {
		return 0
	}
	total := 0
	for _, m := range members {
		total += m.Performance
	}
	return total / len(members)
}

// CountProjects counts projects in status.
func CountProjects(projects []backend.Project, status string) int {
	n := 0
	for _, p := range projects {
		if p.Status == status {
			n++
		}
	}
	return n
}

// ProjectBudget sums budget and spend across projects.
func ProjectBudget(projects []backend.Project) (budget, spent decimal.Decimal) {
	budget, spent = decimal.Zero, decimal.Zero
	for _, p := range projects {
		budget = budget.Add(p.Budget)
		spent = spent.Add(p.Spent)
	}
	return budget, spent
}

// UnreadNotifications counts notifications not yet read.
func UnreadNotifications(items []backend.Notification) int {
	n := 0
	for _, item := range items {
		if !item.Read {
			n++
		}
	}
	return n
}

// SupportTickets counts warning and error notifications.
func SupportTickets(items []backend.Notification) int {
	n := 0
	for _, item := range items {
		if item.Type == backend.NotificationWarning || item.Type == backend.NotificationError {
			n++
		}
	}
	return n
}

func sameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
