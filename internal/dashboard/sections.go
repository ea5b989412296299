package dashboard

import (
	"fmt"
	"html/template"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
	"github.com/buildtrack/buildtrack/internal/svg"
)

// ForSection returns the page view of a data section other than the
// dashboard. The dashboard itself is role scoped, see ForRole.
func ForSection(section sectiondata.Section) (View, bool) {
	switch section {
	case sectiondata.SectionAnalytics:
		return analyticsView, true
	case sectiondata.SectionTeam:
		return teamView, true
	case sectiondata.SectionProjects:
		return projectsView, true
	case sectiondata.SectionTasks:
		return tasksView, true
	case sectiondata.SectionInventory:
		return inventoryView, true
	case sectiondata.SectionOrders:
		return ordersView, true
	case sectiondata.SectionInvoices:
		return invoicesView, true
	case sectiondata.SectionUsers:
		return usersView, true
	case sectiondata.SectionSecurity:
		return securityView, true
	default:
		return nil, false
	}
}

// AnalyticsContent carries the analytics payload and its rendered charts.
type AnalyticsContent struct {
	Data        backend.AnalyticsData
	TrendChart  template.HTML
	ScoreChart  template.HTML
	GoalRing    template.HTML
	Efficiency  string
	ActiveUsers string
}

var analyticsView = &view{
	name:     "analytics",
	title:    "Analytics & Reports",
	subtitle: "Detailed insights and performance metrics",
	sections: []sectiondata.Section{sectiondata.SectionAnalytics},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.AnalyticsData](in, sectiondata.SectionAnalytics)
		if err != nil {
			return Model{}, err
		}
		trend, err := svg.Line(svg.DefaultWidth, svg.DefaultHeight, points(data.PerformanceTrends.Data), svg.LineOpts{
			Title:       "Performance Trends",
			Description: data.PerformanceTrends.Period,
			ShowDots:    true,
		})
		if err != nil {
			return Model{}, fmt.Errorf("trend chart: %w", err)
		}
		bars, err := svg.Bars(svg.DefaultWidth, svg.DefaultHeight, points(data.ChartData), svg.BarOpts{
			Title:      "Performance Chart",
			ShowValues: true,
		})
		if err != nil {
			return Model{}, fmt.Errorf("performance chart: %w", err)
		}
		ring, err := svg.Ring(svg.DefaultRing, float64(data.GoalProgress.Percentage), svg.RingOpts{
			Title:       "Goal Progress",
			Description: data.GoalProgress.Status,
		})
		if err != nil {
			return Model{}, fmt.Errorf("goal ring: %w", err)
		}
		return Model{
			Metrics: []Metric{
				{Label: "Improvement", Value: data.PerformanceTrends.Improvement, Tone: ToneGood},
				{Label: "Efficiency Score", Value: printer.Sprintf("%.1f/%.0f", data.EfficiencyScore.Score, data.EfficiencyScore.MaxScore)},
				{Label: "Goal Progress", Value: printer.Sprintf("%d%%", data.GoalProgress.Percentage)},
				count("Active Users", data.UserEngagement.ActiveUsers),
			},
			Content: AnalyticsContent{
				Data:        data,
				TrendChart:  trend,
				ScoreChart:  bars,
				GoalRing:    ring,
				Efficiency:  printer.Sprintf("%.1f", data.EfficiencyScore.Score),
				ActiveUsers: Count(data.UserEngagement.ActiveUsers),
			},
		}, nil
	},
}

func points(values []backend.NamedValue) []svg.Point {
	out := make([]svg.Point, len(values))
	for i, v := range values {
		out[i] = svg.Point{Label: v.Name, Value: v.Value}
	}
	return out
}

// TeamContent is the body of the team page.
type TeamContent struct {
	Members  []backend.TeamMember
	Activity []backend.Activity
}

var teamView = &view{
	name:     "team",
	title:    "Team Management",
	subtitle: "Manage your team members and their performance",
	sections: []sectiondata.Section{sectiondata.SectionTeam},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.TeamData](in, sectiondata.SectionTeam)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				count("Team Members", len(data.Members)),
				{Label: "Active", Value: Count(ActiveMembers(data.Members)), Tone: ToneGood},
				{Label: "Avg Performance", Value: printer.Sprintf("%d%%", AveragePerformance(data.Members))},
			},
			Content: TeamContent{Members: data.Members, Activity: data.RecentActivity},
		}, nil
	},
}

// ProjectsContent is the body of the projects page.
type ProjectsContent struct {
	Projects []backend.Project
}

var projectsView = &view{
	name:     "projects",
	title:    "Projects",
	subtitle: "Track and manage your projects",
	sections: []sectiondata.Section{sectiondata.SectionProjects},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.ProjectsData](in, sectiondata.SectionProjects)
		if err != nil {
			return Model{}, err
		}
		budget, spent := ProjectBudget(data.Projects)
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				count("Active Projects", CountProjects(data.Projects, backend.ProjectActive)),
				{Label: "Completed", Value: Count(CountProjects(data.Projects, backend.ProjectCompleted)), Tone: ToneGood},
				{Label: "Total Budget", Value: Money(budget)},
				{Label: "Total Spent", Value: Money(spent)},
			},
			Content: ProjectsContent{Projects: data.Projects},
		}, nil
	},
}

// TasksContent is the body of the task management page.
type TasksContent struct {
	Tasks []backend.Task
}

var tasksView = &view{
	name:     "tasks",
	title:    "Task Management",
	subtitle: "Organize and track your work efficiently",
	sections: []sectiondata.Section{sectiondata.SectionTasks},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.TasksData](in, sectiondata.SectionTasks)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				count("Pending", CountTasks(data.Tasks, backend.StatusPending)),
				count("In Progress", CountTasks(data.Tasks, backend.StatusInProgress)),
				{Label: "Completed", Value: Count(CountTasks(data.Tasks, backend.StatusCompleted)), Tone: ToneGood},
				alarm("Overdue", OverdueTasks(data.Tasks, in.Now)),
			},
			Content: TasksContent{Tasks: data.Tasks},
		}, nil
	},
}

// InventoryContent is the body of the inventory page.
type InventoryContent struct {
	Items    []backend.InventoryItem
	LowStock []backend.InventoryItem
}

var inventoryView = &view{
	name:     "inventory",
	title:    "Inventory Management",
	subtitle: "Monitor stock levels and supplies",
	sections: []sectiondata.Section{sectiondata.SectionInventory},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.InventoryData](in, sectiondata.SectionInventory)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				count("Total Items", len(data.Items)),
				alarm("Low Stock Alerts", LowStockCount(data.Items)),
				alarm("Out of Stock", CountStock(data.Items, backend.StockOut)),
				{Label: "Stock Value", Value: Money(InventoryValue(data.Items))},
			},
			Content: InventoryContent{Items: data.Items, LowStock: data.LowStockAlerts},
		}, nil
	},
}

// OrdersContent is the body of the order management page.
type OrdersContent struct {
	Orders   []backend.Order
	Activity []backend.Activity
}

var ordersView = &view{
	name:     "orders",
	title:    "Order Management",
	subtitle: "Process and track orders",
	sections: []sectiondata.Section{sectiondata.SectionOrders},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.OrdersData](in, sectiondata.SectionOrders)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				count("Active Orders", ActiveOrders(data.Orders)),
				count("Shipped", CountOrders(data.Orders, backend.OrderShipped)),
				{Label: "Delivered", Value: Count(CountOrders(data.Orders, backend.OrderDelivered)), Tone: ToneGood},
				{Label: "Revenue", Value: Money(OrderRevenue(data.Orders))},
			},
			Content: OrdersContent{Orders: data.Orders, Activity: data.RecentActivity},
		}, nil
	},
}

// InvoicesContent is the body of the invoices page.
type InvoicesContent struct {
	Invoices []backend.Invoice
	Activity []backend.Activity
}

var invoicesView = &view{
	name:     "invoices",
	title:    "Invoices",
	subtitle: "Review billing and payment status",
	sections: []sectiondata.Section{sectiondata.SectionInvoices},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.InvoicesData](in, sectiondata.SectionInvoices)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				{Label: "Paid", Value: Count(CountInvoices(data.Invoices, backend.InvoicePaid)), Tone: ToneGood},
				count("Pending", CountInvoices(data.Invoices, backend.InvoicePending)),
				alarm("Overdue", CountInvoices(data.Invoices, backend.InvoiceOverdue)),
				{Label: "Outstanding", Value: Money(OutstandingAmount(data.Invoices))},
			},
			Content: InvoicesContent{Invoices: data.Invoices, Activity: data.RecentActivity},
		}, nil
	},
}

// UsersContent is the body of the user management page.
type UsersContent struct {
	Users    []backend.SystemUser
	Activity []backend.Activity
}

var usersView = &view{
	name:     "users",
	title:    "User Management",
	subtitle: "Manage system users and permissions",
	sections: []sectiondata.Section{sectiondata.SectionUsers},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.UsersData](in, sectiondata.SectionUsers)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				count("Total Users", len(data.Users)),
				{Label: "Active", Value: Count(CountUsers(data.Users, backend.UserActive)), Tone: ToneGood},
				count("Inactive", CountUsers(data.Users, backend.UserInactive)),
				alarm("Suspended", CountUsers(data.Users, backend.UserSuspended)),
			},
			Content: UsersContent{Users: data.Users, Activity: data.RecentActivity},
		}, nil
	},
}

// SecurityContent is the body of the security center.
type SecurityContent struct {
	Alerts   []backend.SecurityAlert
	Activity []backend.Activity
}

var securityView = &view{
	name:     "security",
	title:    "Security Center",
	subtitle: "Monitor system security and access",
	sections: []sectiondata.Section{sectiondata.SectionSecurity},
	build: func(in Input) (Model, error) {
		data, err := payload[backend.SecurityData](in, sectiondata.SectionSecurity)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: data.Stats,
			Metrics: []Metric{
				count("Total Alerts", len(data.Alerts)),
				alarm("Unresolved", UnresolvedAlerts(data.Alerts, "")),
				alarm("Critical", UnresolvedAlerts(data.Alerts, backend.SeverityCritical)),
				{Label: "High", Value: Count(UnresolvedAlerts(data.Alerts, backend.SeverityHigh)), Tone: toneIf(UnresolvedAlerts(data.Alerts, backend.SeverityHigh) > 0, ToneWarn)},
			},
			Content: SecurityContent{Alerts: data.Alerts, Activity: data.RecentActivity},
		}, nil
	},
}

func toneIf(cond bool, t Tone) Tone {
	if cond {
		return t
	}
	return ToneNeutral
}
