package dashboard

import (
	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
)

// ForRole returns the dashboard of role. Unknown roles get the employee
// dashboard.
func ForRole(role rbac.Role) View {
	switch role {
	case rbac.RoleSuperAdmin:
		return superAdminDashboard
	case rbac.RoleSupervisor:
		return supervisorDashboard
	case rbac.RoleSupplier:
		return supplierDashboard
	case rbac.RoleClient:
		return clientDashboard
	case rbac.RoleEmployee:
		return employeeDashboard
	default:
		return employeeDashboard
	}
}

// SuperAdminContent is the body of the system administration dashboard.
type SuperAdminContent struct {
	Users      []backend.SystemUser
	TotalUsers int
	Alerts     []backend.SecurityAlert
	Activity   []backend.Activity
}

var superAdminDashboard = &view{
	name:     "super-admin-dashboard",
	title:    "System Administration",
	subtitle: "Complete system overview and user management",
	sections: []sectiondata.Section{sectiondata.SectionDashboard, sectiondata.SectionUsers, sectiondata.SectionSecurity},
	build: func(in Input) (Model, error) {
		dash, err := payload[backend.DashboardData](in, sectiondata.SectionDashboard)
		if err != nil {
			return Model{}, err
		}
		users, err := payload[backend.UsersData](in, sectiondata.SectionUsers)
		if err != nil {
			return Model{}, err
		}
		security, err := payload[backend.SecurityData](in, sectiondata.SectionSecurity)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: dash.Stats,
			Metrics: []Metric{
				count("Total Users", len(users.Users)),
				{Label: "Active Users", Value: Count(CountUsers(users.Users, backend.UserActive)), Tone: ToneGood},
				count("Inactive Users", CountUsers(users.Users, backend.UserInactive)),
				alarm("Critical Alerts", UnresolvedAlerts(security.Alerts, backend.SeverityCritical)),
			},
			Content: SuperAdminContent{
				Users:      head(users.Users, 5),
				TotalUsers: len(users.Users),
				Alerts:     head(security.Alerts, 4),
				Activity:   dash.RecentActivity,
			},
		}, nil
	},
}

// SupervisorContent is the body of the team supervision dashboard.
type SupervisorContent struct {
	Members  []backend.TeamMember
	Tasks    []backend.Task
	Activity []backend.Activity
}

var supervisorDashboard = &view{
	name:     "supervisor-dashboard",
	title:    "Team Supervision",
	subtitle: "Monitor and manage your team's performance",
	sections: []sectiondata.Section{sectiondata.SectionDashboard, sectiondata.SectionTeam, sectiondata.SectionTasks},
	build: func(in Input) (Model, error) {
		dash, err := payload[backend.DashboardData](in, sectiondata.SectionDashboard)
		if err != nil {
			return Model{}, err
		}
		team, err := payload[backend.TeamData](in, sectiondata.SectionTeam)
		if err != nil {
			return Model{}, err
		}
		tasks, err := payload[backend.TasksData](in, sectiondata.SectionTasks)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: dash.Stats,
			Metrics: []Metric{
				count("Team Members", len(team.Members)),
				count("Active Members", ActiveMembers(team.Members)),
				{Label: "Completed Tasks", Value: Count(CountTasks(tasks.Tasks, backend.StatusCompleted)), Tone: ToneGood},
				count("Pending Tasks", CountTasks(tasks.Tasks, backend.StatusPending)),
				alarm("Overdue Tasks", OverdueTasks(tasks.Tasks, in.Now)),
				count("Total Tasks", len(tasks.Tasks)),
			},
			Content: SupervisorContent{
				Members:  head(team.Members, 5),
				Tasks:    head(tasks.Tasks, 5),
				Activity: dash.RecentActivity,
			},
		}, nil
	},
}

// SupplierContent is the body of the supply management dashboard.
type SupplierContent struct {
	Inventory  []backend.InventoryItem
	TotalItems int
	Orders     []backend.Order
	LowStock   []backend.InventoryItem
}

var supplierDashboard = &view{
	name:     "supplier-dashboard",
	title:    "Supply Management",
	subtitle: "Track inventory, orders, and deliveries",
	sections: []sectiondata.Section{sectiondata.SectionDashboard, sectiondata.SectionOrders, sectiondata.SectionInventory},
	build: func(in Input) (Model, error) {
		dash, err := payload[backend.DashboardData](in, sectiondata.SectionDashboard)
		if err != nil {
			return Model{}, err
		}
		orders, err := payload[backend.OrdersData](in, sectiondata.SectionOrders)
		if err != nil {
			return Model{}, err
		}
		inventory, err := payload[backend.InventoryData](in, sectiondata.SectionInventory)
		if err != nil {
			return Model{}, err
		}
		lowStock := backend.LowStock(inventory.Items)
		return Model{
			Stats: dash.Stats,
			Metrics: []Metric{
				count("Active Orders", ActiveOrders(orders.Orders)),
				{Label: "Total Revenue", Value: Money(OrderRevenue(orders.Orders)), Tone: ToneGood},
				alarm("Low Stock Alerts", len(lowStock)),
				count("Total Items", len(inventory.Items)),
				count("Deliveries Today", DeliveriesOn(orders.Orders, in.Now)),
			},
			Content: SupplierContent{
				Inventory:  head(inventory.Items, 6),
				TotalItems: len(inventory.Items),
				Orders:     head(orders.Orders, 5),
				LowStock:   lowStock,
			},
		}, nil
	},
}

// ClientContent is the body of the client portal.
type ClientContent struct {
	Orders        []backend.Order
	TotalOrders   int
	Activity      []backend.Activity
	Notifications []backend.Notification
}

var clientDashboard = &view{
	name:     "client-dashboard",
	title:    "Client Portal",
	subtitle: "Manage your orders and account",
	sections: []sectiondata.Section{sectiondata.SectionDashboard, sectiondata.SectionOrders, sectiondata.SectionInvoices},
	build: func(in Input) (Model, error) {
		dash, err := payload[backend.DashboardData](in, sectiondata.SectionDashboard)
		if err != nil {
			return Model{}, err
		}
		orders, err := payload[backend.OrdersData](in, sectiondata.SectionOrders)
		if err != nil {
			return Model{}, err
		}
		invoices, err := payload[backend.InvoicesData](in, sectiondata.SectionInvoices)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Subtitle: "Welcome back, " + in.User.Name + ". Manage your orders and account",
			Stats:    dash.Stats,
			Metrics: []Metric{
				count("Active Orders", ActiveOrders(orders.Orders)),
				count("Pending Invoices", CountInvoices(invoices.Invoices, backend.InvoicePending)),
				{Label: "Total Spent", Value: Money(OrderRevenue(orders.Orders))},
				alarm("Support Tickets", SupportTickets(dash.Notifications.Items)),
			},
			Content: ClientContent{
				Orders:        head(orders.Orders, 5),
				TotalOrders:   len(orders.Orders),
				Activity:      dash.RecentActivity,
				Notifications: dash.Notifications.Items,
			},
		}, nil
	},
}

// EmployeeContent is the body of the employee workspace.
type EmployeeContent struct {
	Tasks    []backend.Task
	Activity []backend.Activity
}

var employeeDashboard = &view{
	name:     "employee-dashboard",
	title:    "My Workspace",
	subtitle: "Your daily tasks and schedule",
	sections: []sectiondata.Section{sectiondata.SectionDashboard, sectiondata.SectionTasks},
	build: func(in Input) (Model, error) {
		dash, err := payload[backend.DashboardData](in, sectiondata.SectionDashboard)
		if err != nil {
			return Model{}, err
		}
		tasks, err := payload[backend.TasksData](in, sectiondata.SectionTasks)
		if err != nil {
			return Model{}, err
		}
		return Model{
			Stats: dash.Stats,
			Metrics: []Metric{
				count("Total Tasks", len(tasks.Tasks)),
				{Label: "Completed", Value: Count(CountTasks(tasks.Tasks, backend.StatusCompleted)), Tone: ToneGood},
				count("Due Today", TasksDueOn(tasks.Tasks, in.Now)),
				alarm("Overdue", OverdueTasks(tasks.Tasks, in.Now)),
				count("Unread Messages", UnreadNotifications(dash.Notifications.Items)),
			},
			Content: EmployeeContent{
				Tasks:    head(tasks.Tasks, 5),
				Activity: dash.RecentActivity,
			},
		}, nil
	},
}
