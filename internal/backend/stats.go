package backend

import "github.com/buildtrack/buildtrack/internal/rbac"

func up(label, value, change string) Stat {
	return Stat{Label: label, Value: value, Change: change, Trend: TrendUp}
}

func down(label, value, change string) Stat {
	return Stat{Label: label, Value: value, Change: change, Trend: TrendDown}
}

func stable(label, value, change string) Stat {
	return Stat{Label: label, Value: value, Change: change, Trend: TrendStable}
}

// statsTable holds the summary tiles per section and role. Pairs that are
// absent render no tiles.
var statsTable = map[string]map[rbac.Role][]Stat{
	"dashboard": {
		rbac.RoleSuperAdmin: {
			up("Total Users", "1234", "+12%"),
			up("Active Sessions", "89", "+5%"),
			stable("System Health", "99.9%", "0%"),
			down("Security Alerts", "3", "-2"),
		},
		rbac.RoleSupervisor: {
			up("Team Members", "12", "+1"),
			up("Active Projects", "8", "+2"),
			up("Completed Tasks", "156", "+23"),
			down("Pending Reviews", "7", "-3"),
		},
		rbac.RoleSupplier: {
			up("Active Orders", "24", "+6"),
			down("Inventory Items", "156", "-12"),
			up("Deliveries Today", "8", "+3"),
			up("Revenue (Month)", "$45,231", "+18%"),
		},
		rbac.RoleClient: {
			up("Active Orders", "3", "+1"),
			stable("Pending Invoices", "2", "0"),
			up("Total Spent", "$12,450", "+$2,100"),
			down("Support Tickets", "1", "-2"),
		},
		rbac.RoleEmployee: {
			up("Tasks Today", "6", "+2"),
			up("Hours Logged", "6.5", "+0.5"),
			stable("Meetings", "2", "0"),
			up("Messages", "3", "+1"),
		},
	},
	"team": {
		rbac.RoleSupervisor: {
			up("Team Size", "12", "+1"),
			stable("Active Members", "11", "0"),
			up("Avg Performance", "87%", "+5%"),
			up("Team Satisfaction", "4.2/5", "+0.3"),
		},
		rbac.RoleEmployee: {
			stable("Team Members", "8", "0"),
			up("Shared Projects", "3", "+1"),
			up("Team Tasks", "24", "+6"),
			up("Collaboration Score", "92%", "+8%"),
		},
	},
	"projects": {
		rbac.RoleSupervisor: {
			up("Total Projects", "8", "+2"),
			up("Active Projects", "5", "+1"),
			up("Completed This Month", "3", "+1"),
			up("On Schedule", "75%", "+10%"),
		},
		rbac.RoleClient: {
			up("My Projects", "3", "+1"),
			stable("In Progress", "2", "0"),
			up("Completed", "1", "+1"),
			up("Budget Used", "68%", "+12%"),
		},
	},
	"tasks": {
		rbac.RoleSupervisor: {
			up("Total Tasks", "156", "+23"),
			up("Completed", "134", "+20"),
			up("In Progress", "15", "+2"),
			down("Overdue", "7", "-3"),
		},
		rbac.RoleEmployee: {
			up("My Tasks", "12", "+3"),
			up("Completed", "8", "+2"),
			up("In Progress", "3", "+1"),
			stable("Due Today", "1", "0"),
		},
	},
	"inventory": {
		rbac.RoleSupplier: {
			up("Total Items", "156", "+12"),
			up("In Stock", "134", "+8"),
			up("Low Stock", "15", "+3"),
			down("Out of Stock", "7", "-2"),
		},
	},
	"orders": {
		rbac.RoleSupplier: {
			up("Total Orders", "89", "+12"),
			up("Pending", "24", "+6"),
			up("Processing", "18", "+3"),
			up("Completed", "47", "+3"),
		},
		rbac.RoleClient: {
			up("My Orders", "8", "+2"),
			up("Pending", "3", "+1"),
			stable("Shipped", "2", "0"),
			up("Delivered", "3", "+1"),
		},
	},
}

// StatsFor returns a copy of the summary tiles of the section for the role.
func StatsFor(section string, role rbac.Role) []Stat {
	src := statsTable[section][role]
	out := make([]Stat, len(src))
	copy(out, src)
	return out
}
