// Package navigation holds the static sidebar configuration of every role.
package navigation

import "github.com/buildtrack/buildtrack/internal/rbac"

// Item is a single sidebar entry. ID doubles as the section identifier the
// content router resolves.
type Item struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Path  string `json:"path"`
	Badge string `json:"badge,omitempty"`
}

// Icon names follow the lucide icon set used by the stylesheet.
const (
	IconDashboard = "layout-dashboard"
	IconAnalytics = "bar-chart-3"
	IconFolder    = "folder-open"
	IconCheck     = "check-square"
	IconUsers     = "users"
	IconSettings  = "settings"
	IconPackage   = "package"
	IconCart      = "shopping-cart"
	IconTruck     = "truck"
	IconFile      = "file-text"
	IconCard      = "credit-card"
	IconMessage   = "message-square"
	IconCalendar  = "calendar"
	IconClock     = "clock"
	IconShield    = "shield"
	IconDatabase  = "database"
	IconBell      = "bell"
)

func item(id, title, icon string) Item {
	return Item{ID: id, Title: title, Icon: icon, Path: "/app/" + id}
}

func withBadge(it Item, badge string) Item {
	it.Badge = badge
	return it
}

// Badges are fixed placeholder counts, not derived from live data.
var (
	superAdminItems = []Item{
		item("dashboard", "Dashboard", IconDashboard),
		item("analytics", "Analytics", IconAnalytics),
		item("users", "User Management", IconUsers),
		item("security", "Security", IconShield),
		item("database", "Database", IconDatabase),
		item("settings", "System Settings", IconSettings),
	}

	supervisorItems = []Item{
		item("dashboard", "Dashboard", IconDashboard),
		item("team", "Team Management", IconUsers),
		item("projects", "Projects", IconFolder),
		item("tasks", "Task Overview", IconCheck),
		item("analytics", "Reports", IconAnalytics),
		item("schedule", "Schedule", IconCalendar),
	}

	supplierItems = []Item{
		item("dashboard", "Dashboard", IconDashboard),
		item("inventory", "Inventory", IconPackage),
		withBadge(item("orders", "Orders", IconCart), "5"),
		item("deliveries", "Deliveries", IconTruck),
		item("invoices", "Invoices", IconFile),
		item("payments", "Payments", IconCard),
	}

	clientItems = []Item{
		item("dashboard", "Dashboard", IconDashboard),
		item("orders", "My Orders", IconCart),
		item("invoices", "Invoices", IconFile),
		item("projects", "Projects", IconFolder),
		item("support", "Support", IconMessage),
		withBadge(item("notifications", "Notifications", IconBell), "3"),
	}

	employeeItems = []Item{
		item("dashboard", "Dashboard", IconDashboard),
		withBadge(item("tasks", "My Tasks", IconCheck), "4"),
		item("timesheet", "Timesheet", IconClock),
		item("schedule", "Schedule", IconCalendar),
		item("team", "Team", IconUsers),
		withBadge(item("messages", "Messages", IconMessage), "2"),
	}

	fallbackItems = []Item{
		item("dashboard", "Dashboard", IconDashboard),
	}
)

// ForRole returns the ordered navigation of the role. Unknown roles receive
// Fallback so the shell can still render.
func ForRole(role rbac.Role) []Item {
	switch role {
	case rbac.RoleSuperAdmin:
		return clone(superAdminItems)
	case rbac.RoleSupervisor:
		return clone(supervisorItems)
	case rbac.RoleSupplier:
		return clone(supplierItems)
	case rbac.RoleClient:
		return clone(clientItems)
	case rbac.RoleEmployee:
		return clone(employeeItems)
	default:
		return Fallback()
	}
}

// Fallback is the navigation shown for unrecognised roles.
func Fallback() []Item {
	return clone(fallbackItems)
}

// Contains reports whether id appears in items.
func Contains(items []Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func clone(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}
