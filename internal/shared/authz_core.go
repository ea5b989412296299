package shared

// Dashboard permissions granted through role catalogs.
const (
	PermAnalyticsView = "analytics.view"

	PermUsersView = "users.view"
	PermUsersEdit = "users.edit"

	PermSecurityView = "security.view"
	PermSettingsEdit = "settings.edit"

	PermTeamView     = "team.view"
	PermProjectsView = "projects.view"
	PermTasksView    = "tasks.view"
	PermTasksEdit    = "tasks.edit"

	PermInventoryView = "inventory.view"
	PermInventoryEdit = "inventory.edit"
	PermOrdersView    = "orders.view"
	PermInvoicesView  = "invoices.view"

	PermReportsExport = "reports.export"
)

// CoreScopes lists every permission known to the dashboard.
func CoreScopes() []string {
	return []string{
		PermAnalyticsView,
		PermUsersView,
		PermUsersEdit,
		PermSecurityView,
		PermSettingsEdit,
		PermTeamView,
		PermProjectsView,
		PermTasksView,
		PermTasksEdit,
		PermInventoryView,
		PermInventoryEdit,
		PermOrdersView,
		PermInvoicesView,
		PermReportsExport,
	}
}
