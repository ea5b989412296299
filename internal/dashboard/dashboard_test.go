package dashboard

import (
	"context"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
)

var now = time.Date(2024, 5, 14, 12, 0, 0, 0, time.UTC)

func loaded(data map[sectiondata.Section]any) map[sectiondata.Section]sectiondata.State {
	states := make(map[sectiondata.Section]sectiondata.State, len(data))
	for section, d := range data {
		states[section] = sectiondata.State{Data: d, Updated: now}
	}
	return states
}

// mockStates fetches every section of v from a seeded mock backend.
func mockStates(t *testing.T, v View, user rbac.User) map[sectiondata.Section]sectiondata.State {
	t.Helper()
	mock := backend.NewMock(backend.MockOptions{
		Rand: rand.New(rand.NewPCG(3, 5)),
		Now:  func() time.Time { return now },
	})
	client := sectiondata.NewClient(mock, nil, nil)
	data := make(map[sectiondata.Section]any)
	for _, section := range v.Sections() {
		d, err := client.Fetch(context.Background(), section, &user)
		require.NoError(t, err, section)
		data[section] = d
	}
	return loaded(data)
}

func TestForRoleCoversEveryRole(t *testing.T) {
	titles := map[rbac.Role]string{
		rbac.RoleSuperAdmin: "System Administration",
		rbac.RoleSupervisor: "Team Supervision",
		rbac.RoleSupplier:   "Supply Management",
		rbac.RoleClient:     "Client Portal",
		rbac.RoleEmployee:   "My Workspace",
	}
	for _, role := range rbac.AllRoles() {
		v := ForRole(role)
		require.NotNil(t, v, role)
		assert.Equal(t, titles[role], v.Title(), role)
		assert.Contains(t, v.Sections(), sectiondata.SectionDashboard, role)
		assert.True(t, strings.HasPrefix(v.Template(), "views/"), role)
	}
	assert.Equal(t, "My Workspace", ForRole(rbac.Role("auditor")).Title())
}

func TestRoleDashboardsBuildFromMockData(t *testing.T) {
	for _, role := range rbac.AllRoles() {
		user := rbac.User{ID: "u-" + string(role), Name: "Pat Doe", Role: role}
		v := ForRole(role)
		m, err := v.Build(Input{User: user, States: mockStates(t, v, user), Now: now})
		require.NoError(t, err, role)
		assert.Equal(t, v.Title(), m.Title, role)
		assert.NotEmpty(t, m.Subtitle, role)
		assert.NotEmpty(t, m.Stats, role)
		assert.NotEmpty(t, m.Metrics, role)
		assert.NotNil(t, m.Content, role)
	}
}

func TestSupplierDashboardMetrics(t *testing.T) {
	delivered := now.Add(-time.Hour)
	states := loaded(map[sectiondata.Section]any{
		sectiondata.SectionDashboard: backend.DashboardData{Stats: []backend.Stat{{Label: "Active Orders"}}},
		sectiondata.SectionOrders: backend.OrdersData{Orders: []backend.Order{
			{ID: "ORD-001", Status: backend.OrderPending, Total: decimal.NewFromInt(45000)},
			{ID: "ORD-002", Status: backend.OrderProcessing, Total: decimal.NewFromInt(231)},
			{ID: "ORD-003", Status: backend.OrderDelivered, Total: decimal.Zero, DeliveryDate: &delivered},
		}},
		sectiondata.SectionInventory: backend.InventoryData{Items: []backend.InventoryItem{
			{ID: "INV-001", Status: backend.StockIn},
			{ID: "INV-002", Status: backend.StockLow},
			{ID: "INV-003", Status: backend.StockOut},
		}},
	})

	m, err := ForRole(rbac.RoleSupplier).Build(Input{User: rbac.User{Role: rbac.RoleSupplier}, States: states, Now: now})
	require.NoError(t, err)

	got := map[string]Metric{}
	for _, metric := range m.Metrics {
		got[metric.Label] = metric
	}
	assert.Equal(t, "2", got["Active Orders"].Value)
	assert.Equal(t, "$45,231", got["Total Revenue"].Value)
	assert.Equal(t, "2", got["Low Stock Alerts"].Value)
	assert.Equal(t, ToneBad, got["Low Stock Alerts"].Tone)
	assert.Equal(t, "3", got["Total Items"].Value)
	assert.Equal(t, "1", got["Deliveries Today"].Value)

	content, ok := m.Content.(SupplierContent)
	require.True(t, ok)
	assert.Len(t, content.LowStock, 2)
	assert.Equal(t, 3, content.TotalItems)
}

func TestInventoryViewCountsLowStockAlerts(t *testing.T) {
	v, ok := ForSection(sectiondata.SectionInventory)
	require.True(t, ok)
	items := []backend.InventoryItem{
		{ID: "INV-001", Status: backend.StockLow},
		{ID: "INV-002", Status: backend.StockOut},
		{ID: "INV-003", Status: backend.StockIn},
	}
	states := loaded(map[sectiondata.Section]any{
		sectiondata.SectionInventory: backend.InventoryData{Items: items, LowStockAlerts: backend.LowStock(items)},
	})

	m, err := v.Build(Input{States: states, Now: now})
	require.NoError(t, err)

	got := map[string]Metric{}
	for _, metric := range m.Metrics {
		got[metric.Label] = metric
	}
	assert.Equal(t, "2", got["Low Stock Alerts"].Value)
	assert.Equal(t, ToneBad, got["Low Stock Alerts"].Tone)
	assert.Equal(t, "1", got["Out of Stock"].Value)
	assert.Equal(t, "3", got["Total Items"].Value)
}

func TestClientDashboardGreetsUser(t *testing.T) {
	states := loaded(map[sectiondata.Section]any{
		sectiondata.SectionDashboard: backend.DashboardData{},
		sectiondata.SectionOrders:    backend.OrdersData{},
		sectiondata.SectionInvoices:  backend.InvoicesData{},
	})
	m, err := ForRole(rbac.RoleClient).Build(Input{User: rbac.User{Name: "Casey"}, States: states, Now: now})
	require.NoError(t, err)
	assert.Equal(t, "Welcome back, Casey. Manage your orders and account", m.Subtitle)
}

func TestBuildFailsWithoutData(t *testing.T) {
	states := loaded(map[sectiondata.Section]any{
		sectiondata.SectionDashboard: backend.DashboardData{},
	})
	_, err := ForRole(rbac.RoleEmployee).Build(Input{States: states, Now: now})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "employee-dashboard")

	states[sectiondata.SectionTasks] = sectiondata.State{Data: backend.OrdersData{}}
	_, err = ForRole(rbac.RoleEmployee).Build(Input{States: states, Now: now})
	require.Error(t, err)
}

func TestSectionViewsBuildFromMockData(t *testing.T) {
	user := rbac.User{ID: "u-1", Name: "Pat Doe", Role: rbac.RoleSupervisor}
	for _, section := range sectiondata.All() {
		if section == sectiondata.SectionDashboard {
			_, ok := ForSection(section)
			assert.False(t, ok)
			continue
		}
		v, ok := ForSection(section)
		require.True(t, ok, section)
		assert.Equal(t, []sectiondata.Section{section}, v.Sections())
		m, err := v.Build(Input{User: user, States: mockStates(t, v, user), Now: now})
		require.NoError(t, err, section)
		assert.NotEmpty(t, m.Title, section)
		assert.NotEmpty(t, m.Metrics, section)
	}
}

func TestAnalyticsRendersCharts(t *testing.T) {
	v, ok := ForSection(sectiondata.SectionAnalytics)
	require.True(t, ok)
	user := rbac.User{Role: rbac.RoleSuperAdmin}
	m, err := v.Build(Input{User: user, States: mockStates(t, v, user), Now: now})
	require.NoError(t, err)

	content, ok := m.Content.(AnalyticsContent)
	require.True(t, ok)
	assert.Contains(t, string(content.TrendChart), "<svg")
	assert.Contains(t, string(content.ScoreChart), ">Satisfaction</text>")
	assert.Contains(t, string(content.GoalRing), ">78%</text>")
	assert.Equal(t, "8.7", content.Efficiency)
	assert.Equal(t, "1,234", content.ActiveUsers)
}

func TestComingSoon(t *testing.T) {
	v := ComingSoon("deliveries")
	assert.Equal(t, "Deliveries", v.Title())
	assert.Empty(t, v.Sections())
	m, err := v.Build(Input{})
	require.NoError(t, err)
	assert.Equal(t, ComingSoonContent{Description: DefaultComingSoon}, m.Content)

	assert.Equal(t, "System Settings", ComingSoon("settings").Title())
	assert.Equal(t, "Audit Trail", ComingSoon("audit-trail").Title())
	assert.True(t, IsPlaceholder("timesheet"))
	assert.False(t, IsPlaceholder("orders"))
}
