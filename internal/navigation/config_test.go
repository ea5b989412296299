package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtrack/buildtrack/internal/rbac"
)

func TestForRoleNonEmptyAndUnique(t *testing.T) {
	for _, role := range rbac.AllRoles() {
		t.Run(string(role), func(t *testing.T) {
			items := ForRole(role)
			require.NotEmpty(t, items)
			seen := make(map[string]bool, len(items))
			for _, it := range items {
				assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
				seen[it.ID] = true
				assert.Equal(t, "/app/"+it.ID, it.Path)
				assert.NotEmpty(t, it.Title)
			}
			assert.Equal(t, "dashboard", items[0].ID)
		})
	}
}

func TestForRoleIsStable(t *testing.T) {
	first := ForRole(rbac.RoleClient)
	second := ForRole(rbac.RoleClient)
	assert.Equal(t, first, second)

	first[0].Title = "mutated"
	assert.Equal(t, "Dashboard", ForRole(rbac.RoleClient)[0].Title)
}

func TestForRoleUnknownFallsBack(t *testing.T) {
	assert.NotPanics(t, func() {
		items := ForRole(rbac.Role("auditor"))
		assert.Equal(t, Fallback(), items)
	})
	assert.Equal(t, Fallback(), ForRole(""))
}

func TestSupplierNavigation(t *testing.T) {
	items := ForRole(rbac.RoleSupplier)
	titles := make([]string, 0, len(items))
	for _, it := range items {
		titles = append(titles, it.Title)
	}
	assert.Equal(t, []string{"Dashboard", "Inventory", "Orders", "Deliveries", "Invoices", "Payments"}, titles)
	assert.Equal(t, "5", items[2].Badge)
	assert.True(t, Contains(items, "inventory"))
	assert.False(t, Contains(items, "users"))
}
