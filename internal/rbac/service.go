package rbac

import (
	"context"
	"errors"
	"sort"

	"github.com/buildtrack/buildtrack/internal/shared"
)

// ErrUnknownRole indicates that the role has no permission catalog.
var ErrUnknownRole = errors.New("rbac: unknown role")

var rolePermissions = map[Role][]string{
	RoleSuperAdmin: {
		shared.PermAnalyticsView,
		shared.PermUsersView,
		shared.PermUsersEdit,
		shared.PermSecurityView,
		shared.PermSettingsEdit,
		shared.PermReportsExport,
	},
	RoleSupervisor: {
		shared.PermAnalyticsView,
		shared.PermTeamView,
		shared.PermProjectsView,
		shared.PermTasksView,
		shared.PermTasksEdit,
		shared.PermReportsExport,
	},
	RoleSupplier: {
		shared.PermInventoryView,
		shared.PermInventoryEdit,
		shared.PermOrdersView,
		shared.PermInvoicesView,
		shared.PermReportsExport,
	},
	RoleClient: {
		shared.PermOrdersView,
		shared.PermInvoicesView,
		shared.PermProjectsView,
	},
	RoleEmployee: {
		shared.PermTasksView,
		shared.PermTeamView,
	},
}

// Service resolves the permissions granted to a role.
type Service struct{}

// NewService constructs a Service backed by the static role catalog.
func NewService() *Service {
	return &Service{}
}

// RolePermissions returns the sorted permission list of the role.
func (s *Service) RolePermissions(role Role) ([]string, error) {
	perms, ok := rolePermissions[role]
	if !ok {
		return nil, ErrUnknownRole
	}
	out := make([]string, len(perms))
	copy(out, perms)
	sort.Strings(out)
	return out, nil
}

// EffectivePermissions merges the role catalog with the permissions stored on
// the user record.
func (s *Service) EffectivePermissions(ctx context.Context, user *User) ([]string, error) {
	if user == nil {
		return nil, nil
	}
	base, err := s.RolePermissions(user.Role)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(base)+len(user.Permissions))
	merged := make([]string, 0, len(base)+len(user.Permissions))
	for _, p := range append(base, normalizePermissions(user.Permissions)...) {
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		merged = append(merged, p)
	}
	sort.Strings(merged)
	return merged, nil
}
