// Package content maps the active section of the shell to the view that
// renders it.
package content

import (
	"github.com/buildtrack/buildtrack/internal/dashboard"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
)

// Router resolves section identifiers to views. The zero value is ready to
// use.
type Router struct{}

// NewRouter constructs a Router.
func NewRouter() Router {
	return Router{}
}

// Resolve returns the view of section for user. The dashboard section, the
// empty string and every unrecognised identifier resolve to the role
// dashboard of user. Identifiers match exactly.
func (Router) Resolve(section string, user *rbac.User) dashboard.View {
	id := section
	if s, ok := sectiondata.Parse(id); ok {
		if v, ok := dashboard.ForSection(s); ok {
			return v
		}
	}
	if dashboard.IsPlaceholder(id) {
		return dashboard.ComingSoon(id)
	}
	var role rbac.Role
	if user != nil {
		role = user.Role
	}
	return dashboard.ForRole(role)
}

// Canonical returns the section id the shell should record for raw. Unknown
// identifiers collapse to the dashboard.
func (Router) Canonical(id string) string {
	if _, ok := sectiondata.Parse(id); ok {
		return id
	}
	if dashboard.IsPlaceholder(id) {
		return id
	}
	return sectiondata.SectionDashboard.String()
}
