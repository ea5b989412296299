// Package sectiondata fetches section payloads from the backend and tracks
// per-view request state.
package sectiondata

// Section names one of the data-backed dashboard sections.
type Section string

const (
	SectionDashboard Section = "dashboard"
	SectionAnalytics Section = "analytics"
	SectionTeam      Section = "team"
	SectionProjects  Section = "projects"
	SectionTasks     Section = "tasks"
	SectionInventory Section = "inventory"
	SectionOrders    Section = "orders"
	SectionInvoices  Section = "invoices"
	SectionUsers     Section = "users"
	SectionSecurity  Section = "security"
)

var allSections = []Section{
	SectionDashboard, SectionAnalytics, SectionTeam, SectionProjects, SectionTasks,
	SectionInventory, SectionOrders, SectionInvoices, SectionUsers, SectionSecurity,
}

// All returns every section in declaration order.
func All() []Section {
	out := make([]Section, len(allSections))
	copy(out, allSections)
	return out
}

// Parse reports whether raw names a known section. Matching is exact.
func Parse(raw string) (Section, bool) {
	s := Section(raw)
	return s, s.Valid()
}

// Valid reports whether s is a known section.
func (s Section) Valid() bool {
	switch s {
	case SectionDashboard, SectionAnalytics, SectionTeam, SectionProjects, SectionTasks,
		SectionInventory, SectionOrders, SectionInvoices, SectionUsers, SectionSecurity:
		return true
	default:
		return false
	}
}

func (s Section) String() string {
	return string(s)
}
