package rbac

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Role is one of the fixed user categories. The set is closed: every switch
// over Role must handle all five values plus a default arm.
type Role string

const (
	RoleSuperAdmin Role = "super-admin"
	RoleSupervisor Role = "supervisor"
	RoleSupplier   Role = "supplier"
	RoleClient     Role = "client"
	RoleEmployee   Role = "employee"
)

var allRoles = []Role{RoleSuperAdmin, RoleSupervisor, RoleSupplier, RoleClient, RoleEmployee}

// AllRoles returns the role set in declaration order.
func AllRoles() []Role {
	out := make([]Role, len(allRoles))
	copy(out, allRoles)
	return out
}

// ParseRole converts raw input into a Role.
func ParseRole(raw string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if !role.Valid() {
		return "", fmt.Errorf("rbac: unknown role %q", raw)
	}
	return role, nil
}

// Valid reports whether r belongs to the role set.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleSupervisor, RoleSupplier, RoleClient, RoleEmployee:
		return true
	default:
		return false
	}
}

// Label renders the role for humans, e.g. "Super Admin".
func (r Role) Label() string {
	return cases.Title(language.English).String(strings.ReplaceAll(string(r), "-", " "))
}

func (r Role) String() string {
	return string(r)
}

// User is the authenticated principal carried by a session.
type User struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Role        Role      `json:"role"`
	Avatar      string    `json:"avatar,omitempty"`
	Department  string    `json:"department,omitempty"`
	LastLogin   time.Time `json:"last_login,omitempty"`
	Permissions []string  `json:"permissions"`
}

// Initials returns up to two upper-case initials of the user name.
func (u *User) Initials() string {
	if u == nil {
		return ""
	}
	var b strings.Builder
	count := 0
	for _, part := range strings.Fields(u.Name) {
		b.WriteRune(unicode.ToUpper([]rune(part)[0]))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}

// Can reports whether the user carries the permission.
func (u *User) Can(perm string) bool {
	if u == nil {
		return false
	}
	return hasAnyPermission(u.Permissions, normalizePermissions([]string{perm}))
}
