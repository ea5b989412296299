package rbac

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtrack/buildtrack/internal/shared"
)

func TestParseRole(t *testing.T) {
	role, err := ParseRole(" Super-Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, role)

	_, err = ParseRole("janitor")
	assert.Error(t, err)
}

func TestRoleLabel(t *testing.T) {
	assert.Equal(t, "Super Admin", RoleSuperAdmin.Label())
	assert.Equal(t, "Client", RoleClient.Label())
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "JD", (&User{Name: "jane doe smith"}).Initials())
	assert.Equal(t, "S", (&User{Name: "sam"}).Initials())
	assert.Equal(t, "", (*User)(nil).Initials())
}

func TestEveryRoleHasPermissions(t *testing.T) {
	svc := NewService()
	core := make(map[string]struct{})
	for _, p := range shared.CoreScopes() {
		core[p] = struct{}{}
	}
	for _, role := range AllRoles() {
		perms, err := svc.RolePermissions(role)
		require.NoError(t, err, role)
		require.NotEmpty(t, perms, role)
		for _, p := range perms {
			_, ok := core[p]
			assert.True(t, ok, "%s grants unknown scope %s", role, p)
		}
	}
	_, err := svc.RolePermissions(Role("janitor"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestEffectivePermissionsMergesUserGrants(t *testing.T) {
	svc := NewService()
	user := &User{Role: RoleClient, Permissions: []string{" Reports.Export ", shared.PermOrdersView}}

	perms, err := svc.EffectivePermissions(context.Background(), user)
	require.NoError(t, err)
	assert.Contains(t, perms, shared.PermReportsExport)
	assert.Contains(t, perms, shared.PermOrdersView)

	seen := map[string]int{}
	for _, p := range perms {
		seen[p]++
	}
	assert.Equal(t, 1, seen[shared.PermOrdersView])
}

func TestUserCan(t *testing.T) {
	u := &User{Permissions: []string{"tasks.view"}}
	assert.True(t, u.Can("TASKS.VIEW"))
	assert.False(t, u.Can(shared.PermUsersView))
	assert.False(t, (*User)(nil).Can("tasks.view"))
}

func TestSessionRoundTrip(t *testing.T) {
	sess := &shared.Session{ID: "s-1"}
	user := &User{ID: "u-1", Name: "Ana", Email: "ana@example.com", Role: RoleSupplier}
	require.NoError(t, StoreUser(sess, user))

	got, err := LoadUser(sess)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, RoleSupplier, got.Role)

	ForgetUser(sess)
	got, err = LoadUser(sess)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadUserRejectsUnknownRole(t *testing.T) {
	sess := &shared.Session{ID: "s-1"}
	require.NoError(t, StoreUser(sess, &User{ID: "u-1", Role: Role("janitor")}))

	_, err := LoadUser(sess)
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func withUser(r *http.Request, u *User) *http.Request {
	return r.WithContext(ContextWithUser(r.Context(), u))
}

var noContent = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })

func TestRequireUser(t *testing.T) {
	m := Middleware{Service: NewService()}
	h := m.RequireUser("/auth/login")(noContent)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/navigation", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/app", nil), &User{Role: RoleClient}))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestRequireAnyAndAll(t *testing.T) {
	m := Middleware{Service: NewService()}
	supplier := &User{Role: RoleSupplier}

	cases := []struct {
		name   string
		mw     func(http.Handler) http.Handler
		user   *User
		status int
	}{
		{"any granted", m.RequireAny(shared.PermUsersView, shared.PermOrdersView), supplier, http.StatusNoContent},
		{"any denied", m.RequireAny(shared.PermUsersView), supplier, http.StatusForbidden},
		{"all granted", m.RequireAll(shared.PermOrdersView, shared.PermInventoryView), supplier, http.StatusNoContent},
		{"all denied", m.RequireAll(shared.PermOrdersView, shared.PermUsersView), supplier, http.StatusForbidden},
		{"anonymous", m.RequireAny(shared.PermOrdersView), nil, http.StatusForbidden},
		{"no requirement", m.RequireAny(" "), nil, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tc.mw(noContent).ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, "/", nil), tc.user))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}

func TestAuthenticateLoadsSessionUser(t *testing.T) {
	m := Middleware{Service: NewService()}
	sess := &shared.Session{ID: "s-1"}
	require.NoError(t, StoreUser(sess, &User{ID: "u-1", Role: RoleEmployee}))

	var seen *User
	h := m.Authenticate(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = UserFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, seen)
	assert.Equal(t, RoleEmployee, seen.Role)
}

func TestPermissionsHandler(t *testing.T) {
	svc := NewService()
	h := NewPermissionsHandler(nil, svc, Middleware{Service: svc})
	r := chi.NewRouter()
	r.Route("/permissions", h.MountRoutes)

	serve := func(path string, u *User) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, withUser(httptest.NewRequest(http.MethodGet, path, nil), u))
		return rec
	}

	rec := serve("/permissions/", &User{Role: RoleEmployee})
	require.Equal(t, http.StatusOK, rec.Code)
	var own ownPermissions
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &own))
	assert.Equal(t, RoleEmployee, own.Role)
	assert.ElementsMatch(t, []string{shared.PermTasksView, shared.PermTeamView}, own.Permissions)

	assert.Equal(t, http.StatusUnauthorized, serve("/permissions/", nil).Code)
	assert.Equal(t, http.StatusForbidden, serve("/permissions/roles", &User{Role: RoleEmployee}).Code)

	rec = serve("/permissions/roles", &User{Role: RoleSuperAdmin})
	require.Equal(t, http.StatusOK, rec.Code)
	var catalog roleCatalog
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &catalog))
	assert.Len(t, catalog.Roles, len(AllRoles()))
	assert.Equal(t, shared.CoreScopes(), catalog.Scopes)
}
