package shell

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/content"
	"github.com/buildtrack/buildtrack/internal/platform/httpx"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/shared"
	"github.com/buildtrack/buildtrack/internal/view"
)

func newHandler(t *testing.T) (*Handler, *Registry) {
	t.Helper()
	templates, err := view.NewEngine()
	require.NoError(t, err)
	client := newClient(t, backend.MockOptions{})
	registry := NewRegistry(client, content.NewRouter(), nil)
	t.Cleanup(registry.Close)
	h := NewHandler(nil, registry, client, templates, shared.NewCSRFManager("csrf"), Options{RenderWait: waitFor})
	return h, registry
}

func signedInRequest(t *testing.T, u rbac.User) (*http.Request, *shared.Session) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sessions := shared.NewSessionManager(rdb, "buildtrack_session", "secret", time.Hour, false)

	req := httptest.NewRequest(http.MethodGet, "/app", nil)
	sess, err := sessions.Load(req.Context(), req)
	require.NoError(t, err)
	ctx := shared.ContextWithSession(req.Context(), sess)
	ctx = rbac.ContextWithUser(ctx, &u)
	return req.WithContext(ctx), sess
}

func TestRenderRestoresSweptShell(t *testing.T) {
	h, registry := newHandler(t)
	req, sess := signedInRequest(t, user(rbac.RoleSupplier))

	s, err := h.Current(req)
	require.NoError(t, err)
	require.Equal(t, 1, registry.Sweep(time.Now().Add(time.Hour), time.Minute))
	require.Equal(t, PhaseSignedOut, s.Screen().Phase)

	rec := httptest.NewRecorder()
	h.render(rec, req, s)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Supply Management")
	fresh, ok := registry.Get(sess.ID)
	require.True(t, ok)
	assert.NotSame(t, s, fresh)
	assert.NotNil(t, fresh.User())
}

func TestRenderRedirectsWithoutSessionUser(t *testing.T) {
	h, _ := newHandler(t)
	req, _ := signedInRequest(t, user(rbac.RoleClient))
	req = req.WithContext(rbac.ContextWithUser(req.Context(), nil))

	s := New(h.client, content.NewRouter())
	rec := httptest.NewRecorder()
	h.render(rec, req, s)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/auth/login", rec.Header().Get("Location"))
}

func TestLoadRejectsSectionOutsideRole(t *testing.T) {
	h, _ := newHandler(t)
	req, _ := signedInRequest(t, user(rbac.RoleSupplier))

	_, err := h.Load(req, "tasks")
	assert.ErrorIs(t, err, httpx.ErrForbidden)

	data, err := h.Load(req, "inventory")
	require.NoError(t, err)
	assert.IsType(t, backend.InventoryData{}, data)
}
