package view

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildtrack/buildtrack/internal/dashboard"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
	"github.com/buildtrack/buildtrack/internal/shared"
)

func TestNewEngine(t *testing.T) {
	engine, err := NewEngine()
	assert.NoError(t, err, "Templates should parse without error")
	assert.NotNil(t, engine)
}

func TestEveryViewHasTemplate(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	views := []dashboard.View{dashboard.ComingSoon("settings")}
	for _, role := range rbac.AllRoles() {
		views = append(views, dashboard.ForRole(role))
	}
	for _, section := range sectiondata.All() {
		if v, ok := dashboard.ForSection(section); ok {
			views = append(views, v)
		}
	}
	for _, v := range views {
		assert.True(t, engine.Has(v.Template()), v.Template())
	}
	assert.True(t, engine.Has("pages/login.html"))
	assert.True(t, engine.Has("pages/app.html"))
	assert.False(t, engine.Has("views/missing"))
}

func TestFragmentComingSoon(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	v := dashboard.ComingSoon("payments")
	model, err := v.Build(dashboard.Input{Now: time.Now()})
	require.NoError(t, err)

	html, err := engine.Fragment(v.Template(), map[string]any{"Model": model})
	require.NoError(t, err)
	assert.Contains(t, string(html), "Payments")
	assert.Contains(t, string(html), dashboard.DefaultComingSoon)
}

func TestRenderEscapesFlash(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = engine.Render(rec, "pages/login.html", TemplateData{
		Title:     "Sign In",
		CSRFToken: "tok",
		Flash:     &shared.FlashMessage{Kind: "error", Message: "<b>bad</b>"},
	})
	require.NoError(t, err)

	body := rec.Body.String()
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, body, "&lt;b&gt;bad&lt;/b&gt;")
	assert.Contains(t, body, `name="csrf_token" value="tok"`)
	assert.False(t, strings.Contains(body, "http-equiv=\"refresh\""))
}

func TestRenderSkeletonRefresh(t *testing.T) {
	engine, err := NewEngine()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, engine.Render(rec, "pages/login.html", TemplateData{Refresh: 2}))
	assert.Contains(t, rec.Body.String(), `<meta http-equiv="refresh" content="2">`)
}

func TestNilEngine(t *testing.T) {
	var engine *Engine
	_, err := engine.Fragment("views/tasks", nil)
	assert.Error(t, err)
	assert.False(t, engine.Has("views/tasks"))
}
