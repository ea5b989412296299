package shell

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/dashboard"
	"github.com/buildtrack/buildtrack/internal/navigation"
	"github.com/buildtrack/buildtrack/internal/platform/httpx"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
	"github.com/buildtrack/buildtrack/internal/shared"
	"github.com/buildtrack/buildtrack/internal/view"
)

// ActiveSectionKey stores the active section in the session.
const ActiveSectionKey = "active_section"

// Options tunes page rendering.
type Options struct {
	// RenderWait bounds how long a page waits for in-flight fetches before
	// it renders the skeleton.
	RenderWait time.Duration
	// SkeletonRefresh is the meta refresh interval of the skeleton page.
	SkeletonRefresh time.Duration
	// Exportable reports whether a section offers a CSV download.
	Exportable func(section string) bool
}

// Handler serves the signed-in frame and its JSON API.
type Handler struct {
	logger    *slog.Logger
	registry  *Registry
	client    *sectiondata.Client
	templates *view.Engine
	csrf      *shared.CSRFManager
	opts      Options
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, registry *Registry, client *sectiondata.Client, templates *view.Engine, csrf *shared.CSRFManager, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SkeletonRefresh <= 0 {
		opts.SkeletonRefresh = time.Second
	}
	if opts.Exportable == nil {
		opts.Exportable = func(string) bool { return false }
	}
	return &Handler{
		logger:    logger,
		registry:  registry,
		client:    client,
		templates: templates,
		csrf:      csrf,
		opts:      opts,
	}
}

// MountRoutes registers the page routes under /app.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showActive)
	r.Post("/refresh", h.refresh)
	r.Get("/{section}", h.showSection)
}

// MountAPI registers the JSON routes under /api.
func (h *Handler) MountAPI(r chi.Router) {
	r.Get("/navigation", h.navigation)
	r.Get("/sections/{section}", h.section)
}

// sectionPermissions gates the JSON section API. The dashboard is open to
// every signed-in user.
var sectionPermissions = map[sectiondata.Section]string{
	sectiondata.SectionAnalytics: shared.PermAnalyticsView,
	sectiondata.SectionTeam:      shared.PermTeamView,
	sectiondata.SectionProjects:  shared.PermProjectsView,
	sectiondata.SectionTasks:     shared.PermTasksView,
	sectiondata.SectionInventory: shared.PermInventoryView,
	sectiondata.SectionOrders:    shared.PermOrdersView,
	sectiondata.SectionInvoices:  shared.PermInvoicesView,
	sectiondata.SectionUsers:     shared.PermUsersView,
	sectiondata.SectionSecurity:  shared.PermSecurityView,
}

// Current returns the shell of the request, rebuilding it from the session
// when the process has none.
func (h *Handler) Current(r *http.Request) (*Shell, error) {
	sess := shared.SessionFromContext(r.Context())
	user := rbac.UserFromContext(r.Context())
	if sess == nil || user == nil {
		return nil, shared.ErrUnauthenticated
	}
	return h.registry.Restore(sess.ID, *user, sess.Get(ActiveSectionKey)), nil
}

type appPage struct {
	Sidebar  Sidebar
	Screen   Screen
	Title    string
	Subtitle string
	Content  template.HTML
}

type fragmentData struct {
	Model     dashboard.Model
	User      rbac.User
	Section   string
	CanExport bool
	CSRFToken string
}

func (h *Handler) showActive(w http.ResponseWriter, r *http.Request) {
	s, err := h.Current(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	h.render(w, r, s)
}

func (h *Handler) showSection(w http.ResponseWriter, r *http.Request) {
	s, err := h.Current(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	active := s.Select(chi.URLParam(r, "section"))
	if sess := shared.SessionFromContext(r.Context()); sess != nil && sess.Get(ActiveSectionKey) != active {
		sess.Set(ActiveSectionKey, active)
	}
	h.render(w, r, s)
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	s, err := h.Current(r)
	if err != nil {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	if err := s.Refresh(r.Context()); err != nil {
		h.logger.Info("refresh section data", slog.String("section", s.Active()), slog.Any("error", err))
	}
	http.Redirect(w, r, "/app/"+s.Active(), http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, s *Shell) {
	h.wait(r, s)
	screen := s.Screen()
	if screen.Phase == PhaseSignedOut {
		// The sweeper may sign a shell out between lookup and render.
		if fresh, ok := h.revive(r, s); ok {
			s = fresh
			h.wait(r, s)
			screen = s.Screen()
		}
	}

	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrf.EnsureToken(r.Context(), sess)
	page := appPage{Sidebar: s.Sidebar(), Screen: screen}
	data := view.TemplateData{
		CSRFToken:   csrfToken,
		Flash:       shared.PopFlash(r.Context()),
		CurrentPath: r.URL.Path,
	}
	if screen.View != nil {
		page.Title = screen.View.Title()
		page.Subtitle = screen.View.Subtitle()
	}

	switch screen.Phase {
	case PhaseSignedOut:
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	case PhaseLoading:
		data.Refresh = int(h.opts.SkeletonRefresh.Round(time.Second) / time.Second)
		if data.Refresh < 1 {
			data.Refresh = 1
		}
	case PhaseError:
		if !errors.As(screen.Err, new(*sectiondata.FetchError)) {
			h.logger.Error("build view", slog.String("section", screen.Section), slog.Any("error", screen.Err))
		}
	case PhaseReady:
		page.Title = screen.Model.Title
		page.Subtitle = screen.Model.Subtitle
		user := s.User()
		fragment := fragmentData{
			Model:     screen.Model,
			User:      *user,
			Section:   screen.Section,
			CanExport: user.Can(shared.PermReportsExport) && h.opts.Exportable(screen.Section),
			CSRFToken: csrfToken,
		}
		html, err := h.templates.Fragment(screen.View.Template(), fragment)
		if err != nil {
			h.logger.Error("render view", slog.String("template", screen.View.Template()), slog.Any("error", err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		page.Content = html
	}

	data.Title = page.Title
	data.Data = page
	if err := h.templates.Render(w, "pages/app.html", data); err != nil {
		h.logger.Error("render app", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) wait(r *http.Request, s *Shell) {
	if h.opts.RenderWait <= 0 {
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), h.opts.RenderWait)
	defer cancel()
	if err := s.Wait(ctx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		h.logger.Warn("wait for section data", slog.Any("error", err))
	}
}

// revive replaces a signed-out shell of a session that still carries a user.
func (h *Handler) revive(r *http.Request, stale *Shell) (*Shell, bool) {
	sess := shared.SessionFromContext(r.Context())
	if sess == nil || rbac.UserFromContext(r.Context()) == nil {
		return nil, false
	}
	h.registry.forget(sess.ID, stale)
	fresh, err := h.Current(r)
	if err != nil || fresh.User() == nil {
		return nil, false
	}
	h.logger.Debug("restored swept shell", slog.String("session", sess.ID))
	return fresh, true
}

// Load returns the rows of section for the request user. Data already on
// screen is reused so a download matches what the user sees.
func (h *Handler) Load(r *http.Request, section sectiondata.Section) (any, error) {
	s, err := h.Current(r)
	if err != nil {
		return nil, err
	}
	user := s.User()
	if user == nil {
		return nil, shared.ErrUnauthenticated
	}
	if perm, gated := sectionPermissions[section]; gated && !user.Can(perm) {
		return nil, fmt.Errorf("load %s: %w", section, httpx.ErrForbidden)
	}
	if data, ok := s.Loaded(section); ok {
		return data, nil
	}
	return h.client.Fetch(r.Context(), section, user)
}

type navigationResponse struct {
	Role      rbac.Role         `json:"role"`
	RoleLabel string            `json:"role_label"`
	Active    string            `json:"active"`
	Items     []navigation.Item `json:"items"`
}

func (h *Handler) navigation(w http.ResponseWriter, r *http.Request) {
	s, err := h.Current(r)
	if err != nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	user := s.User()
	if user == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	sidebar := s.Sidebar()
	httpx.JSON(w, http.StatusOK, navigationResponse{
		Role:      user.Role,
		RoleLabel: sidebar.RoleLabel,
		Active:    sidebar.Active,
		Items:     sidebar.Items,
	})
}

func (h *Handler) section(w http.ResponseWriter, r *http.Request) {
	user := rbac.UserFromContext(r.Context())
	if user == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	raw := chi.URLParam(r, "section")
	section, ok := sectiondata.Parse(raw)
	if !ok {
		httpx.Problem(w, http.StatusNotFound, "Not Found", (&sectiondata.UnknownSectionError{Section: sectiondata.Section(raw)}).Error())
		return
	}
	if perm, gated := sectionPermissions[section]; gated && !user.Can(perm) {
		httpx.RespondError(w, httpx.ErrForbidden)
		return
	}
	data, err := h.client.Fetch(r.Context(), section, user)
	if err != nil {
		h.logger.Info("section api fetch", slog.String("section", section.String()), slog.Any("error", err))
		httpx.JSON(w, http.StatusBadGateway, backend.Response[any]{Success: false, Error: sectiondata.Message(err)})
		return
	}
	httpx.JSON(w, http.StatusOK, backend.Response[any]{Success: true, Data: data})
}
