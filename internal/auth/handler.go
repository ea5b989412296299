package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/shared"
	"github.com/buildtrack/buildtrack/internal/shell"
	"github.com/buildtrack/buildtrack/internal/view"
)

// Handler wires HTTP endpoints for authentication flows.
type Handler struct {
	logger         *slog.Logger
	service        *Service
	templates      *view.Engine
	sessionManager *shared.SessionManager
	csrfManager    *shared.CSRFManager
	shells         *shell.Registry
	validator      *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, sessions *shared.SessionManager, csrf *shared.CSRFManager, shells *shell.Registry) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:         logger,
		service:        service,
		templates:      templates,
		sessionManager: sessions,
		csrfManager:    csrf,
		shells:         shells,
		validator:      validator.New(),
	}
}

// MountRoutes registers auth routes on provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)
}

type roleOption struct {
	Value string
	Label string
}

type loginPageData struct {
	Form   loginForm
	Roles  []roleOption
	Errors map[string]string
}

func roleOptions() []roleOption {
	roles := rbac.AllRoles()
	out := make([]roleOption, len(roles))
	for i, r := range roles {
		out[i] = roleOption{Value: r.String(), Label: r.Label()}
	}
	return out
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	if rbac.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/app", http.StatusSeeOther)
		return
	}
	h.renderLogin(w, r, http.StatusOK, loginPageData{Form: loginForm{Role: rbac.RoleEmployee.String()}})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if sess == nil {
		h.logger.Error("session missing during login")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	form := loginForm{
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
		Role:     r.PostFormValue("role"),
	}
	errs := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				msg, ok := fieldMessages[fieldErr.Field()+"."+fieldErr.Tag()]
				if !ok {
					msg = fieldErr.Error()
				}
				errs[fieldErr.Field()] = msg
			}
		} else {
			errs["general"] = err.Error()
		}
	}

	if len(errs) == 0 {
		role, _ := rbac.ParseRole(form.Role)
		user, err := h.service.Authenticate(r.Context(), form.Email, form.Password, role)
		if err == nil {
			err = rbac.StoreUser(sess, user)
		}
		if err == nil {
			sess.Set(shell.ActiveSectionKey, shell.DefaultSection)
			shared.AddFlash(r.Context(), "success", "Welcome back, "+user.Name)
			h.shells.Login(sess.ID, *user)
			h.logger.Info("user signed in", slog.String("user_id", user.ID), slog.String("role", user.Role.String()))
			http.Redirect(w, r, "/app", http.StatusSeeOther)
			return
		}
		h.logger.Warn("sign in failed", slog.Any("error", err))
		errs["general"] = "Unable to sign in. Please try again."
	}

	form.Password = ""
	h.renderLogin(w, r, http.StatusBadRequest, loginPageData{Form: form, Errors: errs})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if sess != nil {
		h.shells.Remove(sess.ID)
		rbac.ForgetUser(sess)
		h.sessionManager.Destroy(sess)
	}
	http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data loginPageData) {
	sess := shared.SessionFromContext(r.Context())
	csrfToken, _ := h.csrfManager.EnsureToken(r.Context(), sess)
	data.Roles = roleOptions()
	viewData := view.TemplateData{
		Title:       "Sign In",
		CSRFToken:   csrfToken,
		Flash:       shared.PopFlash(r.Context()),
		CurrentPath: r.URL.Path,
		Data:        data,
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.Render(w, "pages/login.html", viewData); err != nil {
		h.logger.Error("render login", slog.Any("error", err))
	}
}

// ShowLoginForTest exposes the GET handler for tests.
func (h *Handler) ShowLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.showLogin(w, r)
}

// HandleLoginForTest exposes the POST handler for tests.
func (h *Handler) HandleLoginForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogin(w, r)
}

// HandleLogoutForTest exposes the logout handler for tests.
func (h *Handler) HandleLogoutForTest(w http.ResponseWriter, r *http.Request) {
	h.handleLogout(w, r)
}
