package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/buildtrack/buildtrack/internal/platform/httpx"
	"github.com/buildtrack/buildtrack/internal/shared"
)

// PermissionsHandler exposes the permission catalog as JSON.
type PermissionsHandler struct {
	logger  *slog.Logger
	service *Service
	rbac    Middleware
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, service *Service, rbac Middleware) *PermissionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionsHandler{logger: logger, service: service, rbac: rbac}
}

// MountRoutes registers permission routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Get("/", h.listOwn)
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireAny(shared.PermUsersView))
		r.Get("/roles", h.listRoles)
	})
}

type ownPermissions struct {
	Role        Role     `json:"role"`
	Permissions []string `json:"permissions"`
}

func (h *PermissionsHandler) listOwn(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	if user == nil {
		httpx.RespondError(w, httpx.ErrUnauthorized)
		return
	}
	perms, err := h.service.EffectivePermissions(r.Context(), user)
	if err != nil {
		h.logger.Error("effective permissions", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, ownPermissions{Role: user.Role, Permissions: perms})
}

type roleCatalog struct {
	Scopes []string          `json:"scopes"`
	Roles  map[Role][]string `json:"roles"`
}

func (h *PermissionsHandler) listRoles(w http.ResponseWriter, r *http.Request) {
	catalog := roleCatalog{Scopes: shared.CoreScopes(), Roles: make(map[Role][]string)}
	for _, role := range AllRoles() {
		perms, err := h.service.RolePermissions(role)
		if err != nil {
			h.logger.Error("role permissions", slog.String("role", role.String()), slog.Any("error", err))
			httpx.RespondError(w, err)
			return
		}
		catalog.Roles[role] = perms
	}
	httpx.JSON(w, http.StatusOK, catalog)
}
