package app

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/olufinja/naijafind/internal/auth"
	"github.com/olufinja/naijafind/internal/categories"
	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/users"
)

// BootstrapHandler exposes the first-run setup routes: category seeding and
// initial admin creation. All routes are idempotent so they can be hit
// repeatedly during provisioning.
type BootstrapHandler struct {
	logger     *slog.Logger
	config     *Config
	categories *categories.Service
	users      *users.Service
	auth       *auth.Service
	validate   *validator.Validate
}

// NewBootstrapHandler constructs a BootstrapHandler.
func NewBootstrapHandler(logger *slog.Logger, cfg *Config, categoriesService *categories.Service, usersService *users.Service, authService *auth.Service) *BootstrapHandler {
	return &BootstrapHandler{
		logger:     logger,
		config:     cfg,
		categories: categoriesService,
		users:      usersService,
		auth:       authService,
		validate:   validator.New(),
	}
}

// MountRoutes registers the bootstrap routes on the router root.
func (h *BootstrapHandler) MountRoutes(r chi.Router) {
	r.Get("/init", h.handleInit)
	r.Post("/init", h.handleInit)
	r.Post("/categories/init", h.handleCategoriesInit)
	r.Post("/admin/create", h.handleAdminCreate)
}

func (h *BootstrapHandler) handleInit(w http.ResponseWriter, r *http.Request) {
	created, err := h.categories.Bootstrap(r.Context())
	if err != nil {
		h.logger.Error("bootstrap categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"initialized":        true,
		"categories_created": created,
	})
}

type categoriesInitRequest struct {
	Categories []categories.SeedCategory `json:"categories" validate:"omitempty,dive"`
}

func (h *BootstrapHandler) handleCategoriesInit(w http.ResponseWriter, r *http.Request) {
	var req categoriesInitRequest
	// Empty body means seed the defaults.
	_ = httpx.DecodeJSON(r, &req)
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	var created int
	var err error
	if len(req.Categories) > 0 {
		created, err = h.categories.Seed(r.Context(), req.Categories)
	} else {
		created, err = h.categories.Bootstrap(r.Context())
	}
	if err != nil {
		h.logger.Error("seed categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"created": created})
}

type adminCreateRequest struct {
	Token    string `json:"token" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=120"`
	Password string `json:"password" validate:"omitempty,min=8,max=128"`
}

// handleAdminCreate promotes an account to admin, creating it first when a
// password is supplied. Gated by the bootstrap token from configuration; a
// deployment without one has the route disabled.
func (h *BootstrapHandler) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	if h.config.AdminBootstrapToken == "" {
		httpx.Problem(w, http.StatusNotFound, "Not Found", "admin bootstrap is disabled")
		return
	}
	var req adminCreateRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.Token), []byte(h.config.AdminBootstrapToken)) != 1 {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", "invalid bootstrap token")
		return
	}

	if req.Password != "" {
		if _, _, err := h.auth.Register(r.Context(), req.Email, req.Name, req.Password); err != nil && !errors.Is(err, httpx.ErrDuplicate) {
			httpx.RespondError(w, err)
			return
		}
	}
	admin, err := h.users.PromoteToAdmin(r.Context(), req.Email)
	if err != nil {
		h.logger.Error("promote admin", slog.String("email", req.Email), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	h.logger.Info("admin account ready", slog.String("email", admin.Email))
	httpx.JSON(w, http.StatusOK, admin)
}
