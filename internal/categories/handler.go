package categories

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/olufinja/naijafind/internal/auth"
	"github.com/olufinja/naijafind/internal/platform/httpx"
)

// Handler exposes category endpoints. Reads are public; writes require the
// admin capability.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	authz    auth.Authorizer
	validate *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, authz auth.Authorizer) *Handler {
	return &Handler{logger: logger, service: service, authz: authz, validate: validator.New()}
}

// MountRoutes registers category routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/{id}", h.handleGet)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	// Admins may ask for disabled categories too.
	activeOnly := true
	if r.URL.Query().Get("include_inactive") == "true" {
		if decision := h.authz.Authorize(r.Context(), auth.Requirement{AdminOnly: true}); decision.Authorized() {
			activeOnly = false
		}
	}
	list, err := h.service.List(r.Context(), activeOnly)
	if err != nil {
		h.logger.Error("list categories", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Category{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"categories": list})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category id")
		return
	}
	category, err := h.service.Get(r.Context(), id)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, category)
}

type categoryRequest struct {
	Name         string `json:"name" validate:"required,min=2,max=80"`
	Description  string `json:"description" validate:"max=500"`
	Icon         string `json:"icon" validate:"max=80"`
	DisplayOrder int    `json:"display_order" validate:"gte=0"`
	IsActive     *bool  `json:"is_active"`
}

func (req categoryRequest) toModel() Category {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return Category{
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		DisplayOrder: req.DisplayOrder,
		IsActive:     active,
	}
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{AdminOnly: true})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), req.toModel())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{AdminOnly: true})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category id")
		return
	}
	var req categoryRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	updated, err := h.service.Update(r.Context(), id, req.toModel())
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{AdminOnly: true})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid category id")
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
