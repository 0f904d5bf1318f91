package suppliers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/olufinja/naijafind/internal/auth"
	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/users"
)

// Handler exposes supplier endpoints: public reads, the owner dashboard and
// admin moderation.
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

// MountRoutes registers supplier routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/{id}", h.handleGet)

	r.Post("/signup", h.handleSignUp)
	r.Get("/me", h.handleMyProfile)
	r.Put("/me", h.handleUpdateProfile)

	r.Route("/admin", func(r chi.Router) {
		r.Get("/pending", h.handlePending)
		r.Post("/{id}/approve", h.handleApprove)
		r.Post("/{id}/reject", h.handleReject)
		r.Post("/{id}/feature", h.handleFeature)
		r.Post("/{id}/verify", h.handleVerify)
		r.Delete("/{id}", h.handleDelete)
	})
}

type profileRequest struct {
	BusinessName string   `json:"business_name" validate:"required,min=2,max=160"`
	Category     string   `json:"category" validate:"max=80"`
	Description  string   `json:"description" validate:"max=2000"`
	Address      string   `json:"address" validate:"max=300"`
	City         string   `json:"city" validate:"max=100"`
	State        string   `json:"state" validate:"max=100"`
	Country      string   `json:"country" validate:"max=100"`
	Latitude     *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude    *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Phone        string   `json:"phone" validate:"max=32"`
	Email        string   `json:"email" validate:"omitempty,email"`
	Website      string   `json:"website" validate:"omitempty,url,max=300"`
	ImageURL     string   `json:"image_url" validate:"omitempty,url,max=500"`
	Gallery      []string `json:"gallery" validate:"max=12,dive,url"`
}

func (req profileRequest) toProfile() Profile {
	return Profile{
		BusinessName: req.BusinessName,
		Category:     req.Category,
		Description:  req.Description,
		Address:      req.Address,
		City:         req.City,
		State:        req.State,
		Country:      req.Country,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Phone:        req.Phone,
		Email:        req.Email,
		Website:      req.Website,
		ImageURL:     req.ImageURL,
		Gallery:      req.Gallery,
	}
}

func (h *Handler) decodeProfile(w http.ResponseWriter, r *http.Request) (Profile, bool) {
	var req profileRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return Profile{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Profile{}, false
	}
	return req.toProfile(), true
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid supplier id")
		return
	}
	var viewer *users.User
	if decision := h.authz.Authorize(r.Context(), auth.Requirement{}); decision.Authorized() {
		viewer = decision.User
	}
	supplier, err := h.service.Get(r.Context(), id, viewer)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *Handler) handleSignUp(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", decision.Reason)
		return
	}
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}
	created, err := h.service.SignUp(r.Context(), decision.User.ID, profile)
	if err != nil {
		h.logger.Warn("supplier signup", slog.Int64("user_id", decision.User.ID), slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{Roles: []string{users.RoleSupplier}})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	supplier, err := h.service.MyProfile(r.Context(), decision.User.ID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, supplier)
}

func (h *Handler) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{Roles: []string{users.RoleSupplier}})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	profile, ok := h.decodeProfile(w, r)
	if !ok {
		return
	}
	updated, err := h.service.UpdateProfile(r.Context(), decision.User.ID, profile)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handlePending(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{AdminOnly: true})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	list, total, err := h.service.ListPending(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list pending suppliers", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Supplier{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"suppliers": list, "total": total})
}

func (h *Handler) adminID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{AdminOnly: true})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return 0, false
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid supplier id")
		return 0, false
	}
	return id, true
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	id, ok := h.adminID(w, r)
	if !ok {
		return
	}
	if err := h.service.Approve(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"approved": true})
}

type rejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

func (h *Handler) handleReject(w http.ResponseWriter, r *http.Request) {
	id, ok := h.adminID(w, r)
	if !ok {
		return
	}
	var req rejectRequest
	_ = httpx.DecodeJSON(r, &req)
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.service.Reject(r.Context(), id, req.Reason); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"approved": false})
}

type flagRequest struct {
	Value *bool `json:"value"`
}

func flagValue(r *http.Request) bool {
	var req flagRequest
	_ = httpx.DecodeJSON(r, &req)
	if req.Value == nil {
		return true
	}
	return *req.Value
}

func (h *Handler) handleFeature(w http.ResponseWriter, r *http.Request) {
	id, ok := h.adminID(w, r)
	if !ok {
		return
	}
	value := flagValue(r)
	if err := h.service.SetFeatured(r.Context(), id, value); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"featured": value})
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	id, ok := h.adminID(w, r)
	if !ok {
		return
	}
	value := flagValue(r)
	if err := h.service.SetVerified(r.Context(), id, value); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"verified": value})
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.adminID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

