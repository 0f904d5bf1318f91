package contact

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

// Handler exposes contact endpoints.
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

// MountRoutes registers contact routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.handleSend)
	r.Post("/supplier/{supplierID}", h.handleSend)
	r.Get("/inbox", h.handleInbox)
}

type sendRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=120"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"max=200"`
	Body    string `json:"body" validate:"required,max=5000"`
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}

	msg := Message{Name: req.Name, Email: req.Email, Subject: req.Subject, Body: req.Body}
	if raw := chi.URLParam(r, "supplierID"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid supplier id")
			return
		}
		msg.SupplierID = &id
	}

	created, err := h.service.Send(r.Context(), msg)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleInbox(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{Roles: []string{users.RoleSupplier}})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	list, total, err := h.service.Inbox(r.Context(), decision.User, limit, offset)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Message{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"messages": list, "total": total})
}
