package newsletter

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/olufinja/naijafind/internal/auth"
	"github.com/olufinja/naijafind/internal/platform/httpx"
)

// Handler exposes newsletter endpoints.
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

// MountRoutes registers newsletter routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/subscribe", h.handleSubscribe)
	r.Get("/unsubscribe/{token}", h.handleUnsubscribe)
	r.Post("/send", h.handleSend)
}

type subscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *Handler) handleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req subscribeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	result, err := h.service.Subscribe(r.Context(), req.Email)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleUnsubscribe(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	if err := h.service.Unsubscribe(r.Context(), token); err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"message": "You have been unsubscribed"})
}

type sendRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Body    string `json:"body" validate:"required"`
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{AdminOnly: true})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusForbidden, "Forbidden", decision.Reason)
		return
	}
	var req sendRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	sent, err := h.service.Broadcast(r.Context(), req.Subject, req.Body)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"enqueued": sent})
}
