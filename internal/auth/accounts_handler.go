package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/olufinja/naijafind/internal/platform/httpx"
	"github.com/olufinja/naijafind/internal/users"
)

// AccountsHandler exposes the signed-in account endpoints: me, ensure and
// the choose-role onboarding step.
type AccountsHandler struct {
	logger   *slog.Logger
	users    *users.Service
	authz    Authorizer
	validate *validator.Validate
}

// NewAccountsHandler constructs an AccountsHandler.
func NewAccountsHandler(logger *slog.Logger, usersService *users.Service, authz Authorizer) *AccountsHandler {
	return &AccountsHandler{logger: logger, users: usersService, authz: authz, validate: validator.New()}
}

// MountRoutes registers account routes.
func (h *AccountsHandler) MountRoutes(r chi.Router) {
	r.Get("/me", h.handleMe)
	r.Post("/ensure", h.handleEnsure)
	r.Post("/choose-role", h.handleChooseRole)
}

func (h *AccountsHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), Requirement{})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", decision.Reason)
		return
	}
	httpx.JSON(w, http.StatusOK, decision.User)
}

type ensureRequest struct {
	Name string `json:"name" validate:"max=100"`
}

// handleEnsure upserts the account row for the authenticated identity.
// Clients call it once after first sign-in.
func (h *AccountsHandler) handleEnsure(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "not signed in")
		return
	}
	var req ensureRequest
	// The body is optional; an empty request keeps the stored name.
	_ = httpx.DecodeJSON(r, &req)
	user, err := h.users.Ensure(r.Context(), identity.Email, req.Name)
	if err != nil {
		h.logger.Error("ensure user", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}

type chooseRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user supplier"`
}

func (h *AccountsHandler) handleChooseRole(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), Requirement{})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", decision.Reason)
		return
	}
	var req chooseRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	if err := h.users.ChooseRole(r.Context(), decision.User.ID, req.Role); err != nil {
		httpx.RespondError(w, err)
		return
	}
	user, err := h.users.Get(r.Context(), decision.User.ID)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, user)
}
