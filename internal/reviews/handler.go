package reviews

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/olufinja/naijafind/internal/auth"
	"github.com/olufinja/naijafind/internal/platform/httpx"
)

// Handler exposes review endpoints.
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

// MountRoutes registers review routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/supplier/{supplierID}", h.handleList)
	r.Post("/supplier/{supplierID}", h.handleCreate)
}

type createRequest struct {
	Rating  int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

func supplierID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "supplierID"), 10, 64)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	id, err := supplierID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid supplier id")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	list, total, err := h.service.ListBySupplier(r.Context(), id, limit, offset)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Review{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"reviews": list, "total": total})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", decision.Reason)
		return
	}
	id, err := supplierID(r)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid supplier id")
		return
	}
	var req createRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return
	}
	created, err := h.service.Create(r.Context(), decision.User, id, req.Rating, req.Comment)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}
