package products

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

// Handler exposes product endpoints.
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

// MountRoutes registers product routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/supplier/{supplierID}", h.handleList)
	r.Post("/", h.handleCreate)
	r.Put("/{id}", h.handleUpdate)
	r.Delete("/{id}", h.handleDelete)
}

type productRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=160"`
	Description string `json:"description" validate:"max=2000"`
	PriceKobo   int64  `json:"price_kobo" validate:"gte=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=500"`
	InStock     bool   `json:"in_stock"`
}

func (req productRequest) toProduct() Product {
	return Product{
		Name:        req.Name,
		Description: req.Description,
		PriceKobo:   req.PriceKobo,
		ImageURL:    req.ImageURL,
		InStock:     req.InStock,
	}
}

func (h *Handler) decodeProduct(w http.ResponseWriter, r *http.Request) (Product, bool) {
	var req productRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid JSON body")
		return Product{}, false
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return Product{}, false
	}
	return req.toProduct(), true
}

func (h *Handler) caller(w http.ResponseWriter, r *http.Request) (*users.User, bool) {
	decision := h.authz.Authorize(r.Context(), auth.Requirement{})
	if !decision.Authorized() {
		httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", decision.Reason)
		return nil, false
	}
	return decision.User, true
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	supplierID, err := strconv.ParseInt(chi.URLParam(r, "supplierID"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid supplier id")
		return
	}
	var viewer *users.User
	if decision := h.authz.Authorize(r.Context(), auth.Requirement{}); decision.Authorized() {
		viewer = decision.User
	}
	list, err := h.service.ListForSupplier(r.Context(), supplierID, viewer)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	if list == nil {
		list = []Product{}
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"products": list})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	created, err := h.service.Create(r.Context(), caller, product)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, created)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid product id")
		return
	}
	product, ok := h.decodeProduct(w, r)
	if !ok {
		return
	}
	updated, err := h.service.Update(r.Context(), caller, id, product)
	if err != nil {
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, updated)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	caller, ok := h.caller(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "invalid product id")
		return
	}
	if err := h.service.Delete(r.Context(), caller, id); err != nil {
		httpx.RespondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
