package search

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/olufinja/naijafind/internal/platform/httpx"
)

// Handler exposes the public search endpoint.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers search routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleSearch)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := Params{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		Location: q.Get("location"),
		SortBy:   q.Get("sort_by"),
	}
	if v, err := strconv.ParseFloat(q.Get("lat"), 64); err == nil {
		params.Lat = &v
	}
	if v, err := strconv.ParseFloat(q.Get("lng"), 64); err == nil {
		params.Lng = &v
	}
	if (params.Lat == nil) != (params.Lng == nil) {
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "lat and lng must be provided together")
		return
	}
	if v, err := strconv.ParseFloat(q.Get("radius_km"), 64); err == nil && v > 0 {
		params.RadiusKm = v
	}
	if v, err := strconv.ParseFloat(q.Get("min_rating"), 64); err == nil && v > 0 {
		params.MinRating = v
	}
	params.VerifiedOnly = q.Get("verified") == "true"
	params.Limit, _ = strconv.Atoi(q.Get("limit"))
	params.Offset, _ = strconv.Atoi(q.Get("offset"))

	switch params.SortBy {
	case "", SortRelevance, SortDistance, SortRating, SortReviews:
	default:
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", "unknown sort_by value")
		return
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.logger.Error("search", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}
