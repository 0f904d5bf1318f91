package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/olufinja/naijafind/internal/auth"
	"github.com/olufinja/naijafind/internal/categories"
	"github.com/olufinja/naijafind/internal/contact"
	"github.com/olufinja/naijafind/internal/newsletter"
	"github.com/olufinja/naijafind/internal/observability"
	"github.com/olufinja/naijafind/internal/products"
	"github.com/olufinja/naijafind/internal/reviews"
	"github.com/olufinja/naijafind/internal/search"
	"github.com/olufinja/naijafind/internal/suppliers"
	"github.com/olufinja/naijafind/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	Tokens            *auth.TokenService
	Metrics           *observability.Metrics
	BootstrapHandler  *BootstrapHandler
	AuthHandler       *auth.Handler
	AccountsHandler   *auth.AccountsHandler
	SearchHandler     *search.Handler
	CategoriesHandler *categories.Handler
	SuppliersHandler  *suppliers.Handler
	ProductsHandler   *products.Handler
	ReviewsHandler    *reviews.Handler
	NewsletterHandler *newsletter.Handler
	ContactHandler    *contact.Handler
	JobHandler        *jobs.Handler
}

// NewRouter constructs the chi.Router with NaijaFind defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Config:  params.Config,
		Tokens:  params.Tokens,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	params.BootstrapHandler.MountRoutes(r)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/users", params.AccountsHandler.MountRoutes)
		r.Route("/suppliers/search", params.SearchHandler.MountRoutes)
		r.Route("/suppliers", params.SuppliersHandler.MountRoutes)
		r.Route("/categories", params.CategoriesHandler.MountRoutes)
		r.Route("/products", params.ProductsHandler.MountRoutes)
		r.Route("/reviews", params.ReviewsHandler.MountRoutes)
		r.Route("/newsletter", params.NewsletterHandler.MountRoutes)
		r.Route("/contact", params.ContactHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Route("/jobs", params.JobHandler.MountRoutes)
		}
	})

	return r
}
