package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"github.com/olufinja/naijafind/internal/app"
	"github.com/olufinja/naijafind/internal/auth"
	"github.com/olufinja/naijafind/internal/categories"
	"github.com/olufinja/naijafind/internal/contact"
	"github.com/olufinja/naijafind/internal/mailer"
	"github.com/olufinja/naijafind/internal/newsletter"
	"github.com/olufinja/naijafind/internal/observability"
	"github.com/olufinja/naijafind/internal/platform/cache"
	"github.com/olufinja/naijafind/internal/platform/db"
	"github.com/olufinja/naijafind/internal/products"
	"github.com/olufinja/naijafind/internal/ratelimit"
	"github.com/olufinja/naijafind/internal/reviews"
	"github.com/olufinja/naijafind/internal/search"
	"github.com/olufinja/naijafind/internal/suppliers"
	"github.com/olufinja/naijafind/internal/users"
	"github.com/olufinja/naijafind/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	jobClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init job client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	metrics := observability.NewMetrics()
	outbox := mailer.InstrumentOutbox(jobClient, metrics.EmailEnqueued)
	limiter := ratelimit.NewLimiter(redisClient)

	tokens := auth.NewTokenService(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	usersRepo := users.NewRepository(pool)
	usersService := users.NewService(usersRepo)
	authorizer := auth.NewAuthorizer(usersRepo)
	authService := auth.NewService(usersRepo, tokens)
	authHandler := auth.NewHandler(logger, authService)
	accountsHandler := auth.NewAccountsHandler(logger, usersService, authorizer)

	categoriesRepo := categories.NewRepository(pool)
	categoriesService := categories.NewService(categoriesRepo)
	categoriesHandler := categories.NewHandler(logger, categoriesService, authorizer)

	suppliersRepo := suppliers.NewRepository(pool)
	suppliersService := suppliers.NewService(suppliersRepo, usersRepo, categoriesRepo, limiter, outbox, logger)
	suppliersHandler := suppliers.NewHandler(logger, suppliersService, authorizer)

	searchService := search.NewService(suppliersRepo, redisClient, cfg.SearchCacheTTL, metrics, logger)
	searchHandler := search.NewHandler(logger, searchService)
	suppliersService.OnChange(searchService.InvalidateDataset)

	productsRepo := products.NewRepository(pool)
	productsService := products.NewService(productsRepo, suppliersRepo)
	productsHandler := products.NewHandler(logger, productsService, authorizer)

	reviewsRepo := reviews.NewRepository(pool)
	reviewsService := reviews.NewService(reviewsRepo, suppliersRepo, limiter)
	reviewsHandler := reviews.NewHandler(logger, reviewsService, authorizer)

	newsletterRepo := newsletter.NewRepository(pool)
	newsletterService := newsletter.NewService(newsletterRepo, limiter, outbox, logger)
	newsletterHandler := newsletter.NewHandler(logger, newsletterService, authorizer)

	contactRepo := contact.NewRepository(pool)
	contactService := contact.NewService(contactRepo, suppliersRepo, usersRepo, limiter, outbox, cfg.ContactInbox, logger)
	contactHandler := contact.NewHandler(logger, contactService, authorizer)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	jobHandler := jobs.NewHandler(inspector, logger)

	bootstrapHandler := app.NewBootstrapHandler(logger, cfg, categoriesService, usersService, authService)

	router := app.NewRouter(app.RouterParams{
		Logger:            logger,
		Config:            cfg,
		Tokens:            tokens,
		Metrics:           metrics,
		BootstrapHandler:  bootstrapHandler,
		AuthHandler:       authHandler,
		AccountsHandler:   accountsHandler,
		SearchHandler:     searchHandler,
		CategoriesHandler: categoriesHandler,
		SuppliersHandler:  suppliersHandler,
		ProductsHandler:   productsHandler,
		ReviewsHandler:    reviewsHandler,
		NewsletterHandler: newsletterHandler,
		ContactHandler:    contactHandler,
		JobHandler:        jobHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
