package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/buildtrack/buildtrack/internal/app"
	"github.com/buildtrack/buildtrack/internal/auth"
	"github.com/buildtrack/buildtrack/internal/backend"
	"github.com/buildtrack/buildtrack/internal/content"
	"github.com/buildtrack/buildtrack/internal/export"
	"github.com/buildtrack/buildtrack/internal/observability"
	"github.com/buildtrack/buildtrack/internal/platform/cache"
	"github.com/buildtrack/buildtrack/internal/rbac"
	"github.com/buildtrack/buildtrack/internal/sectiondata"
	"github.com/buildtrack/buildtrack/internal/shared"
	"github.com/buildtrack/buildtrack/internal/shell"
	"github.com/buildtrack/buildtrack/internal/view"
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

	sessionManager := shared.NewSessionManager(redisClient, "buildtrack_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	mock := backend.NewMock(backend.MockOptions{
		LatencyScale: cfg.MockLatencyScale,
		FailureRate:  cfg.MockFailureRate,
		Logger:       logger,
	})
	client := sectiondata.NewClient(mock, logger, metrics)
	shells := shell.NewRegistry(client, content.NewRouter(), metrics)
	defer shells.Close()

	rbacService := rbac.NewService()
	rbacMiddleware := rbac.Middleware{Service: rbacService, Logger: logger}

	authService := auth.NewService(rbacService, cfg.LoginDelay)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager, shells)

	shellHandler := shell.NewHandler(logger, shells, client, templates, csrfManager, shell.Options{
		RenderWait:      cfg.ViewRenderWait,
		SkeletonRefresh: cfg.SkeletonRefresh,
		Exportable:      export.Supports,
	})
	exportHandler := export.NewHandler(logger, shellHandler)
	permissionsHandler := rbac.NewPermissionsHandler(logger, rbacService, rbacMiddleware)

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		AuthHandler:        authHandler,
		ShellHandler:       shellHandler,
		ExportHandler:      exportHandler,
		PermissionsHandler: permissionsHandler,
		RBACMiddleware:     rbacMiddleware,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go sweepShells(ctx, logger, shells, cfg.ShellIdleTTL)

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

// sweepShells drops shells that saw no request for idle until ctx ends.
func sweepShells(ctx context.Context, logger *slog.Logger, shells *shell.Registry, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := shells.Sweep(now, idle); n > 0 {
				logger.Info("swept idle shells", slog.Int("count", n), slog.Int("remaining", shells.Len()))
			}
		}
	}
}
