package server

import (
	"context"
	"fmt"

	"SentiTrade/internal/usecase"
	"SentiTrade/pkg/cache"
	"SentiTrade/pkg/config"
	xhttp "SentiTrade/pkg/http"
	applogger "SentiTrade/pkg/logger"
)

// App encapsulates the dashboard application lifecycle.
type App struct {
	cfg        *config.Config
	httpServer *xhttp.Server
	dashboard  *usecase.Dashboard
	cache      cache.Service
	log        *applogger.Logger
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	httpServer *xhttp.Server,
	dashboard *usecase.Dashboard,
	c cache.Service,
	log *applogger.Logger,
) *App {
	if log == nil {
		log = applogger.Nop()
	}
	return &App{
		cfg:        cfg,
		httpServer: httpServer,
		dashboard:  dashboard,
		cache:      c,
		log:        log,
	}
}

// Run loads the dataset, starts the HTTP server and blocks until ctx is done
// or the server fails to listen.
func (a *App) Run(ctx context.Context) error {
	opts, err := a.dashboard.Options(ctx)
	if err != nil {
		a.closeCache()
		return fmt.Errorf("dashboard: %w", err)
	}
	a.log.Info("dataset ready",
		applogger.Int("rows", opts.Rows),
		applogger.String("from", opts.MinDate.String()),
		applogger.String("to", opts.MaxDate.String()),
	)

	if err := a.httpServer.Start(); err != nil {
		a.log.Error("http server start error", applogger.Error(err))
		a.closeCache()
		return err
	}
	a.log.Info("dashboard started",
		applogger.String("host", a.cfg.Server.Host),
		applogger.Int("port", a.cfg.Server.Port),
	)

	var runErr error
	select {
	case <-ctx.Done():
		a.log.Info("shutdown signal received")
	case runErr = <-a.httpServer.Errors():
	}
	if err := a.shutdown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// shutdown gracefully stops all services.
func (a *App) shutdown() error {
	a.log.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer cancel()

	var stopErr error
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.log.Error("http shutdown error", applogger.Error(err))
		stopErr = err
	}
	a.closeCache()

	a.log.Info("shutdown complete")
	return stopErr
}

func (a *App) closeCache() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		a.log.Warn("cache close error", applogger.Error(err))
	}
}
