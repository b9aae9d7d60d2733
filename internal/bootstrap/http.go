package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pagekeep/digest-api/config"
	httpx "github.com/pagekeep/digest-api/internal/http"
)

const shutdownTimeout = 30 * time.Second

// StartHTTPServer builds the router and starts the HTTP server.
// Returns the server instance for graceful shutdown.
func StartHTTPServer(cfg *config.AppConfig, services *ServiceContainer, logger *slog.Logger) *http.Server {
	handler := httpx.NewRouter(httpx.RouterServices{
		Digest:         services.Digest,
		Feedback:       services.Feedback,
		Auth:           services.Auth,
		Health:         services.Health,
		AuthCookieName: cfg.Auth.CookieName,
		Metrics:        services.Metrics,
		Logger:         logger,
	})

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
		}
	}()

	return server
}

// RunWithShutdown blocks until a shutdown signal is received, then drains
// the HTTP server and closes service infrastructure.
func RunWithShutdown(server *http.Server, services *ServiceContainer, logger *slog.Logger) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	sig := <-quit
	logger.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var shutdownErr error
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		shutdownErr = err
	}

	services.Close(logger)

	return shutdownErr
}
