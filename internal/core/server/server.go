// Package server assembles the dashboard HTTP surface.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yerzhan-m/geotrips/internal/core/config"
	"github.com/yerzhan-m/geotrips/internal/core/middleware"
	"github.com/yerzhan-m/geotrips/internal/health"
)

// Routes builds the chi router for the dashboard service.
func Routes(logger *slog.Logger, svc *Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recover())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS())

	r.Get("/healthz", health.Liveness())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	r.Get("/api/overview", instrument("/api/overview", handleOverview(logger, svc)))
	r.Get("/api/heatmap", instrument("/api/heatmap", handleHeatmap(logger, svc)))
	r.Get("/api/routes", instrument("/api/routes", handleRoutes(logger, svc)))
	r.Get("/api/anomalies", instrument("/api/anomalies", handleAnomalies(logger, svc)))

	r.Get("/charts/hours", instrument("/charts/hours", chartHourly(logger, svc)))
	r.Get("/charts/heatmap", instrument("/charts/heatmap", chartHeatmap(logger, svc)))
	r.Get("/charts/routes", instrument("/charts/routes", chartRoutes(logger, svc)))
	r.Get("/charts/anomalies", instrument("/charts/anomalies", chartAnomalies(logger, svc)))

	return r
}

// Run starts serving and blocks until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, cfg config.Config, logger *slog.Logger, svc *Service) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           Routes(logger, svc),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http listen", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		return err
	}
}
