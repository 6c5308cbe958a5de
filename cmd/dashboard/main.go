package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/yerzhan-m/geotrips/internal/core/config"
	"github.com/yerzhan-m/geotrips/internal/core/observability"
	"github.com/yerzhan-m/geotrips/internal/core/server"
	"github.com/yerzhan-m/geotrips/internal/logger"
	"github.com/yerzhan-m/geotrips/internal/metrics"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   strings.ToLower(os.Getenv("LOG_CONSOLE")) == "true",
		Component: "dashboard",
	}, os.Stdout)
	appLog := logger.NewSlog(&zl)

	observability.ExposeBuildInfo(Version)
	appLog.Info("starting dashboard",
		"addr", cfg.Addr,
		"version", Version,
		"trips", cfg.TripCount,
		"h3_res", cfg.H3Res,
		"k_anon", cfg.KAnon)

	svc, err := server.New(cfg, appLog)
	if err != nil {
		appLog.Error("service setup failed", "err", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MetricsEnabled {
		addr := cfg.MetricsAddr
		path := cfg.MetricsPath

		p := metrics.Init(metrics.Config{
			Enabled: true,
			Addr:    addr,
			Path:    path,
			Build: metrics.BuildInfo{
				Version:   Version,
				Revision:  os.Getenv("BUILD_REVISION"),
				BuildDate: os.Getenv("BUILD_DATE"),
			},
		})

		mux := http.NewServeMux()
		mux.Handle(path, p.Handler())
		msrv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			appLog.Info("metrics listen", "addr", addr, "path", path)
			if err := msrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				appLog.Error("metrics listener failed", "err", err)
			}
		}()
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = msrv.Shutdown(shutdownCtx)
		}()
	}

	if err := server.Run(ctx, cfg, appLog, svc); err != nil {
		appLog.Error("server failed", "err", err)
		return 1
	}
	return 0
}
