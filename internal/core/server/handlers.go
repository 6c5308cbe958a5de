package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yerzhan-m/geotrips/internal/charts"
	"github.com/yerzhan-m/geotrips/internal/core/model"
	"github.com/yerzhan-m/geotrips/internal/core/observability"
	"github.com/yerzhan-m/geotrips/internal/core/router"
)

type statusWriter struct {
	http.ResponseWriter
	code int
}

func (w *statusWriter) WriteHeader(code int) {
	w.code = code
	w.ResponseWriter.WriteHeader(code)
}

// instrument wraps a handler with per-route metrics.
func instrument(route string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, code: http.StatusOK}
		h(sw, r)
		observability.ObserveHTTP(r.Method, route, sw.code, time.Since(start).Seconds())
	}
}

func writeError(log *slog.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrInvalidParameter) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	log.Error("pipeline failed", "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

func writeJSON(log *slog.Logger, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("encode response", "err", err)
	}
}

func handleOverview(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseSpatial(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		ov, err := svc.Overview(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		writeJSON(log, w, ov)
	}
}

func handleHeatmap(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseSpatial(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		hm, err := svc.Heatmap(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		writeJSON(log, w, hm)
	}
}

func handleRoutes(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseRoutes(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		res, err := svc.Routes(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		writeJSON(log, w, res)
	}
}

func handleAnomalies(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseAnomalies(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		rep, err := svc.Anomalies(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		if len(rep.Results) > p.Limit {
			rep.Results = rep.Results[:p.Limit]
		}
		writeJSON(log, w, rep)
	}
}

func chartHourly(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseSpatial(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		ov, err := svc.Overview(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := charts.RenderHourly(w, ov); err != nil {
			log.Error("chart render", "err", err)
		}
	}
}

func chartHeatmap(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseSpatial(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		hm, err := svc.Heatmap(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := charts.RenderHeatmap(w, hm); err != nil {
			log.Error("chart render", "err", err)
		}
	}
}

func chartRoutes(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseRoutes(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		res, err := svc.Routes(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := charts.RenderRoutes(w, res.Clusters); err != nil {
			log.Error("chart render", "err", err)
		}
	}
}

func chartAnomalies(log *slog.Logger, svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := router.ParseAnomalies(r, svc.cfg)
		if err != nil {
			writeError(log, w, err)
			return
		}
		rep, err := svc.Anomalies(p)
		if err != nil {
			writeError(log, w, err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := charts.RenderAnomalies(w, svc.Trips(), rep); err != nil {
			log.Error("chart render", "err", err)
		}
	}
}
