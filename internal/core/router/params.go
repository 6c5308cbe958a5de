// Package router validates dashboard query parameters before the pipelines
// run.
package router

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/yerzhan-m/geotrips/internal/core/config"
	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// SpatialParams are shared by the overview and heatmap endpoints.
type SpatialParams struct {
	Res int
	K   int
}

// RouteParams configure the route clustering endpoint.
type RouteParams struct {
	Eps    float64
	MinPts int
	Limit  int
}

// AnomalyParams configure the anomaly endpoint.
type AnomalyParams struct {
	Contamination float64
	Limit         int
}

// ParseSpatial reads res and k, falling back to configured defaults.
// Resolution must stay within the service's supported range; the anonymity
// threshold must be positive.
func ParseSpatial(r *http.Request, cfg config.Config) (SpatialParams, error) {
	p := SpatialParams{Res: cfg.H3Res, K: cfg.KAnon}

	if raw := queryVal(r, "res"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return SpatialParams{}, model.Invalidf("res %q", raw)
		}
		p.Res = n
	}
	if p.Res < cfg.H3ResMin || p.Res > cfg.H3ResMax {
		return SpatialParams{}, model.Invalidf("res %d (supported range %d..%d)", p.Res, cfg.H3ResMin, cfg.H3ResMax)
	}

	if raw := queryVal(r, "k"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return SpatialParams{}, model.Invalidf("k %q", raw)
		}
		p.K = n
	}
	if p.K <= 0 {
		return SpatialParams{}, model.Invalidf("k %d (must be positive)", p.K)
	}
	return p, nil
}

// ParseRoutes reads eps, min_pts and limit.
func ParseRoutes(r *http.Request, cfg config.Config) (RouteParams, error) {
	p := RouteParams{Eps: cfg.DBSCANEps, MinPts: cfg.DBSCANMinPts, Limit: 10}

	if raw := queryVal(r, "eps"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return RouteParams{}, model.Invalidf("eps %q", raw)
		}
		p.Eps = f
	}
	if p.Eps <= 0 {
		return RouteParams{}, model.Invalidf("eps %v (must be positive)", p.Eps)
	}

	if raw := queryVal(r, "min_pts"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return RouteParams{}, model.Invalidf("min_pts %q", raw)
		}
		p.MinPts = n
	}
	if p.MinPts <= 0 {
		return RouteParams{}, model.Invalidf("min_pts %d (must be positive)", p.MinPts)
	}

	var err error
	if p.Limit, err = parseLimit(r, p.Limit); err != nil {
		return RouteParams{}, err
	}
	return p, nil
}

// ParseAnomalies reads contamination and limit.
func ParseAnomalies(r *http.Request, cfg config.Config) (AnomalyParams, error) {
	p := AnomalyParams{Contamination: cfg.Contamination, Limit: 10}

	if raw := queryVal(r, "contamination"); raw != "" {
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return AnomalyParams{}, model.Invalidf("contamination %q", raw)
		}
		p.Contamination = f
	}
	if p.Contamination <= 0 || p.Contamination > 0.5 {
		return AnomalyParams{}, model.Invalidf("contamination %v (must be in (0, 0.5])", p.Contamination)
	}

	var err error
	if p.Limit, err = parseLimit(r, p.Limit); err != nil {
		return AnomalyParams{}, err
	}
	return p, nil
}

func parseLimit(r *http.Request, def int) (int, error) {
	raw := queryVal(r, "limit")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > 1000 {
		return 0, model.Invalidf("limit %q (must be 1..1000)", raw)
	}
	return n, nil
}

func queryVal(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
