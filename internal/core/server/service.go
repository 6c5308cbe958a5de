package server

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/yerzhan-m/geotrips/internal/anomaly"
	"github.com/yerzhan-m/geotrips/internal/cache"
	"github.com/yerzhan-m/geotrips/internal/cluster"
	"github.com/yerzhan-m/geotrips/internal/core/config"
	"github.com/yerzhan-m/geotrips/internal/core/model"
	"github.com/yerzhan-m/geotrips/internal/core/observability"
	"github.com/yerzhan-m/geotrips/internal/core/router"
	"github.com/yerzhan-m/geotrips/internal/report"
	"github.com/yerzhan-m/geotrips/internal/tripgen"
)

// Service owns the in-memory dataset and runs one pipeline per request.
// The dataset is immutable after New, so pipelines are pure functions of
// their parameters and results can be memoized.
type Service struct {
	cfg     config.Config
	log     *slog.Logger
	trips   []model.Trip
	results *cache.Results
}

func New(cfg config.Config, log *slog.Logger) (*Service, error) {
	trips, err := tripgen.Generate(tripgen.Config{
		Trips:     cfg.TripCount,
		Seed:      cfg.Seed,
		CenterLat: cfg.CenterLat,
		CenterLon: cfg.CenterLon,
		Window:    cfg.Window,
	})
	if err != nil {
		return nil, fmt.Errorf("generate dataset: %w", err)
	}
	results, err := cache.New(cfg.ResultCacheSize)
	if err != nil {
		return nil, err
	}
	log.Info("dataset ready", "trips", len(trips), "seed", cfg.Seed)
	return &Service{cfg: cfg, log: log, trips: trips, results: results}, nil
}

// Trips exposes the dataset read-only (chart handlers need raw rows).
func (s *Service) Trips() []model.Trip { return s.trips }

func (s *Service) forestParams() anomaly.Params {
	return anomaly.Params{
		Trees:      s.cfg.ForestTrees,
		SampleSize: s.cfg.ForestSample,
		Seed:       s.cfg.Seed,
	}
}

func timed[T any](pipeline string, f func() (T, error)) (T, error) {
	start := time.Now()
	v, err := f()
	observability.ObservePipeline(pipeline, time.Since(start).Seconds())
	return v, err
}

// Overview recomputes the headline stats for the given spatial params. The
// anomaly rate uses the configured default contamination.
func (s *Service) Overview(p router.SpatialParams) (report.Overview, error) {
	key := cache.Key("overview", strconv.Itoa(p.Res), strconv.Itoa(p.K))
	return cache.GetOr(s.results, key, func() (report.Overview, error) {
		return timed("overview", func() (report.Overview, error) {
			rep, err := anomaly.Detect(s.trips, s.forestParams(), s.cfg.Contamination)
			if err != nil {
				return report.Overview{}, err
			}
			return report.Build(s.trips, p.Res, p.K, rep.Rate)
		})
	})
}

// Heatmap recomputes the privacy-filtered density surface.
func (s *Service) Heatmap(p router.SpatialParams) (report.HeatmapResult, error) {
	key := cache.Key("heatmap", strconv.Itoa(p.Res), strconv.Itoa(p.K))
	return cache.GetOr(s.results, key, func() (report.HeatmapResult, error) {
		return timed("heatmap", func() (report.HeatmapResult, error) {
			hm, err := report.Heatmap(s.trips, p.Res, p.K)
			if err != nil {
				return report.HeatmapResult{}, err
			}
			observability.AddSuppressedPoints(hm.SuppressedPoints)
			return hm, nil
		})
	})
}

// RoutesResult is the clustering endpoint payload.
type RoutesResult struct {
	Eps      float64           `json:"eps"`
	MinPts   int               `json:"min_pts"`
	Clusters []cluster.Summary `json:"clusters"`
	Noise    int               `json:"noise"`
}

// Routes recomputes route clusters, trimmed to the requested limit.
func (s *Service) Routes(p router.RouteParams) (RoutesResult, error) {
	key := cache.Key("routes",
		strconv.FormatFloat(p.Eps, 'g', -1, 64),
		strconv.Itoa(p.MinPts),
		strconv.Itoa(p.Limit),
	)
	return cache.GetOr(s.results, key, func() (RoutesResult, error) {
		return timed("routes", func() (RoutesResult, error) {
			labels, err := cluster.Labels(s.trips, cluster.Params{Eps: p.Eps, MinPts: p.MinPts})
			if err != nil {
				return RoutesResult{}, err
			}
			noise := 0
			for _, l := range labels {
				if l == cluster.Noise {
					noise++
				}
			}
			sums := cluster.Summaries(s.trips, labels)
			if len(sums) > p.Limit {
				sums = sums[:p.Limit]
			}
			return RoutesResult{Eps: p.Eps, MinPts: p.MinPts, Clusters: sums, Noise: noise}, nil
		})
	})
}

// Anomalies recomputes the full anomaly report for the given contamination.
func (s *Service) Anomalies(p router.AnomalyParams) (anomaly.Report, error) {
	key := cache.Key("anomalies", strconv.FormatFloat(p.Contamination, 'g', -1, 64))
	return cache.GetOr(s.results, key, func() (anomaly.Report, error) {
		return timed("anomalies", func() (anomaly.Report, error) {
			return anomaly.Detect(s.trips, s.forestParams(), p.Contamination)
		})
	})
}
