// Package tripgen produces the deterministic synthetic trip dataset the
// dashboard analyses. Trips cluster around four urban hotspots (airport,
// city center, business district, residential) with gaussian jitter.
package tripgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// Config controls dataset shape. The zero value is not usable; call
// DefaultConfig and override.
type Config struct {
	Trips     int
	Seed      uint64
	CenterLat float64
	CenterLon float64
	// Window is the span of time trips are spread over, ending at Now.
	Window time.Duration
	Now    time.Time
}

// DefaultConfig matches the demo dataset: 1000 trips around central Moscow
// over the trailing week.
func DefaultConfig() Config {
	return Config{
		Trips:     1000,
		Seed:      42,
		CenterLat: 55.7558,
		CenterLon: 37.6176,
		Window:    7 * 24 * time.Hour,
		Now:       time.Now().UTC(),
	}
}

type pattern struct {
	latOff, lonOff float64
	latSig, lonSig float64
}

// hotspot offsets relative to the city center, cycled per trip index
var patterns = [4]pattern{
	{0.1, 0.2, 0.02, 0.02},    // airport
	{0, 0, 0.01, 0.01},        // city center
	{-0.05, -0.1, 0.02, 0.02}, // business district
	{0.08, -0.05, 0.03, 0.03}, // residential
}

// degrees-to-km conversion used for the rough trip distance
const kmPerDegree = 111.0

type generator struct {
	rng  *rand.Rand
	norm distuv.Normal
}

func (g *generator) gauss(mu, sigma float64) float64 {
	return mu + sigma*g.norm.Rand()
}

// Generate returns cfg.Trips synthetic trips. Identical configs yield
// identical datasets.
func Generate(cfg Config) ([]model.Trip, error) {
	if cfg.Trips <= 0 {
		return nil, model.Invalidf("trip count %d (must be positive)", cfg.Trips)
	}
	if cfg.Window <= 0 {
		return nil, model.Invalidf("time window %s (must be positive)", cfg.Window)
	}
	now := cfg.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	src := rand.NewPCG(cfg.Seed, cfg.Seed)
	g := &generator{
		rng:  rand.New(src),
		norm: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}

	base := now.Add(-cfg.Window)

	trips := make([]model.Trip, 0, cfg.Trips)
	for i := 0; i < cfg.Trips; i++ {
		p := patterns[i%len(patterns)]

		startLat := g.gauss(cfg.CenterLat+p.latOff, p.latSig)
		startLon := g.gauss(cfg.CenterLon+p.lonOff, p.lonSig)
		endLat := g.gauss(startLat, 0.05)
		endLon := g.gauss(startLon, 0.05)

		dist := math.Hypot(endLat-startLat, endLon-startLon) * kmPerDegree
		dur := math.Max(5, dist*g.gauss(3, 1))

		trips = append(trips, model.Trip{
			ID:          fmt.Sprintf("T-2024-%06d", i),
			Timestamp:   base.Add(time.Duration(g.rng.Int64N(int64(cfg.Window)))),
			StartLat:    startLat,
			StartLon:    startLon,
			EndLat:      endLat,
			EndLon:      endLon,
			DurationMin: dur,
			DistanceKm:  dist,
		})
	}
	return trips, nil
}

// Endpoints flattens trips into the point sequence the spatial pipelines
// consume: one origin and one destination per trip.
func Endpoints(trips []model.Trip) []model.Point {
	pts := make([]model.Point, 0, 2*len(trips))
	for _, t := range trips {
		s, e := t.Endpoints()
		pts = append(pts, s, e)
	}
	return pts
}
