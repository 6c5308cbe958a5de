package cluster

import (
	"sort"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// Summary describes one route cluster.
type Summary struct {
	Cluster        int     `json:"cluster"`
	Trips          int     `json:"trips"`
	AvgDurationMin float64 `json:"avg_duration_min"`
	AvgDistanceKm  float64 `json:"avg_distance_km"`
}

// Efficiency is mean distance over mean duration, the demo's route score.
func (s Summary) Efficiency() float64 {
	if s.AvgDurationMin <= 0 {
		return 0
	}
	return s.AvgDistanceKm / s.AvgDurationMin
}

// Summaries aggregates trips by cluster label, excluding noise, sorted by
// trip count descending (cluster id ascending on ties, for determinism).
// len(labels) must equal len(trips).
func Summaries(trips []model.Trip, labels []int) []Summary {
	type acc struct {
		n        int
		duration float64
		distance float64
	}
	byCluster := map[int]*acc{}
	for i, l := range labels {
		if l == Noise || i >= len(trips) {
			continue
		}
		a := byCluster[l]
		if a == nil {
			a = &acc{}
			byCluster[l] = a
		}
		a.n++
		a.duration += trips[i].DurationMin
		a.distance += trips[i].DistanceKm
	}

	out := make([]Summary, 0, len(byCluster))
	for id, a := range byCluster {
		out = append(out, Summary{
			Cluster:        id,
			Trips:          a.n,
			AvgDurationMin: a.duration / float64(a.n),
			AvgDistanceKm:  a.distance / float64(a.n),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Trips != out[j].Trips {
			return out[i].Trips > out[j].Trips
		}
		return out[i].Cluster < out[j].Cluster
	})
	return out
}
