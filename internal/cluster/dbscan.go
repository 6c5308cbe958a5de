// Package cluster groups trips into popular routes with density-based
// clustering over standardized origin/destination features.
package cluster

import (
	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// Noise is the sentinel label for trips that belong to no route cluster.
// It is never a real cluster id.
const Noise = -1

// Params configures DBSCAN. Eps is the neighborhood radius in standardized
// feature space; MinPts the minimum neighborhood size for a core trip.
type Params struct {
	Eps    float64
	MinPts int
}

// DefaultParams mirrors the demo defaults.
func DefaultParams() Params {
	return Params{Eps: 0.2, MinPts: 5}
}

func (p Params) validate() error {
	if p.Eps <= 0 {
		return model.Invalidf("dbscan eps %v (must be positive)", p.Eps)
	}
	if p.MinPts <= 0 {
		return model.Invalidf("dbscan min_pts %d (must be positive)", p.MinPts)
	}
	return nil
}

// Labels runs DBSCAN over the trips' route features and returns one label
// per trip: 0-based cluster ids, or Noise. The output is deterministic for
// a given input order.
func Labels(trips []model.Trip, p Params) ([]int, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if len(trips) == 0 {
		return nil, nil
	}

	rows := routeFeatures(trips)
	standardize(rows)
	eps2 := p.Eps * p.Eps

	// 0 = unvisited, Noise, or clusterID+1 while expanding
	const unvisited = 0
	n := len(rows)
	labels := make([]int, n)
	clusterID := 0

	regionQuery := func(i int) []int {
		var nb []int
		for j := 0; j < n; j++ {
			if sqDist(rows[i], rows[j]) <= eps2 {
				nb = append(nb, j)
			}
		}
		return nb
	}

	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}
		neighbors := regionQuery(i)
		if len(neighbors) < p.MinPts {
			labels[i] = Noise
			continue
		}
		clusterID++
		labels[i] = clusterID

		// queue-based expansion; noise points reached here become border points
		for j := 0; j < len(neighbors); j++ {
			idx := neighbors[j]
			if labels[idx] == Noise {
				labels[idx] = clusterID
			}
			if labels[idx] != unvisited {
				continue
			}
			labels[idx] = clusterID
			next := regionQuery(idx)
			if len(next) >= p.MinPts {
				neighbors = append(neighbors, next...)
			}
		}
	}

	// shift to 0-based cluster ids, keep the Noise sentinel
	for i, l := range labels {
		if l > 0 {
			labels[i] = l - 1
		}
	}
	return labels, nil
}
