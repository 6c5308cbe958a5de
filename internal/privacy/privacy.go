// Package privacy implements k-anonymous suppression of spatial aggregates.
//
// Cells with fewer points than the anonymity threshold are dropped entirely,
// never merged into neighbors; downstream consumers must treat suppressed
// cells as absent data.
package privacy

import (
	"github.com/yerzhan-m/geotrips/internal/bucket"
	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// Aggregate buckets every point at the given resolution and counts points
// per cell. Single pass, no side effects.
func Aggregate(points []model.Point, res int) (model.Aggregate, error) {
	agg := make(model.Aggregate, len(points)/4+1)
	for _, p := range points {
		cell, err := bucket.CellForPoint(p, res)
		if err != nil {
			return nil, err
		}
		agg[cell]++
	}
	return agg, nil
}

// FilterByMinCount retains exactly the cells whose count meets or exceeds k
// and reports the total point count of the cells it dropped. The input
// aggregate is not modified.
//
// Conservation holds for every call: retained.Total() + suppressed equals
// agg.Total().
func FilterByMinCount(agg model.Aggregate, k int) (retained model.Aggregate, suppressed int, err error) {
	if k <= 0 {
		return nil, 0, model.Invalidf("anonymity threshold %d (must be positive)", k)
	}
	retained = make(model.Aggregate, len(agg))
	for cell, count := range agg {
		if count >= k {
			retained[cell] = count
			continue
		}
		suppressed += count
	}
	return retained, suppressed, nil
}
