package anomaly

import (
	"github.com/yerzhan-m/geotrips/internal/core/model"
)

const featureDims = 4

// tripFeatures builds the per-trip feature matrix the forest isolates over:
// duration, distance, average speed and distance-per-minute efficiency.
func tripFeatures(trips []model.Trip) [][featureDims]float64 {
	rows := make([][featureDims]float64, len(trips))
	for i, t := range trips {
		eff := 0.0
		if t.DurationMin > 0 {
			eff = t.DistanceKm / t.DurationMin
		}
		rows[i] = [featureDims]float64{t.DurationMin, t.DistanceKm, t.SpeedKmh(), eff}
	}
	return rows
}
