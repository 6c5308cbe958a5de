package cluster

import (
	"gonum.org/v1/gonum/stat"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

const routeDims = 4

// routeFeatures builds the 4-d feature matrix (start lat/lon, end lat/lon)
// used for route clustering, one row per trip.
func routeFeatures(trips []model.Trip) [][routeDims]float64 {
	rows := make([][routeDims]float64, len(trips))
	for i, t := range trips {
		rows[i] = [routeDims]float64{t.StartLat, t.StartLon, t.EndLat, t.EndLon}
	}
	return rows
}

// standardize z-scores each column in place. Constant columns are left
// centered but unscaled so they cannot blow up distances.
func standardize(rows [][routeDims]float64) {
	if len(rows) == 0 {
		return
	}
	col := make([]float64, len(rows))
	for d := 0; d < routeDims; d++ {
		for i := range rows {
			col[i] = rows[i][d]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		for i := range rows {
			rows[i][d] = (rows[i][d] - mean) / std
		}
	}
}

func sqDist(a, b [routeDims]float64) float64 {
	var s float64
	for d := 0; d < routeDims; d++ {
		diff := a[d] - b[d]
		s += diff * diff
	}
	return s
}
