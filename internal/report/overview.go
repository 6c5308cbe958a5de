// Package report computes the dashboard's headline statistics.
package report

import (
	"github.com/yerzhan-m/geotrips/internal/core/model"
	"github.com/yerzhan-m/geotrips/internal/privacy"
)

// Overview is the landing-page summary of the dataset.
type Overview struct {
	TotalTrips       int     `json:"total_trips"`
	CoveredCells     int     `json:"covered_cells"`
	SuppressedPoints int     `json:"suppressed_points"`
	AvgDurationMin   float64 `json:"avg_duration_min"`
	AnomalyRate      float64 `json:"anomaly_rate"`
	// HourlyVolume[h] is the number of trips starting in hour h (UTC).
	HourlyVolume [24]int `json:"hourly_volume"`
	PeakHour     int     `json:"peak_hour"`
}

// Build aggregates trip endpoints at the given resolution, applies
// k-anonymous suppression and derives the summary figures. anomalyRate is
// computed by the caller's detection pass and carried through.
func Build(trips []model.Trip, res, k int, anomalyRate float64) (Overview, error) {
	agg, err := privacy.Aggregate(tripEndpoints(trips), res)
	if err != nil {
		return Overview{}, err
	}
	retained, suppressed, err := privacy.FilterByMinCount(agg, k)
	if err != nil {
		return Overview{}, err
	}

	ov := Overview{
		TotalTrips:       len(trips),
		CoveredCells:     len(retained),
		SuppressedPoints: suppressed,
		AnomalyRate:      anomalyRate,
	}

	var durSum float64
	for _, t := range trips {
		durSum += t.DurationMin
		ov.HourlyVolume[t.Timestamp.UTC().Hour()]++
	}
	if len(trips) > 0 {
		ov.AvgDurationMin = durSum / float64(len(trips))
	}
	for h, n := range ov.HourlyVolume {
		if n > ov.HourlyVolume[ov.PeakHour] {
			ov.PeakHour = h
		}
	}
	return ov, nil
}

func tripEndpoints(trips []model.Trip) []model.Point {
	pts := make([]model.Point, 0, 2*len(trips))
	for _, t := range trips {
		s, e := t.Endpoints()
		pts = append(pts, s, e)
	}
	return pts
}
