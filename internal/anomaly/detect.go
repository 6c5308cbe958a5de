package anomaly

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// Risk levels assigned from the raw score.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// Result describes one scored trip.
type Result struct {
	TripID    string   `json:"trip_id"`
	Score     float64  `json:"score"`
	IsAnomaly bool     `json:"is_anomaly"`
	Risk      string   `json:"risk"`
	Factors   []string `json:"factors,omitempty"`
}

// Report is the outcome of a detection pass over the whole dataset.
type Report struct {
	// Results in ascending score order (most anomalous first).
	Results   []Result `json:"results"`
	Threshold float64  `json:"threshold"`
	Anomalies int      `json:"anomalies"`
	Rate      float64  `json:"rate"`
}

func riskLevel(score float64) string {
	switch {
	case score < -0.5:
		return RiskHigh
	case score < -0.2:
		return RiskMedium
	default:
		return RiskLow
	}
}

// Detect fits a forest on the trips' features and flags roughly the
// contamination fraction with the lowest scores. contamination must be in
// (0, 0.5].
func Detect(trips []model.Trip, p Params, contamination float64) (Report, error) {
	if contamination <= 0 || contamination > 0.5 {
		return Report{}, model.Invalidf("contamination %v (must be in (0, 0.5])", contamination)
	}

	rows := tripFeatures(trips)
	forest, err := Fit(rows, p)
	if err != nil {
		return Report{}, err
	}
	scores := forest.ScoreSamples(rows)

	sortedScores := append([]float64(nil), scores...)
	sort.Float64s(sortedScores)
	threshold := stat.Quantile(contamination, stat.Empirical, sortedScores, nil)

	// p95 cutoffs for the human-readable risk factors
	durP95 := quantile95(trips, func(t model.Trip) float64 { return t.DurationMin })
	distP95 := quantile95(trips, func(t model.Trip) float64 { return t.DistanceKm })

	results := make([]Result, len(trips))
	anomalies := 0
	for i, t := range trips {
		flagged := scores[i] <= threshold
		if flagged {
			anomalies++
		}
		r := Result{
			TripID:    t.ID,
			Score:     scores[i],
			IsAnomaly: flagged,
			Risk:      riskLevel(scores[i]),
		}
		if flagged {
			r.Factors = factors(t, durP95, distP95)
		}
		results[i] = r
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score < results[j].Score })

	rate := 0.0
	if len(trips) > 0 {
		rate = float64(anomalies) / float64(len(trips))
	}
	return Report{Results: results, Threshold: threshold, Anomalies: anomalies, Rate: rate}, nil
}

func quantile95(trips []model.Trip, f func(model.Trip) float64) float64 {
	if len(trips) == 0 {
		return 0
	}
	xs := make([]float64, len(trips))
	for i, t := range trips {
		xs[i] = f(t)
	}
	sort.Float64s(xs)
	return stat.Quantile(0.95, stat.Empirical, xs, nil)
}

func factors(t model.Trip, durP95, distP95 float64) []string {
	var fs []string
	if t.DurationMin > durP95 {
		fs = append(fs, "long duration")
	}
	if t.DistanceKm > distP95 {
		fs = append(fs, "long distance")
	}
	switch speed := t.SpeedKmh(); {
	case speed < 5:
		fs = append(fs, "very slow")
	case speed > 80:
		fs = append(fs, "very fast")
	}
	return fs
}
