package report

import (
	"sort"

	"github.com/yerzhan-m/geotrips/internal/bucket"
	"github.com/yerzhan-m/geotrips/internal/core/model"
	"github.com/yerzhan-m/geotrips/internal/privacy"
)

// HeatCell is one retained aggregate cell with its centroid, positioned for
// map and chart consumers.
type HeatCell struct {
	Cell  string  `json:"cell"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Count int     `json:"count"`
}

// HeatmapResult is the privacy-filtered density surface.
type HeatmapResult struct {
	Res              int        `json:"res"`
	K                int        `json:"k"`
	Cells            []HeatCell `json:"cells"`
	SuppressedPoints int        `json:"suppressed_points"`
}

// Heatmap buckets all trip endpoints, suppresses cells below k and resolves
// centroids for the survivors. Cells are sorted by count descending (cell id
// ascending on ties) so the output is deterministic.
func Heatmap(trips []model.Trip, res, k int) (HeatmapResult, error) {
	agg, err := privacy.Aggregate(tripEndpoints(trips), res)
	if err != nil {
		return HeatmapResult{}, err
	}
	retained, suppressed, err := privacy.FilterByMinCount(agg, k)
	if err != nil {
		return HeatmapResult{}, err
	}

	cells := make([]HeatCell, 0, len(retained))
	for id, count := range retained {
		lat, lon, err := bucket.Centroid(id)
		if err != nil {
			return HeatmapResult{}, err
		}
		cells = append(cells, HeatCell{Cell: id, Lat: lat, Lon: lon, Count: count})
	}
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Count != cells[j].Count {
			return cells[i].Count > cells[j].Count
		}
		return cells[i].Cell < cells[j].Cell
	})

	return HeatmapResult{Res: res, K: k, Cells: cells, SuppressedPoints: suppressed}, nil
}
