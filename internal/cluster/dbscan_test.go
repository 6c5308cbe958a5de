package cluster

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// routeTrip builds a trip with a tiny per-index jitter so points are dense
// but not identical.
func routeTrip(id int, sLat, sLon, eLat, eLon float64) model.Trip {
	j := float64(id%7) * 1e-4
	return model.Trip{
		ID:          fmt.Sprintf("T-%04d", id),
		StartLat:    sLat + j,
		StartLon:    sLon + j,
		EndLat:      eLat + j,
		EndLon:      eLon + j,
		DurationMin: 20,
		DistanceKm:  8,
	}
}

// two dense route groups plus one isolated trip
func twoRouteDataset() []model.Trip {
	var trips []model.Trip
	for i := 0; i < 6; i++ {
		trips = append(trips, routeTrip(i, 55.75, 37.61, 55.80, 37.70))
	}
	for i := 6; i < 12; i++ {
		trips = append(trips, routeTrip(i, 55.60, 37.40, 55.55, 37.30))
	}
	trips = append(trips, routeTrip(99, 56.90, 39.00, 57.10, 39.50))
	return trips
}

func TestLabels_FindsTwoClustersAndNoise(t *testing.T) {
	trips := twoRouteDataset()
	labels, err := Labels(trips, Params{Eps: 0.3, MinPts: 4})
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	if len(labels) != len(trips) {
		t.Fatalf("expected %d labels, got %d", len(trips), len(labels))
	}

	if labels[len(labels)-1] != Noise {
		t.Fatalf("expected the isolated trip to be noise, got %d", labels[len(labels)-1])
	}

	first, second := labels[0], labels[6]
	if first == Noise || second == Noise {
		t.Fatalf("dense groups must not be noise (got %d, %d)", first, second)
	}
	if first == second {
		t.Fatalf("expected two distinct clusters, both got %d", first)
	}
	for i := 0; i < 6; i++ {
		if labels[i] != first {
			t.Fatalf("trip %d: expected cluster %d, got %d", i, first, labels[i])
		}
	}
	for i := 6; i < 12; i++ {
		if labels[i] != second {
			t.Fatalf("trip %d: expected cluster %d, got %d", i, second, labels[i])
		}
	}
}

func TestLabels_Deterministic(t *testing.T) {
	trips := twoRouteDataset()
	a, err := Labels(trips, Params{Eps: 0.3, MinPts: 4})
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	b, err := Labels(trips, Params{Eps: 0.3, MinPts: 4})
	if err != nil {
		t.Fatalf("Labels repeat: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("expected identical labels for repeated runs")
	}
}

func TestLabels_EmptyInput(t *testing.T) {
	labels, err := Labels(nil, DefaultParams())
	if err != nil {
		t.Fatalf("Labels: %v", err)
	}
	if labels != nil {
		t.Fatalf("expected nil labels for empty input, got %v", labels)
	}
}

func TestLabels_InvalidParams(t *testing.T) {
	trips := twoRouteDataset()
	if _, err := Labels(trips, Params{Eps: 0, MinPts: 4}); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("eps 0: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := Labels(trips, Params{Eps: 0.3, MinPts: 0}); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("minPts 0: expected ErrInvalidParameter, got %v", err)
	}
}

func TestSummaries_ExcludesNoiseAndSorts(t *testing.T) {
	trips := []model.Trip{
		{ID: "a", DurationMin: 10, DistanceKm: 5},
		{ID: "b", DurationMin: 20, DistanceKm: 10},
		{ID: "c", DurationMin: 30, DistanceKm: 15},
		{ID: "d", DurationMin: 40, DistanceKm: 20},
		{ID: "e", DurationMin: 50, DistanceKm: 25},
	}
	labels := []int{0, 0, 1, 1, Noise}

	// make cluster 1 busier to check ordering
	trips = append(trips, model.Trip{ID: "f", DurationMin: 60, DistanceKm: 30})
	labels = append(labels, 1)

	sums := Summaries(trips, labels)
	if len(sums) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(sums))
	}
	if sums[0].Cluster != 1 || sums[0].Trips != 3 {
		t.Fatalf("expected cluster 1 with 3 trips first, got %+v", sums[0])
	}
	if sums[1].Cluster != 0 || sums[1].Trips != 2 {
		t.Fatalf("expected cluster 0 with 2 trips second, got %+v", sums[1])
	}
	if sums[1].AvgDurationMin != 15 || sums[1].AvgDistanceKm != 7.5 {
		t.Fatalf("cluster 0 averages wrong: %+v", sums[1])
	}
	for _, s := range sums {
		if s.Cluster == Noise {
			t.Fatalf("noise leaked into summaries: %+v", s)
		}
	}
}
