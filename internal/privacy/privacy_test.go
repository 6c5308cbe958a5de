package privacy

import (
	"errors"
	"testing"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

func TestFilterByMinCount_RetainsAboveThreshold(t *testing.T) {
	agg := model.Aggregate{"A": 10, "B": 3, "C": 5}

	retained, suppressed, err := FilterByMinCount(agg, 5)
	if err != nil {
		t.Fatalf("FilterByMinCount: %v", err)
	}
	if len(retained) != 2 || retained["A"] != 10 || retained["C"] != 5 {
		t.Fatalf("expected {A:10,C:5}, got %v", retained)
	}
	if suppressed != 3 {
		t.Fatalf("expected suppressed count 3, got %d", suppressed)
	}
}

func TestFilterByMinCount_Conservation(t *testing.T) {
	agg := model.Aggregate{"a": 1, "b": 2, "c": 7, "d": 12, "e": 4}
	total := agg.Total()

	for k := 1; k <= 13; k++ {
		retained, suppressed, err := FilterByMinCount(agg, k)
		if err != nil {
			t.Fatalf("k=%d: %v", k, err)
		}
		if retained.Total()+suppressed != total {
			t.Fatalf("k=%d: conservation violated: %d + %d != %d",
				k, retained.Total(), suppressed, total)
		}
		for cell, n := range retained {
			if n < k {
				t.Fatalf("k=%d: retained cell %s has count %d", k, cell, n)
			}
		}
	}
}

func TestFilterByMinCount_NonPositiveThreshold(t *testing.T) {
	agg := model.Aggregate{"A": 10}
	for _, k := range []int{0, -1, -100} {
		if _, _, err := FilterByMinCount(agg, k); !errors.Is(err, model.ErrInvalidParameter) {
			t.Fatalf("k=%d: expected ErrInvalidParameter, got %v", k, err)
		}
	}
}

func TestFilterByMinCount_EmptyAggregate(t *testing.T) {
	retained, suppressed, err := FilterByMinCount(model.Aggregate{}, 5)
	if err != nil {
		t.Fatalf("FilterByMinCount: %v", err)
	}
	if len(retained) != 0 || suppressed != 0 {
		t.Fatalf("expected empty result, got %v / %d", retained, suppressed)
	}
}

func TestFilterByMinCount_InputUnmodified(t *testing.T) {
	agg := model.Aggregate{"A": 10, "B": 3}
	if _, _, err := FilterByMinCount(agg, 5); err != nil {
		t.Fatalf("FilterByMinCount: %v", err)
	}
	if agg["A"] != 10 || agg["B"] != 3 || len(agg) != 2 {
		t.Fatalf("input aggregate was modified: %v", agg)
	}
}

func TestAggregate_CountsPerCell(t *testing.T) {
	pts := []model.Point{
		{Lat: 55.7558, Lon: 37.6176},
		{Lat: 55.7558, Lon: 37.6176},
		{Lat: 55.7558, Lon: 37.6176},
		{Lat: 40.7128, Lon: -74.0060}, // far away, different cell
	}
	agg, err := Aggregate(pts, 9)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if agg.Total() != len(pts) {
		t.Fatalf("total %d != %d points", agg.Total(), len(pts))
	}
	if len(agg) != 2 {
		t.Fatalf("expected 2 distinct cells, got %d (%v)", len(agg), agg)
	}
	found3 := false
	for _, n := range agg {
		if n == 3 {
			found3 = true
		}
	}
	if !found3 {
		t.Fatalf("expected one cell with count 3, got %v", agg)
	}
}

func TestAggregate_InvalidResolution(t *testing.T) {
	pts := []model.Point{{Lat: 55.7558, Lon: 37.6176}}
	if _, err := Aggregate(pts, 42); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}
