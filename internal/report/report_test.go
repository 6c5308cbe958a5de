package report

import (
	"errors"
	"testing"
	"time"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

// clusteredTrips returns three trips sharing one origin/destination pair and
// one lone trip far away.
func clusteredTrips() []model.Trip {
	at := func(h int) time.Time {
		return time.Date(2024, 6, 1, h, 30, 0, 0, time.UTC)
	}
	shared := model.Trip{
		StartLat: 55.7558, StartLon: 37.6176,
		EndLat: 55.7000, EndLon: 37.5000,
		DurationMin: 20, DistanceKm: 8,
	}
	a, b, c := shared, shared, shared
	a.ID, a.Timestamp = "a", at(8)
	b.ID, b.Timestamp = "b", at(8)
	c.ID, c.Timestamp = "c", at(17)

	lone := model.Trip{
		ID: "d", Timestamp: at(17),
		StartLat: 40.7128, StartLon: -74.0060,
		EndLat: 40.8000, EndLon: -74.2000,
		DurationMin: 40, DistanceKm: 16,
	}
	return []model.Trip{a, b, c, lone}
}

func TestBuild_Overview(t *testing.T) {
	trips := clusteredTrips()

	// k=3: the two shared-endpoint cells (3 points each) survive, the lone
	// trip's two cells (1 point each) are suppressed
	ov, err := Build(trips, 9, 3, 0.127)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if ov.TotalTrips != 4 {
		t.Fatalf("total trips %d, want 4", ov.TotalTrips)
	}
	if ov.CoveredCells != 2 {
		t.Fatalf("covered cells %d, want 2", ov.CoveredCells)
	}
	if ov.SuppressedPoints != 2 {
		t.Fatalf("suppressed points %d, want 2", ov.SuppressedPoints)
	}
	if ov.AvgDurationMin != 25 {
		t.Fatalf("avg duration %v, want 25", ov.AvgDurationMin)
	}
	if ov.AnomalyRate != 0.127 {
		t.Fatalf("anomaly rate %v, want 0.127", ov.AnomalyRate)
	}
	if ov.HourlyVolume[8] != 2 || ov.HourlyVolume[17] != 2 {
		t.Fatalf("hourly volume wrong: %v", ov.HourlyVolume)
	}
	if ov.PeakHour != 8 {
		t.Fatalf("peak hour %d, want 8 (first maximum)", ov.PeakHour)
	}
}

func TestBuild_InvalidParams(t *testing.T) {
	trips := clusteredTrips()
	if _, err := Build(trips, 99, 3, 0); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("bad res: expected ErrInvalidParameter, got %v", err)
	}
	if _, err := Build(trips, 9, 0, 0); !errors.Is(err, model.ErrInvalidParameter) {
		t.Fatalf("k=0: expected ErrInvalidParameter, got %v", err)
	}
}

func TestHeatmap_ConservationAndOrder(t *testing.T) {
	trips := clusteredTrips()
	hm, err := Heatmap(trips, 9, 1)
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}

	total := 0
	for i, c := range hm.Cells {
		total += c.Count
		if c.Lat == 0 && c.Lon == 0 {
			t.Fatalf("cell %s missing centroid", c.Cell)
		}
		if i > 0 && hm.Cells[i-1].Count < c.Count {
			t.Fatalf("cells not sorted by count desc at %d", i)
		}
	}
	if total+hm.SuppressedPoints != 2*len(trips) {
		t.Fatalf("conservation violated: %d + %d != %d",
			total, hm.SuppressedPoints, 2*len(trips))
	}
}

func TestHeatmap_SuppressesSparseCells(t *testing.T) {
	trips := clusteredTrips()
	hm, err := Heatmap(trips, 9, 3)
	if err != nil {
		t.Fatalf("Heatmap: %v", err)
	}
	if len(hm.Cells) != 2 {
		t.Fatalf("expected 2 retained cells, got %d", len(hm.Cells))
	}
	for _, c := range hm.Cells {
		if c.Count < 3 {
			t.Fatalf("retained cell %s below threshold: %d", c.Cell, c.Count)
		}
	}
	if hm.SuppressedPoints != 2 {
		t.Fatalf("suppressed %d, want 2", hm.SuppressedPoints)
	}
}
