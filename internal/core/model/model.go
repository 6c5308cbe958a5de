// Package model defines core domain types shared across the service.
package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidParameter is the single error kind raised by the analytics core:
// a resolution outside the supported range, a non-positive anonymity
// threshold, or malformed clustering/anomaly parameters. Callers match it
// with errors.Is.
var ErrInvalidParameter = errors.New("invalid parameter")

// Invalidf wraps ErrInvalidParameter with a formatted description.
func Invalidf(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidParameter)...)
}

// Point is a read-only coordinate sample owned by the caller.
type Point struct {
	Lat    float64
	Lon    float64
	TripID string
	At     time.Time
}

// Trip is one synthetic ride: origin, destination and derived measures.
type Trip struct {
	ID          string    `json:"trip_id"`
	Timestamp   time.Time `json:"timestamp"`
	StartLat    float64   `json:"start_lat"`
	StartLon    float64   `json:"start_lon"`
	EndLat      float64   `json:"end_lat"`
	EndLon      float64   `json:"end_lon"`
	DurationMin float64   `json:"duration_min"`
	DistanceKm  float64   `json:"distance_km"`
}

// Endpoints returns the origin and destination as points, both tagged
// with the trip ID and timestamp.
func (t Trip) Endpoints() (start, end Point) {
	start = Point{Lat: t.StartLat, Lon: t.StartLon, TripID: t.ID, At: t.Timestamp}
	end = Point{Lat: t.EndLat, Lon: t.EndLon, TripID: t.ID, At: t.Timestamp}
	return start, end
}

// SpeedKmh is the average speed over the trip, 0 for zero-duration trips.
func (t Trip) SpeedKmh() float64 {
	if t.DurationMin <= 0 {
		return 0
	}
	return t.DistanceKm / (t.DurationMin / 60)
}

// Aggregate maps an H3 cell id to the number of points assigned to it.
// Transient: recomputed per request, never updated in place.
type Aggregate map[string]int

// Total is the sum of all per-cell counts.
func (a Aggregate) Total() int {
	n := 0
	for _, c := range a {
		n += c
	}
	return n
}
