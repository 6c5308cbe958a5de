// Package bucket maps geographic coordinates onto discrete H3 cells.
package bucket

import (
	"fmt"
	"math"

	h3 "github.com/uber/h3-go/v4"

	"github.com/yerzhan-m/geotrips/internal/core/model"
)

const (
	// MinRes and MaxRes bound the H3 resolutions the bucketer accepts.
	MinRes = 0
	MaxRes = 15
)

func validateRes(res int) error {
	if res < MinRes || res > MaxRes {
		return model.Invalidf("h3 resolution %d (must be %d..%d)", res, MinRes, MaxRes)
	}
	return nil
}

func validateCoords(lat, lon float64) error {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return model.Invalidf("latitude %v (must be in [-90,90])", lat)
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return model.Invalidf("longitude %v (must be in [-180,180])", lon)
	}
	return nil
}

// Cell returns the deterministic H3 cell id for a coordinate at the given
// resolution. Pure: identical (lat, lon, res) always yields an identical id.
func Cell(lat, lon float64, res int) (string, error) {
	if err := validateRes(res); err != nil {
		return "", err
	}
	if err := validateCoords(lat, lon); err != nil {
		return "", err
	}
	c, err := h3.LatLngToCell(h3.LatLng{Lat: lat, Lng: lon}, res)
	if err != nil {
		return "", fmt.Errorf("h3 index: %w", err)
	}
	return c.String(), nil
}

// CellForPoint buckets a point record.
func CellForPoint(p model.Point, res int) (string, error) {
	return Cell(p.Lat, p.Lon, res)
}

// Centroid returns the center coordinate of a cell, used by map and chart
// consumers to position aggregated hexagons.
func Centroid(cell string) (lat, lon float64, err error) {
	c, err := parseCell(cell)
	if err != nil {
		return 0, 0, err
	}
	ll, err := h3.CellToLatLng(c)
	if err != nil {
		return 0, 0, fmt.Errorf("h3 centroid: %w", err)
	}
	return ll.Lat, ll.Lng, nil
}

// Parent coarsens a cell to the given resolution. parentRes must not exceed
// the cell's own resolution.
func Parent(cell string, parentRes int) (string, error) {
	if err := validateRes(parentRes); err != nil {
		return "", err
	}
	c, err := parseCell(cell)
	if err != nil {
		return "", err
	}
	curRes := c.Resolution()
	if parentRes > curRes {
		return "", model.Invalidf("parent resolution %d exceeds cell resolution %d", parentRes, curRes)
	}
	if parentRes == curRes {
		return cell, nil
	}
	p, err := c.Parent(parentRes)
	if err != nil {
		return "", fmt.Errorf("h3 parent: %w", err)
	}
	return p.String(), nil
}

func parseCell(cell string) (h3.Cell, error) {
	var c h3.Cell
	if err := c.UnmarshalText([]byte(cell)); err != nil {
		return 0, model.Invalidf("parse cell %q", cell)
	}
	if !c.IsValid() {
		return 0, model.Invalidf("h3 cell %q", cell)
	}
	return c, nil
}
