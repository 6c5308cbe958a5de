package router

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/yerzhan-m/geotrips/internal/core/config"
	"github.com/yerzhan-m/geotrips/internal/core/model"
)

func testConfig() config.Config {
	return config.Config{
		H3Res:         9,
		H3ResMin:      7,
		H3ResMax:      10,
		KAnon:         5,
		DBSCANEps:     0.2,
		DBSCANMinPts:  5,
		Contamination: 0.1,
	}
}

func TestParseSpatial_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/heatmap", nil)
	p, err := ParseSpatial(r, testConfig())
	if err != nil {
		t.Fatalf("ParseSpatial: %v", err)
	}
	if p.Res != 9 || p.K != 5 {
		t.Fatalf("expected defaults res=9 k=5, got %+v", p)
	}
}

func TestParseSpatial_Overrides(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/heatmap?res=7&k=3", nil)
	p, err := ParseSpatial(r, testConfig())
	if err != nil {
		t.Fatalf("ParseSpatial: %v", err)
	}
	if p.Res != 7 || p.K != 3 {
		t.Fatalf("expected res=7 k=3, got %+v", p)
	}
}

func TestParseSpatial_Invalid(t *testing.T) {
	for _, q := range []string{
		"res=11",   // above configured max
		"res=6",    // below configured min
		"res=zero", // not a number
		"k=0",
		"k=-2",
		"k=many",
	} {
		r := httptest.NewRequest("GET", "/api/heatmap?"+q, nil)
		if _, err := ParseSpatial(r, testConfig()); !errors.Is(err, model.ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", q, err)
		}
	}
}

func TestParseRoutes(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/routes?eps=0.5&min_pts=8&limit=3", nil)
	p, err := ParseRoutes(r, testConfig())
	if err != nil {
		t.Fatalf("ParseRoutes: %v", err)
	}
	if p.Eps != 0.5 || p.MinPts != 8 || p.Limit != 3 {
		t.Fatalf("unexpected params %+v", p)
	}

	for _, q := range []string{"eps=0", "eps=-1", "min_pts=0", "limit=0", "limit=5000"} {
		r := httptest.NewRequest("GET", "/api/routes?"+q, nil)
		if _, err := ParseRoutes(r, testConfig()); !errors.Is(err, model.ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", q, err)
		}
	}
}

func TestParseAnomalies(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/anomalies", nil)
	p, err := ParseAnomalies(r, testConfig())
	if err != nil {
		t.Fatalf("ParseAnomalies: %v", err)
	}
	if p.Contamination != 0.1 || p.Limit != 10 {
		t.Fatalf("expected defaults, got %+v", p)
	}

	for _, q := range []string{"contamination=0", "contamination=0.9", "contamination=x"} {
		r := httptest.NewRequest("GET", "/api/anomalies?"+q, nil)
		if _, err := ParseAnomalies(r, testConfig()); !errors.Is(err, model.ErrInvalidParameter) {
			t.Fatalf("%s: expected ErrInvalidParameter, got %v", q, err)
		}
	}
}
