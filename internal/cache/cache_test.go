package cache

import (
	"errors"
	"testing"
)

func TestGetOr_ComputesOnce(t *testing.T) {
	c, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	calls := 0
	compute := func() (int, error) {
		calls++
		return 42, nil
	}

	for i := 0; i < 3; i++ {
		v, err := GetOr(c, Key("test", "a", "b"), compute)
		if err != nil {
			t.Fatalf("GetOr %d: %v", i, err)
		}
		if v != 42 {
			t.Fatalf("GetOr %d: got %d", i, v)
		}
	}
	if calls != 1 {
		t.Fatalf("expected 1 compute call, got %d", calls)
	}
}

func TestGetOr_ErrorsNotCached(t *testing.T) {
	c, err := New(8)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	calls := 0
	_, err = GetOr(c, "k", func() (int, error) {
		calls++
		if calls == 1 {
			return 0, errTest
		}
		return 7, nil
	})
	if err == nil {
		t.Fatalf("expected first call to fail")
	}
	v, err := GetOr(c, "k", func() (int, error) {
		calls++
		return 7, nil
	})
	if err != nil || v != 7 {
		t.Fatalf("expected recompute after error, got %d %v", v, err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 compute calls, got %d", calls)
	}
}

func TestKey_Canonical(t *testing.T) {
	a := Key("heatmap", "9", "5")
	b := Key("heatmap", "9", "5")
	if a != b {
		t.Fatalf("expected stable keys, got %s and %s", a, b)
	}
	if a == Key("heatmap", "9", "6") {
		t.Fatalf("different params must yield different keys")
	}
	if a == Key("overview", "9", "5") {
		t.Fatalf("different pipelines must yield different keys")
	}
}

var errTest = errors.New("boom")
