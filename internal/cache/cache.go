// Package cache memoizes pipeline results for repeated parameterizations.
//
// The dataset is immutable for the life of the process (fixed seed), so a
// pipeline run is a pure function of its parameters. A miss recomputes from
// scratch; nothing survives the process.
package cache

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yerzhan-m/geotrips/internal/core/observability"
)

type Results struct {
	lru *lru.Cache[string, any]
}

func New(size int) (*Results, error) {
	if size <= 0 {
		size = 128
	}
	c, err := lru.New[string, any](size)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}
	return &Results{lru: c}, nil
}

// Key builds a canonical cache key from a pipeline name and its parameters.
func Key(pipeline string, params ...string) string {
	joined := strings.Join(params, ",")
	return fmt.Sprintf("%s:%s:%016x", pipeline, joined, xxhash.Sum64String(joined))
}

// GetOr returns the cached value for key, or computes, stores and returns it.
// Errors are never cached.
func GetOr[T any](c *Results, key string, compute func() (T, error)) (T, error) {
	if v, ok := c.lru.Get(key); ok {
		if typed, ok := v.(T); ok {
			observability.IncCacheHit()
			return typed, nil
		}
	}
	observability.IncCacheMiss()
	v, err := compute()
	if err != nil {
		var zero T
		return zero, err
	}
	c.lru.Add(key, v)
	return v, nil
}
