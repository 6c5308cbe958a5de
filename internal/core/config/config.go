package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults mirror the demo dashboard's sidebar: H3 resolution 9 within 7..10,
// k-anonymity 5, DBSCAN eps 0.2 / min 5 trips, 10% contamination.
type Config struct {
	Addr     string
	LogLevel string

	MetricsEnabled bool
	MetricsAddr    string
	MetricsPath    string

	TripCount int
	Seed      uint64
	CenterLat float64
	CenterLon float64
	Window    time.Duration

	H3Res    int
	H3ResMin int
	H3ResMax int
	KAnon    int

	DBSCANEps    float64
	DBSCANMinPts int

	ForestTrees   int
	ForestSample  int
	Contamination float64

	ResultCacheSize int
}

func FromEnv() Config {
	res := getint("H3_RES", 9)
	minRes := getint("H3_RES_MIN", 7)
	maxRes := getint("H3_RES_MAX", 10)

	if minRes < 0 {
		minRes = 0
	}
	if maxRes > 15 {
		maxRes = 15
	}
	if minRes > maxRes {
		minRes, maxRes = res, res
	}
	if res < minRes || res > maxRes {
		res = minRes
	}

	return Config{
		Addr:     getenv("ADDR", ":8090"),
		LogLevel: getenv("LOG_LEVEL", "info"),

		MetricsEnabled: getbool("METRICS_ENABLED", false),
		MetricsAddr:    getenv("METRICS_ADDR", ":9090"),
		MetricsPath:    getenv("METRICS_PATH", "/metrics"),

		TripCount: getint("TRIP_COUNT", 1000),
		Seed:      getuint64("SEED", 42),
		CenterLat: getfloat("CENTER_LAT", 55.7558),
		CenterLon: getfloat("CENTER_LON", 37.6176),
		Window:    getduration("TRIP_WINDOW", 7*24*time.Hour),

		H3Res:    res,
		H3ResMin: minRes,
		H3ResMax: maxRes,
		KAnon:    getint("K_ANON", 5),

		DBSCANEps:    getfloat("DBSCAN_EPS", 0.2),
		DBSCANMinPts: getint("DBSCAN_MIN_PTS", 5),

		ForestTrees:   getint("FOREST_TREES", 100),
		ForestSample:  getint("FOREST_SAMPLE", 256),
		Contamination: getfloat("CONTAMINATION", 0.1),

		ResultCacheSize: getint("RESULT_CACHE_SIZE", 128),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getuint64(k string, def uint64) uint64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "t", "true", "y", "yes":
			return true
		case "0", "f", "false", "n", "no":
			return false
		}
	}
	return def
}

func getduration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
