// tripgen dumps the synthetic trip dataset as JSON, for feeding external
// notebooks and map tools the dashboard does not ship.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/yerzhan-m/geotrips/internal/tripgen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "tripgen:", err)
		os.Exit(1)
	}
}

func run() error {
	n := flag.Int("n", 1000, "number of trips")
	seed := flag.Uint64("seed", 42, "rng seed")
	lat := flag.Float64("lat", 55.7558, "city center latitude")
	lon := flag.Float64("lon", 37.6176, "city center longitude")
	window := flag.Duration("window", 7*24*time.Hour, "time window ending now")
	out := flag.String("o", "-", "output file (- for stdout)")
	flag.Parse()

	trips, err := tripgen.Generate(tripgen.Config{
		Trips:     *n,
		Seed:      *seed,
		CenterLat: *lat,
		CenterLon: *lon,
		Window:    *window,
	})
	if err != nil {
		return err
	}

	w := os.Stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(trips)
}
