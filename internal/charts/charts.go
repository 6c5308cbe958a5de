// Package charts renders the dashboard's HTML views with go-echarts.
package charts

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/yerzhan-m/geotrips/internal/anomaly"
	"github.com/yerzhan-m/geotrips/internal/cluster"
	"github.com/yerzhan-m/geotrips/internal/core/model"
	"github.com/yerzhan-m/geotrips/internal/report"
)

// viridis ramp for density surfaces
var heatColors = []string{
	"#440154", "#482777", "#3e4989", "#31688e", "#26828e",
	"#1f9e89", "#35b779", "#6ece58", "#b5de2b", "#fde725",
}

// RenderHourly writes a bar chart of trip volume per hour of day.
func RenderHourly(w io.Writer, ov report.Overview) error {
	hours := make([]string, 24)
	data := make([]opts.BarData, 24)
	for h := 0; h < 24; h++ {
		hours[h] = fmt.Sprintf("%02d:00", h)
		data[h] = opts.BarData{Value: ov.HourlyVolume[h]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Trip Volume by Hour", Width: "1100px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Trip Volume by Hour",
			Subtitle: fmt.Sprintf("trips=%d peak=%02d:00", ov.TotalTrips, ov.PeakHour),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(hours).AddSeries("trips", data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render hourly chart: %w", err)
	}
	return nil
}

// RenderHeatmap writes a scatter plot of the privacy-filtered density
// surface, count mapped to color.
func RenderHeatmap(w io.Writer, hm report.HeatmapResult) error {
	data := make([]opts.ScatterData, 0, len(hm.Cells))
	maxCount := 1
	for _, c := range hm.Cells {
		if c.Count > maxCount {
			maxCount = c.Count
		}
		data = append(data, opts.ScatterData{Value: []interface{}{c.Lon, c.Lat, c.Count}})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Trip Density", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Trip Density Heatmap",
			Subtitle: fmt.Sprintf("res=%d k=%d cells=%d suppressed=%d", hm.Res, hm.K, len(hm.Cells), hm.SuppressedPoints),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lon", NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "lat", NameLocation: "middle", NameGap: 30, Scale: opts.Bool(true)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Show:       opts.Bool(true),
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxCount),
			Dimension:  "2",
			InRange:    &opts.VisualMapInRange{Color: heatColors},
		}),
	)
	scatter.AddSeries("cells", data, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 8}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render heatmap chart: %w", err)
	}
	return nil
}

// RenderRoutes writes a bar chart of trips per route cluster.
func RenderRoutes(w io.Writer, sums []cluster.Summary) error {
	labels := make([]string, len(sums))
	data := make([]opts.BarData, len(sums))
	for i, s := range sums {
		labels[i] = fmt.Sprintf("route %d", s.Cluster)
		data[i] = opts.BarData{Value: s.Trips}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Popular Routes", Width: "1100px", Height: "500px"}),
		charts.WithTitleOpts(opts.Title{Title: "Top Routes by Frequency", Subtitle: fmt.Sprintf("clusters=%d", len(sums))}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(labels).AddSeries("trips", data)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("render routes chart: %w", err)
	}
	return nil
}

// RenderAnomalies writes a distance/duration scatter with anomalous trips as
// a separate series.
func RenderAnomalies(w io.Writer, trips []model.Trip, rep anomaly.Report) error {
	byID := make(map[string]model.Trip, len(trips))
	for _, t := range trips {
		byID[t.ID] = t
	}

	var normal, flagged []opts.ScatterData
	for _, r := range rep.Results {
		t, ok := byID[r.TripID]
		if !ok {
			continue
		}
		d := opts.ScatterData{Value: []interface{}{t.DistanceKm, t.DurationMin}}
		if r.IsAnomaly {
			flagged = append(flagged, d)
		} else {
			normal = append(normal, d)
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Anomaly Detection", Width: "1100px", Height: "600px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Anomaly Distribution",
			Subtitle: fmt.Sprintf("anomalies=%d rate=%.1f%%", rep.Anomalies, rep.Rate*100),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "distance (km)", NameLocation: "middle", NameGap: 25, Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "duration (min)", NameLocation: "middle", NameGap: 30, Scale: opts.Bool(true)}),
	)
	scatter.AddSeries("normal", normal, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 4}))
	scatter.AddSeries("anomalous", flagged, charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: 7}))

	if err := scatter.Render(w); err != nil {
		return fmt.Errorf("render anomalies chart: %w", err)
	}
	return nil
}
