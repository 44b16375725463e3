package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"growth-plot/internal/analysis"
	"growth-plot/internal/config"
	"growth-plot/internal/data"
	"growth-plot/internal/model"
	"growth-plot/internal/render"
	"growth-plot/internal/timeline"
)

// Demo:
// - Build a dataset from built-in AD38 sample tables (no spreadsheet needed)
// - Normalize each series to its own elapsed-hours timeline
// - Render a chart and print growth summaries to show how the pieces fit together
func main() {
	maxHour := flag.Float64("max-hour", model.DefaultMaxHour, "Cutoff in elapsed hours")
	outPNG := flag.String("out", "", "Optional path to write the demo chart PNG")
	flag.Parse()

	cfg := config.Default()
	cfg.Chart.Title = "AD38 (deltaMotAB MG1655) Cell Concentration vs Time"
	cfg.Controls = []config.ControlConfig{
		{
			Name:      "diluted control",
			Layout:    model.ControlLayout,
			SkipFirst: true,
			Points: []config.ControlPoint{
				{Time: "2024-03-01 18:40:00", Value: 3.09e6},
				{Time: "2024-03-02 10:07:00", Value: 1.81e8},
				{Time: "2024-03-02 13:07:00", Value: 2.78e8},
				{Time: "2024-03-02 16:51:00", Value: 3.97e8},
				{Time: "2024-03-02 18:17:00", Value: 4.90e8},
				{Time: "2024-03-03 13:40:00", Value: 8.33e8},
				{Time: "2024-03-03 16:05:00", Value: 5.78e8},
				{Time: "2024-03-03 17:37:00", Value: 5.38e8},
			},
		},
		{
			Name:   "undiluted control",
			Layout: model.ControlLayout,
			Points: []config.ControlPoint{
				{Time: "2024-03-01 17:29:00", Value: 1.75e8},
				{Time: "2024-03-02 10:02:00", Value: 2.86e8},
				{Time: "2024-03-02 13:40:00", Value: 6.70e8},
				{Time: "2024-03-02 17:15:00", Value: 1.72e9},
				{Time: "2024-03-02 18:15:00", Value: 2.11e9},
				{Time: "2024-03-03 12:57:00", Value: 5.98e9},
				{Time: "2024-03-03 16:10:00", Value: 1.27e11},
				{Time: "2024-03-03 18:20:00", Value: 1.27e11},
			},
		},
	}

	device := []timeline.RawPoint{
		{Label: "24_11_18_18_22_00", Value: 1.74e7},
		{Label: "24_11_19_11_20_00", Value: 1.04e8},
		{Label: "24_11_19_13_56_00", Value: 2.24e8},
		{Label: "24_11_19_15_45_00", Value: 2.94e8},
		{Label: "24_11_19_16_50_00", Value: 3.33e8},
		{Label: "24_11_19_17_50_00", Value: 3.70e8},
		{Label: "24_11_19_18_54_00", Value: 3.99e8},
		{Label: "24_11_20_12_43_00", Value: 8.99e8},
		{Label: "24_11_20_16_09_00", Value: 9.62e8},
		{Label: "24_11_20_18_10_00", Value: 9.62e8},
	}

	series, err := data.NormalizeAll(cfg, device, *maxHour)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Normalized %d series at max_hour=%.1f:\n", len(series), *maxHour)
	for _, s := range series {
		fmt.Printf("  %-20s %d points over %.2f h\n", s.Name, len(s.Points), s.Span())
	}

	fmt.Println()
	for _, sum := range analysis.SummarizeAll(series) {
		fmt.Printf("%s: peak %.3g CFU/ml at %.1f h, mu=%.4f/h, doubling %.2f h\n",
			sum.Series, sum.MaxValue, sum.PeakHour, sum.MaxGrowthRate, sum.DoublingTimeHours)
	}

	if *outPNG != "" {
		ctx := render.NewContext(cfg.Chart)
		img, err := ctx.Render(series[0], series[1:])
		if err != nil {
			panic(err)
		}
		if err := os.MkdirAll(filepath.Dir(*outPNG), 0o755); err != nil {
			panic(err)
		}
		if err := os.WriteFile(*outPNG, img, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("\nWrote demo chart to %s\n", *outPNG)
	}
}
