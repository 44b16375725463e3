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

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "plot":
		cmdPlot(os.Args[2:])
	case "normalize":
		cmdNormalize(os.Args[2:])
	case "stats":
		cmdStats(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli plot --data cell_counts_summary.xls --config examples/config.yaml --out results/growth.png")
	fmt.Println("  cli normalize --data cell_counts_summary.csv --config examples/config.yaml --out results/normalized.csv")
	fmt.Println("  cli stats --data cell_counts_summary.csv --config examples/config.yaml")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - every series is normalized to hours since its own first sample")
	fmt.Println("  - points past --max-hour (default from config, 50) are dropped, not clamped")
}

// loadAll resolves config + device spreadsheet and normalizes everything at
// the effective cutoff. dataPath and maxHour override the config when set.
func loadAll(cfgPath, dataPath string, maxHour float64) (*config.Config, []model.NormalizedSeries) {
	var cfg *config.Config
	if cfgPath != "" {
		c, err := config.Load(cfgPath)
		if err != nil {
			panic(err)
		}
		cfg = c
	} else {
		cfg = config.Default()
	}

	if dataPath == "" {
		dataPath = cfg.Device.File
	}
	var device []timeline.RawPoint
	if dataPath != "" {
		pts, err := data.LoadDeviceSeries(dataPath, cfg.Device.Sheet)
		if err != nil {
			panic(err)
		}
		device = pts
	}

	if maxHour < 0 {
		maxHour = cfg.Chart.MaxHour
	}
	series, err := data.NormalizeAll(cfg, device, maxHour)
	if err != nil {
		panic(err)
	}
	return cfg, series
}

func cmdPlot(args []string) {
	fs := flag.NewFlagSet("plot", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to counts spreadsheet (.xls or .csv)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/growth.png", "Output PNG path")
	maxHour := fs.Float64("max-hour", -1, "Cutoff in elapsed hours (-1 = use config)")
	_ = fs.Parse(args)

	cfg, series := loadAll(*cfgPath, *dataPath, *maxHour)

	ctx := render.NewContext(cfg.Chart)
	img, err := ctx.Render(series[0], series[1:])
	if err != nil {
		panic(err)
	}

	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := os.WriteFile(*outPath, img, 0o644); err != nil {
		panic(err)
	}

	fmt.Printf("Wrote chart to %s\n", *outPath)
	for _, s := range series {
		fmt.Printf("  %-24s %d points over %.2f h\n", s.Name, len(s.Points), s.Span())
	}
}

func cmdNormalize(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to counts spreadsheet (.xls or .csv)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outPath := fs.String("out", "results/normalized.csv", "Output CSV path")
	maxHour := fs.Float64("max-hour", -1, "Cutoff in elapsed hours (-1 = use config)")
	_ = fs.Parse(args)

	_, series := loadAll(*cfgPath, *dataPath, *maxHour)

	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := data.WriteNormalizedCSV(*outPath, series); err != nil {
		panic(err)
	}

	rows := 0
	for _, s := range series {
		rows += len(s.Points)
	}
	fmt.Printf("Wrote %d rows to %s\n", rows, *outPath)
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to counts spreadsheet (.xls or .csv)")
	cfgPath := fs.String("config", "", "Path to YAML config")
	maxHour := fs.Float64("max-hour", -1, "Cutoff in elapsed hours (-1 = use config)")
	_ = fs.Parse(args)

	_, series := loadAll(*cfgPath, *dataPath, *maxHour)
	sums := analysis.SummarizeAll(series)

	fmt.Printf("%-24s %-8s %-8s %-10s %-12s %-12s %-10s %-10s\n",
		"series", "kind", "points", "span(h)", "min", "max", "mu(1/h)", "t2(h)")
	for _, s := range sums {
		fmt.Printf("%-24s %-8s %-8d %-10.2f %-12.3g %-12.3g %-10.4f %-10.2f\n",
			s.Series,
			s.Kind,
			s.Count,
			s.SpanHours,
			s.MinValue,
			s.MaxValue,
			s.MaxGrowthRate,
			s.DoublingTimeHours,
		)
	}
}
