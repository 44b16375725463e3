package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"growth-plot/internal/config"
	"growth-plot/internal/model"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Context carries every render option explicitly. Repeated dashboard renders
// each build their chart from a Context value; there is no process-wide
// figure or axis state to leak between invocations.
type Context struct {
	Width  int
	Height int
	Title  string

	// Reference annotations, CFU/ml.
	TheoreticalMin float64
	TheoreticalMax float64

	// Secondary (control) axis bounds. Zero means 1e6..1e9.
	ControlMin float64
	ControlMax float64
}

// NewContext builds a render context from chart configuration.
func NewContext(c config.ChartConfig) Context {
	return Context{
		Width:          c.Width,
		Height:         c.Height,
		Title:          c.Title,
		TheoreticalMin: c.TheoreticalMin,
		TheoreticalMax: c.TheoreticalMax,
	}
}

// pointStyle returns a style that renders dots joined by a line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeColor: col,
		StrokeWidth: 1.5,
		DotWidth:    4,
		DotColor:    col,
	}
}

var controlColors = []drawing.Color{
	chart.ColorRed,
	chart.ColorOrange,
	chart.ColorAlternateGreen,
}

// Render draws the device series on the primary log axis and every control
// series on the secondary log axis, with dashed reference lines for the
// theoretical minimum and maximum, and returns PNG bytes.
//
// An empty dataset produces a blank image of the configured size rather than
// an error, so the dashboard still visibly updates.
func (c Context) Render(device model.NormalizedSeries, controls []model.NormalizedSeries) ([]byte, error) {
	width, height := c.Width, c.Height
	if width <= 0 {
		width = 1000
	}
	if height <= 0 {
		height = 600
	}

	xMax := lastHour(device)
	for _, ctl := range controls {
		if h := lastHour(ctl); h > xMax {
			xMax = h
		}
	}

	series := []chart.Series{}
	if len(device.Points) > 0 {
		xs, ys := coords(device)
		series = append(series, chart.ContinuousSeries{
			Name:    "Cell Concentration (Device)",
			XValues: xs,
			YValues: ys,
			Style:   pointStyle(chart.ColorBlue),
		})
	}
	for i, ctl := range controls {
		if len(ctl.Points) == 0 {
			continue
		}
		xs, ys := coords(ctl)
		series = append(series, chart.ContinuousSeries{
			Name:    ctl.Name,
			XValues: xs,
			YValues: ys,
			YAxis:   chart.YAxisSecondary,
			Style:   pointStyle(controlColors[i%len(controlColors)]),
		})
	}

	if len(series) == 0 {
		return blankPNG(width, height)
	}

	series = append(series, c.referenceSeries(xMax)...)

	primaryMax := c.TheoreticalMax
	if primaryMax <= 0 {
		primaryMax = model.TheoreticalMaxCFU
	}
	controlMin, controlMax := c.ControlMin, c.ControlMax
	if controlMin <= 0 {
		controlMin = 1e6
	}
	if controlMax <= 0 {
		controlMax = 1e9
	}

	ch := chart.Chart{
		Title:      c.Title,
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 24, Left: 16, Right: 16, Bottom: 28}},
		XAxis: chart.XAxis{
			Name:  "Time (hours since each dataset's start)",
			Range: &chart.ContinuousRange{Min: 0, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  "Cell Concentration (CFU/ml)",
			Range: &chart.LogarithmicRange{Min: 1e6, Max: primaryMax * 1.1},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "Control Cell Concentration (CFU/ml)",
			Range: &chart.LogarithmicRange{Min: controlMin, Max: controlMax},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render chart: %w", err)
	}
	return buf.Bytes(), nil
}

// referenceSeries draws the theoretical bounds: a short dashed segment at the
// minimum over the first 5% of the x range, and a dashed line at the maximum
// across the full range, each with a text label.
func (c Context) referenceSeries(xMax float64) []chart.Series {
	refMin, refMax := c.TheoreticalMin, c.TheoreticalMax
	if refMin <= 0 {
		refMin = model.TheoreticalMinCFU
	}
	if refMax <= 0 {
		refMax = model.TheoreticalMaxCFU
	}
	dashed := chart.Style{
		StrokeColor:     chart.ColorAlternateGray,
		StrokeWidth:     1,
		StrokeDashArray: []float64{5.0, 5.0},
	}
	return []chart.Series{
		chart.ContinuousSeries{
			XValues: []float64{0, 0.05 * xMax},
			YValues: []float64{refMin, refMin},
			Style:   dashed,
		},
		chart.ContinuousSeries{
			XValues: []float64{0, xMax},
			YValues: []float64{refMax, refMax},
			Style:   dashed,
		},
		chart.AnnotationSeries{
			Style: chart.Style{StrokeColor: chart.ColorAlternateGray},
			Annotations: []chart.Value2{
				{XValue: 0.07 * xMax, YValue: refMin, Label: fmt.Sprintf("Theoretical min: %.3g", refMin)},
				{XValue: 0.02 * xMax, YValue: refMax, Label: fmt.Sprintf("Theoretical max: %.3g", refMax)},
			},
		},
	}
}

// coords flattens a normalized series for go-chart. A single-point series is
// padded with a duplicate shifted one hour right; go-chart cannot compute a
// range from a lone x value.
func coords(s model.NormalizedSeries) ([]float64, []float64) {
	xs := make([]float64, 0, len(s.Points))
	ys := make([]float64, 0, len(s.Points))
	for _, p := range s.Points {
		xs = append(xs, p.Hours)
		ys = append(ys, p.Value)
	}
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	return xs, ys
}

func lastHour(s model.NormalizedSeries) float64 {
	if len(s.Points) == 0 {
		return 1
	}
	h := s.Points[len(s.Points)-1].Hours
	if h <= 0 {
		return 1
	}
	return h
}

func blankPNG(width, height int) ([]byte, error) {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
