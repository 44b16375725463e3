package analysis

import (
	"math"

	"growth-plot/internal/model"

	"github.com/montanaflynn/stats"
)

// GrowthSummary is a per-series summary of the normalized curve. It does not
// depend on the absolute timeline; everything is computed from the series'
// own elapsed-hours coordinates.
type GrowthSummary struct {
	Series string           `json:"series"`
	Kind   model.SeriesKind `json:"kind"`

	Count     int     `json:"count"`
	SpanHours float64 `json:"span_hours"`

	MinValue  float64 `json:"min_value"`
	MaxValue  float64 `json:"max_value"`
	MeanValue float64 `json:"mean_value"`

	// PeakHour is the elapsed hour at which MaxValue was observed.
	PeakHour float64 `json:"peak_hour"`

	// MaxGrowthRate is the largest specific growth rate mu over consecutive
	// point pairs: ln(v2/v1) / (h2 - h1), per hour. Pairs with non-positive
	// values or zero elapsed difference are skipped.
	MaxGrowthRate float64 `json:"max_growth_rate"`

	// DoublingTimeHours is ln(2)/MaxGrowthRate, 0 when the series never grows.
	DoublingTimeHours float64 `json:"doubling_time_hours"`
}

// Summarize computes growth statistics for one normalized series.
// An empty series yields a zero-valued summary, not an error.
func Summarize(s model.NormalizedSeries) GrowthSummary {
	out := GrowthSummary{Series: s.Name, Kind: s.Kind}
	if len(s.Points) == 0 {
		return out
	}

	out.Count = len(s.Points)
	out.SpanHours = s.Span()

	vals := make([]float64, len(s.Points))
	for i, p := range s.Points {
		vals[i] = p.Value
	}
	// stats errors only on empty input, which is handled above.
	out.MinValue, _ = stats.Min(vals)
	out.MaxValue, _ = stats.Max(vals)
	out.MeanValue, _ = stats.Mean(vals)

	for _, p := range s.Points {
		if p.Value == out.MaxValue {
			out.PeakHour = p.Hours
			break
		}
	}

	mu := 0.0
	for i := 1; i < len(s.Points); i++ {
		prev, cur := s.Points[i-1], s.Points[i]
		dt := cur.Hours - prev.Hours
		if dt <= 0 || prev.Value <= 0 || cur.Value <= 0 {
			continue
		}
		if r := math.Log(cur.Value/prev.Value) / dt; r > mu {
			mu = r
		}
	}
	out.MaxGrowthRate = mu
	if mu > 0 {
		out.DoublingTimeHours = math.Ln2 / mu
	}
	return out
}

// SummarizeAll summarizes every series in input order.
func SummarizeAll(series []model.NormalizedSeries) []GrowthSummary {
	out := make([]GrowthSummary, 0, len(series))
	for _, s := range series {
		out = append(out, Summarize(s))
	}
	return out
}
