package timeline

import (
	"fmt"
	"time"

	"growth-plot/internal/model"
)

// RawPoint is one unparsed measurement: a timestamp label plus a reading.
type RawPoint struct {
	Label string
	Value float64
}

// FormatError reports a timestamp label that does not match its layout.
// The whole normalization aborts on the first one; there is nothing to
// recover from, the input data is wrong.
type FormatError struct {
	Input  string
	Layout string
	Err    error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("timestamp %q does not match layout %q: %v", e.Input, e.Layout, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// ParseTimestamp parses a textual timestamp using a Go reference layout.
// Timestamps are naive local time.
func ParseTimestamp(text, layout string) (time.Time, error) {
	t, err := time.ParseInLocation(layout, text, time.Local)
	if err != nil {
		return time.Time{}, &FormatError{Input: text, Layout: layout, Err: err}
	}
	return t, nil
}

// ElapsedHours converts absolute timestamps to fractional hours relative to
// reference. A timestamp before the reference yields a negative value; that
// is not expected in normal use but is not rejected here.
func ElapsedHours(times []time.Time, reference time.Time) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = t.Sub(reference).Hours()
	}
	return out
}

// FilterByCutoff pairs elapsed hours with values and keeps pairs where
// elapsed <= maxHour (inclusive). Input order is preserved; nothing is
// re-sorted or clamped. elapsed and values must be the same length.
func FilterByCutoff(elapsed, values []float64, maxHour float64) []model.NormalizedPoint {
	out := make([]model.NormalizedPoint, 0, len(elapsed))
	for i, h := range elapsed {
		if h <= maxHour {
			out = append(out, model.NormalizedPoint{Hours: h, Value: values[i]})
		}
	}
	return out
}

// ParseSeries parses every timestamp label of a raw series. The whole series
// fails on the first bad label; partially parsed data is never returned.
func ParseSeries(name string, kind model.SeriesKind, raw []RawPoint, layout string) (model.Series, error) {
	s := model.Series{Name: name, Kind: kind}
	if len(raw) == 0 {
		return s, nil
	}
	s.Points = make([]model.TimePoint, 0, len(raw))
	for i, p := range raw {
		t, err := ParseTimestamp(p.Label, layout)
		if err != nil {
			return model.Series{}, fmt.Errorf("point %d: %w", i, err)
		}
		s.Points = append(s.Points, model.TimePoint{Time: t, Value: p.Value})
	}
	return s, nil
}

// NormalizeSeries converts a parsed series to elapsed-hours coordinates and
// applies the cutoff. The reference is the first point in input order;
// callers that need chronological order must sort beforehand (the device
// series is sorted by its folder-name label, control tables are taken as
// given). An empty series yields an empty result.
//
// Duplicate timestamps are kept in insertion order. A maxHour of 0 retains
// exactly the reference point.
func NormalizeSeries(s model.Series, maxHour float64) model.NormalizedSeries {
	out := model.NormalizedSeries{Name: s.Name, Kind: s.Kind}
	if len(s.Points) == 0 {
		return out
	}
	times := make([]time.Time, len(s.Points))
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		times[i] = p.Time
		values[i] = p.Value
	}
	out.Points = FilterByCutoff(ElapsedHours(times, times[0]), values, maxHour)
	return out
}

// Normalize is ParseSeries followed by NormalizeSeries for callers that work
// with anonymous point lists.
func Normalize(raw []RawPoint, layout string, maxHour float64) ([]model.NormalizedPoint, error) {
	s, err := ParseSeries("", "", raw, layout)
	if err != nil {
		return nil, err
	}
	return NormalizeSeries(s, maxHour).Points, nil
}

// SkipFirst drops the first retained point when more than one remains.
// Some control runs carry a pre-inoculation reading that distorts the curve;
// whether to drop it is the caller's call, never part of Normalize itself.
func SkipFirst(points []model.NormalizedPoint) []model.NormalizedPoint {
	if len(points) > 1 {
		return points[1:]
	}
	return points
}
