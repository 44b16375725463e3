package model

import "time"

// Timestamp layouts used by the two data sources.
//
// The spreadsheet labels each measurement with the folder name the capture was
// stored under ("%y_%m_%d_%H_%M_%S" in strftime terms). Control tables use a
// plain datetime. Both are naive local time; no zone handling anywhere.
const (
	FolderLabelLayout = "06_01_02_15_04_05"
	ControlLayout     = "2006-01-02 15:04:05"
)

// Reference concentrations for the chart annotations, in CFU/ml.
const (
	TheoreticalMinCFU = 1.74e6
	TheoreticalMaxCFU = 6.4e11
)

// DefaultMaxHour is the default cutoff applied to every series.
const DefaultMaxHour = 50.0

// SeriesKind distinguishes the device main series from OD control series.
// Keep these values stable; they are intended for JSON and CSV output.
type SeriesKind string

const (
	KindDevice  SeriesKind = "device"
	KindControl SeriesKind = "control"
)

// TimePoint is one absolute-time measurement. Immutable once read.
type TimePoint struct {
	Time  time.Time
	Value float64
}

// Series is an ordered sequence of TimePoints. The device series is sorted by
// its folder-name label before parsing; control series are consumed in the
// literal order the config gives them.
type Series struct {
	Name   string
	Kind   SeriesKind
	Points []TimePoint
}

// NormalizedPoint is a measurement on a series' own elapsed-hours timeline.
// Hours == 0 corresponds to that series' first point, never a shared clock.
type NormalizedPoint struct {
	Hours float64 `json:"hours"`
	Value float64 `json:"value"`
}

// NormalizedSeries is the output of timeline normalization: elapsed hours
// since the series' own start, truncated at the cutoff.
type NormalizedSeries struct {
	Name   string            `json:"name"`
	Kind   SeriesKind        `json:"kind"`
	Points []NormalizedPoint `json:"points"`
}

// Span returns the elapsed hours covered by the series (0 for empty input).
func (s NormalizedSeries) Span() float64 {
	if len(s.Points) == 0 {
		return 0
	}
	return s.Points[len(s.Points)-1].Hours - s.Points[0].Hours
}
