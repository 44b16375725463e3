package models

import (
	"growth-plot/internal/analysis"
	"growth-plot/internal/model"
)

// NormalizeResponse returns every series on its own elapsed-hours timeline.
type NormalizeResponse struct {
	MaxHour float64                  `json:"max_hour"`
	Series  []model.NormalizedSeries `json:"series"`
}

// StatsResponse returns per-series growth summaries.
type StatsResponse struct {
	MaxHour   float64                  `json:"max_hour"`
	Summaries []analysis.GrowthSummary `json:"summaries"`
}

// SeriesInfo describes one configured series without its data.
type SeriesInfo struct {
	Name      string           `json:"name"`
	Kind      model.SeriesKind `json:"kind"`
	Points    int              `json:"points"`
	SkipFirst bool             `json:"skip_first,omitempty"`
	StdDevs   int              `json:"std_devs,omitempty"`
}

// SeriesListResponse is the body of GET /api/v1/series.
type SeriesListResponse struct {
	Series []SeriesInfo `json:"series"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
