package models

// NormalizeRequest is the body for POST /api/v1/normalize: caller-supplied
// raw series to run through the normalizer without touching the configured
// dataset.
type NormalizeRequest struct {
	Series []RawSeries `json:"series" binding:"required"`
	// MaxHour defaults to the server's configured cutoff when omitted.
	MaxHour *float64 `json:"max_hour,omitempty"`
}

// RawSeries is one unnormalized series in a request.
type RawSeries struct {
	Name string `json:"name" binding:"required"`
	// Layout is a Go reference layout; defaults to "2006-01-02 15:04:05".
	Layout string `json:"layout,omitempty"`
	// Kind defaults to "control"; pass "device" for the main series.
	Kind      string     `json:"kind,omitempty"`
	SkipFirst bool       `json:"skip_first,omitempty"`
	Points    []RawPoint `json:"points"`
}

// RawPoint is one (timestamp, reading) pair in a request.
type RawPoint struct {
	Time  string  `json:"time" binding:"required"`
	Value float64 `json:"value"`
}

// CutoffQuery binds the max_hour query parameter shared by the chart and
// stats endpoints.
type CutoffQuery struct {
	MaxHour *float64 `form:"max_hour"`
}
