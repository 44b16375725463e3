package handlers

import (
	"errors"
	"net/http"

	"growth-plot/internal/api/models"
	"growth-plot/internal/model"
	"growth-plot/internal/timeline"

	"github.com/gin-gonic/gin"
)

// NormalizeHandler runs caller-supplied series through the normalizer.
// It is stateless; nothing touches the configured dataset.
type NormalizeHandler struct {
	defaultMaxHour float64
}

// NewNormalizeHandler creates a normalize handler with the server's default cutoff.
func NewNormalizeHandler(defaultMaxHour float64) *NormalizeHandler {
	return &NormalizeHandler{defaultMaxHour: defaultMaxHour}
}

// Normalize handles POST /api/v1/normalize
func (h *NormalizeHandler) Normalize(c *gin.Context) {
	var req models.NormalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return
	}

	maxHour := h.defaultMaxHour
	if req.MaxHour != nil {
		maxHour = *req.MaxHour
	}
	if maxHour < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "max_hour must be >= 0",
			},
		})
		return
	}

	out := make([]model.NormalizedSeries, 0, len(req.Series))
	for _, rs := range req.Series {
		layout := rs.Layout
		if layout == "" {
			layout = model.ControlLayout
		}
		raw := make([]timeline.RawPoint, 0, len(rs.Points))
		for _, p := range rs.Points {
			raw = append(raw, timeline.RawPoint{Label: p.Time, Value: p.Value})
		}
		pts, err := timeline.Normalize(raw, layout, maxHour)
		if err != nil {
			code := "NORMALIZE_ERROR"
			details := map[string]interface{}{"series": rs.Name}
			var fe *timeline.FormatError
			if errors.As(err, &fe) {
				code = "FORMAT_ERROR"
				details["input"] = fe.Input
				details["layout"] = fe.Layout
			}
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    code,
					Message: err.Error(),
					Details: details,
				},
			})
			return
		}
		if rs.SkipFirst {
			pts = timeline.SkipFirst(pts)
		}
		kind := model.KindControl
		if rs.Kind == string(model.KindDevice) {
			kind = model.KindDevice
		}
		out = append(out, model.NormalizedSeries{Name: rs.Name, Kind: kind, Points: pts})
	}

	c.JSON(http.StatusOK, models.NormalizeResponse{MaxHour: maxHour, Series: out})
}
