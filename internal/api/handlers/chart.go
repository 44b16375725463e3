package handlers

import (
	"errors"
	"net/http"

	"growth-plot/internal/analysis"
	"growth-plot/internal/api/models"
	"growth-plot/internal/config"
	"growth-plot/internal/data"
	"growth-plot/internal/model"
	"growth-plot/internal/render"
	"growth-plot/internal/timeline"

	"github.com/gin-gonic/gin"
)

// ChartHandler serves the configured dataset: rendered chart and growth
// stats. Every request re-reads the spreadsheet and recomputes from scratch;
// the dashboard's cutoff slider simply re-requests these URLs.
type ChartHandler struct {
	cfg      *config.Config
	dataPath string
	cache    *render.Cache
}

// NewChartHandler creates a chart handler bound to one config and data file.
func NewChartHandler(cfg *config.Config, dataPath string) *ChartHandler {
	return &ChartHandler{cfg: cfg, dataPath: dataPath, cache: render.GetCache()}
}

// RenderChart handles GET /api/v1/chart?max_hour=N
func (h *ChartHandler) RenderChart(c *gin.Context) {
	maxHour, ok := h.bindCutoff(c)
	if !ok {
		return
	}

	key := render.CacheKey(h.dataPath, maxHour)
	if img, hit := h.cache.Get(key); hit {
		c.Data(http.StatusOK, "image/png", img)
		return
	}

	series, ok := h.loadSeries(c, maxHour)
	if !ok {
		return
	}

	ctx := render.NewContext(h.cfg.Chart)
	img, err := ctx.Render(series[0], series[1:])
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "RENDER_ERROR",
				Message: err.Error(),
			},
		})
		return
	}

	h.cache.Set(key, img)
	c.Data(http.StatusOK, "image/png", img)
}

// GetStats handles GET /api/v1/stats?max_hour=N
func (h *ChartHandler) GetStats(c *gin.Context) {
	maxHour, ok := h.bindCutoff(c)
	if !ok {
		return
	}
	series, ok := h.loadSeries(c, maxHour)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.StatsResponse{
		MaxHour:   maxHour,
		Summaries: analysis.SummarizeAll(series),
	})
}

// bindCutoff resolves max_hour from the query, falling back to the
// configured default. Writes the error response itself on failure.
func (h *ChartHandler) bindCutoff(c *gin.Context) (float64, bool) {
	var q models.CutoffQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: err.Error(),
			},
		})
		return 0, false
	}
	maxHour := h.cfg.Chart.MaxHour
	if q.MaxHour != nil {
		maxHour = *q.MaxHour
	}
	if maxHour < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "max_hour must be >= 0",
			},
		})
		return 0, false
	}
	return maxHour, true
}

// loadSeries reads the spreadsheet and normalizes the full dataset.
// A missing data path serves controls only. Writes the error response
// itself on failure.
func (h *ChartHandler) loadSeries(c *gin.Context, maxHour float64) ([]model.NormalizedSeries, bool) {
	var device []timeline.RawPoint
	if h.dataPath != "" {
		pts, err := data.LoadDeviceSeries(h.dataPath, h.cfg.Device.Sheet)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: models.ErrorDetail{
					Code:    "INGEST_ERROR",
					Message: err.Error(),
				},
			})
			return nil, false
		}
		device = pts
	}

	series, err := data.NormalizeAll(h.cfg, device, maxHour)
	if err != nil {
		code := "NORMALIZE_ERROR"
		var fe *timeline.FormatError
		details := map[string]interface{}{}
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
		return nil, false
	}
	return series, true
}
