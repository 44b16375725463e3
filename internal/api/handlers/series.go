package handlers

import (
	"log"
	"net/http"

	"growth-plot/internal/api/models"
	"growth-plot/internal/config"
	"growth-plot/internal/data"
	"growth-plot/internal/model"

	"github.com/gin-gonic/gin"
)

// SeriesHandler lists the configured series without their data.
type SeriesHandler struct {
	cfg      *config.Config
	dataPath string
}

// NewSeriesHandler creates a series handler.
func NewSeriesHandler(cfg *config.Config, dataPath string) *SeriesHandler {
	return &SeriesHandler{cfg: cfg, dataPath: dataPath}
}

// ListSeries handles GET /api/v1/series
func (h *SeriesHandler) ListSeries(c *gin.Context) {
	series := []models.SeriesInfo{}

	devicePoints := 0
	if h.dataPath != "" {
		pts, err := data.LoadDeviceSeries(h.dataPath, h.cfg.Device.Sheet)
		if err != nil {
			log.Printf("SeriesHandler: cannot read %s: %v", h.dataPath, err)
		} else {
			devicePoints = len(pts)
		}
	}
	series = append(series, models.SeriesInfo{
		Name:   data.DeviceSeriesName,
		Kind:   model.KindDevice,
		Points: devicePoints,
	})

	for _, ctl := range h.cfg.Controls {
		series = append(series, models.SeriesInfo{
			Name:      ctl.Name,
			Kind:      model.KindControl,
			Points:    len(ctl.Points),
			SkipFirst: ctl.SkipFirst,
			StdDevs:   len(ctl.StdDevs),
		})
	}

	c.JSON(http.StatusOK, models.SeriesListResponse{Series: series})
}
