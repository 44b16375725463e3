package data

import (
	"fmt"

	"growth-plot/internal/config"
	"growth-plot/internal/model"
	"growth-plot/internal/timeline"
)

// DeviceSeriesName labels the spreadsheet-backed series in exports and JSON.
const DeviceSeriesName = "device"

// NormalizeAll runs the full dataset through the normalizer at one cutoff:
// the device series first, then every configured control in config order.
// Each series gets its own zero point. Absent series come back empty.
func NormalizeAll(cfg *config.Config, device []timeline.RawPoint, maxHour float64) ([]model.NormalizedSeries, error) {
	out := make([]model.NormalizedSeries, 0, 1+len(cfg.Controls))

	deviceSeries, err := timeline.ParseSeries(DeviceSeriesName, model.KindDevice, device, cfg.Device.Layout)
	if err != nil {
		return nil, fmt.Errorf("device series: %w", err)
	}
	out = append(out, timeline.NormalizeSeries(deviceSeries, maxHour))

	for _, ctl := range cfg.Controls {
		s, err := timeline.ParseSeries(ctl.Name, model.KindControl, ctl.RawPoints(), ctl.Layout)
		if err != nil {
			return nil, fmt.Errorf("control %q: %w", ctl.Name, err)
		}
		ns := timeline.NormalizeSeries(s, maxHour)
		if ctl.SkipFirst {
			ns.Points = timeline.SkipFirst(ns.Points)
		}
		out = append(out, ns)
	}
	return out, nil
}
