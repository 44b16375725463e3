package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"growth-plot/internal/model"
	"growth-plot/internal/timeline"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Chart  ChartConfig  `yaml:"chart"`
	Device DeviceConfig `yaml:"device"`

	// Optional: load control tables from a separate YAML (e.g. examples/controls/*.yaml).
	// Inline controls are appended after the ones loaded from ControlsFile.
	ControlsFile string          `yaml:"controls_file"`
	Controls     []ControlConfig `yaml:"controls"`
}

// ChartConfig holds the render options shared by the CLI and the API.
type ChartConfig struct {
	Title   string  `yaml:"title"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	MaxHour float64 `yaml:"max_hour"`

	// Reference annotations, CFU/ml. Zero means use the defaults.
	TheoreticalMin float64 `yaml:"theoretical_min"`
	TheoreticalMax float64 `yaml:"theoretical_max"`
}

// DeviceConfig describes the spreadsheet holding the device series.
type DeviceConfig struct {
	File  string `yaml:"file"`
	Sheet string `yaml:"sheet"`
	// Layout of the folder-name labels; defaults to model.FolderLabelLayout.
	Layout string `yaml:"layout"`
}

// ControlConfig is one literal optical-density control table.
type ControlConfig struct {
	Name   string `yaml:"name"`
	Layout string `yaml:"layout"`
	// SkipFirst drops the first retained point (pre-inoculation reading).
	SkipFirst bool           `yaml:"skip_first"`
	Points    []ControlPoint `yaml:"points"`
	// Optional per-point error magnitudes; must match len(Points) when set.
	StdDevs []float64 `yaml:"std_devs"`
}

// ControlPoint is one (timestamp, reading) literal.
type ControlPoint struct {
	Time  string  `yaml:"time"`
	Value float64 `yaml:"value"`
}

// RawPoints converts the literal table to the normalizer's input shape,
// preserving literal order.
func (c ControlConfig) RawPoints() []timeline.RawPoint {
	out := make([]timeline.RawPoint, 0, len(c.Points))
	for _, p := range c.Points {
		out = append(out, timeline.RawPoint{Label: p.Time, Value: p.Value})
	}
	return out
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate or default it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.ControlsFile != "" {
		controlsPath := c.ControlsFile
		if !filepath.IsAbs(controlsPath) {
			// Prefer interpreting relative paths as relative to the config file directory,
			// but fall back to the provided path (relative to cwd) if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), controlsPath)
			if _, err := os.Stat(cand); err == nil {
				controlsPath = cand
			}
		}
		loaded, err := loadControlsFile(controlsPath)
		if err != nil {
			return nil, err
		}
		c.Controls = append(loaded, c.Controls...)
	}
	return &c, nil
}

// Default returns a usable config without any file on disk.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Chart.Title == "" {
		c.Chart.Title = "Cell Concentration vs Time"
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 1000
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 600
	}
	if c.Chart.MaxHour == 0 {
		c.Chart.MaxHour = model.DefaultMaxHour
	}
	if c.Chart.TheoreticalMin == 0 {
		c.Chart.TheoreticalMin = model.TheoreticalMinCFU
	}
	if c.Chart.TheoreticalMax == 0 {
		c.Chart.TheoreticalMax = model.TheoreticalMaxCFU
	}
	if c.Device.Layout == "" {
		c.Device.Layout = model.FolderLabelLayout
	}
	for i := range c.Controls {
		if c.Controls[i].Layout == "" {
			c.Controls[i].Layout = model.ControlLayout
		}
	}
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Chart.MaxHour < 0 {
		return fmt.Errorf("chart.max_hour must be >= 0, got %v", c.Chart.MaxHour)
	}
	for i, ctl := range c.Controls {
		if ctl.Name == "" {
			return fmt.Errorf("controls[%d]: name is required", i)
		}
		if len(ctl.StdDevs) > 0 && len(ctl.StdDevs) != len(ctl.Points) {
			return fmt.Errorf("controls[%d] (%s): %d std_devs for %d points", i, ctl.Name, len(ctl.StdDevs), len(ctl.Points))
		}
		for j, p := range ctl.Points {
			if _, err := timeline.ParseTimestamp(p.Time, ctl.Layout); err != nil {
				return fmt.Errorf("controls[%d] (%s) point %d: %w", i, ctl.Name, j, err)
			}
		}
	}
	return nil
}

type controlsFileWrapper struct {
	Controls []ControlConfig `yaml:"controls"`
}

func loadControlsFile(path string) ([]ControlConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w controlsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Controls, nil
}
