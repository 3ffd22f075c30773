// Package config provides YAML-based configuration for the window, the
// renderer, the logger and the frame inspector.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"gopkg.in/yaml.v3"
)

// Config is the full runtime configuration.
type Config struct {
	Display   DisplayConfig   `yaml:"display"`
	Render    RenderConfig    `yaml:"render"`
	Logger    LoggerConfig    `yaml:"logger"`
	Inspector InspectorConfig `yaml:"inspector"`
}

// Dimensions is a pixel size.
type Dimensions struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DisplayConfig controls the created window. Nil dimensions leave the
// choice to the engine.
type DisplayConfig struct {
	Title         string      `yaml:"title"`
	Dimensions    *Dimensions `yaml:"dimensions,omitempty"`
	MinDimensions *Dimensions `yaml:"min_dimensions,omitempty"`
	MaxDimensions *Dimensions `yaml:"max_dimensions,omitempty"`
	Fullscreen    bool        `yaml:"fullscreen"`
	Maximized     bool        `yaml:"maximized"`
	Resizable     bool        `yaml:"resizable"`
	Decorations   bool        `yaml:"decorations"`
	AlwaysOnTop   bool        `yaml:"always_on_top"`
	Vsync         bool        `yaml:"vsync"`
	Icon          string      `yaml:"icon,omitempty"` // relative to the assets dir
}

// Color is an RGBA color with channels in [0, 1].
type Color [4]float32

// RenderConfig holds renderer settings.
type RenderConfig struct {
	Clear Color `yaml:"clear"`
	TPS   int   `yaml:"tps"`
}

// LoggerConfig holds logger settings.
type LoggerConfig struct {
	Level            string `yaml:"level"`
	Format           string `yaml:"format"` // "text", "json" or "logfmt"
	File             string `yaml:"file,omitempty"`
	Stdout           bool   `yaml:"stdout"`
	AllowEnvOverride bool   `yaml:"allow_env_override"`
}

// InspectorConfig holds settings for the websocket frame inspector.
type InspectorConfig struct {
	Enabled     bool   `yaml:"enabled"`
	Addr        string `yaml:"addr"`
	ReportEvery int    `yaml:"report_every"` // frames between reports
}

// NRGBA converts the color to 8-bit channels.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: channel8(c[0]),
		G: channel8(c[1]),
		B: channel8(c[2]),
		A: channel8(c[3]),
	}
}

func channel8(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(float64(v) * 255))
}

// Validate checks the configuration for values the engine cannot use.
func (c Config) Validate() error {
	var errs []error

	d := c.Display
	for name, dim := range map[string]*Dimensions{
		"dimensions":     d.Dimensions,
		"min_dimensions": d.MinDimensions,
		"max_dimensions": d.MaxDimensions,
	} {
		if dim != nil && (dim.Width <= 0 || dim.Height <= 0) {
			errs = append(errs, fmt.Errorf("display.%s must be positive, got %dx%d", name, dim.Width, dim.Height))
		}
	}
	if lo, hi := d.MinDimensions, d.MaxDimensions; lo != nil && hi != nil {
		if lo.Width > hi.Width || lo.Height > hi.Height {
			errs = append(errs, fmt.Errorf("display.min_dimensions %dx%d exceed max_dimensions %dx%d",
				lo.Width, lo.Height, hi.Width, hi.Height))
		}
	}

	for i, v := range c.Render.Clear {
		if v < 0 || v > 1 || math.IsNaN(float64(v)) {
			errs = append(errs, fmt.Errorf("render.clear[%d] = %v is outside [0, 1]", i, v))
		}
	}
	if c.Render.TPS <= 0 {
		errs = append(errs, fmt.Errorf("render.tps must be positive, got %d", c.Render.TPS))
	}
	if c.Inspector.ReportEvery <= 0 {
		errs = append(errs, fmt.Errorf("inspector.report_every must be positive, got %d", c.Inspector.ReportEvery))
	}

	return errors.Join(errs...)
}

// YAML renders the configuration as a YAML document.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
