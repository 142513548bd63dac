package config

import (
	"fmt"
	"strings"
)

// Engine defaults. The negative edge offsets let a window sit a few pixels
// past the work area so invisible frame padding does not show as a gap.
const (
	DefaultStep      = 10
	DefaultMinX      = -4
	DefaultMinY      = -4
	DefaultMinWidth  = 64
	DefaultMinHeight = 32

	// maxEdgeOffset bounds how far min_x/min_y may reach past an edge.
	// Positive offsets are rejected.
	maxEdgeOffset = 64
)

// Config holds the tunables for the geometry engine and the daemon.
//
// Hotkeys and grid slots are compiled in and are deliberately absent here.
type Config struct {
	Step      int    `yaml:"step"`
	MinX      int    `yaml:"min_x"`
	MinY      int    `yaml:"min_y"`
	MinWidth  int    `yaml:"min_width"`
	MinHeight int    `yaml:"min_height"`
	Display   string `yaml:"display,omitempty"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Step:      DefaultStep,
		MinX:      DefaultMinX,
		MinY:      DefaultMinY,
		MinWidth:  DefaultMinWidth,
		MinHeight: DefaultMinHeight,
		LogLevel:  "info",
		LogFormat: "auto",
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if c.Step <= 0 {
		return &ValidationError{Path: "step", Err: fmt.Errorf("step must be > 0")}
	}
	if c.MinX < -maxEdgeOffset || c.MinX > 0 {
		return &ValidationError{Path: "min_x", Err: fmt.Errorf("min_x must be between -%d and 0", maxEdgeOffset)}
	}
	if c.MinY < -maxEdgeOffset || c.MinY > 0 {
		return &ValidationError{Path: "min_y", Err: fmt.Errorf("min_y must be between -%d and 0", maxEdgeOffset)}
	}
	if c.MinWidth <= 0 {
		return &ValidationError{Path: "min_width", Err: fmt.Errorf("min_width must be > 0")}
	}
	if c.MinHeight <= 0 {
		return &ValidationError{Path: "min_height", Err: fmt.Errorf("min_height must be > 0")}
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warn, error")}
	}
	switch strings.ToLower(c.LogFormat) {
	case "auto", "text", "logfmt", "json":
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("log_format must be one of: auto, text, logfmt, json")}
	}
	return nil
}
