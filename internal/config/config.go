// Package config loads tracklane settings from an optional YAML file,
// falling back to built-in defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rfaulkner/tracklane/internal/domain"
	"github.com/rfaulkner/tracklane/internal/timeline"
)

// Config holds the tunable settings for the timeline views and the
// track trash lifecycle.
type Config struct {
	Timeline struct {
		DayColumnWidth   int    `yaml:"day_column_width"`   // pixels per day column
		WeekColumnWidth  int    `yaml:"week_column_width"`  // pixels per week column
		MonthColumnWidth int    `yaml:"month_column_width"` // pixels per month column
		OverscanColumns  int    `yaml:"overscan_columns"`   // extra columns rendered past each viewport edge
		DefaultZoom      string `yaml:"default_zoom"`       // day, week, or month
	} `yaml:"timeline"`
	Trash struct {
		RetentionDays int `yaml:"retention_days"` // days a trashed track stays recoverable
	} `yaml:"trash"`
	Highlight struct {
		DurationSeconds int `yaml:"duration_seconds"` // how long a search hit stays highlighted
	} `yaml:"highlight"`
}

// Default returns the built-in settings.
func Default() Config {
	var c Config
	c.Timeline.DayColumnWidth = timeline.DayColumnWidth
	c.Timeline.WeekColumnWidth = timeline.WeekColumnWidth
	c.Timeline.MonthColumnWidth = timeline.MonthColumnWidth
	c.Timeline.OverscanColumns = timeline.DefaultOverscan
	c.Timeline.DefaultZoom = string(domain.ViewWeek)
	c.Trash.RetentionDays = int(domain.TrashRetention / (24 * time.Hour))
	c.Highlight.DurationSeconds = int(domain.HighlightDuration / time.Second)
	return c
}

// Load reads configuration from a YAML file, or returns the defaults when
// path is empty. Settings missing from the file keep their defaults.
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) validate() error {
	if c.Timeline.DayColumnWidth <= 0 || c.Timeline.WeekColumnWidth <= 0 || c.Timeline.MonthColumnWidth <= 0 {
		return fmt.Errorf("column widths must be positive")
	}
	if c.Timeline.OverscanColumns < 0 {
		return fmt.Errorf("overscan_columns must not be negative")
	}
	switch domain.ViewMode(c.Timeline.DefaultZoom) {
	case domain.ViewDay, domain.ViewWeek, domain.ViewMonth:
	default:
		return fmt.Errorf("unknown default_zoom %q", c.Timeline.DefaultZoom)
	}
	if c.Trash.RetentionDays <= 0 {
		return fmt.Errorf("trash retention_days must be positive")
	}
	return nil
}

// TrashRetention returns the configured retention as a duration.
func (c Config) TrashRetention() time.Duration {
	return time.Duration(c.Trash.RetentionDays) * 24 * time.Hour
}

// ColumnWidth returns the configured width for a zoom level.
func (c Config) ColumnWidth(zoom domain.ViewMode) int {
	switch zoom {
	case domain.ViewDay:
		return c.Timeline.DayColumnWidth
	case domain.ViewMonth:
		return c.Timeline.MonthColumnWidth
	default:
		return c.Timeline.WeekColumnWidth
	}
}

// DefaultZoom returns the configured starting zoom level.
func (c Config) DefaultZoom() domain.ViewMode {
	return domain.ViewMode(c.Timeline.DefaultZoom)
}
