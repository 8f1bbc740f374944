// Package config defines dashboard configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Loading functions accept context.Context as the first parameter.
// - Validation errors wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"strings"
)

// Recognised enumeration values.
var (
	views          = []string{"all", "grid", "analytics"}
	formats        = []string{"table", "json", "yaml"}
	themes         = []string{"light", "dark"}
	logFormats     = []string{"text", "json"}
	tenurePolicies = []string{"clamp", "reject"}
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects text or json log lines.
	LogFormat string `koanf:"log_format"`

	// Dataset is the path of a JSON, YAML or CSV employee file.
	// Empty selects the embedded dataset.
	Dataset string `koanf:"dataset"`

	// CurrentYear is the reference year for tenure. Zero means the
	// calendar year at load time.
	CurrentYear int `koanf:"current_year"`

	// TenurePolicy handles hires in the reference year: clamp or reject.
	TenurePolicy string `koanf:"tenure_policy"`

	// View, Format and Theme drive rendering.
	View   string `koanf:"view"`
	Format string `koanf:"format"`
	Theme  string `koanf:"theme"`

	// Color paints tier bands with ANSI escapes in table output.
	Color bool `koanf:"color"`

	// PageSize and Page select the grid page (1-based).
	PageSize int `koanf:"page_size"`
	Page     int `koanf:"page"`

	// TopN and TopField configure the leaderboard.
	TopN     int    `koanf:"top_n"`
	TopField string `koanf:"top_field"`

	// SortBy orders the grid by a column (name, email, department,
	// position, location, projectsCompleted, salary). Empty keeps dataset
	// order; SortDesc reverses it.
	SortBy   string `koanf:"sort_by"`
	SortDesc bool   `koanf:"sort_desc"`

	// Department and ActiveOnly filter records before aggregation.
	Department string `koanf:"department"`
	ActiveOnly bool   `koanf:"active_only"`

	// Watch re-renders whenever the dataset file changes.
	Watch bool `koanf:"watch"`

	// MetricsFile receives a Prometheus text dump on exit when set.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		TenurePolicy: "clamp",
		View:         "all",
		Format:       "table",
		Theme:        "light",
		PageSize:     10,
		Page:         1,
		TopN:         3,
		TopField:     "salary",
	}
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	switch {
	case c.PageSize < 1:
		return fmt.Errorf("%w: page_size must be positive, got %d", ErrInvalidConfig, c.PageSize)
	case c.Page < 1:
		return fmt.Errorf("%w: page must be positive, got %d", ErrInvalidConfig, c.Page)
	case c.TopN < 0:
		return fmt.Errorf("%w: top_n must not be negative, got %d", ErrInvalidConfig, c.TopN)
	case c.CurrentYear < 0:
		return fmt.Errorf("%w: current_year must not be negative, got %d", ErrInvalidConfig, c.CurrentYear)
	case c.Watch && c.Dataset == "":
		return fmt.Errorf("%w: watch requires a dataset file", ErrInvalidConfig)
	}

	checks := []struct {
		key, val string
		allowed  []string
	}{
		{"view", c.View, views},
		{"format", c.Format, formats},
		{"theme", c.Theme, themes},
		{"log_format", c.LogFormat, logFormats},
		{"tenure_policy", c.TenurePolicy, tenurePolicies},
	}
	for _, ch := range checks {
		if !oneOf(ch.val, ch.allowed) {
			return fmt.Errorf("%w: %s must be one of %s, got %q",
				ErrInvalidConfig, ch.key, strings.Join(ch.allowed, "|"), ch.val)
		}
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
