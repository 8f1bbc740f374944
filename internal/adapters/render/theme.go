package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/empdash/internal/domain/employee"
)

// Theme is the colour palette a dashboard is rendered with.
type Theme struct {
	Name       string `json:"name" yaml:"name"`
	Background string `json:"background" yaml:"background"`
	Surface    string `json:"surface" yaml:"surface"`
	Foreground string `json:"foreground" yaml:"foreground"`
	Accent     string `json:"accent" yaml:"accent"`
	Active     string `json:"active" yaml:"active"`
	Inactive   string `json:"inactive" yaml:"inactive"`

	Elite   string `json:"elite" yaml:"elite"`
	Strong  string `json:"strong" yaml:"strong"`
	Average string `json:"average" yaml:"average"`
	Low     string `json:"low" yaml:"low"`
}

// Band colours are shared by both themes.
const (
	colorElite   = "#10b981"
	colorStrong  = "#3b82f6"
	colorAverage = "#f59e0b"
	colorLow     = "#ef4444"
)

// Light is the grid's white theme.
func Light() Theme {
	return Theme{
		Name:       "light",
		Background: "#ffffff",
		Surface:    "#f9fafb",
		Foreground: "#111827",
		Accent:     "#2563eb",
		Active:     colorElite,
		Inactive:   colorLow,
		Elite:      colorElite,
		Strong:     colorStrong,
		Average:    colorAverage,
		Low:        colorLow,
	}
}

// Dark is the analytics page's dark theme.
func Dark() Theme {
	return Theme{
		Name:       "dark",
		Background: "#0d1117",
		Surface:    "#161b22",
		Foreground: "#ffffff",
		Accent:     "#00eaff",
		Active:     colorElite,
		Inactive:   colorLow,
		Elite:      colorElite,
		Strong:     colorStrong,
		Average:    colorAverage,
		Low:        colorLow,
	}
}

// ParseTheme resolves a theme by name. Empty selects Light.
func ParseTheme(name string) (Theme, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "light":
		return Light(), nil
	case "dark":
		return Dark(), nil
	default:
		return Theme{}, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}
}

// BandColor returns the colour of a tier. Unknown tiers get the foreground.
func (t Theme) BandColor(tier employee.Tier) string {
	switch tier {
	case employee.TierElite:
		return t.Elite
	case employee.TierStrong:
		return t.Strong
	case employee.TierAverage:
		return t.Average
	case employee.TierLow:
		return t.Low
	default:
		return t.Foreground
	}
}

// ansi wraps s in a 24-bit foreground colour escape. Malformed hex
// colours leave s untouched.
func ansi(hex, s string) string {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return s
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return s
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm%s\x1b[0m", v>>16, (v>>8)&0xff, v&0xff, s)
}
