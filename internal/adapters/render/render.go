// Package render writes dashboards as a text report, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/empdash/internal/domain/report"
)

// Format names an output encoding.
type Format string

// Supported output formats.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat maps a format name to a Format. Empty selects FormatTable.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Renderer writes one dashboard to w.
type Renderer interface {
	Render(w io.Writer, d *report.Dashboard) error
	Format() Format
}

// New returns the renderer for format.
func New(format Format, theme Theme, opts ...Option) (Renderer, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatTable, "":
		return &tableRenderer{theme: theme, color: o.color, barWidth: o.effectiveBarWidth()}, nil
	case FormatJSON:
		return &jsonRenderer{theme: theme, indent: o.indent}, nil
	case FormatYAML:
		return &yamlRenderer{theme: theme}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// document is the machine-readable envelope: the dashboard plus the
// palette a client should draw it with.
type document struct {
	Theme            Theme `json:"theme" yaml:"theme"`
	report.Dashboard `yaml:",inline"`
}

type jsonRenderer struct {
	theme  Theme
	indent bool
}

func (r *jsonRenderer) Format() Format { return FormatJSON }

func (r *jsonRenderer) Render(w io.Writer, d *report.Dashboard) error {
	if d == nil {
		return ErrNilDashboard
	}
	enc := json.NewEncoder(w)
	if r.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(document{Theme: r.theme, Dashboard: *d}); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

type yamlRenderer struct {
	theme Theme
}

func (r *yamlRenderer) Format() Format { return FormatYAML }

func (r *yamlRenderer) Render(w io.Writer, d *report.Dashboard) error {
	if d == nil {
		return ErrNilDashboard
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(document{Theme: r.theme, Dashboard: *d}); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}
