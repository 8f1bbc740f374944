package repository

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/empdash/internal/domain/dedupe"
	"github.com/okian/empdash/internal/domain/employee"
)

// Format names a dataset encoding.
type Format string

// Supported dataset formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// DefaultSource labels snapshots built from the embedded dataset.
const DefaultSource = "embedded:employees.json"

// ParseFormat maps a format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("%w: %s has no extension", ErrUnsupportedFormat, path)
	}
	return ParseFormat(ext)
}

// Batch is the outcome of decoding one dataset. Rows counts every element
// read, so Rows == len(Records) + len(Failures).
type Batch struct {
	Rows      int
	Records   []employee.Record
	Positions []int // source row of each record
	Failures  []employee.Failure
}

// row is one decoded element before duplicate detection.
type row struct {
	rec employee.Record
	err error
}

// Decode reads a whole dataset from r. A document that cannot be parsed at
// all fails with ErrDecode; an element that cannot be turned into a Record,
// or repeats an employee already seen, becomes a Failure and the rest of
// the dataset is still returned.
func Decode(ctx context.Context, r io.Reader, format Format, opts ...DecodeOption) (Batch, error) {
	o := decodeOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return Batch{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	var rows []row
	switch format {
	case FormatJSON:
		rows, err = decodeJSON(data)
	case FormatYAML:
		rows, err = decodeYAML(data)
	case FormatCSV:
		rows, err = decodeCSV(data)
	default:
		return Batch{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return Batch{}, fmt.Errorf("%w: %s: %w", ErrDecode, format, err)
	}

	if o.deduper == nil {
		o.deduper = dedupe.NewInMemoryDeduper(dedupe.WithCapacity(len(rows)))
	}

	b := Batch{Rows: len(rows), Records: make([]employee.Record, 0, len(rows))}
	for i, rw := range rows {
		if err := ctx.Err(); err != nil {
			return Batch{}, err
		}
		if rw.err != nil {
			b.Failures = append(b.Failures, employee.NewFailure(i, rw.rec, fmt.Errorf("%w: %w", ErrDecodeRecord, rw.err)))
			continue
		}
		if key := rw.rec.Key(); key != "" && o.deduper.SeenAndRecord(ctx, key) {
			b.Failures = append(b.Failures, employee.NewFailure(i, rw.rec, fmt.Errorf("%w: %s", ErrDuplicateRecord, key)))
			continue
		}
		b.Records = append(b.Records, rw.rec)
		b.Positions = append(b.Positions, i)
	}
	return b, nil
}

// LoadFile decodes the dataset at path, choosing the format by extension.
func LoadFile(ctx context.Context, path string, opts ...DecodeOption) (Batch, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return Batch{}, err
	}
	f, err := os.Open(path)
	if err != nil {
		return Batch{}, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	defer func() { _ = f.Close() }()

	return Decode(ctx, f, format, opts...)
}

// Default decodes the dataset compiled into the binary.
func Default(ctx context.Context, opts ...DecodeOption) (Batch, error) {
	return Decode(ctx, bytes.NewReader(defaultDataset), FormatJSON, opts...)
}

// JSON accepts a top-level array or {"employees": [...]}.
func decodeJSON(data []byte) ([]row, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	var elems []json.RawMessage
	if data[0] == '{' {
		var doc map[string]json.RawMessage
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		list, ok := doc["employees"]
		if !ok {
			return nil, errors.New("object has no employees key")
		}
		if err := json.Unmarshal(list, &elems); err != nil {
			return nil, err
		}
	} else if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}

	rows := make([]row, len(elems))
	for i, raw := range elems {
		if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			rows[i].err = errors.New("null element")
			continue
		}
		rows[i].err = json.Unmarshal(raw, &rows[i].rec)
	}
	return rows, nil
}

// YAML accepts a top-level sequence or a mapping with an employees key.
func decodeYAML(data []byte) ([]row, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	seq := doc.Content[0]
	if seq.Kind == yaml.MappingNode {
		var found *yaml.Node
		for i := 0; i+1 < len(seq.Content); i += 2 {
			if seq.Content[i].Value == "employees" {
				found = seq.Content[i+1]
				break
			}
		}
		if found == nil {
			return nil, errors.New("mapping has no employees key")
		}
		seq = found
	}
	if seq.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("line %d: expected a sequence of employees", seq.Line)
	}

	rows := make([]row, len(seq.Content))
	for i, item := range seq.Content {
		if item.Kind != yaml.MappingNode {
			rows[i].err = fmt.Errorf("line %d: expected a mapping", item.Line)
			continue
		}
		rows[i].err = item.Decode(&rows[i].rec)
	}
	return rows, nil
}

// csvColumn assigns one CSV cell to a Record field.
type csvColumn func(r *employee.Record, v string) error

// csvColumns is keyed by the normalised header name.
var csvColumns = map[string]csvColumn{ //nolint:gochecknoglobals // static lookup table
	"id":         func(r *employee.Record, v string) error { r.ID = v; return nil },
	"firstname":  func(r *employee.Record, v string) error { r.FirstName = v; return nil },
	"lastname":   func(r *employee.Record, v string) error { r.LastName = v; return nil },
	"email":      func(r *employee.Record, v string) error { r.Email = v; return nil },
	"department": func(r *employee.Record, v string) error { r.Department = v; return nil },
	"position":   func(r *employee.Record, v string) error { r.Position = v; return nil },
	"location":   func(r *employee.Record, v string) error { r.Location = v; return nil },
	"hiredate":   func(r *employee.Record, v string) error { r.HireDate = v; return nil },
	"skills": func(r *employee.Record, v string) error {
		r.Skills = splitSkills(v)
		return nil
	},
	"isactive": func(r *employee.Record, v string) error {
		if v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		r.IsActive = b
		return err
	},
	"performancerating": func(r *employee.Record, v string) error {
		f, err := parseFloat(v)
		r.PerformanceRating = f
		return err
	},
	"salary": func(r *employee.Record, v string) error {
		f, err := parseFloat(v)
		r.Salary = f
		return err
	},
	"projectscompleted": func(r *employee.Record, v string) error {
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		r.ProjectsCompleted = n
		return err
	},
}

// CSV needs a header row; unknown columns are ignored. Skills are
// separated by ';' or '|'.
func decodeCSV(data []byte) ([]row, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV headers: %w", err)
	}

	setters := make([]csvColumn, len(headers))
	names := make([]string, len(headers))
	for i, h := range headers {
		names[i] = strings.TrimSpace(h)
		setters[i] = csvColumns[normaliseHeader(h)]
	}

	var rows []row
	for {
		cells, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var rw row
		switch {
		case err != nil:
			rw.err = err
		case len(cells) != len(headers):
			rw.err = fmt.Errorf("expected %d fields, got %d", len(headers), len(cells))
		default:
			for i, cell := range cells {
				if setters[i] == nil {
					continue
				}
				if err := setters[i](&rw.rec, strings.TrimSpace(cell)); err != nil {
					rw.err = fmt.Errorf("column %s: %w", names[i], err)
					break
				}
			}
		}
		rows = append(rows, rw)
	}
	return rows, nil
}

func normaliseHeader(h string) string {
	var b strings.Builder
	for _, c := range strings.ToLower(h) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func splitSkills(v string) []string {
	parts := strings.FieldsFunc(v, func(c rune) bool { return c == ';' || c == '|' })
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseFloat(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}
