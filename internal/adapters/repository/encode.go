package repository

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/okian/empdash/internal/domain/employee"
)

// csvHeader is the column order Encode writes; Decode accepts it back.
var csvHeader = []string{ //nolint:gochecknoglobals // static header
	"id", "firstName", "lastName", "email", "department", "position", "location",
	"isActive", "skills", "hireDate", "performanceRating", "salary", "projectsCompleted",
}

// Encode writes records in format so that Decode reads them back.
func Encode(w io.Writer, records []employee.Record, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case FormatCSV:
		return encodeCSV(w, records)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func encodeCSV(w io.Writer, records []employee.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range records {
		row := []string{
			r.ID, r.FirstName, r.LastName, r.Email, r.Department, r.Position, r.Location,
			strconv.FormatBool(r.IsActive),
			strings.Join(r.Skills, ";"),
			r.HireDate,
			strconv.FormatFloat(r.PerformanceRating, 'f', -1, 64),
			strconv.FormatFloat(r.Salary, 'f', -1, 64),
			strconv.Itoa(r.ProjectsCompleted),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
