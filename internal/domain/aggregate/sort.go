package aggregate

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/okian/empdash/internal/domain/employee"
)

// Column is a sortable grid column. The zero Column keeps input order.
type Column struct {
	Name    string
	Compare func(a, b employee.Enriched) int
}

// Sortable grid columns.
var (
	ByName       = textColumn("name", employee.Enriched.FullName)
	ByEmail      = textColumn("email", func(e employee.Enriched) string { return e.Email })
	ByDepartment = textColumn("department", func(e employee.Enriched) string { return e.Department })
	ByPosition   = textColumn("position", func(e employee.Enriched) string { return e.Position })
	ByLocation   = textColumn("location", func(e employee.Enriched) string { return e.Location })
	ByProjects   = fieldColumn(ProjectsCompleted)
	BySalary     = fieldColumn(Salary)
)

func textColumn(name string, get func(employee.Enriched) string) Column {
	return Column{Name: name, Compare: func(a, b employee.Enriched) int {
		return strings.Compare(get(a), get(b))
	}}
}

func fieldColumn(f Field) Column {
	return Column{Name: f.Name, Compare: func(a, b employee.Enriched) int {
		return cmp.Compare(f.Value(a), f.Value(b))
	}}
}

// Columns lists the sortable grid columns in display order.
func Columns() []Column {
	return []Column{ByName, ByEmail, ByDepartment, ByPosition, ByLocation, ByProjects, BySalary}
}

// ColumnByName resolves a column case-insensitively. Empty yields the zero
// Column.
func ColumnByName(name string) (Column, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return Column{}, nil
	}
	for _, c := range Columns() {
		if strings.ToLower(c.Name) == want {
			return c, nil
		}
	}
	return Column{}, fmt.Errorf("%w: sort column %q", ErrUnknownField, name)
}

// IsZero reports whether c leaves records in input order.
func (c Column) IsZero() bool { return c.Compare == nil }

// Sort returns a copy of records ordered by col, ascending unless
// descending is set. Equal values keep input order in both directions.
func Sort(records []employee.Enriched, col Column, descending bool) []employee.Enriched {
	sorted := slices.Clone(records)
	if col.IsZero() {
		return sorted
	}
	slices.SortStableFunc(sorted, func(a, b employee.Enriched) int {
		if descending {
			return col.Compare(b, a)
		}
		return col.Compare(a, b)
	})
	return sorted
}
