// Package aggregate rolls enriched employee records up into summaries and KPIs.
// Every function is pure and recomputes from its input.
package aggregate

import (
	"fmt"
	"slices"

	"github.com/okian/empdash/internal/domain/employee"
)

// Comparator reports whether a is a better candidate than b.
type Comparator func(a, b float64) bool

// Comparators for Extremum.
var (
	Greater Comparator = func(a, b float64) bool { return a > b }
	Less    Comparator = func(a, b float64) bool { return a < b }
)

// GroupByDepartment summarises records per department. Departments are
// ordered alphabetically.
func GroupByDepartment(records []employee.Enriched) []employee.DepartmentSummary {
	type acc struct {
		count                    int
		rating, salary, projects float64
	}
	grouped := make(map[string]*acc)
	for _, r := range records {
		a, ok := grouped[r.Department]
		if !ok {
			a = &acc{}
			grouped[r.Department] = a
		}
		a.count++
		a.rating += r.PerformanceRating
		a.salary += r.Salary
		a.projects += float64(r.ProjectsCompleted)
	}

	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	slices.Sort(names)

	out := make([]employee.DepartmentSummary, 0, len(names))
	for _, name := range names {
		a := grouped[name]
		n := float64(a.count)
		out = append(out, employee.DepartmentSummary{
			Department:     name,
			Count:          a.count,
			AvgPerformance: a.rating / n,
			AvgSalary:      a.salary / n,
			AvgProjects:    a.projects / n,
		})
	}
	return out
}

// GroupByTier counts records per tier. The result always holds the four
// tiers, best first, including empty ones.
func GroupByTier(records []employee.Enriched) []employee.TierSummary {
	counts := make(map[employee.Tier]int, len(employee.Tiers()))
	for _, r := range records {
		counts[r.Tier]++
	}
	out := make([]employee.TierSummary, 0, len(employee.Tiers()))
	for _, t := range employee.Tiers() {
		out = append(out, employee.TierSummary{Tier: t, Count: counts[t]})
	}
	return out
}

// TopN returns up to n records with the largest field value, descending.
// Ties keep input order.
func TopN(records []employee.Enriched, field Field, n int) ([]employee.Enriched, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLimit, n)
	}
	sorted := Sort(records, fieldColumn(field), true)
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted, nil
}

// Extremum returns the record whose field value is best according to
// better. On ties the latest record wins.
func Extremum(records []employee.Enriched, field Field, better Comparator) (employee.Enriched, error) {
	if len(records) == 0 {
		return employee.Enriched{}, fmt.Errorf("extremum of %s: %w", field.Name, ErrEmptyInput)
	}
	best := records[0]
	bestV := field.Value(best)
	for _, r := range records[1:] {
		if v := field.Value(r); !better(bestV, v) {
			best, bestV = r, v
		}
	}
	return best, nil
}

// Max returns the record with the largest field value.
func Max(records []employee.Enriched, field Field) (employee.Enriched, error) {
	return Extremum(records, field, Greater)
}

// Min returns the record with the smallest field value.
func Min(records []employee.Enriched, field Field) (employee.Enriched, error) {
	return Extremum(records, field, Less)
}

// Mean returns the arithmetic mean of field across records.
func Mean(records []employee.Enriched, field Field) (float64, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("mean of %s: %w", field.Name, ErrEmptyInput)
	}
	var total float64
	for _, r := range records {
		total += field.Value(r)
	}
	return total / float64(len(records)), nil
}
