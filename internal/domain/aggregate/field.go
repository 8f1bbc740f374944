package aggregate

import (
	"fmt"
	"strings"

	"github.com/okian/empdash/internal/domain/employee"
)

// Field is a typed accessor for one numeric column of an enriched record.
type Field struct {
	Name  string
	Value func(employee.Enriched) float64
}

// Numeric fields of an enriched record.
var (
	Salary = Field{Name: "salary", Value: func(e employee.Enriched) float64 {
		return e.Salary
	}}
	PerformanceRating = Field{Name: "performanceRating", Value: func(e employee.Enriched) float64 {
		return e.PerformanceRating
	}}
	ProjectsCompleted = Field{Name: "projectsCompleted", Value: func(e employee.Enriched) float64 {
		return float64(e.ProjectsCompleted)
	}}
	EfficiencyScore = Field{Name: "efficiencyScore", Value: func(e employee.Enriched) float64 {
		return e.EfficiencyScore.InexactFloat64()
	}}
	PromotionScore = Field{Name: "promotionScore", Value: func(e employee.Enriched) float64 {
		return e.PromotionScore.InexactFloat64()
	}}
	CostEfficiency = Field{Name: "costEfficiency", Value: func(e employee.Enriched) float64 {
		return e.CostEfficiency.InexactFloat64()
	}}
)

// Fields lists every numeric field.
func Fields() []Field {
	return []Field{Salary, PerformanceRating, ProjectsCompleted, EfficiencyScore, PromotionScore, CostEfficiency}
}

// FieldByName resolves a field by name, case-insensitively. It is meant for
// configuration and flag values only.
func FieldByName(name string) (Field, error) {
	want := strings.ToLower(strings.TrimSpace(name))
	for _, f := range Fields() {
		if strings.ToLower(f.Name) == want {
			return f, nil
		}
	}
	return Field{}, fmt.Errorf("%w: %q", ErrUnknownField, name)
}
