// Package employee contains the employee records passed between layers.
package employee

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Record is a raw employee row as supplied by the dataset source.
// Field names mirror the dataset schema.
type Record struct {
	ID                string   `json:"id,omitempty" yaml:"id,omitempty"`
	FirstName         string   `json:"firstName" yaml:"firstName"`
	LastName          string   `json:"lastName" yaml:"lastName"`
	Email             string   `json:"email" yaml:"email"`
	Department        string   `json:"department" yaml:"department"`
	Position          string   `json:"position" yaml:"position"`
	Location          string   `json:"location" yaml:"location"`
	IsActive          bool     `json:"isActive" yaml:"isActive"`
	Skills            []string `json:"skills" yaml:"skills"`
	HireDate          string   `json:"hireDate" yaml:"hireDate"` // YYYY-MM-DD, only the year is used
	PerformanceRating float64  `json:"performanceRating" yaml:"performanceRating"`
	Salary            float64  `json:"salary" yaml:"salary"`
	ProjectsCompleted int      `json:"projectsCompleted" yaml:"projectsCompleted"`
}

// FullName returns "first last", trimmed.
func (r Record) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Key identifies a record for duplicate detection: the id when set,
// otherwise the lower-cased e-mail. A record with neither has no key and
// is never a duplicate.
func (r Record) Key() string {
	if id := strings.TrimSpace(r.ID); id != "" {
		return "id:" + id
	}
	if email := strings.ToLower(strings.TrimSpace(r.Email)); email != "" {
		return "email:" + email
	}
	return ""
}

// Enriched is a Record plus the derived analytical fields.
type Enriched struct {
	Record `yaml:",inline"`

	EfficiencyScore decimal.Decimal `json:"efficiencyScore" yaml:"efficiencyScore"` // 2 dp
	PromotionScore  decimal.Decimal `json:"promotionScore" yaml:"promotionScore"`   // 2 dp
	CostEfficiency  decimal.Decimal `json:"costEfficiency" yaml:"costEfficiency"`   // 3 dp
	Tier            Tier            `json:"tier" yaml:"tier"`
}

// DepartmentSummary rolls up the records of one department.
type DepartmentSummary struct {
	Department     string  `json:"department" yaml:"department"`
	Count          int     `json:"count" yaml:"count"`
	AvgPerformance float64 `json:"avgPerformance" yaml:"avgPerformance"`
	AvgSalary      float64 `json:"avgSalary" yaml:"avgSalary"`
	AvgProjects    float64 `json:"avgProjects" yaml:"avgProjects"`
}

// TierSummary counts the records that fall in a tier.
type TierSummary struct {
	Tier  Tier `json:"tier" yaml:"tier"`
	Count int  `json:"count" yaml:"count"`
}

// Failure describes a record that was skipped during loading or derivation.
type Failure struct {
	Index  int    `json:"index" yaml:"index"`
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Email  string `json:"email,omitempty" yaml:"email,omitempty"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

// NewFailure builds a Failure for the record at index.
func NewFailure(index int, r Record, err error) Failure {
	f := Failure{Index: index, ID: r.ID, Email: r.Email, Err: err}
	if err != nil {
		f.Reason = err.Error()
	}
	return f
}
