package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/okian/empdash/internal/domain/employee"
)

// Grid is one page of the employee table.
type Grid struct {
	Page       int       `json:"page" yaml:"page"`
	PageSize   int       `json:"pageSize" yaml:"pageSize"`
	TotalRows  int       `json:"totalRows" yaml:"totalRows"`
	TotalPages int       `json:"totalPages" yaml:"totalPages"`
	SortBy     string    `json:"sortBy,omitempty" yaml:"sortBy,omitempty"`
	Descending bool      `json:"descending,omitempty" yaml:"descending,omitempty"`
	Rows       []GridRow `json:"rows" yaml:"rows"`
}

// GridRow is the display form of one employee.
type GridRow struct {
	ID          string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name        string          `json:"name" yaml:"name"`
	Email       string          `json:"email" yaml:"email"`
	Department  string          `json:"department" yaml:"department"`
	Position    string          `json:"position" yaml:"position"`
	Location    string          `json:"location" yaml:"location"`
	Skills      string          `json:"skills" yaml:"skills"`
	Status      string          `json:"status" yaml:"status"`
	Performance PerformanceCell `json:"performance" yaml:"performance"`
	Projects    int             `json:"projects" yaml:"projects"`
	Salary      float64         `json:"salary" yaml:"salary"`
}

// PerformanceCell renders a rating as a label and a 0-100 bar.
type PerformanceCell struct {
	Valid   bool          `json:"valid" yaml:"valid"`
	Label   string        `json:"label" yaml:"label"`
	Percent float64       `json:"percent" yaml:"percent"`
	Band    employee.Tier `json:"band,omitempty" yaml:"band,omitempty"`
}

// Status labels.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
	NotAvailable   = "N/A"
)

// maxShownSkills is how many skills a grid cell lists before "+N more".
const maxShownSkills = 2

// SkillsLabel lists the first two skills and counts the rest.
func SkillsLabel(skills []string) string {
	if len(skills) <= maxShownSkills {
		return strings.Join(skills, ", ")
	}
	return fmt.Sprintf("%s +%d more", strings.Join(skills[:maxShownSkills], ", "), len(skills)-maxShownSkills)
}

// StatusLabel maps the active flag to its label.
func StatusLabel(active bool) string {
	if active {
		return StatusActive
	}
	return StatusInactive
}

// NewPerformanceCell renders a rating. A rating that is not a positive
// finite number yields an invalid cell labelled N/A.
func NewPerformanceCell(rating float64) PerformanceCell {
	if math.IsNaN(rating) || math.IsInf(rating, 0) || rating <= 0 {
		return PerformanceCell{Label: NotAvailable}
	}
	pct := math.Min(math.Max(rating/employee.MaxRating*100, 0), 100)
	return PerformanceCell{
		Valid:   true,
		Label:   decimal.NewFromFloat(rating).StringFixed(1),
		Percent: math.Round(pct*100) / 100,
		Band:    employee.TierFor(rating),
	}
}

// NewGridRow builds the display row for one record.
func NewGridRow(r employee.Enriched) GridRow {
	return GridRow{
		ID:          r.ID,
		Name:        r.FullName(),
		Email:       r.Email,
		Department:  r.Department,
		Position:    r.Position,
		Location:    r.Location,
		Skills:      SkillsLabel(r.Skills),
		Status:      StatusLabel(r.IsActive),
		Performance: NewPerformanceCell(r.PerformanceRating),
		Projects:    r.ProjectsCompleted,
		Salary:      r.Salary,
	}
}

// Paginate cuts records into pages of size and returns the requested
// 1-based page. A page past the end has no rows but keeps the totals.
func Paginate(records []employee.Enriched, page, size int) Grid {
	if size < 1 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	pages := len(records) / size
	if len(records)%size != 0 {
		pages++
	}
	g := Grid{
		Page:       page,
		PageSize:   size,
		TotalRows:  len(records),
		TotalPages: pages,
		Rows:       []GridRow{},
	}

	// Bounds are checked in pages so huge page numbers cannot overflow.
	if page > pages {
		return g
	}
	start := (page - 1) * size
	end := start + min(size, len(records)-start)
	for _, r := range records[start:end] {
		g.Rows = append(g.Rows, NewGridRow(r))
	}
	return g
}
