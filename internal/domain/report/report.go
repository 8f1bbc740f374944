// Package report turns enriched records into the dashboard view model:
// KPI insights, chart series, a leaderboard and a paginated grid.
package report

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/okian/empdash/internal/domain/aggregate"
	"github.com/okian/empdash/internal/domain/employee"
)

// Input is the dataset a dashboard is built from.
type Input struct {
	Source      string
	Version     uint64
	CurrentYear int
	Records     []employee.Enriched
	Failures    []employee.Failure
}

// Dashboard is a fully computed dashboard. Sections outside the query's
// view are nil. Insights is also nil when the filter leaves no records.
type Dashboard struct {
	ID          string    `json:"id" yaml:"id"`
	GeneratedAt time.Time `json:"generatedAt" yaml:"generatedAt"`
	View        View      `json:"view" yaml:"view"`
	Source      string    `json:"source" yaml:"source"`
	Version     uint64    `json:"version" yaml:"version"`
	CurrentYear int       `json:"currentYear" yaml:"currentYear"`

	Filter  FilterSummary `json:"filter" yaml:"filter"`
	Total   int           `json:"total" yaml:"total"`
	Dataset int           `json:"dataset" yaml:"dataset"`

	Insights    *Insights    `json:"insights,omitempty" yaml:"insights,omitempty"`
	Charts      *Charts      `json:"charts,omitempty" yaml:"charts,omitempty"`
	Leaderboard *Leaderboard `json:"leaderboard,omitempty" yaml:"leaderboard,omitempty"`
	Grid        *Grid        `json:"grid,omitempty" yaml:"grid,omitempty"`

	Skipped []employee.Failure `json:"skipped,omitempty" yaml:"skipped,omitempty"`
}

// FilterSummary echoes the filter that was applied.
type FilterSummary struct {
	Department string        `json:"department,omitempty" yaml:"department,omitempty"`
	Tier       employee.Tier `json:"tier,omitempty" yaml:"tier,omitempty"`
	ActiveOnly bool          `json:"activeOnly,omitempty" yaml:"activeOnly,omitempty"`
}

// Builder assembles dashboards.
type Builder struct {
	newID func() string
	now   func() time.Time
}

// NewBuilder creates a Builder that stamps dashboards with a random UUID
// and the wall clock.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{newID: uuid.NewString, now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build computes the dashboard for in under q. Every number is recomputed
// from in.Records; nothing is cached between calls.
func (b *Builder) Build(ctx context.Context, in Input, q Query) (*Dashboard, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if q.View == "" {
		q.View = ViewAll
	}

	records := q.Filter.Apply(in.Records)

	d := &Dashboard{
		ID:          b.newID(),
		GeneratedAt: b.now(),
		View:        q.View,
		Source:      in.Source,
		Version:     in.Version,
		CurrentYear: in.CurrentYear,
		Filter: FilterSummary{
			Department: q.Filter.Department,
			Tier:       q.Filter.Tier,
			ActiveOnly: q.Filter.ActiveOnly,
		},
		Total:   len(records),
		Dataset: len(in.Records),
		Skipped: in.Failures,
	}

	if q.View.ShowsAnalytics() {
		insights, err := BuildInsights(records)
		switch {
		case err == nil:
			d.Insights = &insights
		case !errors.Is(err, aggregate.ErrEmptyInput):
			return nil, err
		}

		charts := BuildCharts(records)
		d.Charts = &charts

		lb, err := BuildLeaderboard(records, q.TopField, q.TopN)
		if err != nil {
			return nil, err
		}
		d.Leaderboard = &lb
	}

	if q.View.ShowsGrid() {
		grid := Paginate(aggregate.Sort(records, q.Sort, q.Descending), q.Page, q.PageSize)
		if !q.Sort.IsZero() {
			grid.SortBy, grid.Descending = q.Sort.Name, q.Descending
		}
		d.Grid = &grid
	}

	return d, nil
}
