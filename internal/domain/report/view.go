package report

import (
	"fmt"
	"strings"

	"github.com/okian/empdash/internal/domain/aggregate"
)

// View selects which sections a dashboard carries.
type View string

// Supported views.
const (
	ViewAll       View = "all"
	ViewGrid      View = "grid"
	ViewAnalytics View = "analytics"
)

// ParseView maps a view name to a View. Empty selects ViewAll.
func ParseView(s string) (View, error) {
	switch v := View(strings.ToLower(strings.TrimSpace(s))); v {
	case "":
		return ViewAll, nil
	case ViewAll, ViewGrid, ViewAnalytics:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// ShowsGrid reports whether the view includes the employee grid.
func (v View) ShowsGrid() bool { return v == ViewAll || v == ViewGrid }

// ShowsAnalytics reports whether the view includes insights and charts.
func (v View) ShowsAnalytics() bool { return v == ViewAll || v == ViewAnalytics }

// Query describes one dashboard request.
type Query struct {
	View     View
	Filter   aggregate.Filter
	Page     int // 1-based
	PageSize int
	TopN     int
	TopField aggregate.Field

	// Sort orders the grid rows; the zero Column keeps dataset order.
	Sort       aggregate.Column
	Descending bool
}

// Default paging and leaderboard settings.
const (
	DefaultPageSize = 10
	DefaultTopN     = 3
)

// DefaultQuery shows everything, first page, top three earners.
func DefaultQuery() Query {
	return Query{
		View:     ViewAll,
		Page:     1,
		PageSize: DefaultPageSize,
		TopN:     DefaultTopN,
		TopField: aggregate.Salary,
	}
}

// Validate checks paging, view and the leaderboard field.
func (q Query) Validate() error {
	switch {
	case q.Page < 1:
		return fmt.Errorf("%w: page must be positive, got %d", ErrInvalidQuery, q.Page)
	case q.PageSize < 1:
		return fmt.Errorf("%w: page size must be positive, got %d", ErrInvalidQuery, q.PageSize)
	case q.TopN < 0:
		return fmt.Errorf("%w: top n: %w", ErrInvalidQuery, aggregate.ErrInvalidLimit)
	case q.TopField.Value == nil:
		return fmt.Errorf("%w: leaderboard field is not set", ErrInvalidQuery)
	}
	if _, err := ParseView(string(q.View)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidQuery, err)
	}
	return nil
}
