package aggregate

import (
	"strings"

	"github.com/okian/empdash/internal/domain/employee"
)

// Filter narrows a record set before aggregation. Zero fields match everything.
type Filter struct {
	Department string
	Tier       employee.Tier
	ActiveOnly bool
}

// IsZero reports whether the filter matches every record.
func (f Filter) IsZero() bool {
	return f.Department == "" && f.Tier == "" && !f.ActiveOnly
}

// Match reports whether r passes the filter. Departments compare case-insensitively.
func (f Filter) Match(r employee.Enriched) bool {
	if f.Department != "" && !strings.EqualFold(f.Department, r.Department) {
		return false
	}
	if f.Tier != "" && f.Tier != r.Tier {
		return false
	}
	if f.ActiveOnly && !r.IsActive {
		return false
	}
	return true
}

// Apply returns the matching records in input order.
func (f Filter) Apply(records []employee.Enriched) []employee.Enriched {
	if f.IsZero() {
		return records
	}
	out := make([]employee.Enriched, 0, len(records))
	for _, r := range records {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
