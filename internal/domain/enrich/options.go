package enrich

import (
	"fmt"
	"strings"
)

// TenurePolicy decides what happens to a record hired in the reference year,
// where years-since-hire is zero.
type TenurePolicy string

// Supported tenure policies.
const (
	// TenureClamp treats tenure as max(1, years).
	TenureClamp TenurePolicy = "clamp"
	// TenureReject reports same-year hires as malformed.
	TenureReject TenurePolicy = "reject"
)

// ParseTenurePolicy parses a policy name, case-insensitively. Empty means clamp.
func ParseTenurePolicy(s string) (TenurePolicy, error) {
	switch TenurePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", TenureClamp:
		return TenureClamp, nil
	case TenureReject:
		return TenureReject, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Option applies a configuration option to the Deriver.
type Option func(*Deriver)

// WithCurrentYear sets the reference year used to compute tenure.
func WithCurrentYear(year int) Option {
	return func(d *Deriver) {
		if year > 0 {
			d.currentYear = year
		}
	}
}

// WithTenurePolicy sets the same-year hire policy.
func WithTenurePolicy(p TenurePolicy) Option {
	return func(d *Deriver) {
		if p == TenureClamp || p == TenureReject {
			d.policy = p
		}
	}
}
