// Package enrich derives analytical fields from raw employee records.
package enrich

import (
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/okian/empdash/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// Weights and precision of the derived fields.
const (
	projectWeight = "0.4"
	ratingWeight  = "0.6"
	salaryUnit    = 1000

	efficiencyPlaces = 2
	promotionPlaces  = 2
	costPlaces       = 3

	yearDigits = 4
)

var (
	projectW = decimal.RequireFromString(projectWeight)
	ratingW  = decimal.RequireFromString(ratingWeight)
)

// Result holds the enriched records, in input order, and the records that
// were skipped.
type Result struct {
	Records  []employee.Enriched
	Failures []employee.Failure
}

// Deriver maps employee records onto enriched records. It holds only its
// configuration and is safe for concurrent use.
type Deriver struct {
	currentYear int
	policy      TenurePolicy
}

// NewDeriver creates a Deriver. The reference year defaults to the current
// calendar year and the tenure policy to TenureClamp.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{
		currentYear: time.Now().Year(),
		policy:      TenureClamp,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// CurrentYear returns the reference year.
func (d *Deriver) CurrentYear() int { return d.currentYear }

// Policy returns the same-year hire policy.
func (d *Deriver) Policy() TenurePolicy { return d.policy }

// Derive enriches every record. A malformed record is reported in
// Result.Failures and does not stop the rest of the batch.
func (d *Deriver) Derive(records []employee.Record) Result {
	res := Result{Records: make([]employee.Enriched, 0, len(records))}
	for i, r := range records {
		e, err := d.enrich(r)
		if err != nil {
			res.Failures = append(res.Failures, employee.NewFailure(i, r, &RecordError{Index: i, Email: r.Email, Err: err}))
			continue
		}
		res.Records = append(res.Records, e)
	}
	return res
}

// DeriveOne enriches a single record. Errors match ErrMalformedRecord.
func (d *Deriver) DeriveOne(r employee.Record) (employee.Enriched, error) {
	e, err := d.enrich(r)
	if err != nil {
		return employee.Enriched{}, &RecordError{Email: r.Email, Err: err}
	}
	return e, nil
}

// Derive enriches records against currentYear using the clamp policy.
func Derive(records []employee.Record, currentYear int) Result {
	return NewDeriver(WithCurrentYear(currentYear)).Derive(records)
}

func (d *Deriver) enrich(r employee.Record) (employee.Enriched, error) {
	if !finite(r.PerformanceRating) || !finite(r.Salary) {
		return employee.Enriched{}, ErrNonFiniteValue
	}
	if r.Salary <= 0 {
		return employee.Enriched{}, ErrNonPositiveSalary
	}

	hireYear, err := HireYear(r.HireDate)
	if err != nil {
		return employee.Enriched{}, err
	}
	years, err := d.tenure(hireYear)
	if err != nil {
		return employee.Enriched{}, err
	}

	rating := decimal.NewFromFloat(r.PerformanceRating)
	salary := decimal.NewFromFloat(r.Salary)
	projects := decimal.NewFromInt(int64(r.ProjectsCompleted))

	out := employee.Enriched{
		Record:          r,
		EfficiencyScore: rating.Div(decimal.NewFromInt(int64(years))).Round(efficiencyPlaces),
		PromotionScore:  projects.Mul(projectW).Add(rating.Mul(ratingW)).Round(promotionPlaces),
		CostEfficiency:  rating.Mul(decimal.NewFromInt(salaryUnit)).Div(salary).Round(costPlaces),
		Tier:            employee.TierFor(r.PerformanceRating),
	}
	out.Skills = slices.Clone(r.Skills)
	return out, nil
}

func (d *Deriver) tenure(hireYear int) (int, error) {
	years := d.currentYear - hireYear
	switch {
	case years < 0:
		return 0, ErrFutureHire
	case years == 0 && d.policy == TenureReject:
		return 0, ErrSameYearHire
	case years == 0:
		return 1, nil
	}
	return years, nil
}

// HireYear extracts the year from the leading four digits of a hire date
// such as "2019-04-12". A fifth digit is rejected.
func HireYear(hireDate string) (int, error) {
	if len(hireDate) < yearDigits {
		return 0, ErrInvalidHireDate
	}
	for i := 0; i < yearDigits; i++ {
		if hireDate[i] < '0' || hireDate[i] > '9' {
			return 0, ErrInvalidHireDate
		}
	}
	if len(hireDate) > yearDigits && hireDate[yearDigits] >= '0' && hireDate[yearDigits] <= '9' {
		return 0, ErrInvalidHireDate
	}
	year, err := strconv.Atoi(hireDate[:yearDigits])
	if err != nil {
		return 0, ErrInvalidHireDate
	}
	return year, nil
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
