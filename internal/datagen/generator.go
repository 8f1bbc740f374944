// Package datagen generates synthetic employee datasets for demos and
// load tests.
package datagen

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/okian/empdash/internal/domain/employee"
	"github.com/okian/empdash/pkg/logger"
)

// ErrInvalidCount is returned for a negative record count.
var ErrInvalidCount = errors.New("record count must not be negative")

// Ranges of generated values.
const (
	minRatingTenths = 10 // 1.0
	maxRatingTenths = 50 // 5.0
	minSalary       = 40_000
	salaryStep      = 1_000
	salarySteps     = 120
	maxTenureYears  = 15
	maxProjects     = 50
	maxSkills       = 5
	activePercent   = 85
)

// Option applies a configuration option to the generator.
type Option func(*generator)

type generator struct {
	referenceYear int
	rng           *rand.Rand
}

// WithReferenceYear sets the year every hire date precedes.
func WithReferenceYear(year int) Option {
	return func(g *generator) {
		if year > 0 {
			g.referenceYear = year
		}
	}
}

// WithSeed makes every field except the id reproducible.
func WithSeed(seed uint64) Option {
	return func(g *generator) {
		g.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// Generate creates n employees with unique ids and e-mails, ratings on
// the 1.0-5.0 scale in 0.1 steps, positive salaries and hire years before
// the reference year.
func Generate(ctx context.Context, n int, opts ...Option) ([]employee.Record, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidCount, n)
	}
	g := &generator{
		referenceYear: time.Now().Year(),
		rng:           rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	for _, opt := range opts {
		opt(g)
	}

	logger.Get().Info(ctx, "generating employees", logger.Int("count", n), logger.Int("referenceYear", g.referenceYear))

	records := make([]employee.Record, n)
	for i := range records {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled after %d records: %w", i, err)
		}
		records[i] = g.record(i)
	}
	return records, nil
}

func (g *generator) pick(pool []string) string {
	return pool[g.rng.IntN(len(pool))]
}

func (g *generator) record(i int) employee.Record {
	first, last := g.pick(firstNames), g.pick(lastNames)
	dept := departments[g.rng.IntN(len(departments))]

	hireYear := g.referenceYear - 1 - g.rng.IntN(maxTenureYears)
	rating := float64(minRatingTenths+g.rng.IntN(maxRatingTenths-minRatingTenths+1)) / 10

	return employee.Record{
		ID:                uuid.NewString(),
		FirstName:         first,
		LastName:          last,
		Email:             fmt.Sprintf("%s.%s.%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
		Department:        dept.name,
		Position:          g.pick(dept.positions),
		Location:          g.pick(locations),
		IsActive:          g.rng.IntN(100) < activePercent,
		Skills:            g.skills(dept.skills),
		HireDate:          fmt.Sprintf("%04d-%02d-%02d", hireYear, 1+g.rng.IntN(12), 1+g.rng.IntN(28)),
		PerformanceRating: rating,
		Salary:            float64(minSalary + salaryStep*g.rng.IntN(salarySteps+1)),
		ProjectsCompleted: g.rng.IntN(maxProjects + 1),
	}
}

// skills draws one to five distinct skills from pool.
func (g *generator) skills(pool []string) []string {
	n := 1 + g.rng.IntN(min(maxSkills, len(pool)))
	out := make([]string, 0, n)
	for _, idx := range g.rng.Perm(len(pool))[:n] {
		out = append(out, pool[idx])
	}
	return out
}
