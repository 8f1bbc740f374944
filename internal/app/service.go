// Package service wires dataset loading, derivation, aggregation and
// rendering into the dashboard service used by the CLI.
package service

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"github.com/okian/empdash/internal/adapters/render"
	"github.com/okian/empdash/internal/adapters/repository"
	"github.com/okian/empdash/internal/domain/dedupe"
	"github.com/okian/empdash/internal/domain/employee"
	"github.com/okian/empdash/internal/domain/enrich"
	"github.com/okian/empdash/internal/domain/report"
	"github.com/okian/empdash/pkg/logger"
	"github.com/okian/empdash/pkg/metrics"
)

// Service owns the current dataset snapshot and builds dashboards from it.
type Service struct {
	mu sync.RWMutex
	// reloadMu serialises reloads; they share the deduper.
	reloadMu sync.Mutex

	// Core components
	store   repository.Store
	seen    dedupe.Deduper
	deriver *enrich.Deriver
	builder *report.Builder

	// Configuration
	dataset     string
	currentYear int
	policy      enrich.TenurePolicy
	onReload    func(ctx context.Context, snap *repository.Snapshot)

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		currentYear: time.Now().Year(),
		policy:      enrich.TenureClamp,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start builds the components and loads the dataset. A dataset that cannot
// be decoded at all fails Start; malformed records only end up as failures.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.builder == nil {
		s.builder = report.NewBuilder()
	}
	if s.seen == nil {
		s.seen = dedupe.NewInMemoryDeduper()
	}
	s.deriver = enrich.NewDeriver(
		enrich.WithCurrentYear(s.currentYear),
		enrich.WithTenurePolicy(s.policy),
	)
	deriver := s.deriver
	s.mu.Unlock()

	s.logger.Info(ctx, "starting dashboard service...",
		logger.String("dataset", s.sourceName()),
		logger.Int("currentYear", deriver.CurrentYear()),
		logger.String("tenurePolicy", string(deriver.Policy())),
	)

	if _, err := s.Reload(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	s.started = true
	s.mu.Unlock()

	s.logger.Info(ctx, "dashboard service started", logger.Int("records", s.store.Count(ctx)))
	return nil
}

// Stop marks the service as stopped. The last snapshot stays readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

func (s *Service) sourceName() string {
	if s.dataset == "" {
		return repository.DefaultSource
	}
	return s.dataset
}

// Reload decodes and derives the dataset from scratch and installs it as a
// new snapshot. On error the previous snapshot is kept.
func (s *Service) Reload(ctx context.Context) (*repository.Snapshot, error) {
	s.mu.RLock()
	deriver, store, seen := s.deriver, s.store, s.seen
	s.mu.RUnlock()
	if deriver == nil || store == nil {
		return nil, ErrNotStarted
	}

	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()
	seen.Reset(ctx)

	source := s.sourceName()
	var (
		batch repository.Batch
		err   error
	)
	if s.dataset == "" {
		batch, err = repository.Default(ctx, repository.WithDeduper(seen))
	} else {
		batch, err = repository.LoadFile(ctx, s.dataset, repository.WithDeduper(seen))
	}
	if err != nil {
		s.logger.Error(ctx, "failed to load dataset", logger.String("source", source), logger.Error(err))
		return nil, fmt.Errorf("load %s: %w", source, err)
	}
	metrics.RecordRecordsLoaded(batch.Rows)

	start := time.Now()
	res := deriver.Derive(batch.Records)
	metrics.RecordAggregationLatency("derive", float64(time.Since(start).Microseconds())/1000)
	metrics.RecordRecordsEnriched(len(res.Records))

	failures := s.collectFailures(ctx, batch, res)

	snap, err := store.Replace(ctx, source, res.Records, failures)
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "dataset loaded",
		logger.String("source", source),
		logger.Int("rows", batch.Rows),
		logger.Int("records", snap.Len()),
		logger.Int("skipped", len(snap.Failures)),
		logger.Any("version", snap.Version),
	)
	return snap, nil
}

// collectFailures merges decode and derivation failures, indexed by source
// row, and logs each one.
func (s *Service) collectFailures(ctx context.Context, batch repository.Batch, res enrich.Result) []employee.Failure {
	failures := slices.Clone(batch.Failures)
	for _, f := range res.Failures {
		pos := batch.Positions[f.Index]
		var re *enrich.RecordError
		if errors.As(f.Err, &re) {
			re.Index = pos
		}
		failures = append(failures, employee.NewFailure(pos, batch.Records[f.Index], f.Err))
	}
	slices.SortStableFunc(failures, func(a, b employee.Failure) int { return cmp.Compare(a.Index, b.Index) })

	for _, f := range failures {
		metrics.RecordRecordRejected(rejectReason(f.Err))
		s.logger.Warn(ctx, "skipping employee record",
			logger.Int("index", f.Index),
			logger.String("email", f.Email),
			logger.String("reason", f.Reason),
		)
	}
	return failures
}

// rejectReason maps a failure onto a low-cardinality metric label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, repository.ErrDuplicateRecord):
		return "duplicate"
	case errors.Is(err, repository.ErrDecodeRecord):
		return "decode"
	case errors.Is(err, enrich.ErrInvalidHireDate):
		return "hire_date"
	case errors.Is(err, enrich.ErrFutureHire):
		return "future_hire"
	case errors.Is(err, enrich.ErrSameYearHire):
		return "same_year_hire"
	case errors.Is(err, enrich.ErrNonPositiveSalary):
		return "salary"
	case errors.Is(err, enrich.ErrNonFiniteValue):
		return "non_finite"
	default:
		return "other"
	}
}

// Dashboard builds a dashboard from the current snapshot.
func (s *Service) Dashboard(ctx context.Context, q report.Query) (*report.Dashboard, error) {
	s.mu.RLock()
	store, builder := s.store, s.builder
	s.mu.RUnlock()
	if store == nil || builder == nil {
		return nil, ErrNotStarted
	}

	snap, err := store.Current(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	d, err := builder.Build(ctx, report.Input{
		Source:      snap.Source,
		Version:     snap.Version,
		CurrentYear: s.currentYear,
		Records:     snap.Records,
		Failures:    snap.Failures,
	}, q)
	if err != nil {
		return nil, err
	}
	metrics.RecordAggregationLatency("dashboard", float64(time.Since(start).Microseconds())/1000)
	return d, nil
}

// Render builds the dashboard for q and writes it with r.
func (s *Service) Render(ctx context.Context, w io.Writer, r render.Renderer, q report.Query) error {
	d, err := s.Dashboard(ctx, q)
	if err != nil {
		return err
	}

	start := time.Now()
	if err := r.Render(w, d); err != nil {
		return fmt.Errorf("render %s: %w", r.Format(), err)
	}
	metrics.RecordRenderLatency(string(r.Format()), float64(time.Since(start).Microseconds())/1000)

	s.logger.Debug(ctx, "dashboard rendered",
		logger.String("id", d.ID),
		logger.String("format", string(r.Format())),
		logger.String("view", string(d.View)),
		logger.Int("rows", d.Total),
	)
	return nil
}

// Watch reloads the dataset whenever its file changes, until ctx is
// cancelled. A failed reload keeps the previous snapshot.
func (s *Service) Watch(ctx context.Context) error {
	if s.dataset == "" {
		return ErrNoDatasetFile
	}
	return repository.Watch(ctx, s.dataset, func(ctx context.Context) {
		snap, err := s.Reload(ctx)
		if err != nil {
			s.logger.Error(ctx, "reload failed, keeping previous snapshot", logger.Error(err))
			return
		}
		if s.onReload != nil {
			s.onReload(ctx, snap)
		}
	})
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":      s.started,
		"dataset":      s.sourceName(),
		"currentYear":  s.currentYear,
		"tenurePolicy": string(s.policy),
	}

	if s.store != nil {
		ctx := context.Background()
		if snap, err := s.store.Current(ctx); err == nil {
			stats["records"] = snap.Len()
			stats["skipped"] = len(snap.Failures)
			stats["version"] = snap.Version
			stats["loadedAt"] = snap.LoadedAt
		}
	}

	return stats
}
