package service

import (
	"context"

	"github.com/okian/empdash/internal/adapters/repository"
	"github.com/okian/empdash/internal/domain/enrich"
	"github.com/okian/empdash/internal/domain/report"
	"github.com/okian/empdash/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore replaces the in-memory snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithDataset sets the dataset file. Empty selects the embedded dataset.
func WithDataset(path string) Option {
	return func(s *Service) {
		s.dataset = path
	}
}

// WithCurrentYear sets the reference year for tenure. Zero keeps the
// calendar year.
func WithCurrentYear(year int) Option {
	return func(s *Service) {
		if year > 0 {
			s.currentYear = year
		}
	}
}

// WithTenurePolicy sets how same-year hires are treated.
func WithTenurePolicy(p enrich.TenurePolicy) Option {
	return func(s *Service) {
		if p != "" {
			s.policy = p
		}
	}
}

// WithReportBuilder replaces the dashboard builder.
func WithReportBuilder(b *report.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithReloadHook registers a callback run after every successful watch
// reload.
func WithReloadHook(hook func(ctx context.Context, snap *repository.Snapshot)) Option {
	return func(s *Service) {
		s.onReload = hook
	}
}
