package report

import "time"

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithIDGenerator overrides how dashboard ids are minted.
func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// WithClock overrides the time stamped on dashboards.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}
