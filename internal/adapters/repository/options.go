package repository

import (
	"time"

	"github.com/okian/empdash/internal/domain/dedupe"
)

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithClock overrides the time source stamped on snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// DecodeOption configures Decode, LoadFile and Default.
type DecodeOption func(*decodeOptions)

type decodeOptions struct {
	deduper dedupe.Deduper
}

// WithDeduper shares a Deduper across several decodes so that an employee
// appearing in two files is kept once.
func WithDeduper(d dedupe.Deduper) DecodeOption {
	return func(o *decodeOptions) {
		if d != nil {
			o.deduper = d
		}
	}
}

// WatchOption configures Watch.
type WatchOption func(*watchOptions)

type watchOptions struct {
	debounce time.Duration
}

// WithDebounce coalesces bursts of file events (editors often write a file
// in several steps) into one reload.
func WithDebounce(d time.Duration) WatchOption {
	return func(o *watchOptions) {
		if d >= 0 {
			o.debounce = d
		}
	}
}
