// Package repository loads employee datasets and holds the current snapshot.
package repository

import (
	"context"
	"time"

	"github.com/okian/empdash/internal/domain/employee"
)

// Snapshot is an immutable view of one loaded dataset.
// Callers must not modify the slices.
type Snapshot struct {
	Version  uint64
	Source   string
	LoadedAt time.Time
	Records  []employee.Enriched
	Failures []employee.Failure
}

// Len returns the number of enriched records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Records)
}

// Store provides read/write access to the dataset snapshot.
type Store interface {
	// Replace installs a new snapshot built from records and failures and
	// returns it. Readers holding the previous snapshot are unaffected.
	Replace(ctx context.Context, source string, records []employee.Enriched, failures []employee.Failure) (*Snapshot, error)

	// Current returns the latest snapshot.
	// Returns ErrNoSnapshot before the first Replace.
	Current(ctx context.Context) (*Snapshot, error)

	// Count returns the number of records in the current snapshot.
	Count(ctx context.Context) int
}
