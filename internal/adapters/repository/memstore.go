package repository

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/empdash/internal/domain/employee"
	"github.com/okian/empdash/pkg/metrics"
)

// MemoryStore keeps the current snapshot behind an atomic pointer so reads
// never block on a reload.
type MemoryStore struct {
	mu      sync.Mutex // serialises writers
	version uint64
	now     func() time.Time

	snapshot atomic.Pointer[Snapshot]
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Replace implements Store.
func (s *MemoryStore) Replace(ctx context.Context, source string, records []employee.Enriched, failures []employee.Failure) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.version++
	snap := &Snapshot{
		Version:  s.version,
		Source:   source,
		LoadedAt: s.now(),
		Records:  cloneRecords(records),
		Failures: slices.Clone(failures),
	}
	s.snapshot.Store(snap)

	metrics.UpdateDatasetRecords(len(snap.Records))
	metrics.RecordDatasetReload()
	return snap, nil
}

// cloneRecords deep-copies records so a published snapshot shares no
// slices with the caller.
func cloneRecords(records []employee.Enriched) []employee.Enriched {
	out := slices.Clone(records)
	for i := range out {
		out[i].Skills = slices.Clone(out[i].Skills)
	}
	return out
}

// Current implements Store.
func (s *MemoryStore) Current(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap := s.snapshot.Load()
	if snap == nil {
		return nil, ErrNoSnapshot
	}
	return snap, nil
}

// Count implements Store.
func (s *MemoryStore) Count(_ context.Context) int {
	return s.snapshot.Load().Len()
}
