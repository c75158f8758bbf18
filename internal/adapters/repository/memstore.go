package repository

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/pkg/metrics"
)

// MemoryStore keeps the catalog in memory as copy-on-write snapshots.
//
// Readers load the current snapshot pointer and never take a lock; Replace
// builds a fresh snapshot and swaps the pointer, so an engine run keeps the
// catalog it started with even when a reload lands mid-request.
type MemoryStore struct {
	mu       sync.Mutex // serializes writers
	snapshot atomic.Pointer[Catalog]
	version  uint64
	seed     []model.Lure
}

// NewMemoryStore constructs an empty store, or a seeded one when WithLures is given.
func NewMemoryStore(ctx context.Context, opts ...Option) *MemoryStore {
	s := &MemoryStore{}
	s.snapshot.Store(&Catalog{Lures: []model.Lure{}, byID: map[string]int{}})

	for _, opt := range opts {
		opt(s)
	}
	if s.seed != nil {
		_, _ = s.Replace(ctx, s.seed)
		s.seed = nil
	}
	return s
}

// Replace implements Store.Replace. The input slice is copied.
func (s *MemoryStore) Replace(_ context.Context, lures []model.Lure) (uint64, error) {
	byID := make(map[string]int, len(lures))
	own := make([]model.Lure, len(lures))
	for i := range lures {
		if _, dup := byID[lures[i].ID]; dup {
			metrics.RecordErrorByComponent("repository", "duplicate_id")
			return 0, fmt.Errorf("%w: %q", ErrDuplicateID, lures[i].ID)
		}
		byID[lures[i].ID] = i
		own[i] = lures[i].Clone()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.version++
	s.snapshot.Store(&Catalog{Version: s.version, Lures: own, byID: byID})

	metrics.UpdateCatalog(len(own), s.version)
	return s.version, nil
}

// Snapshot implements Store.Snapshot.
func (s *MemoryStore) Snapshot(_ context.Context) Catalog {
	return *s.snapshot.Load()
}

// Get implements Store.Get and returns a deep copy.
func (s *MemoryStore) Get(_ context.Context, id string) (model.Lure, error) {
	start := time.Now()
	defer func() {
		metrics.RecordCatalogLookupLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	c := s.snapshot.Load()
	i, ok := c.byID[id]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return model.Lure{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.Lures[i].Clone(), nil
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	return len(s.snapshot.Load().Lures)
}
