// Package memo caches engine results per catalog version and conditions.
package memo

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"sync/atomic"

	"github.com/zeebo/xxh3"

	"github.com/okian/lurespread/internal/domain/engine"
	"github.com/okian/lurespread/internal/domain/model"
)

// Cache stores results keyed by Key. Implementations return deep copies.
type Cache interface {
	// Get returns the cached result for k, if any.
	Get(ctx context.Context, k Key) (engine.Result, bool)

	// Put records r under k, evicting the oldest entry when full.
	Put(ctx context.Context, k Key, r engine.Result)

	Size() int64
}

// Key identifies one engine input. Sum buckets the entry; the canonical
// encoding is compared on every hit so a hash collision is a miss.
type Key struct {
	Sum       uint64
	canonical string
}

// NewKey hashes a catalog version and the conditions into a cache key.
// Two requests map to equal keys only when every engine input matches.
func NewKey(version uint64, c *model.Conditions) Key {
	buf := make([]byte, 0, 128)
	buf = binary.LittleEndian.AppendUint64(buf, version)
	for _, f := range []float64{c.WaterDepth, c.BoatSpeed, float64(c.Lines)} {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
	}
	for _, s := range []string{
		string(c.Zone), string(c.TimeOfDay), string(c.Light), string(c.Turbidity),
		string(c.SeaState), string(c.Tide), string(c.Moon), string(c.Species), string(c.Profile),
	} {
		buf = append(buf, s...)
		buf = append(buf, 0)
	}
	return Key{Sum: xxh3.Hash(buf), canonical: string(buf)}
}

type entry struct {
	canonical string
	result    engine.Result
}

// inMemoryCache is a bounded map with FIFO eviction over a ring of sums.
// maxSize <= 0 disables caching entirely.
type inMemoryCache struct {
	mu      sync.Mutex
	entries map[uint64]entry
	ring    []uint64
	next    int
	maxSize int
	size    atomic.Int64
}

// NewInMemoryCache creates a cache with configuration options.
func NewInMemoryCache(opts ...Option) Cache {
	c := &inMemoryCache{maxSize: 1024}
	for _, opt := range opts {
		opt(c)
	}
	if c.maxSize > 0 {
		c.entries = make(map[uint64]entry, c.maxSize)
		c.ring = make([]uint64, 0, c.maxSize)
	}
	return c
}

func (c *inMemoryCache) Get(_ context.Context, k Key) (engine.Result, bool) {
	if c.maxSize <= 0 {
		return engine.Result{}, false
	}
	c.mu.Lock()
	e, ok := c.entries[k.Sum]
	c.mu.Unlock()
	if !ok || e.canonical != k.canonical {
		return engine.Result{}, false
	}
	return e.result.Clone(), true
}

func (c *inMemoryCache) Put(_ context.Context, k Key, r engine.Result) {
	if c.maxSize <= 0 {
		return
	}
	e := entry{canonical: k.canonical, result: r.Clone()}

	c.mu.Lock()
	defer c.mu.Unlock()

	// A colliding sum is overwritten by the newer input.
	if _, exists := c.entries[k.Sum]; exists {
		c.entries[k.Sum] = e
		return
	}
	if len(c.ring) < c.maxSize {
		c.ring = append(c.ring, k.Sum)
	} else {
		delete(c.entries, c.ring[c.next])
		c.ring[c.next] = k.Sum
		c.next = (c.next + 1) % c.maxSize
	}
	c.entries[k.Sum] = e
	c.size.Store(int64(len(c.entries)))
}

func (c *inMemoryCache) Size() int64 { return c.size.Load() }
