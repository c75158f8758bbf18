package repository

import "github.com/okian/lurespread/internal/domain/model"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithLures seeds the store with an initial catalog. Invalid seeds are ignored.
func WithLures(lures []model.Lure) Option {
	return func(s *MemoryStore) {
		s.seed = lures
	}
}
