// Package repository holds the lure catalog the service recommends from.
package repository

import (
	"context"

	"github.com/okian/lurespread/internal/domain/model"
)

// Catalog is an immutable, versioned view of the lure catalog.
// Lures must be treated as read only; they are shared between readers.
type Catalog struct {
	Version uint64
	Lures   []model.Lure
	byID    map[string]int
}

// Len returns the number of lures.
func (c Catalog) Len() int { return len(c.Lures) }

// Store provides read access to the current catalog and atomic replacement.
type Store interface {
	// Replace swaps the whole catalog and returns its new version.
	// Returns ErrDuplicateID when two lures share an id.
	Replace(ctx context.Context, lures []model.Lure) (uint64, error)

	// Snapshot returns the current catalog. It never blocks writers.
	Snapshot(ctx context.Context) Catalog

	// Get returns one lure by id.
	// Returns ErrNotFound if the id is unknown.
	Get(ctx context.Context, id string) (model.Lure, error)

	// Count returns the number of lures in the current catalog.
	Count(ctx context.Context) int
}
