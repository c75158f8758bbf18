package repository

import "errors"

// Sentinel kinds for catalog errors.
var (
	ErrNotFound    = errors.New("lure not found")
	ErrDuplicateID = errors.New("duplicate lure id")
)
