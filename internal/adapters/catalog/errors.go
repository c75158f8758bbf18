package catalog

import "errors"

// Sentinel errors for catalog loading.
var (
	ErrDecode      = errors.New("catalog: decode failed")
	ErrInvalidLure = errors.New("catalog: invalid lure")
	ErrDuplicateID = errors.New("catalog: duplicate lure id")
)
