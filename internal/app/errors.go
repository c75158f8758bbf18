package service

import "errors"

// Sentinel errors returned by the service. Engine rejections pass through as *engine.Error.
var (
	ErrNotStarted    = errors.New("service not started")
	ErrBusy          = errors.New("recommendation queue is full")
	ErrTimeout       = errors.New("recommendation timed out")
	ErrCancelled     = errors.New("recommendation cancelled by caller")
	ErrLineLimit     = errors.New("requested lines above the configured limit")
	ErrNoCatalogPath = errors.New("no catalog path configured")
)
