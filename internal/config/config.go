// Package config defines the service configuration and its defaults.
package config

import (
	"context"
	"runtime"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory recommendation queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of engine workers.
	WorkerCount int `koanf:"worker_count"`

	// CacheSize bounds the result cache; 0 disables it.
	CacheSize int `koanf:"cache_size"`

	// CatalogPath is the YAML lure catalog loaded at start.
	CatalogPath string `koanf:"catalog_path"`

	// CatalogReloadCron reloads the catalog on a cron schedule (seconds field first). Empty disables it.
	CatalogReloadCron string `koanf:"catalog_reload_cron"`

	// RequestTimeoutMS bounds how long a recommendation may wait for a worker.
	RequestTimeoutMS int `koanf:"request_timeout_ms"`

	// MaxLines caps the line count a caller may request.
	MaxLines int `koanf:"max_lines"`

	// ScoreThreshold is the minimum total score of a recommended lure.
	ScoreThreshold float64 `koanf:"score_threshold"`
}

// New returns a Config with defaults. The context is reserved for sources that need one.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		QueueSize:        1_024,
		WorkerCount:      runtime.NumCPU(),
		CacheSize:        4_096,
		CatalogPath:      "configs/catalog.yaml",
		RequestTimeoutMS: 2_000,
		MaxLines:         5,
		ScoreThreshold:   50,
	}
}
