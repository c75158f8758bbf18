package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

// Environment variable names.
const (
	EnvPrefix = "LURESPREAD_"
	EnvFile   = EnvPrefix + "CONFIG"
	maxLines  = 5
)

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New)
//  2. YAML file when LURESPREAD_CONFIG is set
//  3. env (prefix LURESPREAD_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// LURESPREAD_QUEUE_SIZE -> queue_size; underscores are kept to match the koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot fix on its own.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.MaxLines < 1 || c.MaxLines > maxLines {
		return fmt.Errorf("%w: max_lines must be between 1 and %d", ErrInvalidConfig, maxLines)
	}
	if c.QueueSize < 1 || c.WorkerCount < 1 {
		return fmt.Errorf("%w: queue_size and worker_count must be positive", ErrInvalidConfig)
	}
	if c.CatalogReloadCron != "" {
		if _, err := cron.NewParser(cronSpec).Parse(c.CatalogReloadCron); err != nil {
			return fmt.Errorf("%w: catalog_reload_cron: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// cronSpec matches cron.WithSeconds: six fields plus descriptors.
const cronSpec = cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor
