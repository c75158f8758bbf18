package loadtest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/lurespread/pkg/logger"
)

const (
	directoryPermission  = 0750
	percentageMultiplier = 100
)

// ErrNondeterministic is returned when a replayed request produced a different answer.
var ErrNondeterministic = errors.New("replayed request produced a different answer")

// Run executes the complete load test: health check, generation, concurrent
// submission with replay, and a summary.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Get().Named("loadtest")

	log.Info(ctx, "starting lure spread load test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("requests", config.NumRequests),
		logger.Int("workers", config.Workers),
		logger.Duration("timeout", config.Timeout),
	)

	client := newHTTPClient(config.Timeout)
	if err := checkServiceHealth(ctx, client, config.BaseURL); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	requests, err := generateRequests(ctx, config.NumRequests, stats)
	if err != nil {
		return stats, fmt.Errorf("request generation failed: %w", err)
	}

	submitAll(ctx, client, config, requests, stats)

	if config.OutputFile != "" {
		if err := saveRequests(config.OutputFile, requests); err != nil {
			log.Warn(ctx, "failed to save requests", logger.Error(err))
		}
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Mismatches > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrNondeterministic, stats.Mismatches, stats.Replayed)
	}
	return stats, nil
}

func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	resp, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	return nil
}

// submitAll posts every request twice from a worker pool and compares the outcomes.
func submitAll(ctx context.Context, client *HTTPClient, config *Config, requests []Request, stats *Stats) {
	url := config.BaseURL + "/recommendations"
	log := logger.Get().Named("loadtest")

	var submitted, spreads, rejections, failed, replayed, mismatches atomic.Int64

	work := make(chan Request, config.Workers*2)
	var wg sync.WaitGroup
	for range config.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for r := range work {
				first, err := recommend(ctx, client, url, r)
				submitted.Add(1)
				if err != nil {
					failed.Add(1)
					if config.Verbose {
						log.Warn(ctx, "request failed", logger.String("id", r.ID), logger.Error(err))
					}
					continue
				}
				switch {
				case first.Status == http.StatusOK:
					spreads.Add(1)
				case first.Status == http.StatusUnprocessableEntity:
					rejections.Add(1)
				default:
					// Backpressure and timeouts are not deterministic answers.
					failed.Add(1)
					continue
				}

				second, err := recommend(ctx, client, url, r)
				if err != nil {
					failed.Add(1)
					continue
				}
				replayed.Add(1)
				if second != first {
					mismatches.Add(1)
					log.Error(ctx, "replay mismatch",
						logger.String("id", r.ID),
						logger.String("first", first.Fingerprint),
						logger.String("second", second.Fingerprint),
					)
				}
			}
		}()
	}

	func() {
		defer close(work)
		for _, r := range requests {
			select {
			case <-ctx.Done():
				return
			case work <- r:
			}
		}
	}()
	wg.Wait()

	stats.Submitted = int(submitted.Load())
	stats.Spreads = int(spreads.Load())
	stats.Rejections = int(rejections.Load())
	stats.Failed = int(failed.Load())
	stats.Replayed = int(replayed.Load())
	stats.Mismatches = int(mismatches.Load())
}

func saveRequests(filename string, requests []Request) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(requests, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal requests: %w", err)
	}
	return os.WriteFile(filename, data, 0o600)
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Submitted-stats.Failed) / float64(stats.Submitted) * percentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted+stats.Replayed) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("generated", stats.Generated),
		logger.Int("submitted", stats.Submitted),
		logger.Int("spreads", stats.Spreads),
		logger.Int("rejections", stats.Rejections),
		logger.Int("failed", stats.Failed),
		logger.Int("replayed", stats.Replayed),
		logger.Int("mismatches", stats.Mismatches),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", perSecond),
	)
}
