// Package service wires the catalog, the result cache, the job queue and the
// engine workers into the operations the HTTP API and the CLIs call.
package service

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/okian/lurespread/internal/adapters/catalog"
	"github.com/okian/lurespread/internal/adapters/mq/queue"
	"github.com/okian/lurespread/internal/adapters/mq/worker"
	"github.com/okian/lurespread/internal/adapters/repository"
	"github.com/okian/lurespread/internal/domain/engine"
	"github.com/okian/lurespread/internal/domain/memo"
	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/pkg/logger"
	"github.com/okian/lurespread/pkg/metrics"
)

// Recommendation is the answer to one Recommend call.
type Recommendation struct {
	RequestID      string       `json:"request_id"`
	CatalogVersion uint64       `json:"catalog_version"`
	Cached         bool         `json:"cached"`
	Spread         model.Spread `json:"spread"`
	Stats          engine.Stats `json:"stats"`
}

// ReloadResult reports a catalog reload.
type ReloadResult struct {
	Version  uint64            `json:"version"`
	Lures    int               `json:"lures"`
	Warnings []catalog.Warning `json:"warnings,omitempty"`
}

// Service implements the API dependencies for the spread advisor.
type Service struct {
	mu sync.RWMutex

	// Core components
	store  repository.Store
	cache  memo.Cache
	queue  queue.Queue
	pool   *worker.Pool
	engine *engine.Engine
	cron   *cron.Cron

	// Configuration
	workerCount    int
	queueSize      int
	cacheSize      int
	catalogPath    string
	reloadSchedule string
	requestTimeout time.Duration
	maxLines       int
	threshold      float64

	// State
	started    bool
	reloadMu   sync.Mutex   // serializes catalog reloads
	lastReload atomic.Int64 // unix nanoseconds

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of engine workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of waiting recommendations.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithCacheSize sets the number of cached spreads; 0 disables caching.
func WithCacheSize(size int) Option {
	return func(s *Service) {
		if size >= 0 {
			s.cacheSize = size
		}
	}
}

// WithCatalogPath sets the YAML catalog loaded on Start and on reload.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		s.catalogPath = path
	}
}

// WithReloadSchedule reloads the catalog on a cron schedule with a seconds field.
func WithReloadSchedule(spec string) Option {
	return func(s *Service) {
		s.reloadSchedule = spec
	}
}

// WithRequestTimeout bounds queueing plus engine time of one recommendation.
func WithRequestTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.requestTimeout = d
		}
	}
}

// WithMaxLines caps the line count callers may request.
func WithMaxLines(n int) Option {
	return func(s *Service) {
		if n > 0 && n <= model.MaxLines {
			s.maxLines = n
		}
	}
}

// WithThreshold sets the minimum total score of a recommended lure.
func WithThreshold(t float64) Option {
	return func(s *Service) {
		s.threshold = t
	}
}

// WithStore injects a catalog store instead of the in-memory default.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:    runtime.NumCPU(),
		queueSize:      1024,
		cacheSize:      4096,
		requestTimeout: 2 * time.Second,
		maxLines:       model.MaxLines,
		threshold:      engine.DefaultThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start loads the catalog when a path is set, then starts the workers and the
// reload schedule. A catalog that fails to load aborts the start.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting spread advisor service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore(ctx)
	}
	if s.catalogPath != "" {
		if _, err := s.reload(ctx, s.store); err != nil {
			return err
		}
	}

	s.engine = engine.New(engine.WithThreshold(s.threshold))
	s.cache = memo.NewInMemoryCache(memo.WithMaxSize(s.cacheSize))
	q := queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.queue = q
	s.pool = worker.NewPool(s.workerCount, q, s.engine)
	s.pool.Start(ctx)

	if s.reloadSchedule != "" {
		s.cron = cron.New(cron.WithSeconds())
		store := s.store
		if _, err := s.cron.AddFunc(s.reloadSchedule, func() { s.scheduledReload(store) }); err != nil {
			_ = s.pool.Shutdown(ctx)
			return fmt.Errorf("register catalog reload: %w", err)
		}
		s.cron.Start()
	}

	s.started = true
	s.logger.Info(ctx, "spread advisor service started",
		logger.Int("workers", s.pool.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("cacheSize", s.cacheSize),
		logger.Int("lures", s.store.Count(ctx)),
		logger.String("reloadSchedule", s.reloadSchedule),
	)
	return nil
}

// Stop drains queued recommendations and stops the workers and the schedule.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping spread advisor service...")

	if s.cron != nil {
		<-s.cron.Stop().Done()
		s.cron = nil
	}
	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "spread advisor service stopped")
}

type runtimeDeps struct {
	store   repository.Store
	cache   memo.Cache
	queue   queue.Queue
	timeout time.Duration
	max     int
}

func (s *Service) deps() (runtimeDeps, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return runtimeDeps{}, ErrNotStarted
	}
	return runtimeDeps{
		store:   s.store,
		cache:   s.cache,
		queue:   s.queue,
		timeout: s.requestTimeout,
		max:     s.maxLines,
	}, nil
}

// Recommend returns a spread for the conditions against the current catalog.
// Identical conditions on an unchanged catalog are answered from the cache.
func (s *Service) Recommend(ctx context.Context, c model.Conditions) (Recommendation, error) {
	d, err := s.deps()
	if err != nil {
		return Recommendation{}, err
	}
	if c.Lines > d.max {
		metrics.RecordRecommendation("line_limit")
		return Recommendation{}, fmt.Errorf("%w: %d requested, limit %d", ErrLineLimit, c.Lines, d.max)
	}

	rec := Recommendation{RequestID: uuid.NewString()}
	snap := d.store.Snapshot(ctx)
	rec.CatalogVersion = snap.Version

	key := memo.NewKey(snap.Version, &c)
	if cached, ok := d.cache.Get(ctx, key); ok {
		metrics.RecordCacheHit()
		metrics.RecordRecommendation("ok")
		rec.Cached = true
		rec.Spread = cached.Spread
		rec.Stats = cached.Stats
		s.logger.Debug(ctx, "recommendation served from cache", logger.String("request_id", rec.RequestID))
		return rec, nil
	}
	metrics.RecordCacheMiss()

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	job := queue.NewJob(ctx, rec.RequestID, c, snap.Lures, snap.Version)
	if err := d.queue.Enqueue(ctx, job); err != nil {
		return rec, s.enqueueFailure(ctx, rec.RequestID, err)
	}

	var reply queue.Reply
	select {
	case reply = <-job.Reply:
	case <-ctx.Done():
		reply = queue.Reply{Err: ctx.Err()}
	}

	rec.Stats = reply.Result.Stats
	if reply.Err != nil {
		return rec, s.recommendFailure(ctx, rec.RequestID, &c, reply.Err)
	}

	rec.Spread = reply.Result.Spread
	d.cache.Put(ctx, key, reply.Result)
	metrics.UpdateCacheSize(int(d.cache.Size()))
	recordRun(&rec.Stats, rec.Spread.LinesFilled)

	s.logger.Info(ctx, "recommendation generated",
		logger.String("request_id", rec.RequestID),
		logger.String("zone", string(c.Zone)),
		logger.Int("lines", c.Lines),
		logger.Int("lines_filled", rec.Spread.LinesFilled),
		logger.Int("compatible", rec.Stats.Compatible),
		logger.Int("qualified", rec.Stats.Qualified),
		logger.Float64("best_score", rec.Stats.BestScore),
	)
	return rec, nil
}

func (s *Service) enqueueFailure(ctx context.Context, id string, err error) error {
	switch {
	case errors.Is(err, queue.ErrFull):
		metrics.RecordRecommendation("busy")
		s.logger.Warn(ctx, "recommendation rejected, queue full", logger.String("request_id", id))
		return ErrBusy
	case errors.Is(err, queue.ErrClosed):
		metrics.RecordRecommendation("stopped")
		return ErrNotStarted
	case errors.Is(err, context.DeadlineExceeded):
		metrics.RecordRecommendation("timeout")
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, context.Canceled):
		return s.cancelled(ctx, id, err)
	default:
		return err
	}
}

func (s *Service) recommendFailure(ctx context.Context, id string, c *model.Conditions, err error) error {
	var engErr *engine.Error
	switch {
	case errors.As(err, &engErr):
		metrics.RecordRecommendation(outcomeLabel(engErr))
		s.logger.Info(ctx, "recommendation rejected",
			logger.String("request_id", id),
			logger.String("zone", string(c.Zone)),
			logger.String("kind", outcomeLabel(engErr)),
			logger.String("reason", engErr.Reason),
		)
		return err
	case errors.Is(err, context.DeadlineExceeded):
		metrics.RecordRecommendation("timeout")
		metrics.RecordErrorByComponent("service", "timeout")
		s.logger.Warn(ctx, "recommendation timed out", logger.String("request_id", id))
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	case errors.Is(err, worker.ErrStopped):
		metrics.RecordRecommendation("stopped")
		return ErrNotStarted
	case errors.Is(err, context.Canceled):
		return s.cancelled(ctx, id, err)
	default:
		metrics.RecordErrorByComponent("service", "unexpected")
		s.logger.Error(ctx, "recommendation failed", logger.String("request_id", id), logger.Error(err))
		return err
	}
}

// cancelled is the caller walking away; it is counted as an outcome, not an error.
func (s *Service) cancelled(ctx context.Context, id string, err error) error {
	metrics.RecordRecommendation("cancelled")
	s.logger.Debug(ctx, "recommendation cancelled by caller", logger.String("request_id", id))
	return fmt.Errorf("%w: %w", ErrCancelled, err)
}

func outcomeLabel(e *engine.Error) string {
	switch {
	case errors.Is(e, engine.ErrInvalidConditions):
		return "invalid_conditions"
	case errors.Is(e, engine.ErrNoCompatibleLure):
		return "no_compatible_lure"
	case errors.Is(e, engine.ErrNoLureAboveThreshold):
		return "no_lure_above_threshold"
	default:
		return "engine_error"
	}
}

func recordRun(st *engine.Stats, filled int) {
	metrics.RecordRecommendation("ok")
	metrics.RecordCandidates("filter", st.Compatible)
	metrics.RecordCandidates("threshold", st.Qualified)
	metrics.RecordLinesFilled(filled)
	for reason, n := range st.Rejected {
		metrics.RecordRejections(string(reason), n)
	}
}

// Lures returns the current catalog. The slice is shared and must not be modified.
func (s *Service) Lures(ctx context.Context) (repository.Catalog, error) {
	d, err := s.deps()
	if err != nil {
		return repository.Catalog{}, err
	}
	return d.store.Snapshot(ctx), nil
}

// Lure returns one catalog entry.
func (s *Service) Lure(ctx context.Context, id string) (model.Lure, error) {
	d, err := s.deps()
	if err != nil {
		return model.Lure{}, err
	}
	return d.store.Get(ctx, id)
}

// ReloadCatalog re-reads the catalog file and swaps it in atomically. Requests
// in flight finish on the catalog they started with.
func (s *Service) ReloadCatalog(ctx context.Context) (ReloadResult, error) {
	d, err := s.deps()
	if err != nil {
		return ReloadResult{}, err
	}
	return s.reload(ctx, d.store)
}

// reload never takes s.mu, so Stop can wait on a scheduled reload while holding it.
func (s *Service) reload(ctx context.Context, store repository.Store) (ReloadResult, error) {
	s.reloadMu.Lock()
	defer s.reloadMu.Unlock()

	if s.catalogPath == "" {
		metrics.RecordCatalogReload("error")
		return ReloadResult{}, ErrNoCatalogPath
	}
	res, err := catalog.LoadFile(ctx, s.catalogPath)
	if err != nil {
		metrics.RecordCatalogReload("error")
		s.logger.Error(ctx, "catalog load failed", logger.String("path", s.catalogPath), logger.Error(err))
		return ReloadResult{}, err
	}
	version, err := store.Replace(ctx, res.Lures)
	if err != nil {
		metrics.RecordCatalogReload("error")
		return ReloadResult{}, err
	}
	for _, w := range res.Warnings {
		s.logger.Warn(ctx, "catalog warning", logger.String("lure", w.LureID), logger.String("warning", w.Message))
	}

	s.lastReload.Store(time.Now().UnixNano())
	metrics.RecordCatalogReload("ok")
	s.logger.Info(ctx, "catalog loaded",
		logger.String("path", s.catalogPath),
		logger.Int("lures", len(res.Lures)),
		logger.Int("version", int(version)),
	)
	return ReloadResult{Version: version, Lures: len(res.Lures), Warnings: res.Warnings}, nil
}

func (s *Service) scheduledReload(store repository.Store) {
	ctx := context.Background()
	if _, err := s.reload(ctx, store); err != nil {
		s.logger.Warn(ctx, "scheduled catalog reload failed", logger.Error(err))
	}
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueSize":      s.queueSize,
		"cacheSize":      s.cacheSize,
		"maxLines":       s.maxLines,
		"threshold":      s.threshold,
		"reloadSchedule": s.reloadSchedule,
	}

	if s.started {
		snap := s.store.Snapshot(ctx)
		queueLen := s.queue.Len(ctx)

		stats["queueLength"] = queueLen
		stats["activeWorkers"] = s.pool.Active()
		stats["cacheEntries"] = s.cache.Size()
		stats["catalogVersion"] = snap.Version
		stats["catalogSize"] = snap.Len()
		stats["species"] = speciesCoverage(snap.Lures)
		if ns := s.lastReload.Load(); ns > 0 {
			stats["lastReload"] = time.Unix(0, ns).UTC().Format(time.RFC3339)
		}
		if s.cron != nil {
			if entries := s.cron.Entries(); len(entries) > 0 {
				stats["nextReload"] = entries[0].Next.UTC().Format(time.RFC3339)
			}
		}

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateWorkerCount(s.pool.Size())
		metrics.UpdateCacheSize(int(s.cache.Size()))
	}
	return stats
}

// speciesCoverage counts catalog lures per declared species, sorted by name.
func speciesCoverage(lures []model.Lure) []map[string]any {
	counts := make(map[model.Species]int)
	for i := range lures {
		for _, sp := range lures[i].Species {
			counts[sp]++
		}
	}
	names := make([]string, 0, len(counts))
	for sp := range counts {
		names = append(names, string(sp))
	}
	sort.Strings(names)

	out := make([]map[string]any, 0, len(names))
	for _, n := range names {
		out = append(out, map[string]any{"species": n, "lures": counts[model.Species(n)]})
	}
	return out
}
