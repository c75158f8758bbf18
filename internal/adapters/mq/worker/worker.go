// Package worker runs queued recommendation jobs through the engine.
package worker

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/okian/lurespread/internal/adapters/mq/queue"
	"github.com/okian/lurespread/internal/domain/engine"
	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/pkg/logger"
	"github.com/okian/lurespread/pkg/metrics"
)

const (
	workerShutdownTimeout = 5 * time.Second
	poolShutdownTimeout   = 30 * time.Second
)

// Runner produces a spread for one set of conditions.
type Runner interface {
	Run(ctx context.Context, c model.Conditions, catalog []model.Lure) (engine.Result, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes jobs and replies on each job's channel.
type Worker interface {
	// Run starts the worker loop until ctx is canceled.
	Run(ctx context.Context)

	// Shutdown stops the worker and answers any job it can still see with ErrStopped.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue  Queue
	runner Runner
	name   string
	active *atomic.Int64

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, runner Runner, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:    q,
		runner:   runner,
		name:     "worker",
		active:   &atomic.Int64{},
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop. It returns when the queue is closed and drained,
// when ctx is cancelled or on Shutdown.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			w.drain(jobs)
			return
		case <-w.shutdown:
			w.drain(jobs)
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.process(j)
		}
	}
}

// Shutdown gracefully stops the worker.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// drain answers whatever is immediately available so no caller waits on a dead worker.
func (w *InMemoryWorker) drain(jobs <-chan queue.Job) {
	for {
		select {
		case j, ok := <-jobs:
			if !ok {
				return
			}
			j.Respond(queue.Reply{Err: ErrStopped})
		default:
			return
		}
	}
}

// process runs one job. Jobs whose caller already gave up are answered without running the engine.
func (w *InMemoryWorker) process(j queue.Job) { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	start := time.Now()
	metrics.RecordQueueDequeue()
	metrics.RecordQueueWait(float64(start.Sub(j.Enqueued).Microseconds()) / 1000)

	metrics.UpdateWorkerActiveCount(int(w.active.Add(1)))
	defer func() {
		metrics.UpdateWorkerActiveCount(int(w.active.Add(-1)))
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Microseconds()) / 1000)
	}()

	ctx := j.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordErrorByComponent("worker", "expired_job")
		j.Respond(queue.Reply{Err: err})
		return
	}

	res, err := w.runner.Run(ctx, j.Conditions, j.Catalog)
	metrics.RecordEngineLatency(float64(time.Since(start).Microseconds()) / 1000)

	var engErr *engine.Error
	switch {
	case err == nil:
		w.logger.Debug(ctx, "job done",
			logger.String("job_id", j.ID),
			logger.Int("lines_filled", res.Spread.LinesFilled),
		)
	case errors.As(err, &engErr):
		// Engine rejections are answers, not worker faults.
	default:
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "engine_aborted")
		w.logger.Warn(ctx, "job aborted", logger.String("job_id", j.ID), logger.Error(err))
	}
	j.Respond(queue.Reply{Result: res, Err: err})
}

// Pool manages multiple workers sharing one queue.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	active  atomic.Int64
	logger  logger.Logger
}

// NewPool creates a pool; a count below one falls back to the number of CPUs.
func NewPool(workerCount int, q Queue, runner Runner) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		w := NewInMemoryWorker(q, runner, WithName("worker-"+strconv.Itoa(i)))
		w.active = &pool.active
		pool.workers[i] = w
	}

	metrics.UpdateWorkerCount(workerCount)
	metrics.UpdateWorkerActiveCount(0)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Active returns the number of workers currently running a job.
func (p *Pool) Active() int { return int(p.active.Load()) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue, lets workers drain it, and forces a stop once ctx
// or the pool timeout expires.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut bool
	for i, w := range p.workers {
		select {
		case <-w.done:
		case <-shutdownCtx.Done():
			timedOut = true
			p.logger.Warn(ctx, "worker drain timed out", logger.Int("worker_id", i))
		}
		if timedOut {
			break
		}
	}
	if !timedOut {
		return nil
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), workerShutdownTimeout)
	defer stopCancel()

	var firstErr error
	for _, w := range p.workers {
		if err := w.Shutdown(stopCtx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
