// Package queue carries recommendation jobs from callers to engine workers.
//
// Each job owns a buffered reply channel: the worker answers exactly once and
// never blocks, even when the caller already gave up waiting.
package queue

import (
	"context"
	"sync"
	"time"

	"github.com/okian/lurespread/internal/domain/engine"
	"github.com/okian/lurespread/internal/domain/model"
	"github.com/okian/lurespread/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Reply is the outcome of one job.
type Reply struct {
	Result engine.Result
	Err    error
}

// Job is one engine invocation. Catalog is a shared read-only snapshot.
type Job struct {
	ID         string
	Ctx        context.Context //nolint:containedctx // the caller's deadline travels with the job
	Conditions model.Conditions
	Catalog    []model.Lure
	Version    uint64
	Enqueued   time.Time
	Reply      chan Reply
}

// NewJob builds a job with a reply channel of capacity one.
func NewJob(ctx context.Context, id string, c model.Conditions, catalog []model.Lure, version uint64) Job {
	return Job{
		ID:         id,
		Ctx:        ctx,
		Conditions: c,
		Catalog:    catalog,
		Version:    version,
		Enqueued:   time.Now(),
		Reply:      make(chan Reply, 1),
	}
}

// Respond delivers the reply without blocking. Only the first call has effect.
func (j *Job) Respond(r Reply) {
	select {
	case j.Reply <- r:
	default:
	}
}

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a job. Returns ErrFull when at capacity and ErrClosed after Close.
	Enqueue(ctx context.Context, j Job) error

	// Dequeue returns the channel workers receive jobs from.
	// The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Job

	// Len returns the current number of queued jobs.
	Len(ctx context.Context) int

	// Close stops accepting jobs. Queued jobs stay readable.
	Close() error

	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	jobs     chan Job
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.jobs = make(chan Job, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a job to the queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, j Job) error { //nolint:gocritic // hugeParam: Job is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return err
	}

	select {
	case q.jobs <- j:
		metrics.RecordQueueEnqueue()
		q.publishSize()
		return nil
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return ErrFull
	}
}

// Dequeue returns the job channel. Every worker shares the same channel.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Job {
	return q.jobs
}

// Len returns the current number of queued jobs.
func (q *InMemoryQueue) Len(_ context.Context) int {
	return q.publishSize()
}

func (q *InMemoryQueue) publishSize() int {
	size := len(q.jobs)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
	return size
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.jobs)
	q.closed = true
	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
