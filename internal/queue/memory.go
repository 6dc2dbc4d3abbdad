package queue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// Common errors returned by the in-memory queue
var (
	ErrQueueClosed = errors.New("queue is closed")
	ErrQueueFull   = errors.New("queue is full")
)

// Reader provides read-only access to the job channel, allowing a consumer
// to drain jobs without the ability to enqueue.
type Reader interface {
	// GetChannel returns a read-only channel for consuming job envelopes.
	GetChannel() <-chan *Envelope
}

// MemoryQueue is a buffered in-process queue that satisfies both Producer
// and Reader. It backs tests and queue-disabled deployments where no Redis
// broker is available; jobs are lost on process exit.
type MemoryQueue struct {
	jobs   chan *Envelope
	logger *slog.Logger
	mu     sync.Mutex
	closed bool
}

// NewMemoryQueue creates a new in-memory queue with the specified buffer size.
func NewMemoryQueue(size int, logger *slog.Logger) *MemoryQueue {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoryQueue{
		jobs:   make(chan *Envelope, size),
		logger: logger.With(slog.String("component", "memory_queue")),
	}
}

// Ensure MemoryQueue implements Producer and Reader
var (
	_ Producer = (*MemoryQueue)(nil)
	_ Reader   = (*MemoryQueue)(nil)
)

// Enqueue implements Producer.Enqueue
// Returns ErrQueueFull when the buffer is exhausted rather than blocking,
// so a stalled consumer cannot stall request handling.
func (q *MemoryQueue) Enqueue(ctx context.Context, jobName string, payload any) error {
	env, err := NewEnvelope(jobName, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal job payload: %w", err)
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- env:
		q.logger.Debug("job enqueued",
			slog.String("job_id", env.ID.String()),
			slog.String("job_name", jobName),
			slog.Int("queue_len", len(q.jobs)),
			slog.Int("queue_cap", cap(q.jobs)))
		return nil
	default:
		return fmt.Errorf("%w: queue capacity %d reached", ErrQueueFull, cap(q.jobs))
	}
}

// GetChannel implements Reader.GetChannel
func (q *MemoryQueue) GetChannel() <-chan *Envelope {
	return q.jobs
}

// Close closes the queue, preventing further job submission.
// Safe to call more than once.
func (q *MemoryQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if !q.closed {
		q.closed = true
		close(q.jobs)
		q.logger.Info("queue closed")
	}
}
