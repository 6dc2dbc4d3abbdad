package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// RedisProducer pushes job envelopes onto a Redis list. The background
// worker consumes with BRPOP from the other end, so the list behaves as a
// FIFO queue per broker instance.
type RedisProducer struct {
	client *redis.Client
	queue  string
	logger *slog.Logger
}

// NewRedisProducer creates a producer writing to the named queue.
// The client should be initialized and closed by the caller.
// If logger is nil, a default logger will be used.
func NewRedisProducer(client *redis.Client, queue string, logger *slog.Logger) *RedisProducer {
	if client == nil {
		panic("redis client cannot be nil")
	}
	if queue == "" {
		panic("queue name cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &RedisProducer{
		client: client,
		queue:  queue,
		logger: logger.With(slog.String("component", "redis_producer")),
	}
}

// Ensure RedisProducer implements Producer
var _ Producer = (*RedisProducer)(nil)

// Enqueue implements Producer.Enqueue
// It wraps the payload into an envelope and LPUSHes it onto the queue.
func (p *RedisProducer) Enqueue(ctx context.Context, jobName string, payload any) error {
	env, err := NewEnvelope(jobName, payload)
	if err != nil {
		return fmt.Errorf("failed to marshal job payload: %w", err)
	}

	body, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("failed to marshal job envelope: %w", err)
	}

	if err := p.client.LPush(ctx, p.queue, body).Err(); err != nil {
		return fmt.Errorf("failed to push job to queue %q: %w", p.queue, err)
	}

	p.logger.Debug("job enqueued",
		slog.String("job_id", env.ID.String()),
		slog.String("job_name", jobName),
		slog.String("queue", p.queue))
	return nil
}
