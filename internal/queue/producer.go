// Package queue provides the notification queue producer used to hand
// status-change events to the background worker. Only the producer side
// lives in this service; the consumer is a separate process.
package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/taskforge/taskforge-api/internal/domain"
)

// Job name constants
const (
	// JobTaskStatusUpdate is the job emitted whenever a persisted update
	// changes a task's status (and once on create, with the initial status).
	JobTaskStatusUpdate = "task-status-update"
)

// StatusChangePayload is the body of a JobTaskStatusUpdate job.
type StatusChangePayload struct {
	TaskID uuid.UUID         `json:"task_id"`
	Status domain.TaskStatus `json:"status"`
}

// Producer enqueues jobs for the background worker. Implementations are
// best-effort: Enqueue may fail when the broker is unavailable, and callers
// decide whether that failure matters. The task lifecycle service logs and
// continues; a queue failure never rolls back the primary operation.
type Producer interface {
	// Enqueue submits a job with the given name and payload.
	Enqueue(ctx context.Context, jobName string, payload any) error
}

// Envelope is the wire format a job is serialized into before it reaches
// the broker. Carries enough metadata for the consumer to trace the job.
type Envelope struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

// UnmarshalPayloadInto decodes the envelope payload into the provided structure.
func (e *Envelope) UnmarshalPayloadInto(v any) error {
	return json.Unmarshal(e.Payload, v)
}

// NewEnvelope wraps a payload into an Envelope with a fresh job ID.
func NewEnvelope(jobName string, payload any) (*Envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &Envelope{
		ID:         uuid.New(),
		Name:       jobName,
		Payload:    body,
		EnqueuedAt: time.Now().UTC(),
	}, nil
}
