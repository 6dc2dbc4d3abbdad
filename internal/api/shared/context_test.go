package shared

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("set and get round-trip", func(t *testing.T) {
		ctx := SetTraceID(context.Background())

		traceID := GetTraceID(ctx)
		assert.Len(t, traceID, TraceIDLength*2)
	})

	t.Run("missing trace ID yields empty string", func(t *testing.T) {
		assert.Empty(t, GetTraceID(context.Background()))
	})

	t.Run("trace IDs are unique per call", func(t *testing.T) {
		first := GetTraceID(SetTraceID(context.Background()))
		second := GetTraceID(SetTraceID(context.Background()))
		assert.NotEqual(t, first, second)
	})
}
