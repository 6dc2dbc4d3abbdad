package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taskforge/taskforge-api/internal/config"
	"github.com/taskforge/taskforge-api/internal/platform/logger"
)

func TestSetup(t *testing.T) {
	tests := []struct {
		name         string
		level        string
		debugEnabled bool
	}{
		{"debug level enables debug records", "debug", true},
		{"info level suppresses debug records", "info", false},
		{"unknown level falls back to info", "loud", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			log, err := logger.Setup(config.ServerConfig{Port: 8080, LogLevel: tc.level})
			require.NoError(t, err)
			require.NotNil(t, log)

			assert.Equal(t, tc.debugEnabled, log.Enabled(context.Background(), slog.LevelDebug))
			assert.True(t, log.Enabled(context.Background(), slog.LevelInfo))
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		attached := slog.New(slog.NewJSONHandler(&buf, nil)).With("component", "test")

		ctx := logger.WithLogger(context.Background(), attached)
		got := logger.FromContext(ctx)
		require.Same(t, attached, got)

		got.Info("hello")
		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "test", record["component"])
	})

	t.Run("falls back to default when nothing is attached", func(t *testing.T) {
		assert.NotNil(t, logger.FromContext(context.Background()))
	})

	t.Run("FromContextOrDefault prefers the context logger", func(t *testing.T) {
		attached := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

		ctx := logger.WithLogger(context.Background(), attached)
		assert.Same(t, attached, logger.FromContextOrDefault(ctx, fallback))
		assert.Same(t, fallback, logger.FromContextOrDefault(context.Background(), fallback))
	})
}
