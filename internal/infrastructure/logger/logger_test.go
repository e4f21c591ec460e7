package logger

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	t.Run("creates logger with console format", func(t *testing.T) {
		log, err := New(Config{Level: "debug", Format: "console", Output: "stdout"})
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("creates logger with json format", func(t *testing.T) {
		log, err := New(Config{Level: "warn", Format: "json", Output: "stderr"})
		require.NoError(t, err)
		assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, log.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("creates the log file when output is a path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "console.log")
		log, err := New(Config{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)
		require.NotNil(t, log)
		assert.FileExists(t, path)
	})

	t.Run("rejects an unwritable output path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "console.log")
		_, err := New(Config{Level: "info", Format: "json", Output: path})
		require.Error(t, err)
	})
}

func TestConfigLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zapcore.Level
	}{
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"warn", zapcore.WarnLevel},
		{"warning", zapcore.WarnLevel},
		{"error", zapcore.ErrorLevel},
		{"WARN", zapcore.WarnLevel},
		{"unknown", zapcore.InfoLevel},
		{"", zapcore.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Config{Level: tt.input}.level())
		})
	}
}

func TestContext(t *testing.T) {
	t.Run("round-trips logger through context", func(t *testing.T) {
		log := zap.NewNop()
		ctx := WithContext(context.Background(), log)
		assert.Same(t, log, FromContext(ctx))
	})

	t.Run("returns no-op logger when context is empty", func(t *testing.T) {
		log := FromContext(context.Background())
		require.NotNil(t, log)
	})

	t.Run("enriches context with request ID", func(t *testing.T) {
		ctx, enriched := WithRequestID(context.Background(), zap.NewNop(), "req-123")
		require.NotNil(t, enriched)
		assert.Equal(t, "req-123", GetRequestID(ctx))
	})

	t.Run("enriches context with screen name", func(t *testing.T) {
		ctx, _ := WithScreen(context.Background(), zap.NewNop(), "accounting.payment_vouchers")
		assert.Equal(t, "accounting.payment_vouchers", GetScreen(ctx))
	})

	t.Run("returns empty values for missing keys", func(t *testing.T) {
		assert.Empty(t, GetRequestID(context.Background()))
		assert.Empty(t, GetScreen(context.Background()))
	})
}
