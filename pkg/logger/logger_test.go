package logger_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpmardones/despensa/pkg/logger"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  slog.Level
	}{
		{name: "debug", input: "debug", want: slog.LevelDebug},
		{name: "warn", input: "warn", want: slog.LevelWarn},
		{name: "error", input: "error", want: slog.LevelError},
		{name: "empty defaults to info", input: "", want: slog.LevelInfo},
		{name: "unknown defaults to info", input: "verbose", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logger.ParseLevel(tt.input))
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := logger.NewWithWriter(&buf, "info", "text")
	require.NotNil(t, l)
	l.Info("hola")
	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "hola")

	buf.Reset()
	l = logger.NewWithWriter(&buf, "info", "json")
	l.Info("hola")
	assert.Contains(t, buf.String(), `"msg":"hola"`)

	buf.Reset()
	l = logger.NewWithWriter(&buf, "warn", "text")
	l.Info("suppressed")
	assert.Empty(t, buf.String())
}
