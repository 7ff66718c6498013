package uartring

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLogLevel(t *testing.T) {
	original := LogLevel()
	defer SetLogLevel(original)

	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		SetLogLevel(level)
		require.Equal(t, level, LogLevel())
	}
}

func TestSetLogger(t *testing.T) {
	original := Logger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewJSONLogger(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	p, err := New(Config{})
	require.NoError(t, err)
	p.Init()

	require.Contains(t, buf.String(), `"msg":"initialized"`)
	require.Contains(t, buf.String(), `"component":"port"`)
}

func TestComponentLogger(t *testing.T) {
	var buf bytes.Buffer
	l := componentLogger(NewLogger(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), ComponentISR)
	l.Debug("debug message", "key", "value")

	out := buf.String()
	require.True(t, strings.Contains(out, "debug message"), out)
	require.Contains(t, out, "component=isr")
	require.Contains(t, out, "key=value")
}
