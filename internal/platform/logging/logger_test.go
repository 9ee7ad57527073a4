package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		require.NoError(t, sonic.UnmarshalString(line, &entry))
		out = append(out, entry)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"":        LevelInfo,
		"debug":   LevelDebug,
		"WARNING": LevelWarn,
		" error ": LevelError,
	}
	for raw, want := range cases {
		got, err := ParseLevel(raw)
		require.NoError(t, err, raw)
		require.Equal(t, want, got, raw)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestLogger_WritesKeyValuesAndBaseFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelInfo, Service: "touchline-api", Env: "test", Output: &buf})

	logger.Debug("hidden")
	logger.With("fixture_id", "fx-1").Info("selection saved", "team", 1, "err", errors.New("boom"), "dangling")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	entry := lines[0]
	require.Equal(t, "selection saved", entry["msg"])
	require.Equal(t, "INFO", entry["level"])
	require.Equal(t, "touchline-api", entry["service"])
	require.Equal(t, "test", entry["env"])
	require.Equal(t, "fx-1", entry["fixture_id"])
	require.EqualValues(t, 1, entry["team"])
	require.Equal(t, "boom", entry["err"])
	require.Contains(t, entry, "dangling")
}

func TestLogger_ContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: LevelDebug, Output: &buf})

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.DebugContext(ctx, "drop resolved")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", lines[0]["trace_id"])
	require.Equal(t, "00f067aa0ba902b7", lines[0]["span_id"])
}

func TestLogger_NilFallsBackToDefault(t *testing.T) {
	var buf bytes.Buffer
	previous := Default()
	SetDefault(New(Options{Level: LevelInfo, Output: &buf}))
	t.Cleanup(func() { SetDefault(previous) })

	var logger *Logger
	logger.Info("from nil")

	require.Len(t, decodeLines(t, &buf), 1)
}
