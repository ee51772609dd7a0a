package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	line := strings.TrimSpace(buf.String())
	var out map[string]any
	if err := sonic.UnmarshalString(line, &out); err != nil {
		t.Fatalf("decode log line %q: %v", line, err)
	}
	return out
}

func TestLogger_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelInfo).With("service", "roadto100k")

	logger.Info("entry recorded", "participant_id", "p1", "error", errors.New("boom"), "dangling")

	got := decodeLine(t, &buf)
	if got["msg"] != "entry recorded" || got["level"] != "INFO" {
		t.Fatalf("unexpected log line: %+v", got)
	}
	if got["service"] != "roadto100k" || got["participant_id"] != "p1" {
		t.Fatalf("missing fields: %+v", got)
	}
	if got["error"] != "boom" {
		t.Fatalf("expected error field, got %+v", got["error"])
	}
	if v, ok := got["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key logged as null, got %+v", got)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelWarn)

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected info to be filtered at warn level")
	}
	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatalf("expected warn to be written")
	}
}

func TestLogger_ContextAddsTraceFields(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, LevelDebug)

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "traced")
	got := decodeLine(t, &buf)
	if got["trace_id"] != traceID.String() || got["span_id"] != spanID.String() {
		t.Fatalf("missing trace fields: %+v", got)
	}
}

func TestLogger_NilSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	logger.With("k", "v").Warn("still no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("nil sync: %v", err)
	}
}
