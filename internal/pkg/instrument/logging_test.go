package instrument

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	return out
}

func TestHandlerMasksDefaultFields(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "otpgate", nil, []string{"Token"}, "info"))

	// Act
	logger.Info("validate",
		"password", "123456",
		"Stamp", "s-1",
		"token", "abc",
		"id", "alice",
		"body", `{"secret":"JBSW","id":"alice"}`,
	)

	// Assert
	line := decodeLine(t, &buf)
	for _, k := range []string{"password", "Stamp", "token"} {
		if line[k] != "***" {
			t.Fatalf("%s not masked: %v", k, line[k])
		}
	}
	if line["id"] != "alice" {
		t.Fatalf("id should be kept, got %v", line["id"])
	}
	if body, _ := line["body"].(string); strings.Contains(body, "JBSW") || !strings.Contains(body, "alice") {
		t.Fatalf("json body not masked correctly: %s", body)
	}
	if line["service"] != "otpgate" || line["severity"] != "INFO" {
		t.Fatalf("unexpected envelope: %v", line)
	}
}

func TestHandlerAddsCorrelationID(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "otpgate", nil, nil, "info"))
	ctx := SetCorrelationID(context.Background(), "cid-1")

	logger.With("component", "test").InfoContext(ctx, "hello")

	line := decodeLine(t, &buf)
	if line["_cID"] != "cid-1" || line["component"] != "test" {
		t.Fatalf("unexpected line: %v", line)
	}
}

func TestHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "otpgate", nil, nil, "warn"))

	logger.Info("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level: %s", buf.String())
	}

	logger.Warn("kept")
	if buf.Len() == 0 {
		t.Fatal("warn should be written")
	}
}

func TestCorrelationID(t *testing.T) {
	if got := GetCorrelationID(context.Background()); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
	if got := GetCorrelationID(SetCorrelationID(context.Background(), "x")); got != "x" {
		t.Fatalf("expected x, got %q", got)
	}
}

func TestNewDisabledReturnsNoop(t *testing.T) {
	inst, err := New(context.Background(), &Config{ServiceName: "otpgate"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := inst.(*noopInstrumentation); !ok {
		t.Fatalf("expected noop, got %T", inst)
	}
	if err := inst.Shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}

func TestNewEnabledRequiresEndpoint(t *testing.T) {
	_, err := New(context.Background(), &Config{Enabled: true, ServiceName: "otpgate"})
	if !errors.Is(err, errNoEndpoint) {
		t.Fatalf("expected errNoEndpoint, got %v", err)
	}
}

func TestHandlerAddsTraceContext(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, "otpgate", nil, nil, "info"))
	tp := sdktrace.NewTracerProvider()
	defer tp.Shutdown(context.Background())

	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	// Act
	logger.InfoContext(ctx, "traced", "secret", []byte(`{"a":1}`))

	// Assert
	line := decodeLine(t, &buf)
	if line["trace_id"] != span.SpanContext().TraceID().String() {
		t.Fatalf("unexpected trace id: %v", line["trace_id"])
	}
	if line["secret"] != Masked {
		t.Fatalf("secret not masked: %v", line["secret"])
	}
}
