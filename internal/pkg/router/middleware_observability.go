package router

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const maxLoggedBodyBytes = 8 * 1024

// linkMaskFields hide QR link material: the link itself and its sealed query values.
var linkMaskFields = []string{"uri", "v", "t", "authorization"}

type maskSet struct {
	*instrument.Masker
}

func newMaskSet(cfg config.Config) maskSet {
	fields := append([]string{}, linkMaskFields...)
	if cfg != nil {
		fields = append(fields, cfg.GetArray("instrument.log_mask_fields")...)
	}

	return maskSet{instrument.NewMasker(fields...)}
}

func (m maskSet) headers(h http.Header) http.Header {
	out := h.Clone()
	for key := range out {
		if m.Has(key) {
			out.Set(key, instrument.Masked)
		}
	}
	return out
}

func (m maskSet) query(q url.Values) map[string]string {
	if len(q) == 0 {
		return nil
	}

	out := make(map[string]string, len(q))
	for key := range q {
		out[key] = q.Get(key)
	}
	return m.Value(out).(map[string]string)
}

// jsonBody decodes and masks a JSON payload. Anything else is only described.
func (m maskSet) jsonBody(body []byte, truncated bool) any {
	if len(body) == 0 {
		return nil
	}
	if truncated {
		return "<body truncated>"
	}

	v, ok := m.JSON(body)
	if !ok {
		return "<non-json body omitted>"
	}
	return v
}

// statusRecorder captures the status and, for JSON responses, the body.
type statusRecorder struct {
	http.ResponseWriter
	status    int
	bytes     int
	body      bytes.Buffer
	truncated bool
	err       error
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusRecorder) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}

	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") && !w.truncated {
		if w.body.Len()+len(p) > maxLoggedBodyBytes {
			w.truncated = true
		} else {
			w.body.Write(p)
		}
	}

	n, err := w.ResponseWriter.Write(p)
	w.bytes += n
	return n, err
}

// SetError lets the endpoint report the handler error for the span.
func (w *statusRecorder) SetError(err error) {
	w.err = err
}

func (w *statusRecorder) statusCode() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func matchedRoutePath(r *http.Request) string {
	if pattern := httprouter.ParamsFromContext(r.Context()).MatchedRoutePath(); pattern != "" {
		return pattern
	}
	return r.URL.Path
}

// peekRequestBody returns up to maxLoggedBodyBytes and leaves r.Body readable.
func peekRequestBody(r *http.Request) ([]byte, bool) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, false
	}

	//nolint:errcheck // best effort for logging only
	head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
	r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(head), r.Body))

	if len(head) > maxLoggedBodyBytes {
		return nil, true
	}
	return head, false
}

func middlewareObservability(cfg config.Config, ins instrument.Instrumentation) Middleware {
	mask := newMaskSet(cfg)
	tracer := ins.Tracer("http.server")
	meter := ins.Meter("http.server")

	requestCounter, err := meter.Int64Counter("http.server.requests", metric.WithDescription("Number of HTTP requests received"))
	if err != nil {
		slog.Error("failed to create http request counter", "error", err)
	}

	durationHistogram, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithDescription("HTTP request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		slog.Error("failed to create http duration histogram", "error", err)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route := matchedRoutePath(r)
			start := time.Now()

			ctx, span := tracer.Start(r.Context(), r.Method+" "+route,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.HTTPRouteKey.String(route),
				),
			)
			defer span.End()

			reqBody, reqTruncated := peekRequestBody(r)
			slog.InfoContext(ctx, "request received",
				"method", r.Method,
				"path", route,
				"query", mask.query(r.URL.Query()),
				"headers", mask.headers(r.Header),
				"body", mask.jsonBody(reqBody, reqTruncated),
			)

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r.WithContext(ctx))

			status := rec.statusCode()
			elapsed := time.Since(start)
			attrs := []attribute.KeyValue{
				semconv.HTTPRequestMethodKey.String(r.Method),
				semconv.HTTPRouteKey.String(route),
				semconv.HTTPResponseStatusCodeKey.Int(status),
			}

			if rec.err != nil {
				span.RecordError(rec.err)
			}
			switch {
			case status >= http.StatusInternalServerError && rec.err != nil:
				span.SetStatus(codes.Error, rec.err.Error())
			case status >= http.StatusInternalServerError:
				span.SetStatus(codes.Error, http.StatusText(status))
			default:
				span.SetStatus(codes.Ok, "")
			}

			span.SetAttributes(attrs...)
			span.SetAttributes(
				semconv.NetworkProtocolVersionKey.String(r.Proto),
				semconv.ServerAddressKey.String(r.Host),
				semconv.UserAgentOriginalKey.String(r.UserAgent()),
				attribute.Int("http.response.body.size", rec.bytes),
			)

			if requestCounter != nil {
				requestCounter.Add(ctx, 1, metric.WithAttributes(attrs...))
			}
			if durationHistogram != nil {
				durationHistogram.Record(ctx, elapsed.Seconds(), metric.WithAttributes(attrs...))
			}

			logResponse(ctx, r.Method, route, status, rec, elapsed, mask)
		})
	}
}

func logResponse(ctx context.Context, method, route string, status int, rec *statusRecorder, elapsed time.Duration, mask maskSet) {
	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}

	slog.Log(ctx, level, "response sent",
		"method", method,
		"path", route,
		"status", status,
		"bytes", rec.bytes,
		"latency_ms", elapsed.Milliseconds(),
		"body", mask.jsonBody(rec.body.Bytes(), rec.truncated),
	)
}
