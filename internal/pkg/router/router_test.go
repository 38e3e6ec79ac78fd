package router

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

type fixedID string

func (f fixedID) Generate() string { return string(f) }

type pngBody []byte

func (pngBody) ContentType() string { return "image/png" }
func (p pngBody) Body() []byte      { return p }

type noContent struct{}

func (noContent) StatusCode() int { return http.StatusNoContent }

func newTestRouter(t *testing.T, yaml string) *Router {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	r := NewRouter(Config{Config: cfg, UUID: fixedID("cid-generated")})

	r.GET("/ok", func(*Request) (any, error) {
		return map[string]string{"uri": "otpauth://x"}, nil
	})
	r.POST("/empty", func(*Request) (any, error) {
		return noContent{}, nil
	})
	r.GET("/png", func(*Request) (any, error) {
		return pngBody{0x89, 'P', 'N', 'G'}, nil
	})
	r.POST("/unauthorized", func(*Request) (any, error) {
		return nil, goerror.NewBusiness("Invalid one-time password", goerror.CodeUnauthorized)
	})
	r.POST("/validation", func(*Request) (any, error) {
		return nil, goerror.NewInvalidInput(validator.V10ValidationError{"id": "ID is a required field"})
	})
	r.POST("/plain-error", func(*Request) (any, error) {
		return nil, errors.New("leaky detail")
	})
	r.GET("/panic", func(*Request) (any, error) {
		panic("boom")
	})
	r.GET("/blocked", func(*Request) (any, error) {
		return map[string]string{}, nil
	})
	r.GET("/query", func(r *Request) (any, error) {
		n, err := r.GetQueryInt("s")
		if err != nil {
			return nil, err
		}
		return map[string]int{"s": n}, nil
	})
	r.POST("/decode", func(r *Request) (any, error) {
		var body struct {
			ID string `json:"id"`
		}
		if err := r.DecodeBody(&body); err != nil {
			return nil, err
		}
		return body, nil
	})

	return r
}

func serve(r http.Handler, method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func TestRouterResponses(t *testing.T) {
	r := newTestRouter(t, "app:\n  maintenance:\n    endpoints: /blocked\n")

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantMsg    string
	}{
		{name: "success envelope", method: http.MethodGet, path: "/ok", wantStatus: http.StatusOK, wantMsg: "request has been successfully"},
		{name: "health", method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{name: "business error", method: http.MethodPost, path: "/unauthorized", wantStatus: http.StatusUnauthorized, wantMsg: "Invalid one-time password"},
		{name: "validation error", method: http.MethodPost, path: "/validation", wantStatus: http.StatusUnprocessableEntity, wantMsg: "Validation error"},
		{name: "plain error hidden", method: http.MethodPost, path: "/plain-error", wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
		{name: "panic recovered", method: http.MethodGet, path: "/panic", wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
		{name: "method not allowed", method: http.MethodDelete, path: "/ok", wantStatus: http.StatusMethodNotAllowed, wantMsg: "Unsupported operation"},
		{name: "not found", method: http.MethodGet, path: "/nope", wantStatus: http.StatusNotFound, wantMsg: "endpoint not found"},
		{name: "maintenance endpoint", method: http.MethodGet, path: "/blocked", wantStatus: http.StatusServiceUnavailable, wantMsg: "service is under maintenance"},
		{name: "bad query", method: http.MethodGet, path: "/query?s=abc", wantStatus: http.StatusBadRequest, wantMsg: "Invalid query s"},
		{name: "unknown body field", method: http.MethodPost, path: "/decode", body: `{"id":"a","x":1}`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid request body"},
		{name: "trailing body", method: http.MethodPost, path: "/decode", body: `{"id":"a"}{}`, wantStatus: http.StatusBadRequest, wantMsg: "Invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			rec := serve(r, tt.method, tt.path, tt.body)

			// Assert
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body=%s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if tt.wantMsg != "" {
				if got := decode(t, rec)["message"]; got != tt.wantMsg {
					t.Fatalf("message = %v, want %q", got, tt.wantMsg)
				}
			}
		})
	}
}

func TestRouterValidationFields(t *testing.T) {
	r := newTestRouter(t, "app: {}\n")

	rec := serve(r, http.MethodPost, "/validation", "")

	fields, _ := decode(t, rec)["error"].(map[string]any)
	if fields["id"] != "ID is a required field" {
		t.Fatalf("unexpected error fields: %v", fields)
	}
}

func TestRouterNoContentAndRaw(t *testing.T) {
	r := newTestRouter(t, "app: {}\n")

	rec := serve(r, http.MethodPost, "/empty", "")
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}

	rec = serve(r, http.MethodGet, "/png", "")
	if rec.Code != http.StatusOK || rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("unexpected raw response %d %q", rec.Code, rec.Header().Get("Content-Type"))
	}
	if rec.Body.String() != "\x89PNG" || rec.Header().Get("Content-Length") != "4" {
		t.Fatalf("unexpected raw body %q", rec.Body.String())
	}
}

func TestRouterCorrelationID(t *testing.T) {
	r := newTestRouter(t, "app: {}\n")

	rec := serve(r, http.MethodGet, "/ok", "")
	if got := rec.Header().Get(HeaderCorrelationID); got != "cid-generated" {
		t.Fatalf("generated cid = %q", got)
	}

	rec = serve(r, http.MethodGet, "/ok", "", HeaderRequestID, "  from-proxy ")
	if got := rec.Header().Get(HeaderCorrelationID); got != "from-proxy" {
		t.Fatalf("forwarded cid = %q", got)
	}
}

func TestRouterMaintenanceMode(t *testing.T) {
	r := newTestRouter(t, "app: {}\n")

	r.SetMaintenance(true)
	if rec := serve(r, http.MethodGet, "/ok", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if rec := serve(r, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health must stay up, got %d", rec.Code)
	}

	r.SetMaintenance(false)
	if rec := serve(r, http.MethodGet, "/ok", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mw("outer"), nil, mw("inner"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "outer,inner,handler" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{name: "true client ip", headers: map[string]string{"True-Client-IP": "1.2.3.4"}, remote: "9.9.9.9:1", want: "1.2.3.4"},
		{name: "forwarded for", headers: map[string]string{"X-Forwarded-For": "5.6.7.8, 10.0.0.1"}, remote: "9.9.9.9:1", want: "5.6.7.8"},
		{name: "invalid header falls back", headers: map[string]string{"X-Real-IP": "nope"}, remote: "9.9.9.9:1", want: "9.9.9.9"},
		{name: "skips invalid to next header", headers: map[string]string{"X-Real-IP": "nope", "X-Forwarded-For": "5.6.7.8"}, remote: "9.9.9.9:1", want: "5.6.7.8"},
		{name: "unparseable remote", remote: "pipe", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := clientIP(req); got != tt.want {
				t.Fatalf("clientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
