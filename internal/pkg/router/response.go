package router

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

const defaultSuccessMessage = "request has been successfully"

type errorResponse struct {
	Message string            `json:"message"`
	Error   map[string]string `json:"error,omitempty"`
}

type successResponse struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// RawBody is a response written verbatim instead of inside the JSON envelope.
type RawBody interface {
	ContentType() string
	Body() []byte
}

// Optional interfaces a handler result may implement to shape the envelope.
type (
	statusCoder interface{ StatusCode() int }
	messenger   interface{ Message() string }
	metaHolder  interface{ Meta() map[string]any }
)

// writeError maps err to a status code and envelope. Only *goerror.Error values
// reach the client; anything else becomes an opaque 500.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		slog.ErrorContext(ctx, "unhandled error type", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	resp := errorResponse{Message: gerr.Msg(), Error: gerr.Fields()}

	var verr validator.V10ValidationError
	if errors.As(err, &verr) {
		resp.Error = verr.Values()
	}
	if len(resp.Error) == 0 {
		resp.Error = nil
	}

	writeJSON(w, resp, gerr.StatusCode())
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, resp any) {
	if raw, ok := resp.(RawBody); ok {
		writeRaw(ctx, w, raw)
		return
	}

	code := http.StatusOK
	if sc, ok := resp.(statusCoder); ok {
		code = sc.StatusCode()
	}
	if resp == nil || code == http.StatusNoContent {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	env := successResponse{Message: defaultSuccessMessage, Data: resp}
	if m, ok := resp.(messenger); ok {
		env.Message = m.Message()
	}
	if m, ok := resp.(metaHolder); ok {
		env.Meta = m.Meta()
	}

	writeJSON(w, env, code)
}

func writeRaw(ctx context.Context, w http.ResponseWriter, raw RawBody) {
	body := raw.Body()

	h := w.Header()
	h.Set("Content-Type", raw.ContentType())
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(body); err != nil {
		slog.ErrorContext(ctx, "write raw body", "error", err)
	}
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	body, err := json.Marshal(data)
	if err != nil {
		slog.Error("encode json response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	//nolint:errcheck,gosec // client went away
	w.Write(append(body, '\n'))
}
