package router

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/shandysiswandi/otpgate/internal/pkg/stacktrace"
)

// middlewareRecoverer turns a handler panic into a 500 and logs where it happened.
// http.ErrAbortHandler is re-raised so net/http can abort the connection.
func middlewareRecoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			//nolint:err113,errorlint // sentinel panic value
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}

			logPanic(r, rvr)
			writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		}()

		next.ServeHTTP(w, r)
	})
}

func logPanic(r *http.Request, rvr any) {
	attrs := []any{"panic", rvr, "method", r.Method, "path", r.URL.Path}
	if frames := stacktrace.Internal(3); len(frames) > 0 {
		attrs = append(attrs, "stack", frames)
	} else {
		attrs = append(attrs, "stack", string(debug.Stack()))
	}

	slog.ErrorContext(r.Context(), "recovered from panic", attrs...)
}
