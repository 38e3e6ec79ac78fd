package router

import (
	"net/http"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
)

const (
	// HeaderCorrelationID carries the correlation id in requests and responses.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is accepted on requests when HeaderCorrelationID is absent.
	HeaderRequestID = "X-Request-ID"

	maxCIDLen = 128
)

// incomingCID returns the first usable id from the request headers, truncated to maxCIDLen.
// Values containing line breaks are ignored.
func incomingCID(h http.Header) string {
	for _, name := range []string{HeaderCorrelationID, HeaderRequestID} {
		v := h.Get(name)
		if strings.ContainsAny(v, "\r\n") {
			continue
		}
		if v = strings.TrimSpace(v); v != "" {
			return v[:min(len(v), maxCIDLen)]
		}
	}
	return ""
}

// middlewareCorrelationID echoes or generates a correlation id and stores it in the request context.
func middlewareCorrelationID(gen uid.StringID) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid := incomingCID(r.Header)
			if cid == "" && gen != nil {
				cid = gen.Generate()
			}
			if cid == "" {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set(HeaderCorrelationID, cid)
			next.ServeHTTP(w, r.WithContext(instrument.SetCorrelationID(r.Context(), cid)))
		})
	}
}
