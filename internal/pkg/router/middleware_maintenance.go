package router

import (
	"net/http"
	"slices"

	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"go.uber.org/atomic"
)

const healthPath = "/health"

// middlewareMaintenance answers 503 for every route but /health while down is set,
// and for the routes in app.maintenance.endpoints at any time. The list is read per
// request so a config reload applies without restart.
func middlewareMaintenance(cfg config.Config, down *atomic.Bool) Middleware {
	blocked := func(r *http.Request) bool {
		if down != nil && down.Load() {
			return r.URL.Path != healthPath
		}
		return cfg != nil && slices.Contains(cfg.GetArray("app.maintenance.endpoints"), matchedRoutePath(r))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if blocked(r) {
				writeJSON(w, errorResponse{Message: "service is under maintenance"}, http.StatusServiceUnavailable)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
