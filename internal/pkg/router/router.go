// Package router serves the JSON API on top of httprouter with a fixed middleware chain.
package router

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"go.uber.org/atomic"
)

// Handler returns a payload for the success envelope, a RawBody, or an error.
type Handler func(r *Request) (any, error)

// Config holds dependencies required to build a Router.
type Config struct {
	Config config.Config
	// UUID generates correlation ids for requests that carry none.
	UUID       uid.StringID
	Instrument instrument.Instrumentation
}

// Router is an http.Handler that wraps httprouter and a middleware chain.
type Router struct {
	hr          *httprouter.Router
	mws         []Middleware
	maintenance *atomic.Bool
}

// NewRouter builds the router with recovery, client ip, correlation id,
// observability and maintenance middleware, plus GET /health.
func NewRouter(cfg Config) *Router {
	if cfg.Instrument == nil {
		cfg.Instrument = instrument.NewNoop()
	}

	down := atomic.NewBool(cfg.Config != nil && cfg.Config.GetBool("app.maintenance.enabled"))

	r := &Router{
		hr: &httprouter.Router{
			RedirectTrailingSlash:  true,
			RedirectFixedPath:      true,
			HandleMethodNotAllowed: true,
			HandleOPTIONS:          true,
			SaveMatchedRoutePath:   true,
			NotFound:               http.HandlerFunc(notFound),
			MethodNotAllowed:       http.HandlerFunc(methodNotAllowed),
		},
		maintenance: down,
		mws: []Middleware{
			middlewareRecoverer,
			middlewareIP,
			middlewareCorrelationID(cfg.UUID),
			middlewareObservability(cfg.Config, cfg.Instrument),
			middlewareMaintenance(cfg.Config, down),
		},
	}

	r.GET("/health", func(*Request) (any, error) {
		return map[string]string{"status": "ok"}, nil
	})

	return r
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, errorResponse{Message: "endpoint not found"}, http.StatusNotFound)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(r.Context(), w, goerror.NewBusiness("Unsupported operation", goerror.CodeMethodNotAllowed))
}

// SetMaintenance switches whole-service maintenance mode on or off.
func (r *Router) SetMaintenance(on bool) {
	r.maintenance.Store(on)
}

// GET registers h for GET requests on path.
func (r *Router) GET(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodGet, path, h, mws...)
}

// POST registers h for POST requests on path.
func (r *Router) POST(path string, h Handler, mws ...Middleware) {
	r.handle(http.MethodPost, path, h, mws...)
}

func (r *Router) handle(method, path string, h Handler, mws ...Middleware) {
	final := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		resp, err := h(&Request{Request: req})
		if err == nil {
			writeSuccess(req.Context(), w, resp)
			return
		}

		if rec, ok := w.(interface{ SetError(error) }); ok {
			rec.SetError(err)
		}
		writeError(req.Context(), w, err)
	})

	chain := make([]Middleware, 0, len(r.mws)+len(mws))
	r.hr.Handler(method, path, Chain(final, append(append(chain, r.mws...), mws...)...))
}

// ServeHTTP implements http.Handler.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.hr.ServeHTTP(w, req)
}
