// Package app assembles otpgate from configuration and runs its HTTP server.
package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/seal"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

// closer releases one resource on shutdown.
type closer struct {
	name string
	fn   func(context.Context) error
}

// App holds every shared dependency. Fields are filled by the init* steps in New.
type App struct {
	config config.Config
	ins    instrument.Instrumentation

	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	deriver   hash.Deriver
	otp       otp.OTP
	sealer    seal.Sealer

	messaging messaging.Publisher

	router     *router.Router
	httpServer *http.Server

	closers []closer
}

// New builds the application. Any misconfiguration is fatal.
func New() *App {
	a := &App{}

	for _, step := range []func(){
		a.initConfig,
		a.initInstrument,
		a.initLibraries,
		a.initMessaging,
		a.initHTTPServer,
		a.initModules,
		a.initClosers,
	} {
		step()
	}

	return a
}
