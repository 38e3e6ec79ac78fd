package app

import "github.com/shandysiswandi/otpgate/internal/otp"

func (a *App) initModules() {
	if err := otp.New(otp.Dependency{
		Goroutine:  a.goroutine,
		Router:     a.router,
		Messaging:  a.messaging,
		Config:     a.config,
		Instrument: a.ins,
		UUID:       a.uuid,
		Deriver:    a.deriver,
		Sealer:     a.sealer,
		Clock:      a.clock,
		OTP:        a.otp,
		Validator:  a.validator,
	}); err != nil {
		fatal("failed to init otp module", "error", err)
	}
}
