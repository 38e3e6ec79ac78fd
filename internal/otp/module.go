package otp

import (
	"fmt"

	"github.com/shandysiswandi/otpgate/internal/otp/entity"
	"github.com/shandysiswandi/otpgate/internal/otp/inbound"
	"github.com/shandysiswandi/otpgate/internal/otp/outbound/mq"
	"github.com/shandysiswandi/otpgate/internal/otp/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	otpengine "github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/router"
	"github.com/shandysiswandi/otpgate/internal/pkg/seal"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
)

type Dependency struct {
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Publisher        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Deriver    hash.Deriver               `validate:"required"`
	Sealer     seal.Sealer                `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	OTP        otpengine.OTP              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	policies, err := loadPolicies(dep.Config)
	if err != nil {
		return err
	}

	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Deriver:       dep.Deriver,
		OTP:           dep.OTP,
		Sealer:        dep.Sealer,
		UUID:          dep.UUID,
		Clock:         dep.Clock,
		Instrument:    dep.Instrument,
		Goroutine:     dep.Goroutine,
		Policies:      policies,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}

// loadPolicies reads otp.channels.<name>.*. Step and digits have no default.
func loadPolicies(cfg config.Config) (map[entity.Channel]entity.ChannelPolicy, error) {
	policies := make(map[entity.Channel]entity.ChannelPolicy)

	for _, ch := range entity.Channels() {
		prefix := "otp.channels." + ch.String() + "."

		for _, key := range []string{"step_seconds", "digits"} {
			if !cfg.IsSet(prefix + key) {
				return nil, fmt.Errorf("otp: %s%s is not configured", prefix, key)
			}
		}

		policy := entity.ChannelPolicy{
			StepSeconds:    cfg.GetInt(prefix + "step_seconds"),
			Digits:         cfg.GetInt(prefix + "digits"),
			ToleranceSteps: cfg.GetInt(prefix + "tolerance_steps"),
		}
		if err := policy.Validate(); err != nil {
			return nil, fmt.Errorf("otp: channel %s: %w", ch, err)
		}

		policies[ch] = policy
	}

	return policies, nil
}
