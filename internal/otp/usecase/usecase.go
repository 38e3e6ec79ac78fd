package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/otpgate/internal/otp/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/clock"
	"github.com/shandysiswandi/otpgate/internal/pkg/config"
	"github.com/shandysiswandi/otpgate/internal/pkg/goerror"
	"github.com/shandysiswandi/otpgate/internal/pkg/goroutine"
	"github.com/shandysiswandi/otpgate/internal/pkg/hash"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"github.com/shandysiswandi/otpgate/internal/pkg/seal"
	"github.com/shandysiswandi/otpgate/internal/pkg/uid"
	"github.com/shandysiswandi/otpgate/internal/pkg/validator"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const defaultPublishTimeout = 5 * time.Second

type OTPValidationEvent struct {
	Result     entity.ValidationResult
	Channel    entity.Channel
	OccurredAt time.Time
}

type repoMessaging interface {
	PublishOTPValidation(ctx context.Context, msg OTPValidationEvent) error
}

type Usecase struct {
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	deriver       hash.Deriver
	otp           otp.OTP
	sealer        seal.Sealer
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
	policies      map[entity.Channel]entity.ChannelPolicy

	validations metric.Int64Counter
}

type Dependency struct {
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Deriver       hash.Deriver
	OTP           otp.OTP
	Sealer        seal.Sealer
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
	Policies      map[entity.Channel]entity.ChannelPolicy
}

func New(dep Dependency) *Usecase {
	validations, err := dep.Instrument.Meter("otp.usecase").Int64Counter(
		"otp.validations",
		metric.WithDescription("Number of one-time password validations by channel and result"),
	)
	if err != nil {
		slog.Error("failed to create otp validations counter", "error", err)
	}

	return &Usecase{
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		deriver:       dep.Deriver,
		otp:           dep.OTP,
		sealer:        dep.Sealer,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
		policies:      dep.Policies,
		validations:   validations,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("otp.usecase").Start(ctx, name)
}

// deriveSecret maps a missing identity to the MissingIdentity error kind.
func (s *Usecase) deriveSecret(ctx context.Context, id, stamp string) ([]byte, error) {
	secret, err := s.deriver.Derive(id, stamp)
	if err != nil {
		slog.WarnContext(ctx, "cannot derive secret", "error", err)
		return nil, errMissingIdentity()
	}
	return secret, nil
}

func errMissingIdentity() error {
	return goerror.NewBusinessWrap(entity.ErrMissingIdentity, "ID and Stamp are required", goerror.CodeMissingIdentity)
}

func errOtpMismatch() error {
	return goerror.NewBusinessWrap(entity.ErrOtpMismatch, "Invalid one-time password", goerror.CodeUnauthorized)
}

// errInvalidInput keeps both the validation details and ErrInvalidRequest reachable.
func errInvalidInput(err error) error {
	return goerror.NewInvalidInput(fmt.Errorf("%w: %w", entity.ErrInvalidRequest, err))
}

func errInvalidField(field, msg string) error {
	return goerror.NewInvalidInput(entity.ErrInvalidRequest, field, msg)
}

func errInvalidLink() error {
	return goerror.NewInvalidFormatWrap(entity.ErrInvalidRequest, "QR code link is invalid or expired")
}
