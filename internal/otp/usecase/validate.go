package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/otpgate/internal/otp/entity"
	"github.com/shandysiswandi/otpgate/internal/pkg/otp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type ValidateInput struct {
	ID       string
	Stamp    string
	Password string
	Type     string
}

type passwordFormat struct {
	Password string `validate:"otpcode"`
}

func (s *Usecase) Validate(ctx context.Context, in ValidateInput) error {
	ctx, span := s.startSpan(ctx, "Validate")
	defer span.End()

	secret, err := s.deriveSecret(ctx, in.ID, in.Stamp)
	if err != nil {
		return err
	}

	channel := entity.ChannelFromString(in.Type)
	if channel == entity.ChannelUnknown {
		slog.WarnContext(ctx, "unknown otp type", "type", in.Type)
		return errInvalidField("type", "type must be one of "+strings.Join(entity.ChannelNames(), ", "))
	}

	policy, ok := s.policies[channel]
	if !ok {
		slog.ErrorContext(ctx, "otp channel has no policy", "channel", channel.String())
		return errInvalidField("type", "type "+channel.String()+" is not enabled")
	}

	wellFormed := s.validator.Validate(passwordFormat{Password: in.Password}) == nil
	matched := s.otp.Validate(secret, in.Password, s.clock.Now(), otp.ValidateOpts{
		StepSeconds:    policy.StepSeconds,
		Digits:         policy.Digits,
		ToleranceSteps: policy.ToleranceSteps,
	})

	result := entity.ValidationSuccess
	switch {
	case !wellFormed:
		result = entity.ValidationMalformed
	case !matched:
		result = entity.ValidationMismatch
	}

	s.record(ctx, channel, result)

	if result != entity.ValidationSuccess {
		slog.WarnContext(ctx, "otp validation failed", "channel", channel.String(), "result", string(result))
		return errOtpMismatch()
	}

	return nil
}

// record counts the attempt and publishes the audit event in the background.
func (s *Usecase) record(ctx context.Context, channel entity.Channel, result entity.ValidationResult) {
	if s.validations != nil {
		s.validations.Add(ctx, 1, metric.WithAttributes(
			attribute.String("channel", channel.String()),
			attribute.String("result", string(result)),
		))
	}

	if s.repoMessaging == nil {
		return
	}

	timeout := s.cfg.GetSecond("messaging.publish_timeout_seconds")
	if timeout <= 0 {
		timeout = defaultPublishTimeout
	}

	ev := OTPValidationEvent{
		Result:     result,
		Channel:    channel,
		OccurredAt: s.clock.Now(),
	}

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	started := s.goroutine.Go(pubCtx, func(ctx context.Context) error {
		defer cancel()

		if err := s.repoMessaging.PublishOTPValidation(ctx, ev); err != nil {
			slog.ErrorContext(ctx, "failed to publish otp validation event", "channel", channel.String(), "error", err)
		}
		return nil
	})
	if !started {
		cancel()
	}
}
