package mq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/otpgate/internal/otp/entity"
	"github.com/shandysiswandi/otpgate/internal/otp/usecase"
	"github.com/shandysiswandi/otpgate/internal/pkg/instrument"
	"github.com/shandysiswandi/otpgate/internal/pkg/messaging"
	"github.com/shandysiswandi/otpgate/internal/shared/event"
)

type fakePublisher struct {
	destination string
	msg         messaging.OutgoingMessage
	err         error
}

func (f *fakePublisher) Publish(_ context.Context, destination string, msg messaging.OutgoingMessage) (messaging.PublishResult, error) {
	f.destination = destination
	f.msg = msg
	return messaging.PublishResult{Topic: destination}, f.err
}

func (f *fakePublisher) Close() error { return nil }

func TestPublishOTPValidation(t *testing.T) {
	// Arrange
	pub := &fakePublisher{}
	m := NewMessaging(pub, instrument.NewNoop())
	ctx := instrument.SetCorrelationID(context.Background(), "corr-1")
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("WIB", 7*3600))

	// Act
	err := m.PublishOTPValidation(ctx, usecase.OTPValidationEvent{
		Result:     entity.ValidationMismatch,
		Channel:    entity.ChannelSMS,
		OccurredAt: at,
	})

	// Assert
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if pub.destination != event.OTPValidationDestination {
		t.Fatalf("unexpected destination: %s", pub.destination)
	}
	if string(pub.msg.Key) != "sms" {
		t.Fatalf("unexpected key: %s", pub.msg.Key)
	}
	if len(pub.msg.Headers) != 1 || pub.msg.Headers[0].Key != keyOfCorrelationID || string(pub.msg.Headers[0].Value) != "corr-1" {
		t.Fatalf("unexpected headers: %+v", pub.msg.Headers)
	}

	var body map[string]any
	if err := json.Unmarshal(pub.msg.Body, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(body) != 3 || body["result"] != "mismatch" || body["channel"] != "sms" || body["occurred_at"] != "2026-03-01T03:00:00Z" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestPublishOTPValidationError(t *testing.T) {
	pub := &fakePublisher{err: messaging.ErrClosed}
	m := NewMessaging(pub, instrument.NewNoop())

	err := m.PublishOTPValidation(context.Background(), usecase.OTPValidationEvent{Result: entity.ValidationSuccess, Channel: entity.ChannelApp})

	if !errors.Is(err, messaging.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
