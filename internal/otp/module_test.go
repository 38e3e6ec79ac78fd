package otp

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shandysiswandi/otpgate/internal/otp/entity"
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

const channelsConfig = `
otp:
  channels:
    app:
      step_seconds: 30
      digits: 6
    sms:
      step_seconds: 300
      digits: 8
      tolerance_steps: 1
`

func loadConfig(t *testing.T, yaml string) config.Config {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	if err != nil {
		t.Fatalf("config: %v", err)
	}

	return cfg
}

func TestLoadPolicies(t *testing.T) {
	// Arrange
	cfg := loadConfig(t, channelsConfig)

	// Act
	policies, err := loadPolicies(cfg)

	// Assert
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := policies[entity.ChannelApp]; got != (entity.ChannelPolicy{StepSeconds: 30, Digits: 6}) {
		t.Fatalf("unexpected app policy: %+v", got)
	}
	if got := policies[entity.ChannelSMS]; got != (entity.ChannelPolicy{StepSeconds: 300, Digits: 8, ToleranceSteps: 1}) {
		t.Fatalf("unexpected sms policy: %+v", got)
	}
}

func TestLoadPoliciesErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing step",
			yaml: "otp:\n  channels:\n    app: {digits: 6}\n    sms: {step_seconds: 300, digits: 8}\n",
			want: "otp.channels.app.step_seconds",
		},
		{
			name: "missing digits",
			yaml: "otp:\n  channels:\n    app: {step_seconds: 30, digits: 6}\n    sms: {step_seconds: 300}\n",
			want: "otp.channels.sms.digits",
		},
		{
			name: "digits out of range",
			yaml: "otp:\n  channels:\n    app: {step_seconds: 30, digits: 12}\n    sms: {step_seconds: 300, digits: 8}\n",
			want: "digits must be within",
		},
		{
			name: "negative tolerance",
			yaml: "otp:\n  channels:\n    app: {step_seconds: 30, digits: 6, tolerance_steps: -1}\n    sms: {step_seconds: 300, digits: 8}\n",
			want: "tolerance_steps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadPolicies(loadConfig(t, tt.yaml))

			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestNewRegistersEndpoints(t *testing.T) {
	// Arrange
	cfg := loadConfig(t, channelsConfig)

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	keys, err := seal.NewHKDFKeyProvider([]byte("link-secret"), nil)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}

	gm := goroutine.NewManager(2)
	r := router.NewRouter(router.Config{Config: cfg, UUID: uid.NewUUID()})

	// Act
	err = New(Dependency{
		Goroutine:  gm,
		Router:     r,
		Messaging:  messaging.NewNoop(),
		Config:     cfg,
		Instrument: instrument.NewNoop(),
		UUID:       uid.NewUUID(),
		Deriver:    hash.NewHMACSHA512(bytes.Repeat([]byte{1}, 32)),
		Sealer:     seal.NewAESGCM(keys),
		Clock:      clock.New(),
		OTP:        otpengine.NewEngine(),
		Validator:  v,
	})

	// Assert
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/otp/validate", strings.NewReader(`{"id":"a","stamp":"b","password":"000000x"}`))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
	}
	if err := gm.Wait(); err != nil {
		t.Fatalf("wait: %v", err)
	}
}

func TestNewRequiresDependencies(t *testing.T) {
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	if err := New(Dependency{Validator: v}); err == nil {
		t.Fatal("expected validation error")
	}
}
