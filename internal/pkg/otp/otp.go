package otp

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/hotp"
)

const (
	// DefaultDigits is used when a caller passes zero digits.
	DefaultDigits = 6
	// MinDigits is the shortest code the engine produces.
	MinDigits = 4
	// MaxDigits is the longest code the engine produces.
	MaxDigits = 10
)

var (
	// ErrInvalidDigits is returned when digits is outside [MinDigits, MaxDigits].
	ErrInvalidDigits = errors.New("otp: digits must be between 4 and 10")
	// ErrInvalidStep is returned when the time step is not positive.
	ErrInvalidStep = errors.New("otp: step seconds must be positive")
	// ErrEmptySecret is returned when the secret has no bytes.
	ErrEmptySecret = errors.New("otp: secret is empty")
)

// OTP defines the contract for one-time password operations on raw secrets.
type OTP interface {
	// Compute returns the HOTP code for a counter.
	Compute(secret []byte, counter uint64, digits int) (string, error)
	// ComputeTOTP returns the code for the time step containing at.
	ComputeTOTP(secret []byte, at time.Time, stepSeconds, digits int) (string, error)
	// Validate reports whether candidate matches a code inside the window around at.
	Validate(secret []byte, candidate string, at time.Time, opts ValidateOpts) bool
	// ProvisioningURI builds the otpauth:// URI for an authenticator app.
	ProvisioningURI(accountLabel string, secret []byte, issuer string) string
}

// ValidateOpts controls how a candidate code is checked.
type ValidateOpts struct {
	// StepSeconds is the length of one time step.
	StepSeconds int
	// Digits is the expected code length.
	Digits int
	// ToleranceSteps is how many adjacent steps on each side are also accepted.
	// Zero means exact step only.
	ToleranceSteps int
}

// Engine implements OTP on top of pquerna/otp HOTP with HMAC-SHA1.
type Engine struct{}

// NewEngine returns a ready to use Engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Compute returns the HOTP value of counter, left padded with zeros to digits
// characters. A zero digits selects DefaultDigits.
func (*Engine) Compute(secret []byte, counter uint64, digits int) (string, error) {
	if digits == 0 {
		digits = DefaultDigits
	}
	if digits < MinDigits || digits > MaxDigits {
		return "", ErrInvalidDigits
	}
	if len(secret) == 0 {
		return "", ErrEmptySecret
	}

	code, err := hotp.GenerateCodeCustom(EncodeBase32(secret), counter, hotp.ValidateOpts{
		Digits:    libotp.Digits(digits),
		Algorithm: libotp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("otp: generate code: %w", err)
	}

	return code, nil
}

// ComputeTOTP returns the code for the step containing at.
func (e *Engine) ComputeTOTP(secret []byte, at time.Time, stepSeconds, digits int) (string, error) {
	if stepSeconds <= 0 {
		return "", ErrInvalidStep
	}

	return e.Compute(secret, Counter(at, stepSeconds), digits)
}

// Validate compares candidate against the code at the current counter and, when
// opts.ToleranceSteps is positive, the counters around it. Every tried step is
// compared in constant time and the loop never exits early.
func (e *Engine) Validate(secret []byte, candidate string, at time.Time, opts ValidateOpts) bool {
	if opts.StepSeconds <= 0 || len(secret) == 0 {
		return false
	}

	digits := opts.Digits
	if digits == 0 {
		digits = DefaultDigits
	}
	if digits < MinDigits || digits > MaxDigits {
		return false
	}

	tolerance := max(opts.ToleranceSteps, 0)
	current := Counter(at, opts.StepSeconds)

	var want, got [MaxDigits]byte
	copy(got[:], candidate)

	matched := 0
	for delta := -tolerance; delta <= tolerance; delta++ {
		counter, ok := shift(current, delta)
		if !ok {
			continue
		}

		code, err := e.Compute(secret, counter, digits)
		if err != nil {
			return false
		}

		copy(want[:], code)
		eq := subtle.ConstantTimeCompare(want[:], got[:]) &
			subtle.ConstantTimeEq(int32(len(code)), int32(len(candidate))) //nolint:gosec // bounded lengths
		matched |= eq
	}

	return matched == 1
}

// ProvisioningURI builds the otpauth:// URI for an authenticator app.
func (*Engine) ProvisioningURI(accountLabel string, secret []byte, issuer string) string {
	return BuildProvisioningURI(accountLabel, secret, issuer)
}

// Counter returns floor(unix seconds / stepSeconds). Times before the epoch
// map to counter zero.
func Counter(at time.Time, stepSeconds int) uint64 {
	if stepSeconds <= 0 {
		return 0
	}

	sec := at.Unix()
	if sec < 0 {
		return 0
	}

	return uint64(sec) / uint64(stepSeconds)
}

func shift(counter uint64, delta int) (uint64, bool) {
	if delta < 0 {
		d := uint64(-delta)
		if d > counter {
			return 0, false
		}
		return counter - d, true
	}

	return counter + uint64(delta), true
}
