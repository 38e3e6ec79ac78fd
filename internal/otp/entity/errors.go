package entity

import "errors"

var (
	// ErrMissingIdentity means the user ID or device stamp is absent, so no secret can be derived.
	ErrMissingIdentity = errors.New("otp: missing identity")
	// ErrInvalidRequest means the request is malformed, incomplete or expired.
	ErrInvalidRequest = errors.New("otp: invalid request")
	// ErrOtpMismatch means the password matches no accepted time step.
	ErrOtpMismatch = errors.New("otp: password mismatch")
	// ErrUnsupportedOperation means the caller attempted a write-style operation.
	ErrUnsupportedOperation = errors.New("otp: unsupported operation")
)
