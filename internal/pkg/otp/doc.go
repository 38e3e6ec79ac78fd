// Package otp implements the one-time password engine: HOTP code generation
// (RFC 4226, computed by pquerna/otp), its time-based variant (RFC 6238), window validation, the
// unpadded Base32 codec used for authenticator secrets and the otpauth://
// provisioning URI.
//
// Secrets are raw bytes. Nothing in this package keeps state, so an Engine is
// safe for concurrent use without locking.
package otp
