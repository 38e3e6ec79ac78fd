package seal

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// ErrMissingSecret indicates an empty input keying material.
var ErrMissingSecret = errors.New("seal: missing secret")

// HKDFKeyProvider derives one AES-256 key per purpose from a single configured
// secret, so a leaked key for one purpose does not open values of another.
type HKDFKeyProvider struct {
	secret []byte
	salt   []byte
}

// NewHKDFKeyProvider returns a provider over secret. salt may be nil.
func NewHKDFKeyProvider(secret, salt []byte) (*HKDFKeyProvider, error) {
	if len(secret) == 0 {
		return nil, ErrMissingSecret
	}

	return &HKDFKeyProvider{
		secret: append([]byte(nil), secret...),
		salt:   append([]byte(nil), salt...),
	}, nil
}

// Key returns the key for scope.Purpose.
func (p *HKDFKeyProvider) Key(scope Scope) ([]byte, error) {
	r := hkdf.New(sha256.New, p.secret, p.salt, []byte("otpgate/seal/"+string(scope.Purpose)))

	key := make([]byte, aesKeyLen)
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("seal: hkdf expand: %w", err)
	}

	return key, nil
}
