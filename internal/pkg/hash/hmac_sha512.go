package hash

import (
	"crypto/hmac"
	"crypto/sha512"
	"errors"
	"strings"
)

// ErrMissingIdentity is returned when the identity or the stamp is empty.
var ErrMissingIdentity = errors.New("hash: identity and stamp are required")

// Deriver turns an (identity, stamp) pair into secret bytes.
type Deriver interface {
	Derive(identity, stamp string) ([]byte, error)
}

// HMACSHA512 implements Deriver as HMAC-SHA512(key, lower(identity + "@" + stamp)).
type HMACSHA512 struct {
	key []byte
}

// NewHMACSHA512 creates a deriver bound to key. The key is copied.
func NewHMACSHA512(key []byte) *HMACSHA512 {
	return &HMACSHA512{key: append([]byte(nil), key...)}
}

// Derive returns the 64 byte secret for identity and stamp.
func (s *HMACSHA512) Derive(identity, stamp string) ([]byte, error) {
	if identity == "" || stamp == "" {
		return nil, ErrMissingIdentity
	}

	h := hmac.New(sha512.New, s.key)
	h.Write([]byte(strings.ToLower(identity + "@" + stamp)))

	return h.Sum(nil), nil
}
