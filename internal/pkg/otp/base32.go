package otp

import (
	"errors"
	"strings"
)

// base32Alphabet is the RFC 4648 alphabet used by authenticator apps.
const base32Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ234567"

// ErrInvalidBase32 is returned when decoding meets a symbol outside the alphabet.
var ErrInvalidBase32 = errors.New("otp: invalid base32 symbol")

// EncodeBase32 encodes data with the RFC 4648 alphabet and no padding. The last
// group is filled with zero bits on the right.
func EncodeBase32(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var b strings.Builder
	b.Grow((len(data)*8 + 4) / 5)

	var buf uint32
	bits := 0
	for _, c := range data {
		buf = buf<<8 | uint32(c)
		bits += 8
		for bits >= 5 {
			bits -= 5
			b.WriteByte(base32Alphabet[(buf>>bits)&0x1F])
		}
		buf &= 1<<bits - 1
	}

	if bits > 0 {
		b.WriteByte(base32Alphabet[(buf<<(5-bits))&0x1F])
	}

	return b.String()
}

// DecodeBase32 is the inverse of EncodeBase32. Lowercase symbols are accepted,
// padding and whitespace are skipped, and trailing bits that do not make a full
// byte are dropped.
func DecodeBase32(s string) ([]byte, error) {
	out := make([]byte, 0, len(s)*5/8)

	var buf uint32
	bits := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '=' || c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}

		v, ok := base32Value(c)
		if !ok {
			return nil, ErrInvalidBase32
		}

		buf = buf<<5 | uint32(v)
		bits += 5
		if bits >= 8 {
			bits -= 8
			out = append(out, byte(buf>>bits))
			buf &= 1<<bits - 1
		}
	}

	return out, nil
}

func base32Value(c byte) (byte, bool) {
	switch {
	case c >= 'A' && c <= 'Z':
		return c - 'A', true
	case c >= 'a' && c <= 'z':
		return c - 'a', true
	case c >= '2' && c <= '7':
		return c - '2' + 26, true
	default:
		return 0, false
	}
}
