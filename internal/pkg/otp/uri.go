package otp

import "strings"

const upperHex = "0123456789ABCDEF"

// BuildProvisioningURI returns
//
//	otpauth://totp/<label>?secret=<base32>&issuer=<issuer>
//
// with label and issuer percent-encoded by PercentEncode.
func BuildProvisioningURI(accountLabel string, secret []byte, issuer string) string {
	var b strings.Builder
	b.WriteString("otpauth://totp/")
	b.WriteString(PercentEncode(accountLabel))
	b.WriteString("?secret=")
	b.WriteString(EncodeBase32(secret))
	b.WriteString("&issuer=")
	b.WriteString(PercentEncode(issuer))

	return b.String()
}

// PercentEncode keeps A-Z a-z 0-9 - _ . ~ and writes every other byte as %XX
// in uppercase hex. Multi-byte UTF-8 runes are escaped byte by byte.
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&0x0F])
	}

	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	default:
		return false
	}
}
