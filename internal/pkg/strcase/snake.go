// Package strcase converts Go identifiers to the field names used in API errors.
package strcase

import (
	"strings"
	"unicode"
)

// ToLowerSnake turns an identifier into lower snake case, keeping initialisms
// together: ECCLevel becomes ecc_level and userID becomes user_id.
func ToLowerSnake(s string) string {
	return strings.Join(words(s), "_")
}

// words splits s at case changes. A run of capitals ends one letter before a
// lower-case letter, so HTTPServer splits into http and server.
func words(s string) []string {
	rs := []rune(s)
	var out []string
	start := 0

	for i := 1; i < len(rs); i++ {
		lowerToUpper := unicode.IsUpper(rs[i]) && (unicode.IsLower(rs[i-1]) || unicode.IsDigit(rs[i-1]))
		acronymEnd := unicode.IsUpper(rs[i]) && unicode.IsUpper(rs[i-1]) && i+1 < len(rs) && unicode.IsLower(rs[i+1])
		if lowerToUpper || acronymEnd {
			out = append(out, strings.ToLower(string(rs[start:i])))
			start = i
		}
	}
	if start < len(rs) {
		out = append(out, strings.ToLower(string(rs[start:])))
	}

	return out
}
