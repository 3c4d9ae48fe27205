// Package email holds small helpers for identities that are email addresses.
package email

import (
	"strings"
	"unicode"
)

// LooksLikeEmail is a cheap shape check: one '@' with text on both sides and
// a dot in the domain. Real validation happens at the core service.
func LooksLikeEmail(s string) bool {
	at := strings.IndexByte(s, '@')
	if at <= 0 || at != strings.LastIndexByte(s, '@') {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndexByte(domain, '.')
	return dot > 0 && dot < len(domain)-1
}

// DisplayName turns an email local part into a greeting name:
// "jane.doe+kredita@example.com" becomes "Jane Doe". Non-email input is
// returned trimmed and unchanged.
func DisplayName(s string) string {
	s = strings.TrimSpace(s)
	if !LooksLikeEmail(s) {
		return s
	}
	local := s[:strings.IndexByte(s, '@')]
	if plus := strings.IndexByte(local, '+'); plus > 0 {
		local = local[:plus]
	}

	parts := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	if len(parts) == 0 {
		return s
	}
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

func capitalize(s string) string {
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
