package coreapi

import "strings"

// NormalizePhone brings a phone number into the +<country><number> form the
// core service expects. Formatting characters are dropped and numbers without
// a leading "+" are treated as US numbers. Normalizing twice is a no-op.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(phone) + 2)
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if strings.HasPrefix(digits, "+") {
		return digits
	}
	return "+1" + digits
}
