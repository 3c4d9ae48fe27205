package models

import (
	"strings"

	"kredita/internal/coreapi"
)

// Verification is a completed credential exchange.
type Verification struct {
	Identity    string
	Credentials *coreapi.SharedCredentials
}

// Address is the postal address credential split into its parts.
type Address struct {
	Line1   string
	Line2   string
	City    string
	State   string
	Country string
	ZipCode string
}

// IsZero reports whether no address part is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// PersonalInformation is what the non-hosted 1-click flow shows the visitor
// before their session is created.
type PersonalInformation struct {
	FullName   string
	FirstName  string
	MiddleName string
	LastName   string
	Email      string
	Phone      string
	BirthDate  string
	SSN        string
	Address    Address
}

// MaskedSSN shows only the last four digits.
func (p PersonalInformation) MaskedSSN() string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, p.SSN)
	if len(digits) < 4 {
		return ""
	}
	return "***-**-" + digits[len(digits)-4:]
}
