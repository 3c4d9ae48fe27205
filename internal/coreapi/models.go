package coreapi

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
)

// Credential types requested by the registration flows.
const (
	TypeEmail      = "EmailCredential"
	TypePhone      = "PhoneCredential"
	TypeFullName   = "FullNameCredential"
	TypeFirstName  = "FirstNameCredential"
	TypeMiddleName = "MiddleNameCredential"
	TypeLastName   = "LastNameCredential"
	TypeBirthDate  = "BirthDateCredential"
	TypeAddress    = "AddressCredential"
	TypeSSN        = "SsnCredential"

	TypeLine1   = "Line1Credential"
	TypeLine2   = "Line2Credential"
	TypeCity    = "CityCredential"
	TypeState   = "StateCredential"
	TypeCountry = "CountryCredential"
	TypeZipCode = "ZipCodeCredential"
)

// CredentialRequest asks for one datum about the user. An empty Issuers list
// accepts any issuer.
type CredentialRequest struct {
	Type     string   `json:"type"`
	Issuers  []string `json:"issuers"`
	Required bool     `json:"required"`
}

// Credential is a single issuer-attested fact. Value is either a JSON string,
// an object keyed by sub-credential type, or a list of nested credentials.
type Credential struct {
	UUID   string          `json:"uuid,omitempty"`
	Type   string          `json:"type"`
	Issuer string          `json:"issuer,omitempty"`
	Value  json.RawMessage `json:"value,omitempty"`
}

// SharedCredentials is what a user released to this application.
type SharedCredentials struct {
	UUID        string       `json:"uuid"`
	Credentials []Credential `json:"credentials"`
	Email       string       `json:"email,omitempty"`
	Phone       string       `json:"phone,omitempty"`
}

// BrandDTO is the core service's white-label record.
type BrandDTO struct {
	UUID         string `json:"uuid"`
	ReceiverName string `json:"receiverName"`
	LogoImageURL string `json:"logoImageUrl"`
	HomepageURL  string `json:"homepageUrl"`
	PrimaryColor string `json:"primaryColor"`
}

// OneClickContent customises the SMS the core service sends.
type OneClickContent struct {
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
}

// OneClickOptions are the optional parts of a 1-click request.
type OneClickOptions struct {
	Content             *OneClickContent
	CredentialRequests  []CredentialRequest
	VerificationOptions string
	RedirectURL         string
	BirthDate           string
}

// OneClickResult is returned after the SMS link was issued.
type OneClickResult struct {
	URL   string `json:"url"`
	Phone string `json:"phone"`
}

// DefaultCredentialRequests is the standard flow's ask: email and phone from
// any issuer, both required.
func DefaultCredentialRequests() []CredentialRequest {
	return []CredentialRequest{
		{Type: TypeEmail, Issuers: []string{}, Required: true},
		{Type: TypePhone, Issuers: []string{}, Required: true},
	}
}

// Text renders the credential value as a single string. Composite values are
// joined with spaces in name order (first, middle, last) followed by any
// remaining parts in key order.
func (c Credential) Text() string {
	raw := bytes.TrimSpace(c.Value)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var nested []Credential
	if err := json.Unmarshal(raw, &nested); err == nil {
		return joinParts(partsFromList(nested))
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		parts := make(map[string]string, len(obj))
		for k, v := range obj {
			parts[k] = Credential{Type: k, Value: v}.Text()
		}
		return joinParts(parts)
	}

	return strings.TrimSpace(string(raw))
}

// Field returns the sub-credential of the given type inside a composite value.
func (c Credential) Field(subType string) string {
	raw := bytes.TrimSpace(c.Value)

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if v, ok := obj[subType]; ok {
			return Credential{Type: subType, Value: v}.Text()
		}
		return ""
	}

	var nested []Credential
	if err := json.Unmarshal(raw, &nested); err == nil {
		for _, n := range nested {
			if n.Type == subType {
				return n.Text()
			}
		}
	}
	return ""
}

// Find returns the first credential of the given type.
func (s *SharedCredentials) Find(credType string) (Credential, bool) {
	if s == nil {
		return Credential{}, false
	}
	for _, c := range s.Credentials {
		if c.Type == credType {
			return c, true
		}
	}
	return Credential{}, false
}

var nameOrder = []string{TypeFirstName, TypeMiddleName, TypeLastName}

func partsFromList(list []Credential) map[string]string {
	parts := make(map[string]string, len(list))
	for _, c := range list {
		parts[c.Type] = c.Text()
	}
	return parts
}

func joinParts(parts map[string]string) string {
	out := make([]string, 0, len(parts))
	for _, k := range nameOrder {
		if v := parts[k]; v != "" {
			out = append(out, v)
		}
		delete(parts, k)
	}
	rest := make([]string, 0, len(parts))
	for k := range parts {
		rest = append(rest, k)
	}
	slices.Sort(rest)
	for _, k := range rest {
		if v := parts[k]; v != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, " ")
}
