package models

import (
	"net/url"

	"github.com/google/uuid"
)

// Query parameters that carry flow state between page loads.
const (
	ParamBrand                 = "brand"
	ParamRedirect              = "redirect"
	ParamSharedCredentialsUUID = "sharedCredentialsUuid"
	ParamOneClickUUID          = "1ClickUuid"
	ParamVerificationOptions   = "verificationOptions"
	ParamOptedOut              = "optedOut"
)

// Kind is the step of the registration flow a request is in.
type Kind int

const (
	// KindStart has no pending verification: show the input form.
	KindStart Kind = iota
	// KindSharedCredentialsPending returns from the wallet with a
	// sharedCredentialsUuid to exchange for credentials.
	KindSharedCredentialsPending
	// KindOneClickPending returns from an SMS link with a 1ClickUuid.
	KindOneClickPending
)

func (k Kind) String() string {
	switch k {
	case KindSharedCredentialsPending:
		return "shared_credentials_pending"
	case KindOneClickPending:
		return "one_click_pending"
	default:
		return "start"
	}
}

// FlowState is the flow position carried in the query string. Only
// parameters that decode to a well-formed uuid move the flow forward; every
// parameter, known or not and including repeated values, survives a
// Decode/Encode round trip.
type FlowState struct {
	Kind                  Kind
	SharedCredentialsUUID string
	OneClickUUID          string
	BrandUUID             string
	Redirect              bool
	VerificationOptions   string
	OptedOut              bool

	// extra holds parameters not modelled above, repeats of modelled ones,
	// and flags whose value was not "true", verbatim.
	extra url.Values
}

// DecodeFlowState reads the flow state from a query string. A shared
// credentials uuid takes precedence over a 1-click uuid.
func DecodeFlowState(q url.Values) FlowState {
	s := FlowState{extra: url.Values{}}
	for key, values := range q {
		switch key {
		case ParamSharedCredentialsUUID:
			s.SharedCredentialsUUID = s.take(key, values)
		case ParamOneClickUUID:
			s.OneClickUUID = s.take(key, values)
		case ParamBrand:
			s.BrandUUID = s.take(key, values)
		case ParamVerificationOptions:
			s.VerificationOptions = s.take(key, values)
		case ParamRedirect:
			s.Redirect = s.takeFlag(key, values)
		case ParamOptedOut:
			s.OptedOut = s.takeFlag(key, values)
		default:
			s.extra[key] = append([]string(nil), values...)
		}
	}

	switch {
	case validUUID(s.SharedCredentialsUUID):
		s.Kind = KindSharedCredentialsPending
	case validUUID(s.OneClickUUID):
		s.Kind = KindOneClickPending
	default:
		s.Kind = KindStart
	}
	return s
}

// Encode writes the state back into query parameters. Modelled values come
// first, followed by any repeats kept aside while decoding.
func (s FlowState) Encode() url.Values {
	q := url.Values{}
	set := func(key, value string) {
		if value != "" {
			q.Set(key, value)
		}
	}
	set(ParamSharedCredentialsUUID, s.SharedCredentialsUUID)
	set(ParamOneClickUUID, s.OneClickUUID)
	set(ParamBrand, s.BrandUUID)
	set(ParamVerificationOptions, s.VerificationOptions)
	if s.Redirect {
		q.Set(ParamRedirect, "true")
	}
	if s.OptedOut {
		q.Set(ParamOptedOut, "true")
	}
	for key, values := range s.extra {
		q[key] = append(q[key], values...)
	}
	return q
}

// Query is the encoded state prefixed with "?", or "" when empty.
func (s FlowState) Query() string {
	encoded := s.Encode().Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

// Completed drops the correlation uuids once a verification has been
// consumed, keeping every other parameter.
func (s FlowState) Completed() FlowState {
	s.extra = s.cloneExtra()
	s.Kind = KindStart
	s.SharedCredentialsUUID = ""
	s.OneClickUUID = ""
	delete(s.extra, ParamSharedCredentialsUUID)
	delete(s.extra, ParamOneClickUUID)
	return s
}

// WithoutFlowParams drops every parameter that moves the flow forward, as on
// logout. Brand, redirect and verification options are kept.
func (s FlowState) WithoutFlowParams() FlowState {
	s = s.Completed()
	s.OptedOut = false
	delete(s.extra, ParamOptedOut)
	return s
}

// LogoutTarget is where a visitor lands after signing out. redirect comes
// from the logout form and forces redirect=true.
func (s FlowState) LogoutTarget(registerPath string, redirect bool) string {
	s = s.WithoutFlowParams()
	if redirect {
		s.Redirect = true
		delete(s.extra, ParamRedirect)
	}
	return registerPath + s.Query()
}

func (s FlowState) cloneExtra() url.Values {
	out := make(url.Values, len(s.extra))
	for k, v := range s.extra {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// take returns the first value of a modelled parameter and keeps any repeats
// in extra. An empty first value is kept verbatim with the rest.
func (s *FlowState) take(key string, values []string) string {
	v := first(values)
	if v == "" {
		s.extra[key] = append([]string(nil), values...)
		return ""
	}
	if len(values) > 1 {
		s.extra[key] = append([]string(nil), values[1:]...)
	}
	return v
}

// takeFlag is take for boolean parameters: only a leading "true" sets the
// flag, anything else is kept verbatim.
func (s *FlowState) takeFlag(key string, values []string) bool {
	if first(values) != "true" {
		s.extra[key] = append([]string(nil), values...)
		return false
	}
	if len(values) > 1 {
		s.extra[key] = append([]string(nil), values[1:]...)
	}
	return true
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func validUUID(s string) bool {
	return s != "" && uuid.Validate(s) == nil
}
