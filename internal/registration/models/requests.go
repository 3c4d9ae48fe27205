package models

import (
	"net/url"
	"strings"
	"time"

	"kredita/pkg/email"
	dErrors "kredita/pkg/domain-errors"
)

// Action values posted by the registration forms.
const (
	ActionRegular  = "regular"
	ActionOneClick = "one-click"
	ActionReset    = "reset"
	ActionLogout   = "logout"
)

const birthDateLayout = "2006-01-02"

// ErrInvalidFormData is returned when a field is posted more than once.
var ErrInvalidFormData = dErrors.New(dErrors.CodeBadRequest, "Invalid form data")

// FormValue returns the single value of key. A field posted more than once
// is malformed.
func FormValue(form url.Values, key string) (string, error) {
	values := form[key]
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return strings.TrimSpace(values[0]), nil
	default:
		return "", ErrInvalidFormData
	}
}

// ParseAction reads the action field. An absent action is a 400 naming the
// field; an unknown one is a 400 naming the value.
func ParseAction(form url.Values) (string, error) {
	action, err := FormValue(form, "action")
	if err != nil {
		return "", err
	}
	switch action {
	case "":
		return "", dErrors.New(dErrors.CodeValidation, "Missing required field: action")
	case ActionRegular, ActionOneClick, ActionReset, ActionLogout:
		return action, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "Unknown action: "+action)
	}
}

// RegularRequest is the standard email/phone form.
type RegularRequest struct {
	Email string
	Phone string
}

func ParseRegularRequest(form url.Values) (RegularRequest, error) {
	emailValue, err := FormValue(form, "email")
	if err != nil {
		return RegularRequest{}, err
	}
	phone, err := FormValue(form, "phone")
	if err != nil {
		return RegularRequest{}, err
	}
	return RegularRequest{Email: emailValue, Phone: phone}, nil
}

// Validate checks the contact fields. requireBoth switches from "either" to
// "both".
func (r RegularRequest) Validate(requireBoth bool) error {
	switch {
	case requireBoth && (r.Email == "" || r.Phone == ""):
		return dErrors.New(dErrors.CodeValidation, "Both phone and email must be populated")
	case r.Email == "" && r.Phone == "":
		return dErrors.New(dErrors.CodeValidation, "Either phone or email must be populated")
	case r.Email != "" && !email.LooksLikeEmail(r.Email):
		return dErrors.New(dErrors.CodeValidation, "Email is invalid")
	}
	return nil
}

// OneClickRequest is the 1-click form, hosted or non-hosted.
type OneClickRequest struct {
	Phone       string
	BirthDate   string
	APIKey      string
	RedirectURL string
}

func ParseOneClickRequest(form url.Values) (OneClickRequest, error) {
	var req OneClickRequest
	for field, dst := range map[string]*string{
		"phone":       &req.Phone,
		"birthDate":   &req.BirthDate,
		"apiKey":      &req.APIKey,
		"redirectUrl": &req.RedirectURL,
	} {
		v, err := FormValue(form, field)
		if err != nil {
			return OneClickRequest{}, err
		}
		*dst = v
	}
	return req, nil
}

// Validate checks the 1-click fields. requireBirthDate is set for the
// non-hosted flow.
func (r OneClickRequest) Validate(requireBirthDate bool) error {
	if r.Phone == "" {
		return dErrors.New(dErrors.CodeValidation, "Phone must be populated.")
	}
	if requireBirthDate || r.BirthDate != "" {
		if _, err := time.Parse(birthDateLayout, r.BirthDate); err != nil {
			return dErrors.New(dErrors.CodeValidation, "Birthday is invalid")
		}
	}
	return nil
}
