package service

import (
	"strings"

	"kredita/internal/coreapi"
	"kredita/internal/registration/models"
)

// IdentityFrom picks the identity a verified session is stored under: the
// full name when shared, then first and last name credentials, then the
// email address as given, then phone. It returns "" when none is present.
func IdentityFrom(shared *coreapi.SharedCredentials) string {
	if shared == nil {
		return ""
	}
	info := PersonalInformationFrom(shared)
	switch {
	case info.FullName != "":
		return info.FullName
	case info.Email != "":
		return info.Email
	default:
		return info.Phone
	}
}

// PersonalInformationFrom flattens shared credentials into displayable
// fields. Name parts may arrive inside a FullNameCredential composite or as
// separate credentials.
func PersonalInformationFrom(shared *coreapi.SharedCredentials) models.PersonalInformation {
	var info models.PersonalInformation
	if shared == nil {
		return info
	}

	if c, ok := shared.Find(coreapi.TypeFullName); ok {
		info.FullName = c.Text()
		info.FirstName = c.Field(coreapi.TypeFirstName)
		info.MiddleName = c.Field(coreapi.TypeMiddleName)
		info.LastName = c.Field(coreapi.TypeLastName)
	}
	if info.FirstName == "" {
		info.FirstName = text(shared, coreapi.TypeFirstName)
	}
	if info.MiddleName == "" {
		info.MiddleName = text(shared, coreapi.TypeMiddleName)
	}
	if info.LastName == "" {
		info.LastName = text(shared, coreapi.TypeLastName)
	}
	if info.FullName == "" {
		info.FullName = joinNonEmpty(info.FirstName, info.MiddleName, info.LastName)
	}

	info.Email = firstNonEmpty(text(shared, coreapi.TypeEmail), shared.Email)
	info.Phone = firstNonEmpty(text(shared, coreapi.TypePhone), shared.Phone)
	info.BirthDate = text(shared, coreapi.TypeBirthDate)
	info.SSN = text(shared, coreapi.TypeSSN)

	if c, ok := shared.Find(coreapi.TypeAddress); ok {
		info.Address = models.Address{
			Line1:   c.Field(coreapi.TypeLine1),
			Line2:   c.Field(coreapi.TypeLine2),
			City:    c.Field(coreapi.TypeCity),
			State:   c.Field(coreapi.TypeState),
			Country: c.Field(coreapi.TypeCountry),
			ZipCode: c.Field(coreapi.TypeZipCode),
		}
		if info.Address.IsZero() {
			info.Address.Line1 = c.Text()
		}
	}
	return info
}

func text(shared *coreapi.SharedCredentials, credType string) string {
	c, ok := shared.Find(credType)
	if !ok {
		return ""
	}
	return c.Text()
}

func joinNonEmpty(parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, " ")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
