// Package web renders the server-side pages. Templates are embedded and
// parsed once at start-up.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"kredita/internal/brand/models"
	"kredita/internal/platform/config"
	regmodels "kredita/internal/registration/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Template names.
const (
	TemplateRegisterStandard    = "register_standard.html"
	TemplateRegisterOneClick    = "register_one_click.html"
	TemplateRegisterNonHosted   = "register_non_hosted.html"
	TemplateVerified            = "verified.html"
	TemplatePersonalInformation = "personal_information.html"
	TemplateError               = "error.html"
)

// Page is the data every page needs.
type Page struct {
	Brand models.Brand
	// Query is the current flow query string including its leading "?".
	Query string
	Error string
}

// RegisterPage is the input form for one of the registration flows.
type RegisterPage struct {
	Page
	Email     string
	Phone     string
	BirthDate string
	// SentTo is set after a 1-click link was texted without redirecting.
	SentTo string
}

// VerifiedPage greets a verified visitor.
type VerifiedPage struct {
	Page
	Name     string
	Redirect bool
}

// PersonalInformationPage shows the credentials released through a 1-click
// link for confirmation.
type PersonalInformationPage struct {
	Page
	Info regmodels.PersonalInformation
}

// ErrorPage is shown for failures outside form actions.
type ErrorPage struct {
	Page
	Status  int
	Message string
}

// Renderer executes the embedded templates.
type Renderer struct {
	templates *template.Template
	logger    *slog.Logger
}

// New parses the embedded templates.
func New(logger *slog.Logger) (*Renderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"title": func(b models.Brand) string {
			if b.Name == "" {
				return "Kredita"
			}
			return b.Name
		},
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{templates: t, logger: logger}, nil
}

// RegisterTemplate is the form served for flow.
func RegisterTemplate(flow config.Flow) string {
	switch flow {
	case config.FlowOneClick:
		return TemplateRegisterOneClick
	case config.FlowOneClickNonHosted:
		return TemplateRegisterNonHosted
	default:
		return TemplateRegisterStandard
	}
}

// Render writes the named template with status. The page is rendered to a
// buffer first so a template failure still produces a clean 500.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, name string, data any) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		r.logger.ErrorContext(req.Context(), "failed to render template",
			"template", name,
			"error", err,
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderError shows the generic error page.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, brand models.Brand, status int, message string) {
	r.Render(w, req, status, TemplateError, ErrorPage{
		Page:    Page{Brand: brand},
		Status:  status,
		Message: message,
	})
}
