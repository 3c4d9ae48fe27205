package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	brandmodels "kredita/internal/brand/models"
	"kredita/internal/coreapi"
	"kredita/internal/platform/config"
	"kredita/internal/platform/middleware"
	"kredita/internal/registration/models"
	"kredita/internal/session"
	"kredita/internal/web"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/platform/httputil"
)

// Page paths.
const (
	PathRoot                = "/"
	PathRegister            = "/register"
	PathVerified            = "/verified"
	PathPersonalInformation = "/personal-information"
	PathLogout              = "/logout"
)

//go:generate mockgen -source=handler.go -destination=mocks/registration-mocks.go -package=mocks Service,SessionStore,BrandResolver

// Service runs the registration flows.
type Service interface {
	Flow() config.Flow
	Resume(ctx context.Context, state models.FlowState, apiKey string) (*models.Verification, error)
	Regular(ctx context.Context, req models.RegularRequest, state models.FlowState) (string, error)
	OneClick(ctx context.Context, req models.OneClickRequest, state models.FlowState, apiKey string) (*coreapi.OneClickResult, error)
	PersonalInformation(ctx context.Context, state models.FlowState, apiKey string) (*models.PersonalInformation, error)
}

// SessionStore creates, checks and clears the visitor session.
type SessionStore interface {
	Identity(r *http.Request) (string, bool)
	Require(r *http.Request) session.Guard
	Create(w http.ResponseWriter, r *http.Request, identity string, set *brandmodels.Set) error
	Destroy(w http.ResponseWriter, r *http.Request)
}

// BrandResolver picks the brand for a request and remembers it.
type BrandResolver interface {
	Resolve(r *http.Request) (brandmodels.Set, bool)
	Persist(w http.ResponseWriter, r *http.Request, set brandmodels.Set) error
}

// Handler serves the registration, verified and personal information pages.
type Handler struct {
	svc      Service
	sessions SessionStore
	brands   BrandResolver
	renderer *web.Renderer
	logger   *slog.Logger
}

func New(svc Service, sessions SessionStore, brands BrandResolver, renderer *web.Renderer, logger *slog.Logger) *Handler {
	return &Handler{
		svc:      svc,
		sessions: sessions,
		brands:   brands,
		renderer: renderer,
		logger:   logger,
	}
}

// Register mounts the page routes. rateLimit guards form submissions on
// /register; pass nil to leave them unlimited.
func (h *Handler) Register(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Get(PathRoot, h.handleIndex)
	r.Post(PathRoot, h.handleLogout)
	r.Get(PathLogout, h.handleLogout)

	r.Get(PathRegister, h.handleRegisterPage)
	r.Group(func(r chi.Router) {
		if rateLimit != nil {
			r.Use(rateLimit)
		}
		r.Post(PathRegister, h.handleRegisterAction)
	})

	r.With(middleware.RequireSession(h.sessions, PathRegister, h.logger)).Get(PathVerified, h.handleVerifiedPage)
	r.Post(PathVerified, h.handleVerifiedAction)

	r.Get(PathPersonalInformation, h.handlePersonalInformationPage)
	r.Post(PathPersonalInformation, h.handlePersonalInformationConfirm)
}

// handleIndex sends verified visitors to their welcome page and everyone else
// to registration.
func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	target := PathVerified
	if g := h.sessions.Require(r); !g.OK() {
		target = PathRegister
	}
	http.Redirect(w, r, target+query(r), http.StatusFound)
}

// handleLogout clears the session and returns to the start of the flow.
func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	redirect := false
	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			redirect = r.PostForm.Get("redirect") == "true"
		}
	}
	h.logout(w, r, redirect)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request, redirect bool) {
	state := models.DecodeFlowState(r.URL.Query())
	h.sessions.Destroy(w, r)
	http.Redirect(w, r, state.LogoutTarget(PathRegister, redirect), http.StatusFound)
}

// renderFailure shows the generic error page for failures while loading a
// page. The cause is logged, never shown.
func (h *Handler) renderFailure(w http.ResponseWriter, r *http.Request, set brandmodels.Set, err error) {
	ctx := r.Context()
	h.logger.ErrorContext(ctx, "page load failed",
		"request_id", middleware.GetRequestID(ctx),
		"path", r.URL.Path,
		"error", err,
	)
	h.renderer.RenderError(w, r, set.Brand, http.StatusInternalServerError, httputil.GenericErrorMessage)
}

// logActionError records a failed form action at a level matching its cause.
func (h *Handler) logActionError(r *http.Request, action string, err error) {
	ctx := r.Context()
	attrs := []any{
		"request_id", middleware.GetRequestID(ctx),
		"action", action,
		"code", string(dErrors.CodeOf(err)),
		"error", err,
	}
	switch dErrors.CodeOf(err) {
	case dErrors.CodeValidation, dErrors.CodeBadRequest:
		h.logger.WarnContext(ctx, "registration action rejected", attrs...)
	default:
		h.logger.ErrorContext(ctx, "registration action failed", attrs...)
	}
}

// wantsHTML reports whether the form was posted by a browser without
// scripting, in which case the page is re-rendered instead of answering JSON.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

func query(r *http.Request) string {
	if r.URL.RawQuery == "" {
		return ""
	}
	return "?" + r.URL.RawQuery
}
