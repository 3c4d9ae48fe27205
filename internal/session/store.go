// Package session keeps the visitor's verified identity and resolved brand in
// a single signed cookie.
package session

import (
	"log/slog"
	"net/http"
	"time"

	"kredita/internal/brand/models"
	"kredita/internal/platform/config"
	"kredita/internal/platform/metrics"
	"kredita/pkg/requestcontext"
)

// Guard is the outcome of Require: either the session identity, or the page
// the visitor must be sent to instead.
type Guard struct {
	Identity   string
	RedirectTo string
}

// OK reports whether the request carries a verified identity.
func (g Guard) OK() bool {
	return g.Identity != ""
}

// Store reads and writes the session cookie.
type Store struct {
	codec        *Codec
	cookieName   string
	ttl          time.Duration
	secure       bool
	registerPath string
	logger       *slog.Logger
	metrics      *metrics.Metrics
}

// NewStore builds a cookie store. Visitors without a session are sent to
// registerPath by Require.
func NewStore(cfg config.Session, registerPath string, logger *slog.Logger, m *metrics.Metrics) *Store {
	return &Store{
		codec:        NewCodec(cfg.Secret, cfg.TTL),
		cookieName:   cfg.CookieName,
		ttl:          cfg.TTL,
		secure:       cfg.Secure,
		registerPath: registerPath,
		logger:       logger,
		metrics:      m,
	}
}

// Read returns the session payload. A missing, tampered or expired cookie
// yields an empty payload.
func (s *Store) Read(r *http.Request) Data {
	c, err := r.Cookie(s.cookieName)
	if err != nil || c.Value == "" {
		return Data{}
	}
	d, err := s.codec.Decode(c.Value, requestcontext.Now(r.Context()))
	if err != nil {
		s.logger.DebugContext(r.Context(), "ignoring session cookie", "error", err)
		return Data{}
	}
	return *d
}

// Identity implements middleware.SessionGuard.
func (s *Store) Identity(r *http.Request) (string, bool) {
	identity := s.Read(r).Identity
	return identity, identity != ""
}

// Require resolves the identity or, when absent, the registration page with
// the current query string preserved.
func (s *Store) Require(r *http.Request) Guard {
	if identity, ok := s.Identity(r); ok {
		return Guard{Identity: identity}
	}
	target := s.registerPath
	if r.URL.RawQuery != "" {
		target += "?" + r.URL.RawQuery
	}
	return Guard{RedirectTo: target}
}

// Create records a verified identity, keeping any brand already in the
// session unless set is non-nil.
func (s *Store) Create(w http.ResponseWriter, r *http.Request, identity string, set *models.Set) error {
	d := s.Read(r)
	d.Identity = identity
	if set != nil {
		d.Brand = set
	}
	if err := s.Commit(w, r, d); err != nil {
		return err
	}
	s.metrics.IncrementSessionsCreated()
	s.logger.InfoContext(r.Context(), "session created",
		"session_id", d.ID,
		"request_id", requestcontext.RequestID(r.Context()),
	)
	return nil
}

// Commit writes d as the session cookie.
func (s *Store) Commit(w http.ResponseWriter, r *http.Request, d Data) error {
	now := requestcontext.Now(r.Context())
	value, err := s.codec.Encode(d, now)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    value,
		Path:     "/",
		Expires:  now.Add(s.ttl),
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Destroy clears the session cookie.
func (s *Store) Destroy(w http.ResponseWriter, r *http.Request) {
	d := s.Read(r)
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	if d.Identity != "" {
		s.metrics.IncrementSessionsDestroyed()
	}
	s.logger.InfoContext(r.Context(), "session destroyed",
		"session_id", d.ID,
		"request_id", requestcontext.RequestID(r.Context()),
	)
}
