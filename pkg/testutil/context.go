package testutil

import (
	"net/http"
	"time"

	"kredita/pkg/requestcontext"
)

// WithIdentity adds a visitor identity to the request context, as the session
// middleware does for signed-in visitors. An empty identity is ignored.
func WithIdentity(req *http.Request, identity string) *http.Request {
	if identity == "" {
		return req
	}
	return req.WithContext(requestcontext.WithIdentity(req.Context(), identity))
}

// WithTime pins the request time, so cookie expiry can be tested without
// sleeping.
func WithTime(req *http.Request, now time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), now))
}

// WithClientIP sets the client address seen by rate limiting.
func WithClientIP(req *http.Request, ip string) *http.Request {
	req.RemoteAddr = ip + ":40000"
	return req.WithContext(requestcontext.WithClientMetadata(req.Context(), ip, req.UserAgent()))
}
