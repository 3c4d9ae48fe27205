package middleware

import (
	"log/slog"
	"net/http"

	"kredita/pkg/requestcontext"
)

// SessionGuard resolves the visitor identity carried by the request. ok is
// false when there is no valid session cookie.
type SessionGuard interface {
	Identity(r *http.Request) (identity string, ok bool)
}

// RequireSession lets requests with a valid session through and stores the
// identity in the context. Other requests are redirected to redirectTo with
// the current query string preserved.
func RequireSession(guard SessionGuard, redirectTo string, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := guard.Identity(r)
			if !ok {
				ctx := r.Context()
				logger.DebugContext(ctx, "no session, redirecting",
					"request_id", GetRequestID(ctx),
					"path", r.URL.Path,
				)
				target := redirectTo
				if r.URL.RawQuery != "" {
					target += "?" + r.URL.RawQuery
				}
				http.Redirect(w, r, target, http.StatusFound)
				return
			}

			ctx := requestcontext.WithIdentity(r.Context(), identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
