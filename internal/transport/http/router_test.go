package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/netip"
	"testing"
	"testing/fstest"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kredita/internal/platform/metrics"
	"kredita/internal/platform/middleware"
	"kredita/pkg/requestcontext"
	"kredita/pkg/testutil"
)

type stubPages struct {
	limited bool
}

func (p *stubPages) Register(r chi.Router, rateLimit func(http.Handler) http.Handler) {
	r.Get("/register", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.With(rateLimit).Post("/register", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	p.limited = rateLimit != nil
}

type stubHealth struct{ err error }

func (h stubHealth) Health(context.Context) error { return h.err }

func newDeps(t *testing.T) (Dependencies, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	return Dependencies{
		Pages: &stubPages{},
		RateLimit: func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			})
		},
		Static: http.FileServerFS(fstest.MapFS{
			"styles.css": {Data: []byte("body{}")},
		}),
		Metrics:  metrics.New(reg),
		Gatherer: reg,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, reg
}

func TestHealth(t *testing.T) {
	testutil.Given(t, "no redis configured", func(t *testing.T) {
		deps, _ := newDeps(t)
		router := NewRouter(deps)

		testutil.When(t, "health is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))

			testutil.Then(t, "it is ok without a redis field", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusOK)
				body := testutil.UnmarshalResponse[map[string]any](t, rr)
				assert.Equal(t, "ok", (*body)["status"])
				assert.NotContains(t, *body, "redis")
			})
		})
	})

	testutil.Given(t, "redis that cannot be reached", func(t *testing.T) {
		deps, _ := newDeps(t)
		deps.Health = stubHealth{err: errors.New("dial tcp: connection refused")}
		router := NewRouter(deps)

		testutil.When(t, "health is requested", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health"))

			testutil.Then(t, "it reports degraded", func(t *testing.T) {
				testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
				testutil.AssertJSONContains(t, rr, "status", "degraded")
				testutil.AssertJSONContains(t, rr, "redis", "unreachable")
			})
		})
	})
}

func TestRouterWiring(t *testing.T) {
	deps, _ := newDeps(t)
	pages := deps.Pages.(*stubPages)
	router := NewRouter(deps)

	t.Run("pages receive the rate limiter", func(t *testing.T) {
		assert.True(t, pages.limited)
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodPost, "/register"))
		testutil.AssertStatus(t, rr, http.StatusTooManyRequests)
	})

	t.Run("trailing slashes are stripped", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/register/"))
		testutil.AssertStatus(t, rr, http.StatusOK)
	})

	t.Run("every response carries a request id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/register"))
		assert.NotEmpty(t, rr.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("static files are served from the root", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/styles.css"))
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Equal(t, "body{}", rr.Body.String())
	})

	t.Run("unknown paths are not found", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/nope.css"))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("metrics expose request latency", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
		testutil.AssertStatus(t, rr, http.StatusOK)
		require.Contains(t, rr.Body.String(), "kredita_http_request_duration_seconds")
	})
}

func TestMetricsRouteRequiresGatherer(t *testing.T) {
	deps, _ := newDeps(t)
	deps.Gatherer = nil
	deps.Static = nil
	router := NewRouter(deps)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatus(t, rr, http.StatusNotFound)
}

func TestClientIPAttribution(t *testing.T) {
	limitedAs := func(deps *Dependencies) *string {
		var ip string
		deps.RateLimit = func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ip = requestcontext.ClientIP(r.Context())
				next.ServeHTTP(w, r)
			})
		}
		return &ip
	}
	post := func(t *testing.T, router http.Handler, remote, forwarded string) {
		req := testutil.NewRequest(t, http.MethodPost, "/register")
		req.RemoteAddr = remote
		req.Header.Set("X-Forwarded-For", forwarded)
		testutil.DoRequest(router, req)
	}

	testutil.Given(t, "no trusted proxies", func(t *testing.T) {
		deps, _ := newDeps(t)
		ip := limitedAs(&deps)
		router := NewRouter(deps)

		testutil.When(t, "a client sends its own forwarding header", func(t *testing.T) {
			post(t, router, "198.51.100.9:40000", "203.0.113.1")

			testutil.Then(t, "the rate limiter sees the connection address", func(t *testing.T) {
				assert.Equal(t, "198.51.100.9", *ip)
			})
		})
	})

	testutil.Given(t, "a trusted load balancer", func(t *testing.T) {
		deps, _ := newDeps(t)
		deps.TrustedProxies = []netip.Prefix{netip.MustParsePrefix("10.0.0.0/8")}
		ip := limitedAs(&deps)
		router := NewRouter(deps)

		testutil.When(t, "it forwards a request", func(t *testing.T) {
			post(t, router, "10.1.2.3:40000", "203.0.113.1")

			testutil.Then(t, "the rate limiter sees the forwarded client", func(t *testing.T) {
				assert.Equal(t, "203.0.113.1", *ip)
			})
		})
	})
}
