// Package httptransport assembles the HTTP surface: the middleware chain, the
// page handlers, and the operational endpoints.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"net/netip"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"kredita/internal/platform/metrics"
	"kredita/internal/platform/middleware"
	"kredita/pkg/platform/httputil"
	"kredita/pkg/platform/middleware/metadata"
	"kredita/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

// PageRegistrar mounts page routes whose form posts may be rate limited.
type PageRegistrar interface {
	Register(r chi.Router, rateLimit func(http.Handler) http.Handler)
}

// HealthChecker reports whether a backing service is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Dependencies is everything the router serves.
type Dependencies struct {
	Pages     PageRegistrar
	Brand     Registrar
	RateLimit func(http.Handler) http.Handler
	Static    http.Handler
	Metrics   *metrics.Metrics
	Gatherer  prometheus.Gatherer
	// Health is nil when no Redis is configured.
	Health HealthChecker
	// TrustedProxies may set the client address through forwarding headers.
	TrustedProxies []netip.Prefix
	Logger         *slog.Logger
}

// NewRouter wires all public endpoints.
func NewRouter(d Dependencies) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(metadata.NewResolver(d.TrustedProxies).ClientMetadata)
	r.Use(requesttime.Middleware)
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.LatencyMiddleware(d.Metrics))
	r.Use(chimw.CleanPath)
	r.Use(chimw.StripSlashes)

	r.Get("/health", handleHealth(d.Health))
	if d.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	d.Pages.Register(r, d.RateLimit)
	if d.Brand != nil {
		d.Brand.Register(r)
	}
	if d.Static != nil {
		r.Method(http.MethodGet, "/*", d.Static)
	}
	return r
}

type healthResponse struct {
	Status string `json:"status"`
	Redis  string `json:"redis,omitempty"`
}

func handleHealth(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if checker == nil {
			httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok"})
			return
		}
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := checker.Health(ctx); err != nil {
			httputil.WriteJSON(w, http.StatusServiceUnavailable, healthResponse{Status: "degraded", Redis: "unreachable"})
			return
		}
		httputil.WriteJSON(w, http.StatusOK, healthResponse{Status: "ok", Redis: "ok"})
	}
}
