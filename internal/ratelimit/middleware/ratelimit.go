package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"kredita/internal/ratelimit/metrics"
	"kredita/internal/ratelimit/models"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/platform/circuit"
	"kredita/pkg/platform/httputil"
	"kredita/pkg/requestcontext"
)

// ExceededMessage is shown when a client submits too often.
const ExceededMessage = "Too many attempts. Please wait a moment and try again."

// BucketStore counts requests per key.
type BucketStore interface {
	Allow(ctx context.Context, key string, limit models.Limit) (*models.RateLimitResult, error)
}

type Middleware struct {
	store    BucketStore
	fallback BucketStore
	breaker  *circuit.Breaker
	limit    models.Limit
	logger   *slog.Logger
	metrics  *metrics.Metrics
	disabled bool
}

type Option func(*Middleware)

// WithDisabled disables rate limiting entirely (for testing/demo mode).
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

// WithFallback answers checks from fallback while the circuit around the
// primary store is open.
func WithFallback(fallback BucketStore) Option {
	return func(m *Middleware) {
		m.fallback = fallback
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(mw *Middleware) {
		mw.metrics = m
	}
}

func New(store BucketStore, limit models.Limit, logger *slog.Logger, opts ...Option) *Middleware {
	m := &Middleware{
		store:   store,
		breaker: circuit.New("ratelimit"),
		limit:   limit,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.disabled {
		logger.Info("rate limiting disabled")
	}
	return m
}

// RateLimitByIP limits requests per client IP. Store failures never block a
// visitor: until the circuit opens requests pass, afterwards the fallback
// store decides.
func (m *Middleware) RateLimitByIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		result, degraded := m.check(ctx, models.NewIPKey(ip))
		if degraded {
			w.Header().Set("X-RateLimit-Status", "degraded")
		}
		if result == nil {
			next.ServeHTTP(w, r)
			return
		}

		addRateLimitHeaders(w, result)
		if !result.Allowed {
			m.metrics.IncrementRejected()
			m.logger.WarnContext(ctx, "rate limit exceeded",
				"ip", ip,
				"path", r.URL.Path,
				"retry_after", result.RetryAfter,
			)
			writeRateLimitExceeded(w, result)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (m *Middleware) check(ctx context.Context, key string) (*models.RateLimitResult, bool) {
	result, err := m.store.Allow(ctx, key, m.limit)
	if err == nil {
		if _, change := m.breaker.RecordSuccess(); change.Closed {
			m.logger.InfoContext(ctx, "rate limit store recovered")
			m.metrics.SetDegraded(false)
		}
		return result, false
	}

	m.metrics.IncrementStoreErrors()
	useFallback, change := m.breaker.RecordFailure()
	m.logger.ErrorContext(ctx, "failed to check rate limit", "error", err, "circuit_open", useFallback)
	if change.Opened {
		m.metrics.SetDegraded(true)
	}
	if !useFallback || m.fallback == nil {
		return nil, false
	}
	result, err = m.fallback.Allow(ctx, key, m.limit)
	if err != nil {
		m.logger.ErrorContext(ctx, "fallback rate limit check failed", "error", err)
		return nil, true
	}
	return result, true
}

func addRateLimitHeaders(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
}

func writeRateLimitExceeded(w http.ResponseWriter, result *models.RateLimitResult) {
	w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
	httputil.WriteJSON(w, http.StatusTooManyRequests, &models.RateLimitExceededResponse{
		Error:      ExceededMessage,
		Code:       string(dErrors.CodeRateLimited),
		RetryAfter: result.RetryAfter,
	})
}
