// Package app composes the services, stores and handlers into one HTTP
// handler. cmd/server runs it; acceptance tests serve it in process.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"kredita/internal/brand"
	brandcache "kredita/internal/brand/cache"
	brandhandler "kredita/internal/brand/handler"
	"kredita/internal/coreapi"
	coremetrics "kredita/internal/coreapi/metrics"
	"kredita/internal/platform/config"
	"kredita/internal/platform/metrics"
	"kredita/internal/platform/redis"
	rlmetrics "kredita/internal/ratelimit/metrics"
	rlmw "kredita/internal/ratelimit/middleware"
	rlmodels "kredita/internal/ratelimit/models"
	"kredita/internal/ratelimit/store/bucket"
	reghandler "kredita/internal/registration/handler"
	regmetrics "kredita/internal/registration/metrics"
	"kredita/internal/registration/service"
	"kredita/internal/session"
	httptransport "kredita/internal/transport/http"
	"kredita/internal/web"
)

// App is the assembled application.
type App struct {
	Handler http.Handler
	redis   *redis.Client
}

// Option adjusts assembly, mainly for tests.
type Option func(*options)

type options struct {
	httpClient *http.Client
	gatherer   prometheus.Gatherer
}

// WithHTTPClient replaces the client used to reach the core service.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *options) { o.httpClient = hc }
}

// WithGatherer exposes gatherer on /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) { o.gatherer = g }
}

// New wires the application. Redis is optional: without it brands are not
// cached and rate limiting stays in process.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger, reg prometheus.Registerer, opts ...Option) (*App, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	redisClient, err := redis.New(ctx, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	platformMetrics := metrics.New(reg)

	coreOpts := []coreapi.Option{
		coreapi.WithLogger(logger),
		coreapi.WithMetrics(coremetrics.New(reg)),
		coreapi.WithTimeout(cfg.CoreService.Timeout),
	}
	if o.httpClient != nil {
		coreOpts = append(coreOpts, coreapi.WithHTTPClient(o.httpClient))
	}
	core := coreapi.New(cfg.CoreService.URL, cfg.CoreService.APIKey, coreOpts...)

	sessions := session.NewStore(cfg.Session, reghandler.PathRegister, logger, platformMetrics)

	var brandOpts []brand.Option
	if redisClient != nil {
		brandOpts = append(brandOpts, brand.WithCache(brandcache.NewRedisCache(redisClient.Client, cfg.Redis.BrandCacheTTL)))
	}
	brands := brand.NewResolver(core, sessions, cfg.Features.CustomBrandingEnabled,
		cfg.CoreService.APIKey, cfg.CoreService.AdminAuthKey, logger, brandOpts...)

	svc := service.New(core, service.Config{
		DemoURL:              cfg.Server.DemoURL,
		WalletURL:            cfg.Server.WalletURL,
		Flow:                 cfg.Features.Flow(),
		RequireEmailAndPhone: cfg.Features.RequireEmailAndPhone,
	}, logger, regmetrics.New(reg))

	renderer, err := web.New(logger)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}

	limiter := newRateLimiter(cfg.RateLimit, redisClient, logger, rlmetrics.New(reg))

	deps := httptransport.Dependencies{
		Pages:          reghandler.New(svc, sessions, brands, renderer, logger),
		Brand:          brandhandler.New(brands, logger),
		RateLimit:      limiter.RateLimitByIP,
		Static:         web.Static(cfg.Server.StaticDir),
		Metrics:        platformMetrics,
		Gatherer:       o.gatherer,
		TrustedProxies: cfg.Server.TrustedProxies,
		Logger:         logger,
	}
	if redisClient != nil {
		deps.Health = redisClient
	}

	logger.InfoContext(ctx, "application assembled",
		"flow", string(cfg.Features.Flow()),
		"custom_branding", cfg.Features.CustomBrandingEnabled,
		"redis", redisClient != nil,
	)
	return &App{Handler: httptransport.NewRouter(deps), redis: redisClient}, nil
}

func newRateLimiter(cfg config.RateLimit, redisClient *redis.Client, logger *slog.Logger, m *rlmetrics.Metrics) *rlmw.Middleware {
	limit := rlmodels.Limit{
		RequestsPerWindow: cfg.RequestsPerMinute,
		Window:            time.Minute,
		Burst:             cfg.Burst,
	}
	opts := []rlmw.Option{rlmw.WithDisabled(cfg.Disabled), rlmw.WithMetrics(m)}
	if redisClient == nil {
		return rlmw.New(bucket.NewInMemoryBucketStore(), limit, logger, opts...)
	}
	opts = append(opts, rlmw.WithFallback(bucket.NewInMemoryBucketStore()))
	return rlmw.New(bucket.NewRedisBucketStore(redisClient.Client), limit, logger, opts...)
}

// Close releases the Redis connection, if any.
func (a *App) Close() error {
	if a.redis == nil {
		return nil
	}
	return a.redis.Close()
}
