package config

import (
	"errors"
	"fmt"
	"net/netip"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
)

// DevSessionSecret is used only when ENV=development and no secret is set.
const DevSessionSecret = "dev-session-secret-change-in-production"

// Config is the full process configuration, read once at start-up.
type Config struct {
	Server      Server
	Session     Session
	CoreService CoreService
	Features    Features
	Redis       RedisConfig
	RateLimit   RateLimit
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"KREDITA_ADDR"     envDefault:":8080"`
	Environment     string        `env:"ENV"              envDefault:"development"`
	LogLevel        string        `env:"LOG_LEVEL"        envDefault:"debug"`
	LogFormat       string        `env:"LOG_FORMAT"       envDefault:"text"`
	DemoURL         string        `env:"DEMO_URL"         envDefault:"http://localhost:8080"`
	WalletURL       string        `env:"WALLET_URL"       envDefault:"https://wallet.verified.inc"`
	StaticDir       string        `env:"STATIC_DIR"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT"    envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	// TrustedProxies are the CIDRs whose X-Forwarded-For and X-Real-IP
	// headers are believed. Empty means client addresses come from the
	// connection only.
	TrustedProxies []netip.Prefix `env:"TRUSTED_PROXIES" envSeparator:","`
}

// Session configures the signed identity cookie.
type Session struct {
	Secret     string        `env:"SESSION_SECRET"`
	TTL        time.Duration `env:"SESSION_TTL"         envDefault:"24h"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"__session"`
	Secure     bool
}

// CoreService points at the external verification API.
type CoreService struct {
	URL          string        `env:"CORE_SERVICE_URL"             envDefault:"http://localhost:3000"`
	APIKey       string        `env:"VERIFIED_API_KEY"`
	AdminAuthKey string        `env:"CORE_SERVICE_ADMIN_AUTH_KEY"`
	Timeout      time.Duration `env:"CORE_SERVICE_TIMEOUT"         envDefault:"10s"`
}

// Features holds the flow and branding switches.
type Features struct {
	OneClickEnabled          bool `env:"ONE_CLICK_ENABLED"`
	OneClickNonHostedEnabled bool `env:"ONE_CLICK_NON_HOSTED_ENABLED"`
	CustomBrandingEnabled    bool `env:"CUSTOM_BRANDING_ENABLED"`
	RequireEmailAndPhone     bool `env:"REQUIRE_EMAIL_AND_PHONE"`
}

// RedisConfig configures the optional brand cache. An empty URL disables it.
type RedisConfig struct {
	URL           string        `env:"REDIS_URL"`
	PoolSize      int           `env:"REDIS_POOL_SIZE"       envDefault:"10"`
	MinIdleConns  int           `env:"REDIS_MIN_IDLE_CONNS"  envDefault:"1"`
	DialTimeout   time.Duration `env:"REDIS_DIAL_TIMEOUT"    envDefault:"2s"`
	ReadTimeout   time.Duration `env:"REDIS_READ_TIMEOUT"    envDefault:"1s"`
	WriteTimeout  time.Duration `env:"REDIS_WRITE_TIMEOUT"   envDefault:"1s"`
	BrandCacheTTL time.Duration `env:"BRAND_CACHE_TTL"       envDefault:"5m"`
}

// RateLimit bounds POST /register per client IP.
type RateLimit struct {
	RequestsPerMinute int  `env:"RATELIMIT_REGISTER_PER_MINUTE" envDefault:"10"`
	Burst             int  `env:"RATELIMIT_REGISTER_BURST"      envDefault:"5"`
	Disabled          bool `env:"RATELIMIT_DISABLED"`
}

// Flow identifies which registration form is served.
type Flow string

const (
	FlowStandard          Flow = "standard"
	FlowOneClick          Flow = "one-click"
	FlowOneClickNonHosted Flow = "one-click-non-hosted"
)

// Flow is a pure function of the feature flags: exactly one flow is active.
func (f Features) Flow() Flow {
	switch {
	case f.OneClickEnabled && f.OneClickNonHostedEnabled:
		return FlowOneClickNonHosted
	case f.OneClickEnabled:
		return FlowOneClick
	default:
		return FlowStandard
	}
}

// IsProduction reports whether cookies must be marked Secure.
func (s Server) IsProduction() bool {
	return s.Environment == "production"
}

// IsDevelopment reports whether development defaults may be applied.
func (s Server) IsDevelopment() bool {
	return s.Environment == "development"
}

// FromEnv builds the configuration from environment variables.
func FromEnv() (Config, error) {
	return Parse(env.Options{})
}

// Parse builds the configuration with explicit env options; tests pass an
// Environment map instead of touching the process environment.
func Parse(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) finalize() error {
	if c.Session.Secret == "" {
		if !c.Server.IsDevelopment() {
			return errors.New("SESSION_SECRET is required outside development")
		}
		c.Session.Secret = DevSessionSecret
	}
	c.Session.Secure = c.Server.IsProduction()

	u, err := url.Parse(c.CoreService.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("CORE_SERVICE_URL must be an absolute URL, got %q", c.CoreService.URL)
	}
	if c.RateLimit.RequestsPerMinute <= 0 {
		c.RateLimit.RequestsPerMinute = 10
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 1
	}
	return nil
}
