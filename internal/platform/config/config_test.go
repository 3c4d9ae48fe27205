package config

import (
	"net/netip"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, vars map[string]string) (Config, error) {
	t.Helper()
	return Parse(env.Options{Environment: vars})
}

func TestParseDefaults(t *testing.T) {
	cfg, err := parse(t, map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DevSessionSecret, cfg.Session.Secret)
	assert.Equal(t, "__session", cfg.Session.CookieName)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.Secure)
	assert.Equal(t, 10*time.Second, cfg.CoreService.Timeout)
	assert.Equal(t, FlowStandard, cfg.Features.Flow())
}

func TestParseRequiresSecretOutsideDevelopment(t *testing.T) {
	_, err := parse(t, map[string]string{"ENV": "production"})
	require.Error(t, err)

	cfg, err := parse(t, map[string]string{"ENV": "production", "SESSION_SECRET": "s3cret"})
	require.NoError(t, err)
	assert.True(t, cfg.Session.Secure)
}

func TestParseRejectsRelativeCoreURL(t *testing.T) {
	_, err := parse(t, map[string]string{"CORE_SERVICE_URL": "/api"})
	require.Error(t, err)
}

func TestParseTrustedProxies(t *testing.T) {
	cfg, err := parse(t, map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, cfg.Server.TrustedProxies)

	cfg, err = parse(t, map[string]string{"TRUSTED_PROXIES": "10.0.0.0/8,fd00::/8"})
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("fd00::/8"),
	}, cfg.Server.TrustedProxies)

	_, err = parse(t, map[string]string{"TRUSTED_PROXIES": "proxy.internal"})
	require.Error(t, err)
}

func TestFlowSelection(t *testing.T) {
	assert.Equal(t, FlowStandard, Features{}.Flow())
	assert.Equal(t, FlowStandard, Features{OneClickNonHostedEnabled: true}.Flow())
	assert.Equal(t, FlowOneClick, Features{OneClickEnabled: true}.Flow())
	assert.Equal(t, FlowOneClickNonHosted, Features{OneClickEnabled: true, OneClickNonHostedEnabled: true}.Flow())
}
