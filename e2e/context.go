// Package e2e drives the assembled application through its public HTTP
// surface with godog scenarios. Each scenario gets a fresh application and a
// fresh fake core service.
package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"kredita/internal/app"
	"kredita/internal/coreapi/coreapitest"
	"kredita/internal/platform/config"
)

// TestContext holds per-scenario state: the fake core service, the running
// application, a browser-like client and the last response.
type TestContext struct {
	t *testing.T

	core   *coreapitest.Server
	env    map[string]string
	app    *app.App
	server *httptest.Server
	client *http.Client
	accept string

	aliases map[string]string

	lastStatus  int
	lastHeaders http.Header
	lastBody    []byte
}

// NewTestContext returns a context bound to the suite's test.
func NewTestContext(t *testing.T) *TestContext {
	return &TestContext{t: t}
}

// Reset prepares a new scenario.
func (tc *TestContext) Reset() {
	tc.Close()
	tc.core = coreapitest.NewServer(tc.t)
	tc.env = map[string]string{
		"CORE_SERVICE_URL": tc.core.URL,
		"DEMO_URL":         "http://demo.test",
		"LOG_LEVEL":        "error",
	}
	tc.aliases = map[string]string{}
	tc.accept = ""
	tc.lastStatus = 0
	tc.lastHeaders = nil
	tc.lastBody = nil
}

// Close stops the application and the fake core service.
func (tc *TestContext) Close() {
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	if tc.app != nil {
		_ = tc.app.Close()
		tc.app = nil
	}
	if tc.core != nil {
		tc.core.Close()
		tc.core = nil
	}
}

// Core exposes the fake core service for fixture steps.
func (tc *TestContext) Core() *coreapitest.Server {
	return tc.core
}

// SetEnv sets a configuration variable. It only has an effect before the
// first request of a scenario.
func (tc *TestContext) SetEnv(key, value string) {
	tc.env[key] = value
}

// Alias returns a stable uuid for a name used in a feature file.
func (tc *TestContext) Alias(name string) string {
	if id, ok := tc.aliases[name]; ok {
		return id
	}
	id := uuid.NewString()
	tc.aliases[name] = id
	return id
}

// PreferHTML makes subsequent requests ask for HTML, as a browser does.
func (tc *TestContext) PreferHTML() {
	tc.accept = "text/html,application/xhtml+xml"
}

func (tc *TestContext) start() error {
	if tc.server != nil {
		return nil
	}
	cfg, err := config.Parse(env.Options{Environment: tc.env})
	if err != nil {
		return err
	}
	reg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a, err := app.New(context.Background(), cfg, logger, reg, app.WithGatherer(reg))
	if err != nil {
		return err
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return err
	}
	tc.app = a
	tc.server = httptest.NewServer(a.Handler)
	tc.client = &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return nil
}

// GET requests path on the application.
func (tc *TestContext) GET(path string) error {
	return tc.do(http.MethodGet, path, nil)
}

// PostForm submits form to path.
func (tc *TestContext) PostForm(path string, form url.Values) error {
	return tc.do(http.MethodPost, path, form)
}

func (tc *TestContext) do(method, path string, form url.Values) error {
	if err := tc.start(); err != nil {
		return fmt.Errorf("start application: %w", err)
	}

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequest(method, tc.server.URL+path, body)
	if err != nil {
		return err
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if tc.accept != "" {
		req.Header.Set("Accept", tc.accept)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	tc.lastBody, err = io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	tc.lastStatus = resp.StatusCode
	tc.lastHeaders = resp.Header
	return nil
}

// LastStatus is the status code of the last response.
func (tc *TestContext) LastStatus() int {
	return tc.lastStatus
}

// LastBody is the body of the last response.
func (tc *TestContext) LastBody() []byte {
	return tc.lastBody
}

// LastHeader returns a header of the last response.
func (tc *TestContext) LastHeader(name string) string {
	return tc.lastHeaders.Get(name)
}

// ResponseField reads a top-level field of the last JSON response.
func (tc *TestContext) ResponseField(field string) (any, error) {
	var body map[string]any
	if err := json.Unmarshal(tc.lastBody, &body); err != nil {
		return nil, fmt.Errorf("response is not JSON: %w", err)
	}
	v, ok := body[field]
	if !ok {
		return nil, fmt.Errorf("response has no field %q: %s", field, tc.lastBody)
	}
	return v, nil
}

// HasCookie reports whether the client currently holds a cookie.
func (tc *TestContext) HasCookie(name string) bool {
	if tc.server == nil {
		return false
	}
	u, _ := url.Parse(tc.server.URL)
	for _, c := range tc.client.Jar.Cookies(u) {
		if c.Name == name && c.Value != "" {
			return true
		}
	}
	return false
}
