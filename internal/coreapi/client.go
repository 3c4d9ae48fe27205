// Package coreapi is the HTTP client for the external core verification
// service. Every call distinguishes three outcomes: success, a soft rejection
// (the service answered with an error payload, treated as "nothing found"),
// and a transport failure, which is returned as an unavailable error.
package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"kredita/internal/coreapi/metrics"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/platform/sentinel"
)

const (
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 1 << 20

	msgPhoneRequired = "Phone must be populated."
	msgPhoneInvalid  = "Phone number is invalid or unsupported."
)

// Client talks to the core service on behalf of one customer API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New creates a client for the core service at baseURL.
func New(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
		logger:     slog.Default(),
		tracer:     otel.Tracer("kredita/coreapi"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// serviceError is the error envelope the core service uses for soft
// rejections. Code may be a number or a string.
type serviceError struct {
	Code    json.RawMessage `json:"code"`
	Message string          `json:"message"`
}

func (e serviceError) present() bool {
	code := bytes.TrimSpace(e.Code)
	switch string(code) {
	case "", "null", `""`, "0", "false":
		return false
	}
	return true
}

type hasMatchingRequest struct {
	Email              string              `json:"email,omitempty"`
	Phone              string              `json:"phone,omitempty"`
	CredentialRequests []CredentialRequest `json:"credentialRequests"`
}

type hasMatchingResponse struct {
	serviceError
	Match bool   `json:"match"`
	URL   string `json:"url"`
}

// HasMatchingCredentials asks whether the user already holds credentials
// satisfying requests. It returns the wallet continuation URL on a match and
// "" otherwise. With neither email nor phone it returns "" without calling out.
func (c *Client) HasMatchingCredentials(ctx context.Context, email, phone string, requests []CredentialRequest) (string, error) {
	const op = "has_matching_credentials"
	if email == "" && phone == "" {
		return "", nil
	}
	if requests == nil {
		requests = DefaultCredentialRequests()
	}

	body := hasMatchingRequest{
		Email:              email,
		Phone:              NormalizePhone(phone),
		CredentialRequests: requests,
	}

	var out hasMatchingResponse
	if _, err := c.call(ctx, op, http.MethodPost, "/hasMatchingCredentials", c.apiKey, body, &out); err != nil {
		return "", err
	}
	if out.present() {
		c.logger.DebugContext(ctx, "no matching credentials",
			"code", string(out.Code),
			"message", out.Message,
		)
		c.metrics.IncrementOutcome(op, metrics.OutcomeSoftFail)
		return "", nil
	}

	c.metrics.IncrementOutcome(op, metrics.OutcomeSuccess)
	c.logger.InfoContext(ctx, "matching credentials checked", "match", out.Match)
	if !out.Match {
		return "", nil
	}
	return out.URL, nil
}

type sharedCredentialsResponse struct {
	serviceError
	SharedCredentials
}

// SharedCredentials fetches what the user released under uuid. A soft
// rejection yields nil. The core service only serves a uuid for five minutes
// after first retrieval; callers must persist what they need.
func (c *Client) SharedCredentials(ctx context.Context, uuid string) (*SharedCredentials, error) {
	return c.fetchCredentials(ctx, "shared_credentials", "/sharedCredentials/"+url.PathEscape(uuid), c.apiKey)
}

// OneClickCredentials fetches the credentials released through a 1-click
// link, authorised with the brand's API key.
func (c *Client) OneClickCredentials(ctx context.Context, apiKey, uuid string) (*SharedCredentials, error) {
	return c.fetchCredentials(ctx, "one_click_credentials", "/1-click/"+url.PathEscape(uuid), c.keyOrDefault(apiKey))
}

func (c *Client) fetchCredentials(ctx context.Context, op, path, bearer string) (*SharedCredentials, error) {
	var out sharedCredentialsResponse
	if _, err := c.call(ctx, op, http.MethodGet, path, bearer, nil, &out); err != nil {
		return nil, err
	}
	if out.present() {
		c.logger.DebugContext(ctx, "no shared credentials found",
			"operation", op,
			"code", string(out.Code),
			"message", out.Message,
		)
		c.metrics.IncrementOutcome(op, metrics.OutcomeSoftFail)
		return nil, nil
	}
	if out.UUID == "" && len(out.Credentials) == 0 {
		c.metrics.IncrementOutcome(op, metrics.OutcomeSoftFail)
		return nil, nil
	}

	c.metrics.IncrementOutcome(op, metrics.OutcomeSuccess)
	c.logger.InfoContext(ctx, "retrieved shared credentials",
		"operation", op,
		"uuid", out.UUID,
		"credentials", len(out.Credentials),
	)
	shared := out.SharedCredentials
	return &shared, nil
}

type oneClickRequest struct {
	Phone               string              `json:"phone"`
	Content             *OneClickContent    `json:"content,omitempty"`
	CredentialRequests  []CredentialRequest `json:"credentialRequests,omitempty"`
	VerificationOptions string              `json:"verificationOptions,omitempty"`
	RedirectURL         string              `json:"redirectUrl,omitempty"`
	BirthDate           string              `json:"birthDate,omitempty"`
}

type oneClickResponse struct {
	serviceError
	URL string `json:"url"`
}

// OneClick asks the core service to text the user a verification link. An
// empty phone fails with a validation error; a response without a usable URL
// fails with a bad request carrying a user-facing message.
func (c *Client) OneClick(ctx context.Context, apiKey, phone string, opts OneClickOptions) (*OneClickResult, error) {
	const op = "one_click"
	if strings.TrimSpace(phone) == "" {
		return nil, dErrors.New(dErrors.CodeValidation, msgPhoneRequired)
	}
	phone = NormalizePhone(phone)

	body := oneClickRequest{
		Phone:               phone,
		Content:             opts.Content,
		CredentialRequests:  opts.CredentialRequests,
		VerificationOptions: opts.VerificationOptions,
		RedirectURL:         opts.RedirectURL,
		BirthDate:           opts.BirthDate,
	}

	var out oneClickResponse
	if _, err := c.call(ctx, op, http.MethodPost, "/1-click", c.keyOrDefault(apiKey), body, &out); err != nil {
		return nil, err
	}
	if !usableURL(out.URL) {
		c.logger.WarnContext(ctx, "1-click request rejected",
			"code", string(out.Code),
			"message", out.Message,
		)
		c.metrics.IncrementOutcome(op, metrics.OutcomeSoftFail)
		return nil, dErrors.New(dErrors.CodeBadRequest, msgPhoneInvalid)
	}

	c.metrics.IncrementOutcome(op, metrics.OutcomeSuccess)
	return &OneClickResult{URL: out.URL, Phone: phone}, nil
}

// BrandByUUID fetches a brand's white-label record. Any failure is logged and
// yields nil so page rendering can fall back to the default brand.
func (c *Client) BrandByUUID(ctx context.Context, uuid, accessToken string) *BrandDTO {
	const op = "brand_by_uuid"
	if uuid == "" {
		return nil
	}

	var out BrandDTO
	status, err := c.call(ctx, op, http.MethodGet, "/brands/"+url.PathEscape(uuid), c.keyOrDefault(accessToken), nil, &out)
	if err != nil {
		c.logger.WarnContext(ctx, "brand lookup failed", "brand_uuid", uuid, "error", err)
		return nil
	}
	if !success(status) || out.UUID == "" {
		c.logger.WarnContext(ctx, "brand not available", "brand_uuid", uuid, "status", status)
		c.metrics.IncrementOutcome(op, metrics.OutcomeSoftFail)
		return nil
	}
	c.metrics.IncrementOutcome(op, metrics.OutcomeSuccess)
	return &out
}

// BrandAPIKey fetches the API key a brand uses for 1-click requests, using
// the admin key. It returns "" on any failure.
func (c *Client) BrandAPIKey(ctx context.Context, uuid, adminKey string) string {
	const op = "brand_api_key"
	if uuid == "" || adminKey == "" {
		return ""
	}

	var out struct {
		APIKey string `json:"apiKey"`
	}
	status, err := c.call(ctx, op, http.MethodGet, "/brands/"+url.PathEscape(uuid)+"/api-key", adminKey, nil, &out)
	if err != nil {
		c.logger.WarnContext(ctx, "brand api key lookup failed", "brand_uuid", uuid, "error", err)
		return ""
	}
	if !success(status) {
		c.metrics.IncrementOutcome(op, metrics.OutcomeSoftFail)
		return ""
	}
	c.metrics.IncrementOutcome(op, metrics.OutcomeSuccess)
	return out.APIKey
}

// call performs one JSON round trip. Non-2xx responses are decoded like any
// other so the caller can inspect a soft-rejection envelope; only unreachable
// services and undecodable bodies are errors.
func (c *Client) call(ctx context.Context, op, method, path, bearer string, in, out any) (int, error) {
	ctx, span := c.tracer.Start(ctx, "coreapi."+op, trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(
		attribute.String("http.request.method", method),
		attribute.String("coreapi.operation", op),
	)

	start := time.Now()
	status, err := c.roundTrip(ctx, method, path, bearer, in, out)
	c.metrics.ObserveDuration(op, time.Since(start))
	span.SetAttributes(attribute.Int("http.response.status_code", status))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "core service call failed")
		c.logger.ErrorContext(ctx, "core service call failed",
			"operation", op,
			"status", status,
			"error", err,
		)
		c.metrics.IncrementOutcome(op, metrics.OutcomeTransport)
		return status, dErrors.Wrap(errors.Join(sentinel.ErrUnavailable, err), dErrors.CodeUnavailable, "core service unavailable")
	}
	return status, nil
}

func (c *Client) roundTrip(ctx context.Context, method, path, bearer string, in, out any) (int, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return 0, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return resp.StatusCode, fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) keyOrDefault(key string) string {
	if key != "" {
		return key
	}
	return c.apiKey
}

func success(status int) bool {
	return status >= 200 && status < 300
}

func usableURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
