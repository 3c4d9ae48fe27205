package coreapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kredita/internal/coreapi/metrics"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/platform/sentinel"
)

// newTestClient starts a core service stub and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *metrics.Metrics) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m := metrics.New(prometheus.NewRegistry())
	return New(srv.URL, "test-key", WithMetrics(m)), m
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestHasMatchingCredentials(t *testing.T) {
	t.Run("returns wallet url on match", func(t *testing.T) {
		var got hasMatchingRequest
		client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/hasMatchingCredentials", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(t, w, http.StatusOK, map[string]any{"match": true, "url": "https://wallet.example.com/request/abc"})
		})

		url, err := client.HasMatchingCredentials(t.Context(), "jane@example.com", "5551234567", nil)
		require.NoError(t, err)
		assert.Equal(t, "https://wallet.example.com/request/abc", url)
		assert.Equal(t, "+15551234567", got.Phone)
		assert.Equal(t, "jane@example.com", got.Email)
		require.Len(t, got.CredentialRequests, 2)
		assert.Equal(t, TypeEmail, got.CredentialRequests[0].Type)
		assert.True(t, got.CredentialRequests[1].Required)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("has_matching_credentials", metrics.OutcomeSuccess)))
	})

	t.Run("no match returns empty url", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusOK, map[string]any{"match": false, "url": "https://wallet.example.com/ignored"})
		})

		url, err := client.HasMatchingCredentials(t.Context(), "jane@example.com", "", nil)
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("service error payload is a soft failure", func(t *testing.T) {
		client, m := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusBadRequest, map[string]any{"code": 400, "message": "no credentials issued"})
		})

		url, err := client.HasMatchingCredentials(t.Context(), "jane@example.com", "", nil)
		require.NoError(t, err)
		assert.Empty(t, url)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("has_matching_credentials", metrics.OutcomeSoftFail)))
	})

	t.Run("neither email nor phone skips the call", func(t *testing.T) {
		called := false
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		url, err := client.HasMatchingCredentials(t.Context(), "", "", nil)
		require.NoError(t, err)
		assert.Empty(t, url)
		assert.False(t, called)
	})

	t.Run("transport failure propagates as unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		m := metrics.New(prometheus.NewRegistry())
		client := New(srv.URL, "test-key", WithMetrics(m))

		_, err := client.HasMatchingCredentials(t.Context(), "jane@example.com", "", nil)
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnavailable))
		assert.ErrorIs(t, err, sentinel.ErrUnavailable)
		assert.Equal(t, 1.0, testutil.ToFloat64(m.Calls.WithLabelValues("has_matching_credentials", metrics.OutcomeTransport)))
	})

	t.Run("undecodable body propagates as unavailable", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>upstream down</html>"))
		})

		_, err := client.HasMatchingCredentials(t.Context(), "jane@example.com", "", nil)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnavailable))
	})
}

func TestSharedCredentials(t *testing.T) {
	t.Run("returns the shared bundle", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/sharedCredentials/abc-123", r.URL.Path)
			writeJSON(t, w, http.StatusOK, map[string]any{
				"uuid": "abc-123",
				"credentials": []map[string]any{
					{"type": TypeEmail, "value": "jane@example.com"},
					{"type": TypeFullName, "value": map[string]string{
						TypeLastName:  "Doe",
						TypeFirstName: "Jane",
					}},
				},
			})
		})

		shared, err := client.SharedCredentials(t.Context(), "abc-123")
		require.NoError(t, err)
		require.NotNil(t, shared)
		assert.Equal(t, "abc-123", shared.UUID)
		require.Len(t, shared.Credentials, 2)

		name, ok := shared.Find(TypeFullName)
		require.True(t, ok)
		assert.Equal(t, "Jane Doe", name.Text())
	})

	t.Run("service error payload yields nil", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusNotFound, map[string]any{"code": "not_found", "message": "expired"})
		})

		shared, err := client.SharedCredentials(t.Context(), "gone")
		require.NoError(t, err)
		assert.Nil(t, shared)
	})
}

func TestOneClickCredentials(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1-click/oc-1", r.URL.Path)
		assert.Equal(t, "Bearer brand-key", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]any{
			"uuid":        "oc-1",
			"credentials": []map[string]any{{"type": TypePhone, "value": "+15551234567"}},
		})
	})

	shared, err := client.OneClickCredentials(t.Context(), "brand-key", "oc-1")
	require.NoError(t, err)
	require.NotNil(t, shared)
	phone, ok := shared.Find(TypePhone)
	require.True(t, ok)
	assert.Equal(t, "+15551234567", phone.Text())
}

func TestOneClick(t *testing.T) {
	t.Run("missing phone fails validation without calling out", func(t *testing.T) {
		called := false
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			called = true
		})

		_, err := client.OneClick(t.Context(), "", "  ", OneClickOptions{})
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeValidation))
		assert.Equal(t, "Phone must be populated.", dErrors.MessageOf(err))
		assert.False(t, called)
	})

	t.Run("sends normalized phone and options", func(t *testing.T) {
		var got oneClickRequest
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/1-click", r.URL.Path)
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			writeJSON(t, w, http.StatusOK, map[string]any{"url": "https://wallet.example.com/1-click/xyz"})
		})

		res, err := client.OneClick(t.Context(), "", "(555) 123-4567", OneClickOptions{
			VerificationOptions: "only_verify",
			BirthDate:           "1990-02-01",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://wallet.example.com/1-click/xyz", res.URL)
		assert.Equal(t, "+15551234567", res.Phone)
		assert.Equal(t, "+15551234567", got.Phone)
		assert.Equal(t, "only_verify", got.VerificationOptions)
		assert.Equal(t, "1990-02-01", got.BirthDate)
		assert.Nil(t, got.Content)
	})

	t.Run("response without url is a user facing bad request", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusBadRequest, map[string]any{"code": 400, "message": "unsupported carrier"})
		})

		_, err := client.OneClick(t.Context(), "", "+445551234567", OneClickOptions{})
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
		assert.Equal(t, "Phone number is invalid or unsupported.", dErrors.MessageOf(err))
	})
}

func TestBrandByUUID(t *testing.T) {
	t.Run("returns the brand record", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/brands/b-1", r.URL.Path)
			assert.Equal(t, "Bearer access", r.Header.Get("Authorization"))
			writeJSON(t, w, http.StatusOK, BrandDTO{
				UUID:         "b-1",
				ReceiverName: "Acme",
				LogoImageURL: "https://cdn.example.com/acme.png",
				PrimaryColor: "#336699",
			})
		})

		brand := client.BrandByUUID(t.Context(), "b-1", "access")
		require.NotNil(t, brand)
		assert.Equal(t, "Acme", brand.ReceiverName)
	})

	t.Run("non-success status yields nil", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(t, w, http.StatusInternalServerError, BrandDTO{UUID: "b-1"})
		})
		assert.Nil(t, client.BrandByUUID(t.Context(), "b-1", ""))
	})

	t.Run("transport failure yields nil", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		client := New(srv.URL, "test-key")
		assert.Nil(t, client.BrandByUUID(t.Context(), "b-1", ""))
	})
}

func TestBrandAPIKey(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/brands/b-1/api-key", r.URL.Path)
		assert.Equal(t, "Bearer admin", r.Header.Get("Authorization"))
		writeJSON(t, w, http.StatusOK, map[string]string{"apiKey": "brand-key"})
	})

	assert.Equal(t, "brand-key", client.BrandAPIKey(t.Context(), "b-1", "admin"))
	assert.Empty(t, client.BrandAPIKey(t.Context(), "b-1", ""))
}
