package httpserver

import (
	"bytes"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kredita/internal/platform/config"
)

func TestNewAppliesServerConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	handler := http.NotFoundHandler()

	srv := New(config.Server{
		Addr:         ":9090",
		ReadTimeout:  7 * time.Second,
		WriteTimeout: 11 * time.Second,
	}, handler, logger)

	assert.Equal(t, ":9090", srv.Addr)
	assert.Equal(t, 7*time.Second, srv.ReadTimeout)
	assert.Equal(t, 11*time.Second, srv.WriteTimeout)
	assert.Equal(t, readHeaderTimeout, srv.ReadHeaderTimeout)
	assert.Equal(t, idleTimeout, srv.IdleTimeout)

	require.NotNil(t, srv.ErrorLog)
	srv.ErrorLog.Print("http: TLS handshake error")
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "TLS handshake error")
}
