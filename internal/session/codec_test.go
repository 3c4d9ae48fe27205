package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kredita/internal/brand/models"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/platform/sentinel"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCodecRoundTrip(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	set := &models.Set{Brand: models.Default(), APIKey: "brand-key"}

	value, err := codec.Encode(Data{Identity: "Jane Doe", Brand: set}, now)
	require.NoError(t, err)

	d, err := codec.Decode(value, now.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", d.Identity)
	assert.NotEmpty(t, d.ID, "a session id is assigned on first encode")
	require.NotNil(t, d.Brand)
	assert.Equal(t, "brand-key", d.Brand.APIKey)
	assert.Equal(t, models.DefaultUUID, d.Brand.Brand.UUID)
}

func TestCodecRejects(t *testing.T) {
	codec := NewCodec("test-secret", time.Hour)
	value, err := codec.Encode(Data{Identity: "Jane Doe"}, now)
	require.NoError(t, err)

	t.Run("expired session", func(t *testing.T) {
		_, err := codec.Decode(value, now.Add(2*time.Hour))
		require.Error(t, err)
		assert.ErrorIs(t, err, sentinel.ErrExpired)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
	})

	t.Run("foreign signing key", func(t *testing.T) {
		_, err := NewCodec("other-secret", time.Hour).Decode(value, now)
		assert.ErrorIs(t, err, sentinel.ErrInvalidSignature)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := codec.Decode("not-a-token", now)
		assert.ErrorIs(t, err, sentinel.ErrInvalidSignature)
	})
}
