package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFollowsWrappedChain(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("calling core: %w", Wrap(cause, CodeUnavailable, "core service unreachable"))

	assert.True(t, Is(err, CodeUnavailable))
	assert.False(t, Is(err, CodeValidation))
	assert.True(t, HasCode(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "core service unreachable", MessageOf(err))
}

func TestCodeOfUncodedError(t *testing.T) {
	assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	assert.False(t, HasCode(errors.New("boom")))
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeNotFound:     http.StatusNotFound,
		CodeRateLimited:  http.StatusTooManyRequests,
		CodeUnavailable:  http.StatusBadGateway,
		CodeInternal:     http.StatusInternalServerError,
	}
	for code, want := range cases {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
