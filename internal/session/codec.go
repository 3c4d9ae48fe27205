package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"kredita/internal/brand/models"
	dErrors "kredita/pkg/domain-errors"
	"kredita/pkg/platform/sentinel"
)

const issuer = "kredita"

// Data is the session payload carried in the cookie.
type Data struct {
	ID       string      `json:"sid"`
	Identity string      `json:"identity,omitempty"`
	Brand    *models.Set `json:"brand,omitempty"`
}

// claims is the signed form of Data.
type claims struct {
	Data
	jwt.RegisteredClaims
}

// Codec signs and verifies session cookies with HS256.
type Codec struct {
	signingKey []byte
	ttl        time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	return &Codec{
		signingKey: []byte(secret),
		ttl:        ttl,
	}
}

// Encode signs d, valid for the codec's TTL from now.
func (c *Codec) Encode(d Data, now time.Time) (string, error) {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Data: d,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
			ID:        d.ID,
		},
	})

	signed, err := token.SignedString(c.signingKey)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign session")
	}
	return signed, nil
}

// Decode verifies a signed session and returns its payload.
func (c *Codec) Decode(value string, now time.Time) (*Data, error) {
	parsed, err := jwt.ParseWithClaims(value, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return c.signingKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.Wrap(sentinel.ErrExpired, dErrors.CodeUnauthorized, "session has expired")
		}
		return nil, dErrors.Wrap(sentinel.ErrInvalidSignature, dErrors.CodeUnauthorized, "invalid session")
	}

	cl, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.Wrap(sentinel.ErrInvalidSignature, dErrors.CodeUnauthorized, "invalid session claims")
	}
	return &cl.Data, nil
}
