package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// TokenCodec issues and verifies HS256-signed JWTs carrying the identity's
// username as subject. The codec is stateless: verification is purely
// cryptographic, so any process holding the same secret can verify a token
// regardless of which process issued it.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec builds a codec signing with secret and issuing tokens valid
// for ttl. A non-positive ttl falls back to 24h.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

type tokenClaims struct {
	jwt.RegisteredClaims
}

// Issue mints a signed token for subject with iat = now and exp = now + ttl.
func (c *TokenCodec) Issue(subject string) (string, error) {
	now := c.now().UTC()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify validates the signature and expiration and returns the subject.
// A token whose exp equals the current instant is already expired.
func (c *TokenCodec) Verify(token string) (string, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(c.now), jwt.WithExpirationRequired())
	if err != nil {
		return "", mapTokenError(err)
	}
	if !tkn.Valid || claims.Subject == "" {
		return "", domain.ErrTokenMalformed
	}
	return claims.Subject, nil
}

// mapTokenError collapses jwt/v5's error chain into the domain taxonomy so
// callers never import the jwt package.
func mapTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignatureInvalid
	default:
		return domain.ErrTokenMalformed
	}
}
