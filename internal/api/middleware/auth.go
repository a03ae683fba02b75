package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/api/metrics"
	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// IdentityResolver resolves a verified token subject to a live identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, username string) (*domain.Identity, error)
}

// Authenticate verifies the bearer token, resolves the identity and attaches
// a Principal to the request. It never rejects: a missing, garbled, expired
// or orphaned token simply leaves the request anonymous and lets the
// per-route authorization gate decide. The middleware is read-only and holds
// no mutable state, so concurrent requests authenticate independently.
func Authenticate(codec ports.TokenCodec, resolver IdentityResolver, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// An upstream stage already authenticated this request.
			if _, ok := CurrentPrincipal(c); ok {
				return next(c)
			}

			token, ok := bearerToken(c)
			if !ok {
				return next(c)
			}

			subject, err := codec.Verify(token)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues(verifyOutcome(err)).Inc()
				log.Debug().Err(err).Str("path", c.Path()).Msg("bearer token rejected")
				return next(c)
			}

			identity, err := resolver.Resolve(c.Request().Context(), subject)
			if err != nil {
				if errors.Is(err, domain.ErrIdentityNotFound) {
					// Valid token for a deleted account: the token verifies
					// cryptographically but no longer resolves.
					metrics.TokenVerificationsTotal.WithLabelValues("identity_gone").Inc()
					log.Debug().Str("subject", subject).Msg("token subject no longer exists")
					return next(c)
				}
				return err
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			SetPrincipal(c, &domain.Principal{
				Username: identity.Username,
				Role:     identity.Role,
			})

			return next(c)
		}
	}
}

// bearerToken extracts the token from the Authorization header. A header
// with a different scheme counts as absent.
func bearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func verifyOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, domain.ErrTokenSignatureInvalid):
		return "bad_signature"
	default:
		return "malformed"
	}
}
