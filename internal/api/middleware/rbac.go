package middleware

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/api/metrics"
	"github.com/autolane/marketplace-api/internal/core/domain"
)

// RequireRoles enforces role-based access. Routes without it are public.
// An anonymous request (no principal) is rejected the same way as a wrong
// role: the gate, not the authenticator, is where rejection happens.
func RequireRoles(roles ...domain.Role) echo.MiddlewareFunc {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := CurrentPrincipal(c)
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
				return domain.ErrForbidden
			}
			if _, ok := allowed[p.Role]; !ok {
				metrics.AccessDeniedTotal.WithLabelValues("role").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// OwnerResolver maps a resource path parameter to the owning username.
// Implementations delegate to the relevant repository.
type OwnerResolver func(ctx context.Context, resourceID string) (string, error)

// RequireOwner enforces an ownership rule: the principal must own the
// resource named by the path parameter. Admins bypass the ownership check.
// Resolver errors (typically not-found sentinels) propagate to the central
// error handler.
func RequireOwner(param string, resolve OwnerResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p, ok := CurrentPrincipal(c)
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("owner").Inc()
				return domain.ErrForbidden
			}
			if p.Role == domain.RoleAdmin {
				return next(c)
			}

			owner, err := resolve(c.Request().Context(), c.Param(param))
			if err != nil {
				return err
			}
			if owner != p.Username {
				metrics.AccessDeniedTotal.WithLabelValues("owner").Inc()
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// RequireSelf is the ownership rule for profile routes, where the resource
// identifier is itself a username.
func RequireSelf(param string) echo.MiddlewareFunc {
	return RequireOwner(param, func(_ context.Context, username string) (string, error) {
		return username, nil
	})
}
