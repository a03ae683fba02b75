package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// principalKey is the echo context key the authenticated principal is stored
// under. The principal travels with the request, never in package state.
const principalKey = "auth.principal"

// SetPrincipal attaches the security context to the request scope.
func SetPrincipal(c echo.Context, p *domain.Principal) {
	c.Set(principalKey, p)
}

// CurrentPrincipal returns the security context established by Authenticate,
// or false when the request is anonymous.
func CurrentPrincipal(c echo.Context) (*domain.Principal, bool) {
	p, ok := c.Get(principalKey).(*domain.Principal)
	if !ok || p == nil {
		return nil, false
	}
	return p, true
}
