package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/api/middleware"
	"github.com/autolane/marketplace-api/internal/core/domain"
)

// currentPrincipal extracts the security context established by the auth
// middleware. Handlers behind a role gate always have one; the check is a
// fast-fail guard for misconfigured routes.
func currentPrincipal(c echo.Context) (*domain.Principal, error) {
	p, ok := middleware.CurrentPrincipal(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication context")
	}
	return p, nil
}
