package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

func newGateContext(principal *domain.Principal) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if principal != nil {
		SetPrincipal(c, principal)
	}
	return c
}

func TestRequireRoles_Allows(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "root", Role: domain.RoleAdmin})

	called := false
	handler := RequireRoles(domain.RoleAdmin, domain.RoleSeller)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireRoles_ForbidsWrongRole(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "bob", Role: domain.RoleBuyer})

	handler := RequireRoles(domain.RoleAdmin)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

// Anonymous requests reach role-gated routes and are rejected here, at the
// gate, not earlier in the pipeline.
func TestRequireRoles_ForbidsAnonymous(t *testing.T) {
	c := newGateContext(nil)

	handler := RequireRoles(domain.RoleBuyer)(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func ownerLookup(owner string, err error) OwnerResolver {
	return func(_ context.Context, _ string) (string, error) {
		return owner, err
	}
}

func TestRequireOwner_AllowsOwner(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "sally", Role: domain.RoleSeller})
	c.SetParamNames("id")
	c.SetParamValues("car_1")

	called := false
	handler := RequireOwner("id", ownerLookup("sally", nil))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireOwner_ForbidsNonOwner(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "intruder", Role: domain.RoleSeller})
	c.SetParamNames("id")
	c.SetParamValues("car_1")

	handler := RequireOwner("id", ownerLookup("sally", nil))(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireOwner_AdminBypasses(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "root", Role: domain.RoleAdmin})
	c.SetParamNames("id")
	c.SetParamValues("car_1")

	called := false
	handler := RequireOwner("id", ownerLookup("", errors.New("resolver must not run for admin")))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not called")
	}
}

func TestRequireOwner_PropagatesResolverError(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "sally", Role: domain.RoleSeller})
	c.SetParamNames("id")
	c.SetParamValues("ghost")

	handler := RequireOwner("id", ownerLookup("", domain.ErrCarNotFound))(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})

	if err := handler(c); !errors.Is(err, domain.ErrCarNotFound) {
		t.Fatalf("expected ErrCarNotFound, got %v", err)
	}
}

func TestRequireSelf(t *testing.T) {
	c := newGateContext(&domain.Principal{Username: "bob", Role: domain.RoleBuyer})
	c.SetParamNames("username")
	c.SetParamValues("bob")

	handler := RequireSelf("username")(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	c2 := newGateContext(&domain.Principal{Username: "bob", Role: domain.RoleBuyer})
	c2.SetParamNames("username")
	c2.SetParamValues("alice")

	handler2 := RequireSelf("username")(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler2(c2); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
