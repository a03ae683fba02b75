package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/service"
)

type stubResolver struct {
	identities map[string]*domain.Identity
}

func (r *stubResolver) Resolve(_ context.Context, username string) (*domain.Identity, error) {
	id, ok := r.identities[username]
	if !ok {
		return nil, domain.ErrIdentityNotFound
	}
	return id, nil
}

func testAuthSetup(t *testing.T) (*service.TokenCodec, *stubResolver, echo.MiddlewareFunc) {
	t.Helper()
	codec := service.NewTokenCodec("secret", time.Hour)
	resolver := &stubResolver{identities: map[string]*domain.Identity{
		"alice": {Username: "alice", Role: domain.RoleSeller},
	}}
	return codec, resolver, Authenticate(codec, resolver, zerolog.Nop())
}

func runAuth(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return c, rec
}

func TestAuthenticate_ValidToken(t *testing.T) {
	codec, _, mw := testAuthSetup(t)
	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	c, rec := runAuth(t, mw, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p, ok := CurrentPrincipal(c)
	if !ok {
		t.Fatalf("expected principal to be set")
	}
	if p.Username != "alice" || p.Role != domain.RoleSeller {
		t.Fatalf("unexpected principal: %+v", p)
	}
}

// No Authorization header: the request passes through anonymously, it is not
// rejected here.
func TestAuthenticate_NoHeaderPassesThrough(t *testing.T) {
	_, _, mw := testAuthSetup(t)

	c, rec := runAuth(t, mw, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 pass-through, got %d", rec.Code)
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("anonymous request must not carry a principal")
	}
}

func TestAuthenticate_WrongSchemePassesThrough(t *testing.T) {
	_, _, mw := testAuthSetup(t)

	c, rec := runAuth(t, mw, "Basic dXNlcjpwdw==")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 pass-through, got %d", rec.Code)
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("non-bearer credentials must not establish a principal")
	}
}

// A tampered token is treated exactly like no token: forwarded anonymously.
func TestAuthenticate_TamperedTokenPassesThroughAnonymously(t *testing.T) {
	codec, _, mw := testAuthSetup(t)
	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	last := token[len(token)-1]
	flipped := byte('A')
	if last == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	c, rec := runAuth(t, mw, "Bearer "+tampered)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 pass-through, got %d", rec.Code)
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("tampered token must not establish a principal")
	}
}

func TestAuthenticate_ExpiredTokenPassesThroughAnonymously(t *testing.T) {
	codec := service.NewTokenCodec("secret", time.Nanosecond)
	resolver := &stubResolver{identities: map[string]*domain.Identity{
		"alice": {Username: "alice", Role: domain.RoleSeller},
	}}
	mw := Authenticate(codec, resolver, zerolog.Nop())

	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	c, rec := runAuth(t, mw, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 pass-through, got %d", rec.Code)
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("expired token must not establish a principal")
	}
}

// A valid token whose subject was deleted from the credential store resolves
// to nothing: the request proceeds anonymously.
func TestAuthenticate_DeletedIdentityPassesThroughAnonymously(t *testing.T) {
	codec, resolver, mw := testAuthSetup(t)
	token, err := codec.Issue("alice")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	delete(resolver.identities, "alice")

	c, rec := runAuth(t, mw, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 pass-through, got %d", rec.Code)
	}
	if _, ok := CurrentPrincipal(c); ok {
		t.Fatalf("deleted identity must not establish a principal")
	}
}

// An already-established principal is not re-derived; the middleware must
// not overwrite it or hit the codec again.
func TestAuthenticate_SkipsWhenPrincipalPresent(t *testing.T) {
	_, _, mw := testAuthSetup(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer garbage")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	SetPrincipal(c, &domain.Principal{Username: "pre", Role: domain.RoleAdmin})

	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	p, ok := CurrentPrincipal(c)
	if !ok || p.Username != "pre" {
		t.Fatalf("existing principal was disturbed: %+v", p)
	}
}
