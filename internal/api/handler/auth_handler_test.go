package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/autolane/marketplace-api/internal/api/middleware"
	"github.com/autolane/marketplace-api/internal/core/domain"
)

type stubAuthService struct {
	registerFn       func(ctx context.Context, username, password, role string) (*domain.Identity, error)
	loginFn          func(ctx context.Context, username, password string) (string, *domain.Identity, error)
	changePasswordFn func(ctx context.Context, username, oldPassword, newPassword string) error
	deleteAccountFn  func(ctx context.Context, username string) error
}

func (s *stubAuthService) Register(ctx context.Context, username, password, role string) (*domain.Identity, error) {
	return s.registerFn(ctx, username, password, role)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, username, oldPassword, newPassword)
}

func (s *stubAuthService) DeleteAccount(ctx context.Context, username string) error {
	return s.deleteAccountFn(ctx, username)
}

func (s *stubAuthService) Resolve(ctx context.Context, username string) (*domain.Identity, error) {
	return nil, domain.ErrIdentityNotFound
}

func newAuthContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, role string) (*domain.Identity, error) {
			if username != "alice" || role != "buyer" {
				t.Fatalf("unexpected args: %s %s", username, role)
			}
			return &domain.Identity{Username: username, Role: domain.RoleBuyer}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(`{"username":"alice","password":"longenough","role":"buyer"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatal("expected user in response")
	}
	if user["username"] != "alice" || user["role"] != "buyer" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if _, leaked := user["password_hash"]; leaked {
		t.Fatal("password hash must never appear in responses")
	}
}

func TestAuthHandler_Register_RejectsAdminRole(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, password, role string) (*domain.Identity, error) {
			t.Fatal("service must not be called for a rejected role")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(`{"username":"mallory","password":"longenough","role":"admin"}`)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newAuthContext(`{"username":"alice","password":"short","role":"buyer"}`)
	err := h.Register(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 validation error, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Identity, error) {
			return "token123", &domain.Identity{Username: "alice", Role: domain.RoleBuyer}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(`{"username":"alice","password":"s3cretpass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "token123" {
		t.Fatalf("expected token in response, got %+v", resp)
	}
}

func TestAuthHandler_Login_FailurePropagates(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, password string) (string, *domain.Identity, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newAuthContext(`{"username":"alice","password":"wrong-one"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Whoami(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newAuthContext("")
	middleware.SetPrincipal(c, &domain.Principal{Username: "sally", Role: domain.RoleSeller})

	if err := h.Whoami(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sally"`) || !strings.Contains(rec.Body.String(), `"seller"`) {
		t.Fatalf("unexpected payload: %s", rec.Body.String())
	}
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	var gotOld, gotNew string
	stub := &stubAuthService{
		changePasswordFn: func(ctx context.Context, username, oldPassword, newPassword string) error {
			if username != "alice" {
				t.Fatalf("unexpected username: %s", username)
			}
			gotOld, gotNew = oldPassword, newPassword
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext(`{"old_password":"oldsecret1","new_password":"newsecret1"}`)
	middleware.SetPrincipal(c, &domain.Principal{Username: "alice", Role: domain.RoleBuyer})

	if err := h.ChangePassword(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if gotOld != "oldsecret1" || gotNew != "newsecret1" {
		t.Fatalf("unexpected passwords passed through: %s %s", gotOld, gotNew)
	}
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	deleted := ""
	stub := &stubAuthService{
		deleteAccountFn: func(ctx context.Context, username string) error {
			deleted = username
			return nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newAuthContext("")
	middleware.SetPrincipal(c, &domain.Principal{Username: "alice", Role: domain.RoleBuyer})

	if err := h.DeleteAccount(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != "alice" {
		t.Fatalf("expected alice deleted, got %q", deleted)
	}
}
