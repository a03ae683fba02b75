package domain

import (
	"errors"
	"fmt"
	"time"
)

// Role is the closed set of roles an identity can carry. Roles are resolved
// once at identity-load time; an unrecognised role string is a load error,
// never a runtime fault downstream.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleSeller Role = "seller"
	RoleBuyer  Role = "buyer"
)

// ParseRole converts a stored role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleSeller, RoleBuyer:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

func (r Role) String() string { return string(r) }

// Authentication / authorization errors.
var (
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTooManyAttempts       = errors.New("too many login attempts")
	ErrTokenExpired          = errors.New("token expired")
	ErrTokenMalformed        = errors.New("malformed token")
	ErrTokenSignatureInvalid = errors.New("invalid token signature")
	ErrForbidden             = errors.New("access forbidden")
	ErrIdentityNotFound      = errors.New("identity not found")
	ErrIdentityExists        = errors.New("identity already exists")
	ErrUnknownRole           = errors.New("unknown role")
)

// Identity is a credential-store record for an authenticated actor.
// The password hash never leaves the auth layer.
type Identity struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Principal is the request-scoped security context: the identity resolved
// from a verified token, passed explicitly down the handler chain. It exists
// only for the duration of one request and is never persisted.
type Principal struct {
	Username string
	Role     Role
}

// Is reports whether the principal carries one of the given roles.
func (p *Principal) Is(roles ...Role) bool {
	if p == nil {
		return false
	}
	for _, r := range roles {
		if p.Role == r {
			return true
		}
	}
	return false
}
