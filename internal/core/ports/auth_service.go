package ports

import (
	"context"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// PasswordHasher provides one-way credential hashing. Verify must treat a
// malformed stored hash as a mismatch, never as a fault.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// TokenCodec issues and verifies compact signed tokens. Verify returns the
// token subject on success; failures are the domain token sentinels
// (ErrTokenExpired, ErrTokenMalformed, ErrTokenSignatureInvalid).
type TokenCodec interface {
	Issue(subject string) (string, error)
	Verify(token string) (string, error)
}

// LoginThrottle bounds failed login attempts per username.
type LoginThrottle interface {
	TooMany(ctx context.Context, username string) (bool, error)
	RecordFailure(ctx context.Context, username string) error
	Reset(ctx context.Context, username string) error
}

// AuditRecorder accepts auth-trail events. Record must never block the
// caller; delivery is best-effort.
type AuditRecorder interface {
	Record(event domain.AuditEvent)
}

// AuthService covers the credential lifecycle and the login flow.
type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.Identity, error)
	Login(ctx context.Context, username, password string) (string, *domain.Identity, error)
	ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error
	DeleteAccount(ctx context.Context, username string) error
	// Resolve looks up the identity behind a verified token subject.
	Resolve(ctx context.Context, username string) (*domain.Identity, error)
}
