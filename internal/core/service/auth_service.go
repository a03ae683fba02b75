package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/autolane/marketplace-api/internal/api/metrics"
	"github.com/autolane/marketplace-api/internal/core/domain"
	"github.com/autolane/marketplace-api/internal/core/ports"
)

// AuthService implements registration, login, password change and account
// deletion on top of the credential store. Login is deliberately uniform:
// unknown username and wrong password produce the same error, so the API
// never confirms whether a username exists.
type AuthService struct {
	identities ports.IdentityRepository
	hasher     ports.PasswordHasher
	codec      ports.TokenCodec
	throttle   ports.LoginThrottle
	audit      ports.AuditRecorder
	logger     zerolog.Logger
}

// NewAuthService wires the auth use-cases. throttle and audit may be nil,
// in which case throttling and the audit trail are disabled.
func NewAuthService(
	identities ports.IdentityRepository,
	hasher ports.PasswordHasher,
	codec ports.TokenCodec,
	throttle ports.LoginThrottle,
	audit ports.AuditRecorder,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		identities: identities,
		hasher:     hasher,
		codec:      codec,
		throttle:   throttle,
		audit:      audit,
		logger:     logger,
	}
}

// Register creates a new identity. The role must parse into the closed role
// set; identities without a recognised role cannot be created.
func (s *AuthService) Register(ctx context.Context, username, password, role string) (*domain.Identity, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	parsed, err := domain.ParseRole(role)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	identity := &domain.Identity{
		Username:     username,
		PasswordHash: hash,
		Role:         parsed,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.identities.Create(ctx, identity)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("username", username).Str("role", role).Msg("identity registered")
	return created, nil
}

// Login verifies the credentials and mints a signed token. No session state
// is created: the returned token is the only artifact of a successful login.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.Identity, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		blocked, err := s.throttle.TooMany(ctx, username)
		if err != nil {
			// Throttle backend trouble must not lock everyone out.
			s.logger.Warn().Err(err).Msg("login throttle unavailable")
		} else if blocked {
			metrics.LoginsTotal.WithLabelValues("throttled").Inc()
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	identity, err := s.identities.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrIdentityNotFound) {
			s.loginFailed(ctx, username, "unknown username")
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !s.hasher.Verify(password, identity.PasswordHash) {
		s.loginFailed(ctx, username, "password mismatch")
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.codec.Issue(identity.Username)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle reset failed")
		}
	}
	s.record(domain.AuditLoginSuccess, username, "")
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return token, identity, nil
}

// ChangePassword rotates the stored hash after re-verifying the current
// password.
func (s *AuthService) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	if newPassword == "" {
		return domain.ErrInvalidCredentials
	}

	identity, err := s.identities.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(oldPassword, identity.PasswordHash) {
		return domain.ErrInvalidCredentials
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := s.identities.UpdatePassword(ctx, username, hash); err != nil {
		return err
	}

	s.record(domain.AuditPasswordChanged, username, "")
	return nil
}

// DeleteAccount removes the identity. Tokens already issued for it keep
// verifying cryptographically but stop resolving, so they are effectively
// dead from the next request on.
func (s *AuthService) DeleteAccount(ctx context.Context, username string) error {
	if err := s.identities.DeleteByUsername(ctx, username); err != nil {
		return err
	}
	s.record(domain.AuditAccountDeleted, username, "")
	return nil
}

// Resolve looks up the identity behind a verified token subject.
func (s *AuthService) Resolve(ctx context.Context, username string) (*domain.Identity, error) {
	return s.identities.FindByUsername(ctx, username)
}

// loginFailed records the audit detail of a failed login. The detail stays
// internal: callers only ever see ErrInvalidCredentials.
func (s *AuthService) loginFailed(ctx context.Context, username, detail string) {
	if s.throttle != nil {
		if err := s.throttle.RecordFailure(ctx, username); err != nil {
			s.logger.Warn().Err(err).Msg("login throttle record failed")
		}
	}
	s.record(domain.AuditLoginFailure, username, detail)
	metrics.LoginsTotal.WithLabelValues("failure").Inc()
}

func (s *AuthService) record(kind domain.AuditKind, username, detail string) {
	if s.audit == nil {
		return
	}
	s.audit.Record(domain.AuditEvent{
		Username: username,
		Kind:     kind,
		Detail:   detail,
		At:       time.Now().UTC(),
	})
}
