package ports

import (
	"context"

	"github.com/autolane/marketplace-api/internal/core/domain"
)

// IdentityRepository is the credential store: persistence for identity
// records. Implementations must return domain.ErrIdentityNotFound for
// missing usernames and domain.ErrIdentityExists on duplicate creation.
type IdentityRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Identity, error)
	Create(ctx context.Context, identity *domain.Identity) (*domain.Identity, error)
	UpdatePassword(ctx context.Context, username, passwordHash string) error
	DeleteByUsername(ctx context.Context, username string) error
}
