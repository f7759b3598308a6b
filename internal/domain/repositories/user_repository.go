package repositories

import (
	"context"

	"github.com/google/uuid"
	"shieldnest.backend/internal/domain/entities"
)

// UserRepository defines auth account data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
}

// ProfileRepository defines auth-account to per-scope profile mappings
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) error
	GetByAuthUser(ctx context.Context, authUserID uuid.UUID, scope entities.WalletScope) (*entities.Profile, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error)
}
