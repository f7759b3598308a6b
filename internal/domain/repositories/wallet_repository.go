package repositories

import (
	"context"

	"github.com/google/uuid"
	"shieldnest.backend/internal/domain/entities"
)

// WalletRepository defines wallet data operations
type WalletRepository interface {
	Create(ctx context.Context, wallet *entities.Wallet) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error)
	GetByOwnerAndAddress(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, address string) (*entities.Wallet, error)
	ListByOwner(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) ([]*entities.Wallet, error)
	CountByOwner(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) (int64, error)
	HasPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) (bool, error)
	SetPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error
	UpdateLabel(ctx context.Context, walletID uuid.UUID, label string) error
	Delete(ctx context.Context, id uuid.UUID) error
}
