package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/infrastructure/models"
)

// WalletRepository implements wallet data operations
type WalletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a new wallet repository
func NewWalletRepository(db *gorm.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Create creates a new wallet row. The unique index over
// (address, user_id, user_scope) is the true duplicate guard.
func (r *WalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	if wallet.ID == uuid.Nil {
		wallet.ID = uuid.New()
	}
	now := time.Now()
	if wallet.CreatedAt.IsZero() {
		wallet.CreatedAt = now
	}
	wallet.UpdatedAt = now

	m := &models.Wallet{
		ID:        wallet.ID,
		UserID:    wallet.UserID,
		UserScope: string(wallet.UserScope),
		ChainID:   wallet.ChainID,
		Address:   strings.ToLower(wallet.Address),
		Label:     wallet.Label,
		Provider:  wallet.Provider,
		ReadOnly:  wallet.ReadOnly,
		IsPrimary: wallet.IsPrimary,
		CreatedAt: wallet.CreatedAt,
		UpdatedAt: wallet.UpdatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrWalletExists
		}
		return err
	}
	wallet.Address = m.Address
	return nil
}

// GetByID gets a wallet by ID
func (r *WalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	var m models.Wallet
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletEntity(&m), nil
}

// GetByOwnerAndAddress gets a wallet by case-folded address within an account scope
func (r *WalletRepository) GetByOwnerAndAddress(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, address string) (*entities.Wallet, error) {
	var m models.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND user_scope = ? AND address = ?", userID, string(scope), strings.ToLower(address)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toWalletEntity(&m), nil
}

// ListByOwner lists wallets for an account scope, primary first
func (r *WalletRepository) ListByOwner(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) ([]*entities.Wallet, error) {
	var ms []models.Wallet
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND user_scope = ?", userID, string(scope)).
		Order("is_primary DESC").
		Order("created_at ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	wallets := make([]*entities.Wallet, 0, len(ms))
	for i := range ms {
		wallets = append(wallets, toWalletEntity(&ms[i]))
	}
	return wallets, nil
}

// CountByOwner counts wallets for an account scope
func (r *WalletRepository) CountByOwner(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ? AND user_scope = ?", userID, string(scope)).
		Count(&count).Error
	return count, err
}

// HasPrimary reports whether the account scope already has a primary wallet
func (r *WalletRepository) HasPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("user_id = ? AND user_scope = ? AND is_primary = ?", userID, string(scope), true).
		Count(&count).Error
	return count > 0, err
}

// SetPrimary sets a wallet as primary and unsets the rest of the scope
func (r *WalletRepository) SetPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Wallet{}).
			Where("user_id = ? AND user_scope = ?", userID, string(scope)).
			Update("is_primary", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Wallet{}).
			Where("id = ? AND user_id = ? AND user_scope = ?", walletID, userID, string(scope)).
			Update("is_primary", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrNotFound
		}
		return nil
	})
}

// UpdateLabel updates a wallet's display label
func (r *WalletRepository) UpdateLabel(ctx context.Context, walletID uuid.UUID, label string) error {
	result := r.db.WithContext(ctx).
		Model(&models.Wallet{}).
		Where("id = ?", walletID).
		Updates(map[string]interface{}{
			"label":      label,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a wallet row
func (r *WalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Wallet{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toWalletEntity(m *models.Wallet) *entities.Wallet {
	return &entities.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		UserScope: entities.WalletScope(m.UserScope),
		ChainID:   m.ChainID,
		Address:   m.Address,
		Label:     m.Label,
		Provider:  m.Provider,
		ReadOnly:  m.ReadOnly,
		IsPrimary: m.IsPrimary,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
