package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/infrastructure/models"
)

// NonceRepository implements nonce challenge persistence
type NonceRepository struct {
	db *gorm.DB
}

// NewNonceRepository creates a new nonce repository
func NewNonceRepository(db *gorm.DB) *NonceRepository {
	return &NonceRepository{db: db}
}

// Create persists a new nonce challenge
func (r *NonceRepository) Create(ctx context.Context, nonce *entities.Nonce) error {
	m := &models.WalletNonce{
		Token:     nonce.Token,
		Address:   strings.ToLower(nonce.Address),
		ExpiresAt: nonce.ExpiresAt,
		Used:      false,
		CreatedAt: nonce.CreatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByToken gets a nonce by token
func (r *NonceRepository) GetByToken(ctx context.Context, token string) (*entities.Nonce, error) {
	var m models.WalletNonce
	if err := r.db.WithContext(ctx).Where("token = ?", token).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toNonceEntity(&m), nil
}

// Consume atomically marks a nonce used. The conditional update is the whole
// protocol: token must exist, be unused, be unexpired, and have been issued
// for the supplied address. RowsAffected is the success signal, so two racing
// consumers resolve to exactly one winner.
func (r *NonceRepository) Consume(ctx context.Context, token, address string) (bool, error) {
	now := time.Now()
	result := r.db.WithContext(ctx).
		Model(&models.WalletNonce{}).
		Where("token = ? AND used = ? AND expires_at > ? AND address = ?",
			token, false, now, strings.ToLower(address)).
		Updates(map[string]interface{}{
			"used":    true,
			"used_at": now,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func toNonceEntity(m *models.WalletNonce) *entities.Nonce {
	n := &entities.Nonce{
		Token:     m.Token,
		Address:   m.Address,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
	}
	if m.UsedAt != nil {
		n.UsedAt.SetValid(*m.UsedAt)
	}
	return n
}
