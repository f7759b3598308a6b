package repositories

import (
	"context"

	"shieldnest.backend/internal/domain/entities"
)

// NonceRepository defines nonce challenge persistence.
type NonceRepository interface {
	Create(ctx context.Context, nonce *entities.Nonce) error
	GetByToken(ctx context.Context, token string) (*entities.Nonce, error)
	// Consume atomically marks the nonce used. It succeeds at most once per
	// token, and only when the stored address matches (case-folded) and the
	// nonce has not expired. Implementations must use a single conditional
	// update, never a read-then-write pair.
	Consume(ctx context.Context, token, address string) (bool, error)
}
