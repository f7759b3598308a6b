package repositories

import (
	"context"

	"shieldnest.backend/internal/domain/entities"
)

// VisitorWalletStore holds unauthenticated wallet entries for a visitor until
// they upgrade to a full account. The migration flow depends only on this
// interface, not on a specific storage mechanism.
type VisitorWalletStore interface {
	List(ctx context.Context, visitorID string) ([]entities.VisitorWallet, error)
	Add(ctx context.Context, visitorID string, wallet entities.VisitorWallet) error
	Remove(ctx context.Context, visitorID, address string) error
	Clear(ctx context.Context, visitorID string) error
	MarkMigrated(ctx context.Context, visitorID string) error
	IsMigrated(ctx context.Context, visitorID string) (bool, error)
}
