package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"shieldnest.backend/internal/domain/entities"
)

const (
	visitorWalletsKeyPrefix  = "visitor:wallets:"
	visitorMigratedKeyPrefix = "visitor:migrated:"
)

// VisitorWalletStore keeps unauthenticated wallet entries per visitor. It is
// the server-side stand-in for the client's local storage: entries live under
// a visitor-scoped key with a TTL and are cleared on migration.
type VisitorWalletStore struct {
	ttl time.Duration
}

// NewVisitorWalletStore creates a visitor wallet store with the given entry TTL
func NewVisitorWalletStore(ttl time.Duration) *VisitorWalletStore {
	return &VisitorWalletStore{ttl: ttl}
}

// List returns the visitor's wallet entries in insertion order
func (s *VisitorWalletStore) List(ctx context.Context, visitorID string) ([]entities.VisitorWallet, error) {
	raw, err := Get(ctx, visitorWalletsKeyPrefix+visitorID)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var wallets []entities.VisitorWallet
	if err := json.Unmarshal([]byte(raw), &wallets); err != nil {
		return nil, err
	}
	return wallets, nil
}

// Add appends a wallet entry. Duplicate addresses (case-folded) are ignored.
// The first entry is marked primary.
func (s *VisitorWalletStore) Add(ctx context.Context, visitorID string, wallet entities.VisitorWallet) error {
	wallets, err := s.List(ctx, visitorID)
	if err != nil {
		return err
	}

	for _, w := range wallets {
		if strings.EqualFold(w.Address, wallet.Address) {
			return nil
		}
	}

	wallet.Address = strings.ToLower(wallet.Address)
	wallet.IsPrimary = len(wallets) == 0
	if wallet.AddedAt.IsZero() {
		wallet.AddedAt = time.Now()
	}
	wallets = append(wallets, wallet)

	return s.save(ctx, visitorID, wallets)
}

// Remove deletes the entry with the given address, if present
func (s *VisitorWalletStore) Remove(ctx context.Context, visitorID, address string) error {
	wallets, err := s.List(ctx, visitorID)
	if err != nil {
		return err
	}

	kept := wallets[:0]
	for _, w := range wallets {
		if !strings.EqualFold(w.Address, address) {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return Del(ctx, visitorWalletsKeyPrefix+visitorID)
	}
	return s.save(ctx, visitorID, kept)
}

// Clear removes all entries for the visitor
func (s *VisitorWalletStore) Clear(ctx context.Context, visitorID string) error {
	return Del(ctx, visitorWalletsKeyPrefix+visitorID)
}

// MarkMigrated records that the visitor's wallets were migrated, so the
// migration prompt is not shown again
func (s *VisitorWalletStore) MarkMigrated(ctx context.Context, visitorID string) error {
	return Set(ctx, visitorMigratedKeyPrefix+visitorID, "1", s.ttl)
}

// IsMigrated reports whether the visitor's wallets were already migrated
func (s *VisitorWalletStore) IsMigrated(ctx context.Context, visitorID string) (bool, error) {
	_, err := Get(ctx, visitorMigratedKeyPrefix+visitorID)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *VisitorWalletStore) save(ctx context.Context, visitorID string, wallets []entities.VisitorWallet) error {
	data, err := json.Marshal(wallets)
	if err != nil {
		return err
	}
	return Set(ctx, visitorWalletsKeyPrefix+visitorID, data, s.ttl)
}
