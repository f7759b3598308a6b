package usecases

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/domain/repositories"
	"shieldnest.backend/internal/metrics"
	"shieldnest.backend/pkg/logger"
	"go.uber.org/zap"
)

const migratedWalletLabel = "Migrated Wallet"

// MigrationUsecase moves a visitor's local wallet entries into their account
// after they sign up or sign in.
type MigrationUsecase struct {
	walletRepo     repositories.WalletRepository
	visitorStore   repositories.VisitorWalletStore
	accounts       *AccountService
	defaultChainID string
}

// NewMigrationUsecase creates a new migration usecase
func NewMigrationUsecase(
	walletRepo repositories.WalletRepository,
	visitorStore repositories.VisitorWalletStore,
	accounts *AccountService,
	defaultChainID string,
) *MigrationUsecase {
	return &MigrationUsecase{
		walletRepo:     walletRepo,
		visitorStore:   visitorStore,
		accounts:       accounts,
		defaultChainID: defaultChainID,
	}
}

// MigrateVisitor migrates everything stored for a visitor ID into the auth
// account's profile, then clears the visitor store and marks it migrated so a
// repeat call is a no-op.
func (u *MigrationUsecase) MigrateVisitor(ctx context.Context, visitorID string, authUserID uuid.UUID, scope entities.WalletScope) (*entities.MigrationResult, error) {
	migrated, err := u.visitorStore.IsMigrated(ctx, visitorID)
	if err != nil {
		return nil, err
	}
	if migrated {
		return &entities.MigrationResult{Success: true, Errors: []string{}}, nil
	}

	entries, err := u.visitorStore.List(ctx, visitorID)
	if err != nil {
		return nil, err
	}

	profile, err := u.accounts.EnsureProfile(ctx, authUserID, scope)
	if err != nil {
		return nil, err
	}

	result := u.Migrate(ctx, entries, profile.ID, scope)

	if result.MigratedCount > 0 || result.Success {
		if err := u.visitorStore.Clear(ctx, visitorID); err != nil {
			logger.Warn(ctx, "failed to clear visitor wallets after migration",
				zap.String("visitorId", visitorID), zap.Error(err))
		}
		if err := u.visitorStore.MarkMigrated(ctx, visitorID); err != nil {
			logger.Warn(ctx, "failed to mark visitor as migrated",
				zap.String("visitorId", visitorID), zap.Error(err))
		}
	}

	return result, nil
}

// Migrate inserts the given entries as read-only wallets on the profile.
// Duplicates of already-linked wallets are skipped, entries within the batch
// are deduplicated by case-folded address, and the first entry inserted while
// the profile has no primary wallet becomes primary. Failures are collected
// per entry; the rest of the batch proceeds.
func (u *MigrationUsecase) Migrate(ctx context.Context, entries []entities.VisitorWallet, userID uuid.UUID, scope entities.WalletScope) *entities.MigrationResult {
	result := &entities.MigrationResult{Success: true, Errors: []string{}}
	if len(entries) == 0 {
		return result
	}

	seen := make(map[string]bool)
	existing, err := u.walletRepo.ListByOwner(ctx, userID, scope)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to list wallets: %v", err))
		return result
	}
	for _, w := range existing {
		seen[strings.ToLower(w.Address)] = true
	}

	hasPrimary, err := u.walletRepo.HasPrimary(ctx, userID, scope)
	if err != nil {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to check primary wallet: %v", err))
		return result
	}

	for _, entry := range entries {
		address := strings.ToLower(strings.TrimSpace(entry.Address))
		if address == "" || seen[address] {
			result.SkippedCount++
			continue
		}

		chainID := entry.ChainID
		if chainID == "" {
			chainID = u.defaultChainID
		}
		label := entry.Label
		if label == "" {
			label = migratedWalletLabel
		}
		createdAt := entry.AddedAt
		if createdAt.IsZero() {
			createdAt = time.Now()
		}

		wallet := &entities.Wallet{
			UserID:    userID,
			UserScope: scope,
			ChainID:   chainID,
			Address:   address,
			Label:     label,
			Provider:  entry.Provider,
			ReadOnly:  true,
			IsPrimary: !hasPrimary,
			CreatedAt: createdAt,
		}
		if err := u.walletRepo.Create(ctx, wallet); err != nil {
			if errors.Is(err, domainerrors.ErrWalletExists) {
				result.SkippedCount++
				seen[address] = true
				continue
			}
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", address, err))
			continue
		}

		seen[address] = true
		result.MigratedCount++
		metrics.WalletsMigrated.Inc()
		if wallet.IsPrimary {
			hasPrimary = true
		}
	}

	return result
}
