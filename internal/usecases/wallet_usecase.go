package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/domain/repositories"
	"shieldnest.backend/internal/metrics"
)

// WalletUsecase handles wallet management for a profile: linking, manual
// read-only adds, listing, labels, primary selection, and disconnects.
type WalletUsecase struct {
	walletRepo     repositories.WalletRepository
	defaultChainID string
}

// NewWalletUsecase creates a new wallet usecase
func NewWalletUsecase(walletRepo repositories.WalletRepository, defaultChainID string) *WalletUsecase {
	return &WalletUsecase{
		walletRepo:     walletRepo,
		defaultChainID: defaultChainID,
	}
}

// LinkWallet inserts a wallet row for the profile. The first wallet in scope
// becomes primary. The existence check here is advisory; the unique index on
// (address, user_id, user_scope) is the enforcement point, and a duplicate
// insert surfaces as ErrWalletExists either way.
func (u *WalletUsecase) LinkWallet(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, address string, opts entities.LinkWalletOptions) (*entities.Wallet, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, domainerrors.BadRequest("Wallet address is required")
	}

	existing, err := u.walletRepo.GetByOwnerAndAddress(ctx, userID, scope, address)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}
	if existing != nil {
		return nil, domainerrors.ErrWalletExists
	}

	count, err := u.walletRepo.CountByOwner(ctx, userID, scope)
	if err != nil {
		return nil, err
	}

	chainID := opts.ChainID
	if chainID == "" {
		chainID = u.defaultChainID
	}

	wallet := &entities.Wallet{
		UserID:    userID,
		UserScope: scope,
		ChainID:   chainID,
		Address:   address,
		Label:     opts.Label,
		Provider:  opts.Provider,
		ReadOnly:  opts.ReadOnly,
		IsPrimary: count == 0,
		CreatedAt: opts.CreatedAt,
	}
	if err := u.walletRepo.Create(ctx, wallet); err != nil {
		return nil, err
	}

	kind := "link"
	if wallet.ReadOnly {
		kind = "manual"
	}
	metrics.WalletsLinked.WithLabelValues(kind).Inc()

	return wallet, nil
}

// AddWallet adds a read-only wallet by bare address, without signature proof
func (u *WalletUsecase) AddWallet(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, input *entities.AddWalletInput) (*entities.Wallet, error) {
	label := input.Label
	if label == "" {
		label = "Watched Wallet"
	}
	return u.LinkWallet(ctx, userID, scope, input.Address, entities.LinkWalletOptions{
		ChainID:  input.ChainID,
		Label:    label,
		Provider: input.Provider,
		ReadOnly: true,
	})
}

// ListWallets returns the profile's wallets, primary first
func (u *WalletUsecase) ListWallets(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) ([]*entities.Wallet, error) {
	return u.walletRepo.ListByOwner(ctx, userID, scope)
}

// SetPrimary makes the given wallet the profile's single primary wallet
func (u *WalletUsecase) SetPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error {
	if _, err := u.getOwned(ctx, userID, scope, walletID); err != nil {
		return err
	}
	return u.walletRepo.SetPrimary(ctx, userID, scope, walletID)
}

// UpdateLabel renames a wallet
func (u *WalletUsecase) UpdateLabel(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID, label string) error {
	if _, err := u.getOwned(ctx, userID, scope, walletID); err != nil {
		return err
	}
	return u.walletRepo.UpdateLabel(ctx, walletID, label)
}

// Disconnect removes a wallet from the profile
func (u *WalletUsecase) Disconnect(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error {
	if _, err := u.getOwned(ctx, userID, scope, walletID); err != nil {
		return err
	}
	return u.walletRepo.Delete(ctx, walletID)
}

// getOwned loads a wallet and confirms it belongs to the caller's profile.
// Foreign wallets surface as not-found rather than forbidden.
func (u *WalletUsecase) getOwned(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) (*entities.Wallet, error) {
	wallet, err := u.walletRepo.GetByID(ctx, walletID)
	if err != nil {
		return nil, err
	}
	if wallet.UserID != userID || wallet.UserScope != scope {
		return nil, domainerrors.ErrNotFound
	}
	return wallet, nil
}
