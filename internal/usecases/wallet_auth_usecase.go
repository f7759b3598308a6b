package usecases

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/domain/repositories"
	"shieldnest.backend/internal/metrics"
	"shieldnest.backend/pkg/logger"
	"shieldnest.backend/pkg/walletsig"
	"go.uber.org/zap"
)

const primaryWalletLabel = "Primary Wallet"

// WalletAuthUsecase runs the challenge/response wallet authentication flow:
// nonce issuance and the verify step that consumes a nonce, checks the
// signature, resolves the caller's identity, and links the wallet.
type WalletAuthUsecase struct {
	nonceRepo  repositories.NonceRepository
	walletRepo repositories.WalletRepository
	accounts   *AccountService
	wallets    *WalletUsecase
	verifier   walletsig.Verifier

	signDocPrefix string
	nonceTTL      time.Duration
}

// NewWalletAuthUsecase creates a new wallet auth usecase
func NewWalletAuthUsecase(
	nonceRepo repositories.NonceRepository,
	walletRepo repositories.WalletRepository,
	accounts *AccountService,
	wallets *WalletUsecase,
	verifier walletsig.Verifier,
	signDocPrefix string,
	nonceTTL time.Duration,
) *WalletAuthUsecase {
	return &WalletAuthUsecase{
		nonceRepo:     nonceRepo,
		walletRepo:    walletRepo,
		accounts:      accounts,
		wallets:       wallets,
		verifier:      verifier,
		signDocPrefix: signDocPrefix,
		nonceTTL:      nonceTTL,
	}
}

// IssueNonce creates a single-use challenge for the given wallet address
func (u *WalletAuthUsecase) IssueNonce(ctx context.Context, address string) (*entities.IssueNonceResult, error) {
	address = strings.ToLower(strings.TrimSpace(address))
	if address == "" {
		return nil, domainerrors.BadRequest("Wallet address is required")
	}

	nonce := &entities.Nonce{
		Token:     uuid.NewString(),
		Address:   address,
		ExpiresAt: time.Now().Add(u.nonceTTL),
	}
	if err := u.nonceRepo.Create(ctx, nonce); err != nil {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeNonceStorageFailed, "Failed to store nonce", err)
	}

	metrics.NoncesIssued.Inc()
	return &entities.IssueNonceResult{
		Nonce:     nonce.Token,
		ExpiresAt: nonce.ExpiresAt,
	}, nil
}

// SignDoc returns the exact text the wallet must sign for a given challenge
func (u *WalletAuthUsecase) SignDoc(address, nonce string) string {
	return walletsig.BuildSignDoc(u.signDocPrefix, strings.ToLower(address), nonce)
}

// VerifyWallet consumes the nonce, verifies the signature, resolves the
// caller's identity, and links the wallet. The nonce is burned before any
// account or wallet mutation, so a replayed request dies at the first step.
func (u *WalletAuthUsecase) VerifyWallet(ctx context.Context, session entities.Session, input *entities.VerifyWalletInput) (*entities.VerifyWalletResult, error) {
	address := strings.ToLower(strings.TrimSpace(input.Address))

	consumed, err := u.nonceRepo.Consume(ctx, input.Nonce, address)
	if err != nil {
		metrics.NonceConsumptions.WithLabelValues("error").Inc()
		return nil, domainerrors.InternalError(err)
	}
	if !consumed {
		metrics.NonceConsumptions.WithLabelValues("rejected").Inc()
		return nil, domainerrors.NewAppError(http.StatusBadRequest,
			domainerrors.CodeNonceInvalid, "Invalid or expired nonce", domainerrors.ErrNonceInvalid).
			WithHint("Request a new nonce and sign again")
	}
	metrics.NonceConsumptions.WithLabelValues("consumed").Inc()

	if err := u.verifySignature(address, input); err != nil {
		metrics.SignatureVerifications.WithLabelValues("failure").Inc()
		logger.Warn(ctx, "wallet signature rejected",
			zap.String("address", address),
			zap.Error(err))
		return nil, domainerrors.NewAppError(http.StatusUnauthorized,
			domainerrors.CodeSignatureInvalid, "Signature verification failed", err)
	}
	metrics.SignatureVerifications.WithLabelValues("success").Inc()

	if !session.Authenticated {
		return u.bootstrapVisitor(ctx, address, input.Provider)
	}
	return u.linkToAccount(ctx, session.UserID, address, input.Provider)
}

func (u *WalletAuthUsecase) verifySignature(address string, input *entities.VerifyWalletInput) error {
	pubKey, err := base64.StdEncoding.DecodeString(input.PublicKey)
	if err != nil {
		return walletsig.ErrInvalidSignature
	}
	signature, err := base64.StdEncoding.DecodeString(input.Signature)
	if err != nil {
		return walletsig.ErrInvalidSignature
	}

	signDoc := walletsig.BuildSignDoc(u.signDocPrefix, address, input.Nonce)
	return u.verifier.Verify(address, pubKey, signature, signDoc)
}

// bootstrapVisitor handles a verify call with no session: create an anonymous
// auth account, its public profile, and the primary verified wallet, then
// issue tokens so the client ends up signed in.
func (u *WalletAuthUsecase) bootstrapVisitor(ctx context.Context, address, provider string) (*entities.VerifyWalletResult, error) {
	user, err := u.accounts.CreateAnonymousAccount(ctx, address)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAnonymousAuthDisabled) {
			return nil, domainerrors.NewAppError(http.StatusInternalServerError,
				domainerrors.CodeAnonymousAuthDisabled, "Anonymous sign-ins are disabled", err).
				WithHint("Enable anonymous sign-ins or sign in before linking a wallet")
		}
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeAuthFailed, "Failed to create account", err)
	}

	profile, err := u.accounts.EnsureProfile(ctx, user.ID, entities.ScopePublic)
	if err != nil {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeProfileError, "Failed to resolve user profile", err)
	}

	if _, err := u.wallets.LinkWallet(ctx, profile.ID, entities.ScopePublic, address, entities.LinkWalletOptions{
		Label:    primaryWalletLabel,
		Provider: provider,
	}); err != nil {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeWalletLinkFailed, "Failed to link wallet", err)
	}

	tokens, err := u.accounts.IssueTokens(user)
	if err != nil {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeAuthFailed, "Failed to issue session tokens", err)
	}

	logger.Info(ctx, "wallet bootstrap complete",
		zap.String("address", address),
		zap.String("userId", profile.ID.String()))

	return &entities.VerifyWalletResult{
		Linked:          true,
		UserID:          profile.ID,
		Verified:        true,
		WalletBootstrap: true,
		Message:         "Account created and wallet linked",
		AccessToken:     tokens.AccessToken,
		RefreshToken:    tokens.RefreshToken,
	}, nil
}

// linkToAccount handles a verify call from an authenticated caller: ensure
// the profile exists, short-circuit if the wallet is already linked, link
// otherwise.
func (u *WalletAuthUsecase) linkToAccount(ctx context.Context, authUserID uuid.UUID, address, provider string) (*entities.VerifyWalletResult, error) {
	profile, err := u.accounts.EnsureProfile(ctx, authUserID, entities.ScopePublic)
	if err != nil {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeProfileError, "Failed to resolve user profile", err)
	}

	existing, err := u.walletRepo.GetByOwnerAndAddress(ctx, profile.ID, entities.ScopePublic, address)
	if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.InternalError(err)
	}
	if existing != nil {
		return &entities.VerifyWalletResult{
			Linked:        true,
			UserID:        profile.ID,
			Verified:      true,
			AlreadyLinked: true,
			Message:       "Wallet already linked to this account",
		}, nil
	}

	if _, err := u.wallets.LinkWallet(ctx, profile.ID, entities.ScopePublic, address, entities.LinkWalletOptions{
		Provider: provider,
	}); err != nil {
		if errors.Is(err, domainerrors.ErrWalletExists) {
			return &entities.VerifyWalletResult{
				Linked:        true,
				UserID:        profile.ID,
				Verified:      true,
				AlreadyLinked: true,
				Message:       "Wallet already linked to this account",
			}, nil
		}
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeWalletLinkFailed, "Failed to link wallet", err)
	}

	logger.Info(ctx, "wallet linked",
		zap.String("address", address),
		zap.String("userId", profile.ID.String()))

	return &entities.VerifyWalletResult{
		Linked:   true,
		UserID:   profile.ID,
		Verified: true,
		Message:  "Wallet linked successfully",
	}, nil
}
