package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/domain/repositories"
	"shieldnest.backend/pkg/crypto"
	"shieldnest.backend/pkg/jwt"
)

// AccountService is the generic account system: email/password accounts,
// anonymous wallet-bootstrap accounts, and the auth-account to per-scope
// profile mapping that wallets hang off.
type AccountService struct {
	userRepo       repositories.UserRepository
	profileRepo    repositories.ProfileRepository
	jwtService     *jwt.JWTService
	allowAnonymous bool
}

// NewAccountService creates a new account service
func NewAccountService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	jwtService *jwt.JWTService,
	allowAnonymous bool,
) *AccountService {
	return &AccountService{
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		jwtService:     jwtService,
		allowAnonymous: allowAnonymous,
	}
}

// Register registers a new email/password account
func (s *AccountService) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	_, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("An account with this email already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        null.StringFrom(input.Email),
		Name:         input.Name,
		PasswordHash: passwordHash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := s.IssueTokens(user)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// Login authenticates an email/password account
func (s *AccountService) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := s.IssueTokens(user)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		User:         user,
	}, nil
}

// GetUserByID returns the auth account with the given ID
func (s *AccountService) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// CreateAnonymousAccount creates an auth account as a side effect of a
// first-time wallet link, tagged with the bootstrap metadata. Returns
// ErrAnonymousAuthDisabled when the deployment has anonymous sign-ins off.
func (s *AccountService) CreateAnonymousAccount(ctx context.Context, walletAddress string) (*entities.User, error) {
	if !s.allowAnonymous {
		return nil, domainerrors.ErrAnonymousAuthDisabled
	}

	user := &entities.User{
		Name:             "Wallet User",
		IsAnonymous:      true,
		WalletBootstrap:  true,
		BootstrapAddress: null.StringFrom(walletAddress),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureProfile returns the per-scope profile for an auth account, creating it
// when missing. Safe to call when the profile already exists.
func (s *AccountService) EnsureProfile(ctx context.Context, authUserID uuid.UUID, scope entities.WalletScope) (*entities.Profile, error) {
	profile, err := s.profileRepo.GetByAuthUser(ctx, authUserID, scope)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	profile = &entities.Profile{
		AuthUserID: authUserID,
		Scope:      scope,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		// Lost a creation race; the winner's row is the mapping.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return s.profileRepo.GetByAuthUser(ctx, authUserID, scope)
		}
		return nil, err
	}
	return profile, nil
}

// IssueTokens issues a JWT token pair for an auth account
func (s *AccountService) IssueTokens(user *entities.User) (*jwt.TokenPair, error) {
	return s.jwtService.GenerateTokenPair(user.ID, user.Email.String, user.IsAnonymous)
}
