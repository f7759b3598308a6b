package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/infrastructure/models"
)

// UserRepository implements auth account data operations
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new auth account
func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	m := &models.User{
		ID:               user.ID,
		Email:            user.Email.Ptr(),
		Name:             user.Name,
		PasswordHash:     user.PasswordHash,
		IsAnonymous:      user.IsAnonymous,
		WalletBootstrap:  user.WalletBootstrap,
		BootstrapAddress: user.BootstrapAddress.Ptr(),
		CreatedAt:        user.CreatedAt,
		UpdatedAt:        user.UpdatedAt,
	}
	return r.db.WithContext(ctx).Create(m).Error
}

// GetByID gets an auth account by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

// GetByEmail gets an auth account by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var m models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toUserEntity(&m), nil
}

func toUserEntity(m *models.User) *entities.User {
	return &entities.User{
		ID:               m.ID,
		Email:            null.StringFromPtr(m.Email),
		Name:             m.Name,
		PasswordHash:     m.PasswordHash,
		IsAnonymous:      m.IsAnonymous,
		WalletBootstrap:  m.WalletBootstrap,
		BootstrapAddress: null.StringFromPtr(m.BootstrapAddress),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// ProfileRepository implements auth-account to profile mappings
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create creates a profile mapping for an auth account and scope
func (r *ProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	profile.CreatedAt = time.Now()

	m := &models.UserProfile{
		ID:         profile.ID,
		AuthUserID: profile.AuthUserID,
		Scope:      string(profile.Scope),
		CreatedAt:  profile.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByAuthUser gets the profile for an auth account and scope
func (r *ProfileRepository) GetByAuthUser(ctx context.Context, authUserID uuid.UUID, scope entities.WalletScope) (*entities.Profile, error) {
	var m models.UserProfile
	err := r.db.WithContext(ctx).
		Where("auth_user_id = ? AND scope = ?", authUserID, string(scope)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

// GetByID gets a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	var m models.UserProfile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toProfileEntity(&m), nil
}

func toProfileEntity(m *models.UserProfile) *entities.Profile {
	return &entities.Profile{
		ID:         m.ID,
		AuthUserID: m.AuthUserID,
		Scope:      entities.WalletScope(m.Scope),
		CreatedAt:  m.CreatedAt,
	}
}
