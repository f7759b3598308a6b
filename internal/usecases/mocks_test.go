package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"shieldnest.backend/internal/domain/entities"
)

type MockNonceRepository struct {
	mock.Mock
}

func (m *MockNonceRepository) Create(ctx context.Context, nonce *entities.Nonce) error {
	args := m.Called(ctx, nonce)
	return args.Error(0)
}

func (m *MockNonceRepository) GetByToken(ctx context.Context, token string) (*entities.Nonce, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Nonce), args.Error(1)
}

func (m *MockNonceRepository) Consume(ctx context.Context, token, address string) (bool, error) {
	args := m.Called(ctx, token, address)
	return args.Bool(0), args.Error(1)
}

type MockWalletRepository struct {
	mock.Mock
}

func (m *MockWalletRepository) Create(ctx context.Context, wallet *entities.Wallet) error {
	args := m.Called(ctx, wallet)
	return args.Error(0)
}

func (m *MockWalletRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Wallet, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByOwnerAndAddress(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, address string) (*entities.Wallet, error) {
	args := m.Called(ctx, userID, scope, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListByOwner(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) ([]*entities.Wallet, error) {
	args := m.Called(ctx, userID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Wallet), args.Error(1)
}

func (m *MockWalletRepository) CountByOwner(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) (int64, error) {
	args := m.Called(ctx, userID, scope)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockWalletRepository) HasPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) (bool, error) {
	args := m.Called(ctx, userID, scope)
	return args.Bool(0), args.Error(1)
}

func (m *MockWalletRepository) SetPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error {
	args := m.Called(ctx, userID, scope, walletID)
	return args.Error(0)
}

func (m *MockWalletRepository) UpdateLabel(ctx context.Context, walletID uuid.UUID, label string) error {
	args := m.Called(ctx, walletID, label)
	return args.Error(0)
}

func (m *MockWalletRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	if args.Error(0) == nil && user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) Create(ctx context.Context, profile *entities.Profile) error {
	args := m.Called(ctx, profile)
	if args.Error(0) == nil && profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	return args.Error(0)
}

func (m *MockProfileRepository) GetByAuthUser(ctx context.Context, authUserID uuid.UUID, scope entities.WalletScope) (*entities.Profile, error) {
	args := m.Called(ctx, authUserID, scope)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

func (m *MockProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Profile), args.Error(1)
}

type MockVisitorStore struct {
	mock.Mock
}

func (m *MockVisitorStore) List(ctx context.Context, visitorID string) ([]entities.VisitorWallet, error) {
	args := m.Called(ctx, visitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.VisitorWallet), args.Error(1)
}

func (m *MockVisitorStore) Add(ctx context.Context, visitorID string, wallet entities.VisitorWallet) error {
	args := m.Called(ctx, visitorID, wallet)
	return args.Error(0)
}

func (m *MockVisitorStore) Remove(ctx context.Context, visitorID, address string) error {
	args := m.Called(ctx, visitorID, address)
	return args.Error(0)
}

func (m *MockVisitorStore) Clear(ctx context.Context, visitorID string) error {
	args := m.Called(ctx, visitorID)
	return args.Error(0)
}

func (m *MockVisitorStore) MarkMigrated(ctx context.Context, visitorID string) error {
	args := m.Called(ctx, visitorID)
	return args.Error(0)
}

func (m *MockVisitorStore) IsMigrated(ctx context.Context, visitorID string) (bool, error) {
	args := m.Called(ctx, visitorID)
	return args.Bool(0), args.Error(1)
}

type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) Verify(address string, pubKey, signature []byte, signDoc string) error {
	args := m.Called(address, pubKey, signature, signDoc)
	return args.Error(0)
}
