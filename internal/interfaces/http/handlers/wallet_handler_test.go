package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
)

type stubWalletService struct {
	wallets   []*entities.Wallet
	listErr   error
	added     *entities.Wallet
	addErr    error
	actionErr error
	gotOwner  uuid.UUID
	gotScope  entities.WalletScope
}

func (s *stubWalletService) AddWallet(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, input *entities.AddWalletInput) (*entities.Wallet, error) {
	s.gotOwner, s.gotScope = userID, scope
	return s.added, s.addErr
}

func (s *stubWalletService) ListWallets(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) ([]*entities.Wallet, error) {
	s.gotOwner, s.gotScope = userID, scope
	return s.wallets, s.listErr
}

func (s *stubWalletService) SetPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error {
	return s.actionErr
}

func (s *stubWalletService) UpdateLabel(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID, label string) error {
	return s.actionErr
}

func (s *stubWalletService) Disconnect(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error {
	return s.actionErr
}

type stubProfileResolver struct {
	profileID uuid.UUID
	err       error
}

func (s *stubProfileResolver) EnsureProfile(ctx context.Context, authUserID uuid.UUID, scope entities.WalletScope) (*entities.Profile, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Profile{ID: s.profileID, AuthUserID: authUserID, Scope: scope}, nil
}

type walletRouterDeps struct {
	wallets  *stubWalletService
	profiles *stubProfileResolver
	migrator *stubMigrator
	userID   *uuid.UUID
}

func newWalletRouter(deps walletRouterDeps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	if deps.wallets == nil {
		deps.wallets = &stubWalletService{}
	}
	if deps.profiles == nil {
		deps.profiles = &stubProfileResolver{profileID: uuid.New()}
	}
	if deps.migrator == nil {
		deps.migrator = &stubMigrator{}
	}
	h := &WalletHandler{wallets: deps.wallets, profiles: deps.profiles, migrator: deps.migrator}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if deps.userID != nil {
			c.Set("userId", *deps.userID)
		}
		c.Next()
	})
	r.GET("/api/v1/wallets", h.ListWallets)
	r.POST("/api/v1/wallets", h.AddWallet)
	r.PUT("/api/v1/wallets/:id/label", h.UpdateLabel)
	r.PUT("/api/v1/wallets/:id/primary", h.SetPrimary)
	r.DELETE("/api/v1/wallets/:id", h.Disconnect)
	r.POST("/api/v1/wallets/migrate", h.Migrate)
	return r
}

func TestWalletHandler_ListWallets(t *testing.T) {
	userID := uuid.New()
	profileID := uuid.New()
	wallets := &stubWalletService{wallets: []*entities.Wallet{{ID: uuid.New(), Address: "core1abc", IsPrimary: true}}}
	r := newWalletRouter(walletRouterDeps{
		wallets:  wallets,
		profiles: &stubProfileResolver{profileID: profileID},
		userID:   &userID,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, profileID, wallets.gotOwner, "wallets queried by profile, not auth user")
	assert.Equal(t, entities.ScopePublic, wallets.gotScope, "scope defaults to public")
}

func TestWalletHandler_ListWallets_EmptyIsArray(t *testing.T) {
	userID := uuid.New()
	r := newWalletRouter(walletRouterDeps{userID: &userID})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"wallets":[]`)
}

func TestWalletHandler_ListWallets_ScopeValidation(t *testing.T) {
	userID := uuid.New()
	r := newWalletRouter(walletRouterDeps{userID: &userID})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets?scope=secret", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletHandler_ListWallets_Unauthenticated(t *testing.T) {
	r := newWalletRouter(walletRouterDeps{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestWalletHandler_AddWallet(t *testing.T) {
	userID := uuid.New()
	wallets := &stubWalletService{
		added: &entities.Wallet{ID: uuid.New(), Address: "core1watch", ReadOnly: true},
	}
	r := newWalletRouter(walletRouterDeps{wallets: wallets, userID: &userID})

	payload := `{"address":"core1watch","label":"Watch","scope":"private"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, entities.ScopePrivate, wallets.gotScope, "scope taken from the body")
}

func TestWalletHandler_AddWallet_Conflict(t *testing.T) {
	userID := uuid.New()
	wallets := &stubWalletService{addErr: domainerrors.ErrWalletExists}
	r := newWalletRouter(walletRouterDeps{wallets: wallets, userID: &userID})

	payload := `{"address":"core1watch"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "WALLET_EXISTS", body["code"])
}

func TestWalletHandler_UpdateLabel_NotFound(t *testing.T) {
	userID := uuid.New()
	wallets := &stubWalletService{actionErr: domainerrors.ErrNotFound}
	r := newWalletRouter(walletRouterDeps{wallets: wallets, userID: &userID})

	payload := `{"label":"Cold Storage"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/wallets/"+uuid.NewString()+"/label", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWalletHandler_SetPrimary_BadID(t *testing.T) {
	userID := uuid.New()
	r := newWalletRouter(walletRouterDeps{userID: &userID})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/wallets/not-a-uuid/primary", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletHandler_Disconnect(t *testing.T) {
	userID := uuid.New()
	r := newWalletRouter(walletRouterDeps{userID: &userID})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/wallets/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestWalletHandler_Migrate(t *testing.T) {
	userID := uuid.New()
	migrator := &stubMigrator{result: &entities.MigrationResult{Success: true, MigratedCount: 3}}
	r := newWalletRouter(walletRouterDeps{migrator: migrator, userID: &userID})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets/migrate", nil)
	req.Header.Set(VisitorIDHeader, "visitor-9")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "visitor-9", migrator.gotVisitorID)
	assert.Equal(t, userID, migrator.gotUserID, "migration resolves the profile itself")
}

func TestWalletHandler_Migrate_MissingHeader(t *testing.T) {
	userID := uuid.New()
	r := newWalletRouter(walletRouterDeps{userID: &userID})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/wallets/migrate", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWalletHandler_ProfileResolutionFailure(t *testing.T) {
	userID := uuid.New()
	r := newWalletRouter(walletRouterDeps{
		profiles: &stubProfileResolver{err: domainerrors.InternalServerError("db down")},
		userID:   &userID,
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/wallets", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "PROFILE_ERROR", body["code"])
}
