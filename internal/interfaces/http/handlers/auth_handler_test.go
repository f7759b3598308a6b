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
	"github.com/volatiletech/null/v8"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
)

type stubAccountService struct {
	registerResp *entities.AuthResponse
	registerErr  error
	loginResp    *entities.AuthResponse
	loginErr     error
	user         *entities.User
	userErr      error
}

func (s *stubAccountService) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	return s.registerResp, s.registerErr
}

func (s *stubAccountService) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	return s.loginResp, s.loginErr
}

func (s *stubAccountService) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.user, s.userErr
}

type stubMigrator struct {
	result       *entities.MigrationResult
	err          error
	gotVisitorID string
	gotUserID    uuid.UUID
	called       bool
}

func (s *stubMigrator) MigrateVisitor(ctx context.Context, visitorID string, authUserID uuid.UUID, scope entities.WalletScope) (*entities.MigrationResult, error) {
	s.called = true
	s.gotVisitorID = visitorID
	s.gotUserID = authUserID
	return s.result, s.err
}

func newAuthRouter(accounts *stubAccountService, migrator *stubMigrator, userID *uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{accounts: accounts, migrator: migrator}
	r := gin.New()
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)
	r.GET("/api/v1/auth/me", func(c *gin.Context) {
		if userID != nil {
			c.Set("userId", *userID)
		}
		c.Next()
	}, h.Me)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Email: null.StringFrom("alice@example.com"), Name: "Alice"}
	accounts := &stubAccountService{
		registerResp: &entities.AuthResponse{User: user, AccessToken: "access", RefreshToken: "refresh"},
	}
	migrator := &stubMigrator{}
	r := newAuthRouter(accounts, migrator, nil)

	payload := `{"email":"alice@example.com","name":"Alice","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "access", body["accessToken"])
	assert.NotContains(t, body, "migration")
	assert.False(t, migrator.called, "no visitor header, no migration")
}

func TestAuthHandler_Register_WithVisitorMigration(t *testing.T) {
	user := &entities.User{ID: uuid.New(), Email: null.StringFrom("alice@example.com")}
	accounts := &stubAccountService{
		registerResp: &entities.AuthResponse{User: user, AccessToken: "access", RefreshToken: "refresh"},
	}
	migrator := &stubMigrator{
		result: &entities.MigrationResult{Success: true, MigratedCount: 2},
	}
	r := newAuthRouter(accounts, migrator, nil)

	payload := `{"email":"alice@example.com","name":"Alice","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(VisitorIDHeader, "visitor-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "visitor-1", migrator.gotVisitorID)
	assert.Equal(t, user.ID, migrator.gotUserID)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	migration, ok := body["migration"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(2), migration["migratedCount"])
}

func TestAuthHandler_Register_MigrationFailureDoesNotFailRegistration(t *testing.T) {
	user := &entities.User{ID: uuid.New()}
	accounts := &stubAccountService{
		registerResp: &entities.AuthResponse{User: user, AccessToken: "access"},
	}
	migrator := &stubMigrator{err: domainerrors.InternalServerError("redis down")}
	r := newAuthRouter(accounts, migrator, nil)

	payload := `{"email":"alice@example.com","name":"Alice","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(VisitorIDHeader, "visitor-1")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, "registration succeeds even when migration fails")
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotContains(t, body, "migration")
}

func TestAuthHandler_Register_EmailTaken(t *testing.T) {
	accounts := &stubAccountService{
		registerErr: domainerrors.Conflict("An account with this email already exists"),
	}
	r := newAuthRouter(accounts, &stubMigrator{}, nil)

	payload := `{"email":"taken@example.com","name":"Bob","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/register", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	accounts := &stubAccountService{loginErr: domainerrors.ErrInvalidCredentials}
	r := newAuthRouter(accounts, &stubMigrator{}, nil)

	payload := `{"email":"alice@example.com","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UNAUTHORIZED", body["code"])
}

func TestAuthHandler_Me(t *testing.T) {
	userID := uuid.New()
	accounts := &stubAccountService{user: &entities.User{ID: userID, Name: "Alice"}}
	r := newAuthRouter(accounts, &stubMigrator{}, &userID)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_Me_Unauthenticated(t *testing.T) {
	r := newAuthRouter(&stubAccountService{}, &stubMigrator{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
