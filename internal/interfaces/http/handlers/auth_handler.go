package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/interfaces/http/middleware"
	"shieldnest.backend/internal/interfaces/http/response"
	"shieldnest.backend/internal/usecases"
	"shieldnest.backend/pkg/logger"
)

type accountService interface {
	Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error)
	Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
}

type visitorMigrator interface {
	MigrateVisitor(ctx context.Context, visitorID string, authUserID uuid.UUID, scope entities.WalletScope) (*entities.MigrationResult, error)
}

// AuthHandler handles account registration and session endpoints
type AuthHandler struct {
	accounts accountService
	migrator visitorMigrator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(accounts *usecases.AccountService, migrator *usecases.MigrationUsecase) *AuthHandler {
	return &AuthHandler{accounts: accounts, migrator: migrator}
}

// Register creates an email/password account. When the request carries a
// visitor ID, the visitor's local wallets are migrated into the new account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.accounts.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	body := gin.H{
		"accessToken":  resp.AccessToken,
		"refreshToken": resp.RefreshToken,
		"user":         resp.User,
	}

	if visitorID := c.GetHeader(VisitorIDHeader); visitorID != "" {
		migration, err := h.migrator.MigrateVisitor(c.Request.Context(), visitorID, resp.User.ID, entities.ScopePublic)
		if err != nil {
			// Registration already succeeded; report the account and let the
			// client retry migration explicitly.
			logger.Warn(c.Request.Context(), "visitor wallet migration failed during registration",
				zap.String("visitorId", visitorID), zap.Error(err))
		} else {
			body["migration"] = migration
		}
	}

	response.Success(c, http.StatusCreated, body)
}

// Login authenticates an email/password account
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.accounts.Login(c.Request.Context(), &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrInvalidCredentials) {
			response.Error(c, domainerrors.Unauthorized("Invalid email or password"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// Me returns the current auth account
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	user, err := h.accounts.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("User not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
