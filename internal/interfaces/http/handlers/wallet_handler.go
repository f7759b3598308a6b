package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/interfaces/http/middleware"
	"shieldnest.backend/internal/interfaces/http/response"
	"shieldnest.backend/internal/usecases"
)

type walletService interface {
	AddWallet(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, input *entities.AddWalletInput) (*entities.Wallet, error)
	ListWallets(ctx context.Context, userID uuid.UUID, scope entities.WalletScope) ([]*entities.Wallet, error)
	SetPrimary(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error
	UpdateLabel(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID, label string) error
	Disconnect(ctx context.Context, userID uuid.UUID, scope entities.WalletScope, walletID uuid.UUID) error
}

type profileResolver interface {
	EnsureProfile(ctx context.Context, authUserID uuid.UUID, scope entities.WalletScope) (*entities.Profile, error)
}

// WalletHandler handles wallet management endpoints. Wallets belong to the
// caller's per-scope profile, resolved from the authenticated account.
type WalletHandler struct {
	wallets  walletService
	profiles profileResolver
	migrator visitorMigrator
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(wallets *usecases.WalletUsecase, accounts *usecases.AccountService, migrator *usecases.MigrationUsecase) *WalletHandler {
	return &WalletHandler{wallets: wallets, profiles: accounts, migrator: migrator}
}

// ListWallets lists the profile's wallets, primary first
// GET /api/v1/wallets?scope=public|private
func (h *WalletHandler) ListWallets(c *gin.Context) {
	profileID, scope, ok := h.resolveProfile(c)
	if !ok {
		return
	}

	wallets, err := h.wallets.ListWallets(c.Request.Context(), profileID, scope)
	if err != nil {
		response.Error(c, err)
		return
	}
	if wallets == nil {
		wallets = []*entities.Wallet{}
	}

	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// AddWallet adds a read-only wallet by address, without a signature
// POST /api/v1/wallets
func (h *WalletHandler) AddWallet(c *gin.Context) {
	var input entities.AddWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	scope, ok := parseScope(input.Scope)
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid wallet scope"))
		return
	}
	profileID, ok2 := h.resolveProfileForScope(c, scope)
	if !ok2 {
		return
	}

	wallet, err := h.wallets.AddWallet(c.Request.Context(), profileID, scope, &input)
	if err != nil {
		if errors.Is(err, domainerrors.ErrWalletExists) {
			response.Error(c, domainerrors.NewAppError(http.StatusConflict,
				domainerrors.CodeWalletExists, "Wallet already linked to this account", err))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Wallet added",
		"wallet":  wallet,
	})
}

// UpdateLabel renames a wallet
// PUT /api/v1/wallets/:id/label
func (h *WalletHandler) UpdateLabel(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid wallet ID"))
		return
	}

	var input struct {
		Label string `json:"label" binding:"required,max=100"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profileID, scope, ok := h.resolveProfile(c)
	if !ok {
		return
	}

	if err := h.wallets.UpdateLabel(c.Request.Context(), profileID, scope, walletID, input.Label); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Wallet label updated"})
}

// SetPrimary makes a wallet the profile's primary wallet
// PUT /api/v1/wallets/:id/primary
func (h *WalletHandler) SetPrimary(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid wallet ID"))
		return
	}

	profileID, scope, ok := h.resolveProfile(c)
	if !ok {
		return
	}

	if err := h.wallets.SetPrimary(c.Request.Context(), profileID, scope, walletID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Primary wallet updated"})
}

// Disconnect removes a wallet from the profile
// DELETE /api/v1/wallets/:id
func (h *WalletHandler) Disconnect(c *gin.Context) {
	walletID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid wallet ID"))
		return
	}

	profileID, scope, ok := h.resolveProfile(c)
	if !ok {
		return
	}

	if err := h.wallets.Disconnect(c.Request.Context(), profileID, scope, walletID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			response.Error(c, domainerrors.NotFound("Wallet not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Wallet disconnected"})
}

// Migrate moves the caller's visitor wallets into their account
// POST /api/v1/wallets/migrate
func (h *WalletHandler) Migrate(c *gin.Context) {
	visitorID := c.GetHeader(VisitorIDHeader)
	if visitorID == "" {
		response.Error(c, domainerrors.BadRequest("Header "+VisitorIDHeader+" is required"))
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}
	scope, ok := parseScope(c.Query("scope"))
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid wallet scope"))
		return
	}

	result, err := h.migrator.MigrateVisitor(c.Request.Context(), visitorID, userID, scope)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, result)
}

// resolveProfile resolves the caller's profile for the scope in the query
// string (public when absent)
func (h *WalletHandler) resolveProfile(c *gin.Context) (uuid.UUID, entities.WalletScope, bool) {
	scope, ok := parseScope(c.Query("scope"))
	if !ok {
		response.Error(c, domainerrors.BadRequest("Invalid wallet scope"))
		return uuid.Nil, "", false
	}
	profileID, ok := h.resolveProfileForScope(c, scope)
	return profileID, scope, ok
}

func (h *WalletHandler) resolveProfileForScope(c *gin.Context, scope entities.WalletScope) (uuid.UUID, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return uuid.Nil, false
	}

	profile, err := h.profiles.EnsureProfile(c.Request.Context(), userID, scope)
	if err != nil {
		response.Error(c, domainerrors.NewAppError(http.StatusInternalServerError,
			domainerrors.CodeProfileError, "Failed to resolve user profile", err))
		return uuid.Nil, false
	}
	return profile.ID, true
}

func parseScope(raw string) (entities.WalletScope, bool) {
	if raw == "" {
		return entities.ScopePublic, true
	}
	scope := entities.WalletScope(raw)
	return scope, scope.Valid()
}
