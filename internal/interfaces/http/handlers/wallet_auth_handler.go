package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/interfaces/http/middleware"
	"shieldnest.backend/internal/interfaces/http/response"
	"shieldnest.backend/internal/usecases"
)

type walletAuthService interface {
	IssueNonce(ctx context.Context, address string) (*entities.IssueNonceResult, error)
	SignDoc(address, nonce string) string
	VerifyWallet(ctx context.Context, session entities.Session, input *entities.VerifyWalletInput) (*entities.VerifyWalletResult, error)
}

// WalletAuthHandler handles the wallet challenge/response auth endpoints
type WalletAuthHandler struct {
	walletAuth walletAuthService
}

// NewWalletAuthHandler creates a new wallet auth handler
func NewWalletAuthHandler(walletAuth *usecases.WalletAuthUsecase) *WalletAuthHandler {
	return &WalletAuthHandler{walletAuth: walletAuth}
}

// GetNonce issues a single-use signing challenge for a wallet address
// GET /api/v1/auth/wallet/nonce?address=...
func (h *WalletAuthHandler) GetNonce(c *gin.Context) {
	address := c.Query("address")
	if address == "" {
		response.Error(c, domainerrors.BadRequest("Query parameter 'address' is required"))
		return
	}

	result, err := h.walletAuth.IssueNonce(c.Request.Context(), address)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"nonce":     result.Nonce,
		"expiresAt": result.ExpiresAt,
		"signDoc":   h.walletAuth.SignDoc(address, result.Nonce),
	})
}

// VerifyWallet verifies a signed challenge and links the wallet, creating an
// anonymous account first when the caller has no session
// POST /api/v1/auth/wallet/verify
func (h *WalletAuthHandler) VerifyWallet(c *gin.Context) {
	var input entities.VerifyWalletInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	session := middleware.GetSession(c)
	result, err := h.walletAuth.VerifyWallet(c.Request.Context(), session, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if result.WalletBootstrap {
		status = http.StatusCreated
	}
	response.Success(c, status, result)
}
