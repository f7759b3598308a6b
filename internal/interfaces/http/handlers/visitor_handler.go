package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"shieldnest.backend/internal/domain/entities"
	domainerrors "shieldnest.backend/internal/domain/errors"
	"shieldnest.backend/internal/domain/repositories"
	"shieldnest.backend/internal/interfaces/http/response"
)

// VisitorIDHeader carries the client-generated visitor identity for
// unauthenticated wallet storage and migration.
const VisitorIDHeader = "X-Visitor-ID"

// VisitorHandler exposes the visitor wallet store: unauthenticated wallet
// entries kept server-side until the visitor upgrades to an account.
type VisitorHandler struct {
	store repositories.VisitorWalletStore
}

// NewVisitorHandler creates a new visitor handler
func NewVisitorHandler(store repositories.VisitorWalletStore) *VisitorHandler {
	return &VisitorHandler{store: store}
}

// ListWallets lists the visitor's wallet entries
// GET /api/v1/visitor/wallets
func (h *VisitorHandler) ListWallets(c *gin.Context) {
	visitorID, ok := visitorID(c)
	if !ok {
		return
	}

	wallets, err := h.store.List(c.Request.Context(), visitorID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if wallets == nil {
		wallets = []entities.VisitorWallet{}
	}

	response.Success(c, http.StatusOK, gin.H{"wallets": wallets})
}

// AddWallet appends a wallet entry for the visitor
// POST /api/v1/visitor/wallets
func (h *VisitorHandler) AddWallet(c *gin.Context) {
	visitorID, ok := visitorID(c)
	if !ok {
		return
	}

	var input struct {
		Address  string `json:"address" binding:"required"`
		Label    string `json:"label"`
		ChainID  string `json:"chainId"`
		Provider string `json:"provider"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	entry := entities.VisitorWallet{
		Address:  input.Address,
		Label:    input.Label,
		ChainID:  input.ChainID,
		Provider: input.Provider,
	}
	if err := h.store.Add(c.Request.Context(), visitorID, entry); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"message": "Wallet saved"})
}

// RemoveWallet deletes a visitor wallet entry by address
// DELETE /api/v1/visitor/wallets/:address
func (h *VisitorHandler) RemoveWallet(c *gin.Context) {
	visitorID, ok := visitorID(c)
	if !ok {
		return
	}

	address := c.Param("address")
	if address == "" {
		response.Error(c, domainerrors.BadRequest("Wallet address is required"))
		return
	}

	if err := h.store.Remove(c.Request.Context(), visitorID, address); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Wallet removed"})
}

func visitorID(c *gin.Context) (string, bool) {
	id := c.GetHeader(VisitorIDHeader)
	if id == "" {
		response.Error(c, domainerrors.BadRequest("Header "+VisitorIDHeader+" is required"))
		return "", false
	}
	return id, true
}
