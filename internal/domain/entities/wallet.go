package entities

import (
	"time"

	"github.com/google/uuid"
)

// WalletScope identifies which account tier owns a wallet
type WalletScope string

const (
	ScopePublic  WalletScope = "public"
	ScopePrivate WalletScope = "private"
)

// Valid reports whether the scope is one of the known tiers
func (s WalletScope) Valid() bool {
	return s == ScopePublic || s == ScopePrivate
}

// Wallet represents a linked wallet. (Address, UserID, UserScope) is unique;
// the same address may be claimed by different accounts.
type Wallet struct {
	ID        uuid.UUID   `json:"id"`
	UserID    uuid.UUID   `json:"userId"`
	UserScope WalletScope `json:"userScope"`
	ChainID   string      `json:"chainId"`
	Address   string      `json:"address"`
	Label     string      `json:"label"`
	Provider  string      `json:"provider,omitempty"`
	ReadOnly  bool        `json:"readOnly"`
	IsPrimary bool        `json:"isPrimary"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// VerifyWalletInput is the request body for the wallet verify/link endpoint
type VerifyWalletInput struct {
	Address   string `json:"address" binding:"required"`
	PublicKey string `json:"publicKey" binding:"required"`
	Signature string `json:"signature" binding:"required"`
	Nonce     string `json:"nonce" binding:"required"`
	Provider  string `json:"provider"`
}

// VerifyWalletResult is returned from the wallet verify/link flow
type VerifyWalletResult struct {
	Linked          bool      `json:"linked"`
	UserID          uuid.UUID `json:"userId"`
	Verified        bool      `json:"verified"`
	WalletBootstrap bool      `json:"walletBootstrap,omitempty"`
	AlreadyLinked   bool      `json:"-"`
	Message         string    `json:"message"`
	AccessToken     string    `json:"accessToken,omitempty"`
	RefreshToken    string    `json:"refreshToken,omitempty"`
}

// AddWalletInput is the request body for adding a read-only wallet by address
type AddWalletInput struct {
	Address  string `json:"address" binding:"required"`
	Label    string `json:"label"`
	ChainID  string `json:"chainId"`
	Provider string `json:"provider"`
	Scope    string `json:"scope"`
}

// LinkWalletOptions controls how a wallet row is created
type LinkWalletOptions struct {
	ChainID   string
	Label     string
	Provider  string
	ReadOnly  bool
	CreatedAt time.Time // zero means now; migration preserves the entry's added_at
}
