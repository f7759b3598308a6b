package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// Nonce represents a single-use wallet authentication challenge.
// A nonce transitions used=false -> used=true exactly once, and only before
// ExpiresAt for the address it was issued to.
type Nonce struct {
	Token     string    `json:"nonce"`
	Address   string    `json:"address"`
	ExpiresAt time.Time `json:"expiresAt"`
	Used      bool      `json:"used"`
	UsedAt    null.Time `json:"usedAt,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// IssueNonceResult is returned from nonce issuance
type IssueNonceResult struct {
	Nonce     string    `json:"nonce"`
	ExpiresAt time.Time `json:"expiresAt"`
}
