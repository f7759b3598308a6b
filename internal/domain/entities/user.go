package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// User represents an auth account. Anonymous accounts are created as a side
// effect of a first-time wallet link (wallet bootstrap).
type User struct {
	ID               uuid.UUID   `json:"id"`
	Email            null.String `json:"email,omitempty"`
	Name             string      `json:"name"`
	PasswordHash     string      `json:"-"`
	IsAnonymous      bool        `json:"isAnonymous"`
	WalletBootstrap  bool        `json:"walletBootstrap"`
	BootstrapAddress null.String `json:"bootstrapAddress,omitempty"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Profile maps an auth account to a per-scope user profile. Wallets hang off
// the profile, not the auth account.
type Profile struct {
	ID         uuid.UUID   `json:"id"`
	AuthUserID uuid.UUID   `json:"authUserId"`
	Scope      WalletScope `json:"scope"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Session is the tri-state identity read consumed by identity resolution:
// no session, or an authenticated auth-account ID. Profile resolution happens
// inside the flow.
type Session struct {
	Authenticated bool
	UserID        uuid.UUID
}

// RegisterInput represents input for email/password sign-up
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         *User  `json:"user"`
}
