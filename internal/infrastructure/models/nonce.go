package models

import "time"

// WalletNonce is a single-use wallet authentication challenge row. Rows are
// never deleted by the auth flow; cleanup is a maintenance concern.
type WalletNonce struct {
	Token     string     `gorm:"type:varchar(64);primaryKey"`
	Address   string     `gorm:"type:varchar(128);not null;index"`
	ExpiresAt time.Time  `gorm:"not null"`
	Used      bool       `gorm:"not null;default:false"`
	UsedAt    *time.Time `gorm:"type:timestamp"`
	CreatedAt time.Time
}

func (WalletNonce) TableName() string {
	return "wallet_nonces"
}
