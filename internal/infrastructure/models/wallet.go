package models

import (
	"time"

	"github.com/google/uuid"
)

type Wallet struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_wallet_owner_address"`
	UserScope string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_wallet_owner_address"`
	ChainID   string    `gorm:"type:varchar(64);not null"`
	Address   string    `gorm:"type:varchar(128);not null;uniqueIndex:idx_wallet_owner_address"`
	Label     string    `gorm:"type:varchar(100)"`
	Provider  string    `gorm:"type:varchar(32)"`
	ReadOnly  bool      `gorm:"not null;default:true"`
	IsPrimary bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
