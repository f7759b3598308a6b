package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email            *string   `gorm:"type:varchar(255);uniqueIndex"`
	Name             string    `gorm:"type:varchar(100)"`
	PasswordHash     string    `gorm:"type:varchar(255)"`
	IsAnonymous      bool      `gorm:"not null;default:false"`
	WalletBootstrap  bool      `gorm:"not null;default:false"`
	BootstrapAddress *string   `gorm:"type:varchar(128)"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type UserProfile struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AuthUserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_profile_auth_scope"`
	Scope      string    `gorm:"type:varchar(16);not null;uniqueIndex:idx_profile_auth_scope"`
	CreatedAt  time.Time
}
