// Package model holds the persistence representations shared by the storage drivers.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are generated by the application (UUIDv7).
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Username     string    `gorm:"type:varchar(64);not null;uniqueIndex:idx_accounts_username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// Unique index names, used to tell which field a duplicate-key error refers to.
const (
	AccountUsernameIndex = "idx_accounts_username"
	AccountEmailIndex    = "idx_accounts_email"
)
