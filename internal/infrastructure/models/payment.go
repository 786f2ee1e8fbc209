package models

import (
	"time"

	"github.com/google/uuid"
)

// Payment is the persistence model for verification records. One row per
// transaction hash; the download token has its own unique index for token
// resolution.
type Payment struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransactionHash       string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	FromAddress           string    `gorm:"type:varchar(255);not null"`
	ToAddress             string    `gorm:"type:varchar(255);not null"`
	AmountWei             string    `gorm:"type:varchar(100);not null;default:'0'"` // BigInt
	AmountETH             string    `gorm:"type:decimal(36,18);not null;default:'0'"`
	Network               string    `gorm:"type:varchar(100)"`
	Status                string    `gorm:"type:varchar(50);not null;index"`
	Confirmations         uint64    `gorm:"not null;default:0"`
	RequiredConfirmations uint64    `gorm:"not null"`
	DownloadToken         *string   `gorm:"type:varchar(255);uniqueIndex"`
	DownloadExpiresAt     *time.Time
	VerifiedAt            *time.Time
	CreatedAt             time.Time
	UpdatedAt             time.Time
}
