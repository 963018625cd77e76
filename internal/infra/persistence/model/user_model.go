package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via uuid_generate_v7().
// Username and email carry unique indexes; the service's duplicate pre-check
// is best effort and these constraints are the source of truth.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(100);unique;not null"`
	Email        string    `gorm:"type:varchar(255);unique;not null"`
	FullName     string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`

	EmailVerified           bool    `gorm:"not null;default:false"`
	VerificationTokenHash   *string `gorm:"type:varchar(64);index"`
	VerificationTokenExpiry *time.Time

	PasswordResetTokenHash   *string `gorm:"type:varchar(64);index"`
	PasswordResetTokenExpiry *time.Time

	RefreshTokenHash *string `gorm:"type:varchar(64)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
