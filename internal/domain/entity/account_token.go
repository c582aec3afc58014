package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token purposes
const (
	TokenPurposePasswordReset = "password_reset"
	TokenPurposeVerifyEmail   = "verify_email"
)

// AccountToken represents a single-use token sent by email, used for both
// password resets and email verification.
type AccountToken struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"size:255;not null;index" json:"email"`
	Token     string    `gorm:"size:255;not null;uniqueIndex" json:"token"`
	Purpose   string    `gorm:"size:50;not null;default:'password_reset'" json:"purpose"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new token
func (t *AccountToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the AccountToken model
func (AccountToken) TableName() string {
	return "account_tokens"
}

// IsExpired checks if the token has expired
func (t *AccountToken) IsExpired() bool {
	return time.Now().After(t.ExpiresAt)
}

// IsValid checks if the token is valid (not expired and not used)
func (t *AccountToken) IsValid() bool {
	return !t.IsExpired() && !t.Used
}
