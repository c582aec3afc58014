package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Guest represents a guest directory record reusable across stays
type Guest struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"property_id"`
	UserID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Email      *string        `gorm:"size:255" json:"email,omitempty"`
	Phone      *string        `gorm:"size:50" json:"phone,omitempty"`
	Address    *string        `gorm:"type:text" json:"address,omitempty"`
	Company    *string        `gorm:"size:255" json:"company,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Property     Property      `gorm:"foreignKey:PropertyID" json:"-"`
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:GuestID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new guest
func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Guest model
func (Guest) TableName() string {
	return "guests"
}
