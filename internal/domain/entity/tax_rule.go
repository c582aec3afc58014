package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// TaxRule is a configurable percentage charge applied to every transaction.
// Rate is a fraction (0.075 for 7.5%). Rules of the same property are applied
// in Position order; rates are summed over a common base, never compounded.
type TaxRule struct {
	ID               uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"property_id"`
	Name             string         `gorm:"size:100;not null" json:"name"`
	Rate             float64        `gorm:"not null" json:"rate"`
	Kind             enum.TaxKind   `gorm:"default:0" json:"kind"`
	VisibleOnReceipt bool           `gorm:"default:true" json:"visible_on_receipt"`
	Position         int            `gorm:"default:0" json:"position"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax rule
func (t *TaxRule) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TaxRule model
func (TaxRule) TableName() string {
	return "tax_rules"
}
