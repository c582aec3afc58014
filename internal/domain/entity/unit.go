package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Unit represents a revenue center within the property, e.g. a restaurant,
// bar or the lodging desk. Bank accounts attach to units and are printed as
// settlement instructions on folios and proformas.
type Unit struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID uuid.UUID      `gorm:"type:uuid;not null;index" json:"property_id"`
	Name       string         `gorm:"size:255;not null" json:"name"`
	Slug       string         `gorm:"size:255;unique;not null" json:"slug"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Property     Property      `gorm:"foreignKey:PropertyID" json:"-"`
	BankAccounts []BankAccount `gorm:"foreignKey:UnitID" json:"bank_accounts,omitempty"`
}

// BeforeCreate generates a UUID before creating a new unit
func (u *Unit) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}

// BankAccount represents a settlement account for a unit
type BankAccount struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	UnitID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"unit_id"`
	BankName      string         `gorm:"size:255;not null" json:"bank_name"`
	AccountName   string         `gorm:"size:255;not null" json:"account_name"`
	AccountNumber string         `gorm:"size:100;not null" json:"account_number"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Unit Unit `gorm:"foreignKey:UnitID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new bank account
func (b *BankAccount) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BankAccount model
func (BankAccount) TableName() string {
	return "bank_accounts"
}
