package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"gorm.io/gorm"
)

// Transaction is the persisted unit of revenue: a walk-in POS sale, a room
// folio, or a proforma invoice. Financial fields are a snapshot computed from
// the current line items, discount and tax configuration; they are never
// edited directly. PaidAmount only grows through appended payment records.
type Transaction struct {
	ID         uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID uuid.UUID            `gorm:"type:uuid;not null;index" json:"property_id"`
	UnitID     *uuid.UUID           `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	UserID     uuid.UUID            `gorm:"type:uuid;not null;index" json:"user_id"`
	GuestID    *uuid.UUID           `gorm:"type:uuid;index" json:"guest_id,omitempty"`
	Type       enum.TransactionType `gorm:"default:0;index" json:"type"`
	Reference  string               `gorm:"size:100;unique;not null" json:"reference"`

	// Guest snapshot, editable on amendment without touching financials
	GuestName  string  `gorm:"size:255" json:"guest_name"`
	GuestPhone *string `gorm:"size:50" json:"guest_phone,omitempty"`
	GuestEmail *string `gorm:"size:255" json:"guest_email,omitempty"`

	// Stay period, set for folios and proformas covering lodging
	StayStart *time.Time `gorm:"type:date" json:"stay_start,omitempty"`
	StayEnd   *time.Time `gorm:"type:date" json:"stay_end,omitempty"`

	// Financial snapshot, recomputed from lines + discount on every write
	Discount      float64               `gorm:"default:0" json:"discount"`
	GrossSubtotal float64               `gorm:"default:0" json:"gross_subtotal"`
	BaseValue     float64               `gorm:"default:0" json:"base_value"`
	TotalAmount   float64               `gorm:"default:0" json:"total_amount"`
	PaidAmount    float64               `gorm:"default:0" json:"paid_amount"`
	Balance       float64               `gorm:"default:0" json:"balance"`
	PricingMode   enum.PricingMode      `gorm:"default:0" json:"pricing_mode"`
	Status        enum.SettlementStatus `gorm:"default:0;index" json:"status"`

	Notes     *string        `gorm:"type:text" json:"notes,omitempty"`
	VoidedAt  *time.Time     `gorm:"index" json:"voided_at,omitempty"`
	IssuedAt  time.Time      `gorm:"not null" json:"issued_at"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Property Property          `gorm:"foreignKey:PropertyID" json:"-"`
	Unit     *Unit             `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	User     User              `gorm:"foreignKey:UserID" json:"-"`
	Guest    *Guest            `gorm:"foreignKey:GuestID" json:"guest,omitempty"`
	Lines    []TransactionLine `gorm:"foreignKey:TransactionID" json:"lines,omitempty"`
	Taxes    []TransactionTax  `gorm:"foreignKey:TransactionID" json:"taxes,omitempty"`
	Payments []PaymentRecord   `gorm:"foreignKey:TransactionID" json:"payments,omitempty"`
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Transaction model
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionLine is a charge line on a transaction. LineTotal always equals
// Quantity * UnitPrice at the time the line is persisted.
type TransactionLine struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID      `gorm:"type:uuid;not null;index" json:"transaction_id"`
	RoomID        *uuid.UUID     `gorm:"type:uuid;index" json:"room_id,omitempty"`
	MenuItemID    *uuid.UUID     `gorm:"type:uuid;index" json:"menu_item_id,omitempty"`
	Description   string         `gorm:"size:255;not null" json:"description"`
	Quantity      int            `gorm:"not null" json:"quantity"`
	UnitPrice     float64        `gorm:"not null" json:"unit_price"`
	LineTotal     float64        `gorm:"not null" json:"line_total"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
	Room        *Room       `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	MenuItem    *MenuItem   `gorm:"foreignKey:MenuItemID" json:"menu_item,omitempty"`
}

// BeforeCreate generates a UUID before creating a new line
func (l *TransactionLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionLine model
func (TransactionLine) TableName() string {
	return "transaction_lines"
}

// TransactionTax is the per-rule tax amount captured when the transaction's
// financials were last computed. Rule name, rate and kind are snapshotted so
// later admin edits to the rule do not rewrite history.
type TransactionTax struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID    uuid.UUID    `gorm:"type:uuid;not null;index" json:"transaction_id"`
	TaxRuleID        uuid.UUID    `gorm:"type:uuid;index" json:"tax_rule_id"`
	Name             string       `gorm:"size:100;not null" json:"name"`
	Rate             float64      `gorm:"not null" json:"rate"`
	Kind             enum.TaxKind `gorm:"default:0" json:"kind"`
	Amount           float64      `gorm:"not null" json:"amount"`
	VisibleOnReceipt bool         `gorm:"default:true" json:"visible_on_receipt"`
	Position         int          `gorm:"default:0" json:"position"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new tax snapshot row
func (t *TransactionTax) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the TransactionTax model
func (TransactionTax) TableName() string {
	return "transaction_taxes"
}

// PaymentRecord is an append-only settlement entry. Records are never mutated
// or deleted; corrections are made by appending compensating entries.
type PaymentRecord struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	TransactionID uuid.UUID          `gorm:"type:uuid;not null;index" json:"transaction_id"`
	Method        enum.PaymentMethod `gorm:"default:1" json:"method"`
	Amount        float64            `gorm:"not null" json:"amount"`
	PaidAt        time.Time          `gorm:"not null" json:"paid_at"`
	RecordedByID  uuid.UUID          `gorm:"type:uuid" json:"recorded_by_id"`
	CreatedAt     time.Time          `json:"created_at"`

	// Relationships
	Transaction Transaction `gorm:"foreignKey:TransactionID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new payment record
func (p *PaymentRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the PaymentRecord model
func (PaymentRecord) TableName() string {
	return "payment_records"
}
