package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MenuItem represents a stock-tracked food/beverage/incidental item.
// Sold is a counter incremented atomically with the transaction write;
// remaining stock is derived, never stored.
type MenuItem struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"property_id"`
	UnitID       *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Name         string         `gorm:"size:255;not null" json:"name"`
	Category     string         `gorm:"size:100" json:"category"`
	MeasureUnit  string         `gorm:"size:50" json:"measure_unit"`
	Price        float64        `gorm:"default:0" json:"price"`
	InitialStock int            `gorm:"default:0" json:"initial_stock"`
	Sold         int            `gorm:"default:0" json:"sold"`
	StockAlert   int            `gorm:"default:0" json:"stock_alert"`
	Tracked      bool           `gorm:"default:true" json:"tracked"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
	Unit     *Unit    `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new menu item
func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MenuItem model
func (MenuItem) TableName() string {
	return "menu_items"
}

// Remaining returns the stock left after sales
func (m *MenuItem) Remaining() int {
	return m.InitialStock - m.Sold
}

// Revenue returns sold quantity times unit price
func (m *MenuItem) Revenue() float64 {
	return float64(m.Sold) * m.Price
}
