package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Room represents a sellable room with a booked-count inventory counter.
// Booked is only ever changed through atomic increments alongside the
// transaction write that references the room.
type Room struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	PropertyID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"property_id"`
	UnitID      *uuid.UUID     `gorm:"type:uuid;index" json:"unit_id,omitempty"`
	Number      string         `gorm:"size:50;not null" json:"number"`
	RoomType    string         `gorm:"size:100;not null" json:"room_type"`
	NightlyRate float64        `gorm:"default:0" json:"nightly_rate"`
	Capacity    int            `gorm:"default:2" json:"capacity"`
	Booked      int            `gorm:"default:0" json:"booked"`
	Active      bool           `gorm:"default:true" json:"active"`
	Notes       *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
	Unit     *Unit    `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
}

// BeforeCreate generates a UUID before creating a new room
func (r *Room) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Room model
func (Room) TableName() string {
	return "rooms"
}
