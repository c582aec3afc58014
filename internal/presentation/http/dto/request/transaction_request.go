package request

import (
	"time"

	"github.com/google/uuid"
)

// CartItemRequest is one menu item row in a checkout or folio cart
type CartItemRequest struct {
	MenuItemID uuid.UUID `json:"menu_item_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1"`
}

// ChargeLineRequest is a free-form charge row
type ChargeLineRequest struct {
	Description string  `json:"description" binding:"required"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price" binding:"required"`
}

// PaymentRequest is one tender row
type PaymentRequest struct {
	Method int     `json:"method"`
	Amount float64 `json:"amount" binding:"required"`
}

// CheckoutRequest represents a walk-in POS sale
type CheckoutRequest struct {
	UnitID    *uuid.UUID          `json:"unit_id"`
	GuestName string              `json:"guest_name"`
	Items     []CartItemRequest   `json:"items"`
	Charges   []ChargeLineRequest `json:"charges"`
	Discount  float64             `json:"discount"`
	Payments  []PaymentRequest    `json:"payments"`
	Notes     *string             `json:"notes"`
}

// CreateFolioRequest represents a room folio or proforma invoice
type CreateFolioRequest struct {
	UnitID     *uuid.UUID          `json:"unit_id"`
	GuestID    *uuid.UUID          `json:"guest_id"`
	GuestName  string              `json:"guest_name"`
	GuestPhone *string             `json:"guest_phone"`
	GuestEmail *string             `json:"guest_email"`
	StayStart  time.Time           `json:"stay_start" binding:"required"`
	StayEnd    time.Time           `json:"stay_end" binding:"required"`
	RoomIDs    []uuid.UUID         `json:"room_ids"`
	Items      []CartItemRequest   `json:"items"`
	Charges    []ChargeLineRequest `json:"charges"`
	Discount   float64             `json:"discount"`
	Payments   []PaymentRequest    `json:"payments"`
	Notes      *string             `json:"notes"`
}

// SettleRequest represents a payment batch against an existing transaction
type SettleRequest struct {
	Payments []PaymentRequest `json:"payments" binding:"required,min=1"`
}

// AmendRequest represents an amendment to an open folio or proforma
type AmendRequest struct {
	GuestName  *string             `json:"guest_name"`
	GuestPhone *string             `json:"guest_phone"`
	GuestEmail *string             `json:"guest_email"`
	StayStart  *time.Time          `json:"stay_start"`
	StayEnd    *time.Time          `json:"stay_end"`
	Notes      *string             `json:"notes"`
	Discount   *float64            `json:"discount"`
	AddItems   []CartItemRequest   `json:"add_items"`
	AddCharges []ChargeLineRequest `json:"add_charges"`
}
