package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// InventoryEffect describes the counter bumps that must land in the same
// database transaction as the revenue write. Keys are room / menu item IDs.
type InventoryEffect struct {
	RoomBookings map[uuid.UUID]int
	ItemsSold    map[uuid.UUID]int
}

// Empty reports whether the effect carries no counter changes.
func (e InventoryEffect) Empty() bool {
	return len(e.RoomBookings) == 0 && len(e.ItemsSold) == 0
}

// TransactionRepository defines the interface for transaction data operations
type TransactionRepository interface {
	// CreateWithInventory persists the transaction (with its lines, taxes and
	// initial payments) and applies the inventory effect atomically. Either
	// everything lands or nothing does.
	CreateWithInventory(ctx context.Context, txn *entity.Transaction, effect InventoryEffect) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	GetByReference(ctx context.Context, reference string) (*entity.Transaction, error)
	GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error)
	List(ctx context.Context, params *TransactionFilterParams) ([]entity.Transaction, int64, error)
	ListWithCursor(ctx context.Context, params *TransactionCursorFilterParams) ([]entity.Transaction, error)
	// Settle appends a payment batch under a row lock, recomputing paid,
	// balance and status inside the same database transaction.
	Settle(ctx context.Context, id uuid.UUID, payments []entity.PaymentRecord, recompute SettleFunc) (*entity.Transaction, error)
	// Amend replaces the mutable head fields, appends new lines and applies
	// the inventory effect the callback returns, all inside one database
	// transaction. An effect that would oversell a tracked item rolls the
	// whole amendment back.
	Amend(ctx context.Context, id uuid.UUID, apply AmendFunc) (*entity.Transaction, error)
	UpdateGuestDetails(ctx context.Context, id uuid.UUID, name string, phone, email *string) error
	// Void stamps the document cancelled. The row stays in place, keeps its
	// reference, and still shows up in listings.
	Void(ctx context.Context, id uuid.UUID, at time.Time) error
	// CountForDay returns how many transactions of a type were issued on the
	// reference date, used for sequential reference numbers.
	CountForDay(ctx context.Context, propertyID uuid.UUID, txnType enum.TransactionType, day time.Time) (int64, error)
}

// SettleFunc recomputes the ledger position from the locked row. It returns
// the new paid amount, balance and status, or an error to abort the batch.
type SettleFunc func(txn *entity.Transaction, payments []entity.PaymentRecord) (paid, balance float64, status enum.SettlementStatus, err error)

// AmendFunc mutates the locked transaction in place: edit head fields, append
// lines, replace tax snapshot rows, and set the new financial snapshot. The
// returned effect carries the counter bumps for newly added item lines.
// Returning an error aborts the amendment.
type AmendFunc func(txn *entity.Transaction) (newLines []entity.TransactionLine, newTaxes []entity.TransactionTax, effect InventoryEffect, err error)

// TransactionFilterParams contains filtering parameters for transaction queries
type TransactionFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Type       *enum.TransactionType
	Status     *enum.SettlementStatus
	UnitID     *uuid.UUID
	GuestID    *uuid.UUID
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}

// TransactionCursorFilterParams contains cursor-based filtering for transaction queries
type TransactionCursorFilterParams struct {
	Cursor    *pagination.CursorParams
	Search    string
	Type      *enum.TransactionType
	Status    *enum.SettlementStatus
	UnitID    *uuid.UUID
	StartDate *time.Time
	EndDate   *time.Time
}
