package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

var (
	// ErrInsufficientStock aborts a checkout whose cart exceeds remaining stock
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrTransactionNotFound is returned by locked reads inside write paths
	ErrTransactionNotFound = errors.New("transaction not found")
)

const settleRetries = 3

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB) domainRepo.TransactionRepository {
	return &transactionRepository{db: db}
}

// CreateWithInventory writes the transaction and bumps inventory counters in
// one database transaction. A cart line that would oversell a tracked item
// rolls everything back, including the transaction row itself.
func (r *transactionRepository) CreateWithInventory(ctx context.Context, txn *entity.Transaction, effect domainRepo.InventoryEffect) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(txn).Error; err != nil {
			return err
		}
		return applyInventoryEffect(tx, effect)
	})
}

// applyInventoryEffect bumps the room and stock counters inside the caller's
// database transaction. Tracked items are guarded against overselling.
func applyInventoryEffect(tx *gorm.DB, effect domainRepo.InventoryEffect) error {
	for roomID, nights := range effect.RoomBookings {
		if err := tx.Model(&entity.Room{}).
			Where("id = ?", roomID).
			Update("booked", gorm.Expr("booked + ?", nights)).Error; err != nil {
			return err
		}
	}

	for itemID, qty := range effect.ItemsSold {
		result := tx.Model(&entity.MenuItem{}).
			Where("id = ? AND (tracked = false OR initial_stock - sold >= ?)", itemID, qty).
			Update("sold", gorm.Expr("sold + ?", qty))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: item %s", ErrInsufficientStock, itemID)
		}
	}

	return nil
}

func (r *transactionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&txn, "reference = ?", reference).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	var txn entity.Transaction
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Lines.Room").
		Preload("Lines.MenuItem").
		Preload("Taxes", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("paid_at ASC") }).
		Preload("Unit.BankAccounts").
		Preload("User").
		Preload("Guest").
		First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *transactionRepository) List(ctx context.Context, params *domainRepo.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	var txns []entity.Transaction
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&entity.Transaction{}).Scopes(PropertyScope(ctx)),
		params.Search, params.Type, params.Status, params.UnitID, params.StartDate, params.EndDate)

	if params.GuestID != nil {
		query = query.Where("guest_id = ?", *params.GuestID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "issued_at"
	sortOrder := "DESC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "ASC" || params.SortOrder == "asc" {
		sortOrder = "ASC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Preload("Unit").
		Order(sortBy + " " + sortOrder).
		Find(&txns).Error

	return txns, total, err
}

// ListWithCursor returns transactions using cursor-based pagination
func (r *transactionRepository) ListWithCursor(ctx context.Context, params *domainRepo.TransactionCursorFilterParams) ([]entity.Transaction, error) {
	var txns []entity.Transaction

	params.Cursor.Validate()
	query := r.applyFilters(r.db.WithContext(ctx).Model(&entity.Transaction{}).Scopes(PropertyScope(ctx)),
		params.Search, params.Type, params.Status, params.UnitID, params.StartDate, params.EndDate)

	cursor, err := params.Cursor.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Cursor.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Cursor.Limit + 1).
		Preload("Unit").
		Order("created_at ASC, id ASC").
		Find(&txns).Error

	return txns, err
}

func (r *transactionRepository) applyFilters(query *gorm.DB, search string, txnType *enum.TransactionType, status *enum.SettlementStatus, unitID *uuid.UUID, startDate, endDate *time.Time) *gorm.DB {
	if search != "" {
		query = query.Where("reference ILIKE ? OR guest_name ILIKE ?",
			"%"+search+"%", "%"+search+"%")
	}
	if txnType != nil {
		query = query.Where("type = ?", *txnType)
	}
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if unitID != nil {
		query = query.Where("unit_id = ?", *unitID)
	}
	if startDate != nil {
		query = query.Where("issued_at >= ?", *startDate)
	}
	if endDate != nil {
		query = query.Where("issued_at <= ?", *endDate)
	}
	return query
}

// Settle appends a payment batch under a row lock. The recompute callback
// sees the freshest row, so two cashiers settling the same folio serialize:
// the second batch validates against the balance left by the first.
func (r *transactionRepository) Settle(ctx context.Context, id uuid.UUID, payments []entity.PaymentRecord, recompute domainRepo.SettleFunc) (*entity.Transaction, error) {
	var out *entity.Transaction

	err := withRetry(settleRetries, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txn entity.Transaction
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Scopes(PropertyScope(ctx)).
				First(&txn, "id = ?", id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			if err != nil {
				return err
			}

			paid, balance, status, err := recompute(&txn, payments)
			if err != nil {
				return err
			}

			for i := range payments {
				payments[i].TransactionID = txn.ID
			}
			if len(payments) > 0 {
				if err := tx.Create(&payments).Error; err != nil {
					return err
				}
			}

			updates := map[string]interface{}{
				"paid_amount": paid,
				"balance":     balance,
				"status":      status,
			}
			if err := tx.Model(&txn).Updates(updates).Error; err != nil {
				return err
			}

			txn.PaidAmount = paid
			txn.Balance = balance
			txn.Status = status
			out = &txn
			return nil
		})
	})

	return out, err
}

// Amend locks the row, hands it to the callback, then persists the new lines,
// the replaced tax snapshot, the counter bumps and the recomputed head in one
// transaction.
func (r *transactionRepository) Amend(ctx context.Context, id uuid.UUID, apply domainRepo.AmendFunc) (*entity.Transaction, error) {
	var out *entity.Transaction

	err := withRetry(settleRetries, func() error {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			var txn entity.Transaction
			err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Scopes(PropertyScope(ctx)).
				Preload("Lines").
				Preload("Taxes", func(db *gorm.DB) *gorm.DB {
					return db.Order("position ASC")
				}).
				First(&txn, "id = ?", id).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTransactionNotFound
			}
			if err != nil {
				return err
			}

			newLines, newTaxes, effect, err := apply(&txn)
			if err != nil {
				return err
			}

			if err := applyInventoryEffect(tx, effect); err != nil {
				return err
			}

			if len(newLines) > 0 {
				for i := range newLines {
					newLines[i].TransactionID = txn.ID
				}
				if err := tx.Create(&newLines).Error; err != nil {
					return err
				}
			}

			// The tax snapshot is derived state: replace it wholesale
			if err := tx.Where("transaction_id = ?", txn.ID).
				Delete(&entity.TransactionTax{}).Error; err != nil {
				return err
			}
			if len(newTaxes) > 0 {
				for i := range newTaxes {
					newTaxes[i].TransactionID = txn.ID
				}
				if err := tx.Create(&newTaxes).Error; err != nil {
					return err
				}
			}

			if err := tx.Model(&entity.Transaction{}).Where("id = ?", txn.ID).
				Updates(map[string]interface{}{
					"guest_name":     txn.GuestName,
					"guest_phone":    txn.GuestPhone,
					"guest_email":    txn.GuestEmail,
					"stay_start":     txn.StayStart,
					"stay_end":       txn.StayEnd,
					"notes":          txn.Notes,
					"discount":       txn.Discount,
					"gross_subtotal": txn.GrossSubtotal,
					"base_value":     txn.BaseValue,
					"total_amount":   txn.TotalAmount,
					"balance":        txn.Balance,
					"status":         txn.Status,
				}).Error; err != nil {
				return err
			}

			out = &txn
			return nil
		})
	})

	return out, err
}

func (r *transactionRepository) UpdateGuestDetails(ctx context.Context, id uuid.UUID, name string, phone, email *string) error {
	return r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(PropertyScope(ctx)).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"guest_name":  name,
			"guest_phone": phone,
			"guest_email": email,
		}).Error
}

// Void stamps the document cancelled. The row is kept so the reference stays
// burned and the document stays visible in listings.
func (r *transactionRepository) Void(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Scopes(PropertyScope(ctx)).
		Where("id = ? AND voided_at IS NULL", id).
		Update("voided_at", at).Error
}

// CountForDay counts issues for a day. Voided documents still count: a void
// never frees its reference number for reuse.
func (r *transactionRepository) CountForDay(ctx context.Context, propertyID uuid.UUID, txnType enum.TransactionType, day time.Time) (int64, error) {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	end := start.AddDate(0, 0, 1)

	var count int64
	err := r.db.WithContext(ctx).Unscoped().Model(&entity.Transaction{}).
		Where("property_id = ? AND type = ? AND issued_at >= ? AND issued_at < ?",
			propertyID, txnType, start, end).
		Count(&count).Error
	return count, err
}

// withRetry retries short serialization conflicts; anything else fails fast.
func withRetry(attempts int, fn func() error) error {
	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !isRetryable(err) {
			return err
		}
		time.Sleep(time.Duration(i+1) * 25 * time.Millisecond)
	}
	return err
}

func isRetryable(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "40001") ||
		strings.Contains(msg, "could not serialize")
}

// IsDuplicateKey reports whether err is a unique constraint violation. Used by
// the reference generator: two documents issued in the same instant can race
// to the same sequence number, and the loser regenerates.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}
