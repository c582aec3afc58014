package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/billing"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
)

// Fallback reference prefixes when the property settings leave them blank
const (
	defaultPOSPrefix      = "POS-"
	defaultFolioPrefix    = "FOL-"
	defaultProformaPrefix = "PRO-"
)

// referenceRetries bounds renumbering when concurrent issues collide on the
// same day-sequence reference.
const referenceRetries = 3

// TransactionService handles checkout, folio and proforma workflows
type TransactionService struct {
	txnRepo         repository.TransactionRepository
	roomRepo        repository.RoomRepository
	menuItemRepo    repository.MenuItemRepository
	guestRepo       repository.GuestRepository
	settingsService *SettingsService
}

// NewTransactionService creates a new transaction service
func NewTransactionService(
	txnRepo repository.TransactionRepository,
	roomRepo repository.RoomRepository,
	menuItemRepo repository.MenuItemRepository,
	guestRepo repository.GuestRepository,
	settingsService *SettingsService,
) *TransactionService {
	return &TransactionService{
		txnRepo:         txnRepo,
		roomRepo:        roomRepo,
		menuItemRepo:    menuItemRepo,
		guestRepo:       guestRepo,
		settingsService: settingsService,
	}
}

// CartItemInput is one menu item row in a cart
type CartItemInput struct {
	MenuItemID uuid.UUID
	Quantity   int
}

// ChargeLineInput is a free-form charge row (laundry, damages, corrections)
type ChargeLineInput struct {
	Description string
	Quantity    int
	UnitPrice   float64
}

// CheckoutInput represents a walk-in POS sale
type CheckoutInput struct {
	UserID    uuid.UUID
	UnitID    *uuid.UUID
	GuestName string
	Items     []CartItemInput
	Charges   []ChargeLineInput
	Discount  float64
	Payments  []billing.PaymentInput
	Notes     *string
}

// Checkout records a walk-in sale. The cart is priced from the current
// catalog, taxed under the settings captured at this moment, and written
// together with the stock counter bumps in one database transaction. Payments
// are optional: a sale with no tender is recorded unpaid.
func (s *TransactionService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Transaction, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}

	if len(input.Items) == 0 && len(input.Charges) == 0 {
		return nil, apperror.ErrEmptyCart
	}
	if input.Discount < 0 {
		return nil, apperror.NewUnprocessableError("Discount must not be negative")
	}

	lines, effect, err := s.buildItemLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	chargeLines, err := buildChargeLines(input.Charges)
	if err != nil {
		return nil, err
	}
	lines = append(lines, chargeLines...)

	snap, err := s.settingsService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	settlement := billing.Compute(lines, input.Discount, snap)

	var paid float64
	var payments []entity.PaymentRecord
	if len(input.Payments) > 0 {
		position, err := billing.Apply(settlement.TotalAmount, 0, input.Payments)
		if err != nil {
			return nil, mapLedgerError(err)
		}
		paid = position.Paid
		payments = buildPaymentRecords(position.Rows, input.UserID, time.Now())
	}

	now := time.Now()
	txn := &entity.Transaction{
		PropertyID:    propertyID,
		UnitID:        input.UnitID,
		UserID:        input.UserID,
		Type:          enum.TransactionTypePOS,
		GuestName:     input.GuestName,
		Discount:      input.Discount,
		GrossSubtotal: settlement.GrossSubtotal,
		BaseValue:     settlement.BaseValue,
		TotalAmount:   settlement.TotalAmount,
		PaidAmount:    paid,
		Balance:       billing.Balance(settlement.TotalAmount, paid),
		PricingMode:   snap.Mode,
		Status:        billing.DeriveStatus(paid, settlement.TotalAmount),
		Notes:         input.Notes,
		IssuedAt:      now,
		Lines:         lines,
		Taxes:         buildTaxRows(settlement),
		Payments:      payments,
	}

	if err := s.createNumbered(ctx, propertyID, enum.TransactionTypePOS, now, txn, effect); err != nil {
		if errors.Is(err, infraRepo.ErrInsufficientStock) {
			return nil, apperror.ErrInsufficientStock
		}
		return nil, err
	}
	return txn, nil
}

// CreateFolioInput represents a room folio or proforma invoice
type CreateFolioInput struct {
	UserID     uuid.UUID
	UnitID     *uuid.UUID
	GuestID    *uuid.UUID
	GuestName  string
	GuestPhone *string
	GuestEmail *string
	StayStart  time.Time
	StayEnd    time.Time
	RoomIDs    []uuid.UUID
	Items      []CartItemInput
	Charges    []ChargeLineInput
	Discount   float64
	Payments   []billing.PaymentInput
	Notes      *string
}

// CreateFolio opens a room folio for a stay. Every requested room is checked
// for overlapping folios before the write, and its booked counter is bumped by
// the number of nights in the same database transaction as the folio itself.
// Payments act as a deposit and may be empty.
func (s *TransactionService) CreateFolio(ctx context.Context, input *CreateFolioInput) (*entity.Transaction, error) {
	return s.createStayDocument(ctx, input, enum.TransactionTypeFolio)
}

// CreateProforma issues a proforma invoice: a quote for a stay that reserves
// nothing, moves no counters and accepts no payments.
func (s *TransactionService) CreateProforma(ctx context.Context, input *CreateFolioInput) (*entity.Transaction, error) {
	if len(input.Payments) > 0 {
		return nil, apperror.ErrProformaSettle
	}
	return s.createStayDocument(ctx, input, enum.TransactionTypeProforma)
}

func (s *TransactionService) createStayDocument(ctx context.Context, input *CreateFolioInput, txnType enum.TransactionType) (*entity.Transaction, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}

	if len(input.RoomIDs) == 0 && len(input.Items) == 0 && len(input.Charges) == 0 {
		return nil, apperror.ErrEmptyCart
	}
	if input.Discount < 0 {
		return nil, apperror.NewUnprocessableError("Discount must not be negative")
	}
	if !input.StayEnd.After(input.StayStart) {
		return nil, apperror.NewUnprocessableError("Stay end must be after stay start")
	}

	guestName := input.GuestName
	if input.GuestID != nil {
		guest, err := s.guestRepo.GetByID(ctx, *input.GuestID)
		if err != nil {
			return nil, err
		}
		if guest == nil {
			return nil, apperror.NewNotFoundError("Guest")
		}
		if guestName == "" {
			guestName = guest.Name
		}
	}

	nights := stayNights(input.StayStart, input.StayEnd)
	roomLines, roomEffect, err := s.buildRoomLines(ctx, input.RoomIDs, input.StayStart, input.StayEnd, nights, txnType)
	if err != nil {
		return nil, err
	}

	itemLines, itemEffect, err := s.buildItemLines(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	lines := append(roomLines, itemLines...)
	chargeLines, err := buildChargeLines(input.Charges)
	if err != nil {
		return nil, err
	}
	lines = append(lines, chargeLines...)

	effect := itemEffect
	if txnType == enum.TransactionTypeFolio {
		effect.RoomBookings = roomEffect.RoomBookings
	} else {
		// Proformas reserve nothing
		effect = repository.InventoryEffect{}
	}

	snap, err := s.settingsService.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	settlement := billing.Compute(lines, input.Discount, snap)

	var paid float64
	var payments []entity.PaymentRecord
	if len(input.Payments) > 0 {
		position, err := billing.Apply(settlement.TotalAmount, 0, input.Payments)
		if err != nil {
			return nil, mapLedgerError(err)
		}
		paid = position.Paid
		payments = buildPaymentRecords(position.Rows, input.UserID, time.Now())
	}

	now := time.Now()
	stayStart := input.StayStart
	stayEnd := input.StayEnd
	txn := &entity.Transaction{
		PropertyID:    propertyID,
		UnitID:        input.UnitID,
		UserID:        input.UserID,
		GuestID:       input.GuestID,
		Type:          txnType,
		GuestName:     guestName,
		GuestPhone:    input.GuestPhone,
		GuestEmail:    input.GuestEmail,
		StayStart:     &stayStart,
		StayEnd:       &stayEnd,
		Discount:      input.Discount,
		GrossSubtotal: settlement.GrossSubtotal,
		BaseValue:     settlement.BaseValue,
		TotalAmount:   settlement.TotalAmount,
		PaidAmount:    paid,
		Balance:       billing.Balance(settlement.TotalAmount, paid),
		PricingMode:   snap.Mode,
		Status:        billing.DeriveStatus(paid, settlement.TotalAmount),
		Notes:         input.Notes,
		IssuedAt:      now,
		Lines:         lines,
		Taxes:         buildTaxRows(settlement),
		Payments:      payments,
	}

	if err := s.createNumbered(ctx, propertyID, txnType, now, txn, effect); err != nil {
		if errors.Is(err, infraRepo.ErrInsufficientStock) {
			return nil, apperror.ErrInsufficientStock
		}
		return nil, err
	}
	return txn, nil
}

// createNumbered assigns the next day-sequence reference and writes the
// document. Two documents issued in the same instant can race to the same
// number; the unique index on reference catches the loser, who recounts and
// renumbers.
func (s *TransactionService) createNumbered(ctx context.Context, propertyID uuid.UUID, txnType enum.TransactionType, day time.Time, txn *entity.Transaction, effect repository.InventoryEffect) error {
	var err error
	for attempt := 0; attempt < referenceRetries; attempt++ {
		txn.Reference, err = s.nextReference(ctx, propertyID, txnType, day)
		if err != nil {
			return err
		}
		err = s.txnRepo.CreateWithInventory(ctx, txn, effect)
		if err == nil || !infraRepo.IsDuplicateKey(err) {
			return err
		}
	}
	return err
}

// SettleInput represents a payment batch against an existing transaction
type SettleInput struct {
	UserID   uuid.UUID
	Payments []billing.PaymentInput
}

// Settle appends a payment batch to the ledger. The batch is validated under a
// row lock against the paid amount left by any concurrent settlement; if its
// sum would exceed the outstanding balance the whole batch is rejected.
func (s *TransactionService) Settle(ctx context.Context, id uuid.UUID, input *SettleInput) (*entity.Transaction, error) {
	rows, err := billing.NormalizePayments(input.Payments)
	if err != nil {
		return nil, mapLedgerError(err)
	}
	records := buildPaymentRecords(rows, input.UserID, time.Now())

	var ledgerErr error
	txn, err := s.txnRepo.Settle(ctx, id, records, func(locked *entity.Transaction, _ []entity.PaymentRecord) (float64, float64, enum.SettlementStatus, error) {
		if locked.Type == enum.TransactionTypeProforma {
			ledgerErr = apperror.ErrProformaSettle
			return 0, 0, 0, ledgerErr
		}
		if locked.VoidedAt != nil {
			ledgerErr = apperror.NewUnprocessableError("Voided transactions cannot accept payments")
			return 0, 0, 0, ledgerErr
		}
		position, err := billing.Apply(locked.TotalAmount, locked.PaidAmount, rows)
		if err != nil {
			ledgerErr = mapLedgerError(err)
			return 0, 0, 0, ledgerErr
		}
		return position.Paid, position.Balance, position.Status, nil
	})
	if err != nil {
		if ledgerErr != nil {
			return nil, ledgerErr
		}
		if errors.Is(err, infraRepo.ErrTransactionNotFound) {
			return nil, apperror.NewNotFoundError("Transaction")
		}
		return nil, err
	}
	return txn, nil
}

// AmendInput represents an amendment to an open folio or proforma
type AmendInput struct {
	GuestName  *string
	GuestPhone *string
	GuestEmail *string
	StayStart  *time.Time
	StayEnd    *time.Time
	Notes      *string
	Discount   *float64
	AddItems   []CartItemInput
	AddCharges []ChargeLineInput
}

// Amend edits the mutable head fields of a folio or proforma and appends new
// charge lines, then recomputes the financial snapshot under the pricing mode
// and tax rates the document was issued with. Newly added item lines bump the
// sold counters in the same database transaction, under the same stock guard
// as checkout. A settled document whose total rises regresses back to partial
// automatically; payments already recorded are never touched.
func (s *TransactionService) Amend(ctx context.Context, id uuid.UUID, input *AmendInput) (*entity.Transaction, error) {
	if input.Discount != nil && *input.Discount < 0 {
		return nil, apperror.NewUnprocessableError("Discount must not be negative")
	}

	itemLines, itemEffect, err := s.buildItemLines(ctx, input.AddItems)
	if err != nil {
		return nil, err
	}
	chargeLines, err := buildChargeLines(input.AddCharges)
	if err != nil {
		return nil, err
	}
	addLines := append(itemLines, chargeLines...)

	var amendErr error
	txn, err := s.txnRepo.Amend(ctx, id, func(locked *entity.Transaction) ([]entity.TransactionLine, []entity.TransactionTax, repository.InventoryEffect, error) {
		if locked.Type == enum.TransactionTypePOS {
			amendErr = apperror.NewUnprocessableError("Completed sales cannot be amended")
			return nil, nil, repository.InventoryEffect{}, amendErr
		}
		if locked.VoidedAt != nil {
			amendErr = apperror.NewUnprocessableError("Voided transactions cannot be amended")
			return nil, nil, repository.InventoryEffect{}, amendErr
		}

		if input.GuestName != nil {
			locked.GuestName = *input.GuestName
		}
		if input.GuestPhone != nil {
			locked.GuestPhone = input.GuestPhone
		}
		if input.GuestEmail != nil {
			locked.GuestEmail = input.GuestEmail
		}
		if input.StayStart != nil {
			locked.StayStart = input.StayStart
		}
		if input.StayEnd != nil {
			locked.StayEnd = input.StayEnd
		}
		if locked.StayStart != nil && locked.StayEnd != nil && !locked.StayEnd.After(*locked.StayStart) {
			amendErr = apperror.NewUnprocessableError("Stay end must be after stay start")
			return nil, nil, repository.InventoryEffect{}, amendErr
		}
		if input.Notes != nil {
			locked.Notes = input.Notes
		}
		if input.Discount != nil {
			locked.Discount = *input.Discount
		}

		newLines := make([]entity.TransactionLine, len(addLines))
		copy(newLines, addLines)
		for i := range newLines {
			newLines[i].TransactionID = locked.ID
		}

		allLines := append(append([]entity.TransactionLine{}, locked.Lines...), newLines...)
		settlement := billing.Compute(allLines, locked.Discount, issuedSnapshot(locked))

		locked.GrossSubtotal = settlement.GrossSubtotal
		locked.BaseValue = settlement.BaseValue
		locked.TotalAmount = settlement.TotalAmount
		locked.Balance = billing.Balance(settlement.TotalAmount, locked.PaidAmount)
		locked.Status = billing.DeriveStatus(locked.PaidAmount, settlement.TotalAmount)

		newTaxes := buildTaxRows(settlement)
		for i := range newTaxes {
			newTaxes[i].TransactionID = locked.ID
		}

		// Proformas reserve nothing, amended or not
		effect := repository.InventoryEffect{}
		if locked.Type == enum.TransactionTypeFolio {
			effect = itemEffect
		}
		return newLines, newTaxes, effect, nil
	})
	if err != nil {
		if amendErr != nil {
			return nil, amendErr
		}
		if errors.Is(err, infraRepo.ErrTransactionNotFound) {
			return nil, apperror.NewNotFoundError("Transaction")
		}
		if errors.Is(err, infraRepo.ErrInsufficientStock) {
			return nil, apperror.ErrInsufficientStock
		}
		return nil, err
	}
	return txn, nil
}

// UpdateGuestDetailsInput represents a guest-snapshot-only edit
type UpdateGuestDetailsInput struct {
	GuestName  string
	GuestPhone *string
	GuestEmail *string
}

// UpdateGuestDetails edits the guest snapshot without touching financials
func (s *TransactionService) UpdateGuestDetails(ctx context.Context, id uuid.UUID, input *UpdateGuestDetailsInput) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}

	if err := s.txnRepo.UpdateGuestDetails(ctx, id, input.GuestName, input.GuestPhone, input.GuestEmail); err != nil {
		return nil, err
	}
	return s.txnRepo.GetWithDetails(ctx, id)
}

// GetTransaction retrieves a transaction with lines, taxes and payments
func (s *TransactionService) GetTransaction(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetWithDetails(ctx, id)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return txn, nil
}

// GetByReference retrieves a transaction by its document reference
func (s *TransactionService) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	txn, err := s.txnRepo.GetByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if txn == nil {
		return nil, apperror.NewNotFoundError("Transaction")
	}
	return s.txnRepo.GetWithDetails(ctx, txn.ID)
}

// ListTransactions retrieves transactions with offset pagination
func (s *TransactionService) ListTransactions(ctx context.Context, params *repository.TransactionFilterParams) (*pagination.PaginatedResult[entity.Transaction], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	txns, total, err := s.txnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(txns, paging), nil
}

// ListTransactionsWithCursor retrieves transactions with cursor pagination
func (s *TransactionService) ListTransactionsWithCursor(ctx context.Context, params *repository.TransactionCursorFilterParams) (*pagination.CursorPaginatedResult[entity.Transaction], error) {
	if params.Cursor == nil {
		params.Cursor = pagination.DefaultCursorParams()
	}
	params.Cursor.Validate()

	txns, err := s.txnRepo.ListWithCursor(ctx, params)
	if err != nil {
		return nil, err
	}

	paging, items := pagination.NewCursorPagination(txns, params.Cursor.Limit,
		func(t entity.Transaction) string { return t.ID.String() },
		func(t entity.Transaction) time.Time { return t.CreatedAt },
	)
	paging.HasPrev = params.Cursor.Cursor != ""
	return pagination.NewCursorPaginatedResult(items, paging), nil
}

// VoidTransaction stamps a document cancelled. The row is kept: it stays in
// listings with its reference burned, and day sequences never reuse numbers.
func (s *TransactionService) VoidTransaction(ctx context.Context, id uuid.UUID) error {
	txn, err := s.txnRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if txn == nil {
		return apperror.NewNotFoundError("Transaction")
	}
	if txn.VoidedAt != nil {
		return apperror.NewConflictError("Transaction is already voided")
	}
	return s.txnRepo.Void(ctx, id, time.Now())
}

// buildItemLines resolves cart rows against the catalog and returns the
// charge lines plus the sold-counter effect.
func (s *TransactionService) buildItemLines(ctx context.Context, items []CartItemInput) ([]entity.TransactionLine, repository.InventoryEffect, error) {
	effect := repository.InventoryEffect{ItemsSold: map[uuid.UUID]int{}}
	if len(items) == 0 {
		return nil, effect, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, effect, apperror.NewUnprocessableError("Item quantity must be positive")
		}
		ids = append(ids, item.MenuItemID)
	}

	catalog, err := s.menuItemRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, effect, err
	}
	byID := make(map[uuid.UUID]entity.MenuItem, len(catalog))
	for _, m := range catalog {
		byID[m.ID] = m
	}

	lines := make([]entity.TransactionLine, 0, len(items))
	for _, item := range items {
		m, ok := byID[item.MenuItemID]
		if !ok {
			return nil, effect, apperror.NewNotFoundError("Menu item")
		}
		itemID := item.MenuItemID
		lines = append(lines, entity.TransactionLine{
			MenuItemID:  &itemID,
			Description: m.Name,
			Quantity:    item.Quantity,
			UnitPrice:   m.Price,
			LineTotal:   billing.LineTotal(item.Quantity, m.Price),
		})
		effect.ItemsSold[itemID] += item.Quantity
	}
	return lines, effect, nil
}

// buildRoomLines resolves the requested rooms, checks availability for the
// stay window and returns the lodging lines plus the booked-counter effect.
func (s *TransactionService) buildRoomLines(ctx context.Context, roomIDs []uuid.UUID, start, end time.Time, nights int, txnType enum.TransactionType) ([]entity.TransactionLine, repository.InventoryEffect, error) {
	effect := repository.InventoryEffect{RoomBookings: map[uuid.UUID]int{}}
	if len(roomIDs) == 0 {
		return nil, effect, nil
	}

	rooms, err := s.roomRepo.GetByIDs(ctx, roomIDs)
	if err != nil {
		return nil, effect, err
	}
	byID := make(map[uuid.UUID]entity.Room, len(rooms))
	for _, r := range rooms {
		byID[r.ID] = r
	}

	lines := make([]entity.TransactionLine, 0, len(roomIDs))
	for _, roomID := range roomIDs {
		room, ok := byID[roomID]
		if !ok {
			return nil, effect, apperror.NewNotFoundError("Room")
		}
		if !room.Active {
			return nil, effect, apperror.ErrRoomUnavailable
		}
		if txnType == enum.TransactionTypeFolio {
			overlapping, err := s.txnRepoOverlap(ctx, roomID, start, end)
			if err != nil {
				return nil, effect, err
			}
			if overlapping > 0 {
				return nil, effect, apperror.ErrRoomUnavailable
			}
		}
		id := roomID
		lines = append(lines, entity.TransactionLine{
			RoomID:      &id,
			Description: room.RoomType + " " + room.Number,
			Quantity:    nights,
			UnitPrice:   room.NightlyRate,
			LineTotal:   billing.LineTotal(nights, room.NightlyRate),
		})
		effect.RoomBookings[roomID] += nights
	}
	return lines, effect, nil
}

func (s *TransactionService) txnRepoOverlap(ctx context.Context, roomID uuid.UUID, start, end time.Time) (int64, error) {
	return s.roomRepo.CountOverlappingStays(ctx, roomID, start, end)
}

func (s *TransactionService) nextReference(ctx context.Context, propertyID uuid.UUID, txnType enum.TransactionType, day time.Time) (string, error) {
	count, err := s.txnRepo.CountForDay(ctx, propertyID, txnType, day)
	if err != nil {
		return "", err
	}

	settings, err := s.settingsService.GetSettings(ctx)
	if err != nil {
		return "", err
	}

	var prefix string
	switch txnType {
	case enum.TransactionTypeFolio:
		prefix = fallback(settings.FolioPrefix, defaultFolioPrefix)
	case enum.TransactionTypeProforma:
		prefix = fallback(settings.ProformaPrefix, defaultProformaPrefix)
	default:
		prefix = fallback(settings.POSPrefix, defaultPOSPrefix)
	}
	return utils.FormatReference(prefix, day, count+1), nil
}

func fallback(value, def string) string {
	if value == "" {
		return def
	}
	return value
}

func buildChargeLines(charges []ChargeLineInput) ([]entity.TransactionLine, error) {
	lines := make([]entity.TransactionLine, 0, len(charges))
	for _, c := range charges {
		if c.Quantity <= 0 {
			return nil, apperror.NewUnprocessableError("Charge quantity must be positive")
		}
		if c.UnitPrice < 0 {
			return nil, apperror.NewUnprocessableError("Charge unit price must not be negative")
		}
		lines = append(lines, entity.TransactionLine{
			Description: c.Description,
			Quantity:    c.Quantity,
			UnitPrice:   c.UnitPrice,
			LineTotal:   billing.LineTotal(c.Quantity, c.UnitPrice),
		})
	}
	return lines, nil
}

func buildPaymentRecords(rows []billing.PaymentInput, recordedBy uuid.UUID, paidAt time.Time) []entity.PaymentRecord {
	records := make([]entity.PaymentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, entity.PaymentRecord{
			Method:       row.Method,
			Amount:       row.Amount,
			PaidAt:       paidAt,
			RecordedByID: recordedBy,
		})
	}
	return records
}

func buildTaxRows(settlement billing.Settlement) []entity.TransactionTax {
	rows := make([]entity.TransactionTax, 0, len(settlement.Taxes))
	for _, t := range settlement.Taxes {
		rows = append(rows, entity.TransactionTax{
			TaxRuleID:        t.RuleID,
			Name:             t.Name,
			Rate:             t.Rate,
			Kind:             t.Kind,
			Amount:           t.Amount,
			VisibleOnReceipt: t.VisibleOnReceipt,
			Position:         t.Position,
		})
	}
	return rows
}

// issuedSnapshot rebuilds the tax configuration a document was issued with
// from its stored tax rows, so amendments never pick up later admin edits.
func issuedSnapshot(txn *entity.Transaction) billing.TaxSnapshot {
	rules := make([]entity.TaxRule, 0, len(txn.Taxes))
	for _, t := range txn.Taxes {
		rules = append(rules, entity.TaxRule{
			ID:               t.TaxRuleID,
			Name:             t.Name,
			Rate:             t.Rate,
			Kind:             t.Kind,
			VisibleOnReceipt: t.VisibleOnReceipt,
			Position:         t.Position,
		})
	}
	return billing.TaxSnapshot{Rules: rules, Mode: txn.PricingMode}
}

func stayNights(start, end time.Time) int {
	nights := int(end.Sub(start).Hours() / 24)
	if nights < 1 {
		nights = 1
	}
	return nights
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, billing.ErrOverpayment):
		return apperror.ErrOverpayment
	case errors.Is(err, billing.ErrNoPayments), errors.Is(err, billing.ErrNegativePayment):
		return apperror.ErrNoPayment
	default:
		return err
	}
}
