package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/billing"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// ---------------------------------------------------------------------------
// In-memory fakes

type fakeTransactionRepo struct {
	transactions map[uuid.UUID]*entity.Transaction
	rooms        *fakeRoomRepo
	items        *fakeMenuItemRepo
	createErrs   []error
}

func newFakeTransactionRepo(rooms *fakeRoomRepo, items *fakeMenuItemRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{
		transactions: map[uuid.UUID]*entity.Transaction{},
		rooms:        rooms,
		items:        items,
	}
}

// propertyMatch mirrors the scoped reads of the real repository: a row from
// another property is invisible.
func propertyMatch(ctx context.Context, txn *entity.Transaction) bool {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	return ok && txn != nil && txn.PropertyID == propertyID
}

func (r *fakeTransactionRepo) applyEffect(effect repository.InventoryEffect) error {
	for itemID, qty := range effect.ItemsSold {
		item := r.items.items[itemID]
		if item.Tracked && item.InitialStock-item.Sold < qty {
			return fmt.Errorf("%w: item %s", infraRepo.ErrInsufficientStock, itemID)
		}
	}
	for itemID, qty := range effect.ItemsSold {
		r.items.items[itemID].Sold += qty
	}
	for roomID, nights := range effect.RoomBookings {
		r.rooms.rooms[roomID].Booked += nights
	}
	return nil
}

func (r *fakeTransactionRepo) CreateWithInventory(ctx context.Context, txn *entity.Transaction, effect repository.InventoryEffect) error {
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		return err
	}
	if err := r.applyEffect(effect); err != nil {
		return err
	}
	if txn.ID == uuid.Nil {
		txn.ID = uuid.New()
	}
	txn.CreatedAt = time.Now()
	r.transactions[txn.ID] = txn
	return nil
}

func (r *fakeTransactionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if txn := r.transactions[id]; propertyMatch(ctx, txn) {
		return txn, nil
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetByReference(ctx context.Context, reference string) (*entity.Transaction, error) {
	for _, txn := range r.transactions {
		if txn.Reference == reference {
			return txn, nil
		}
	}
	return nil, nil
}

func (r *fakeTransactionRepo) GetWithDetails(ctx context.Context, id uuid.UUID) (*entity.Transaction, error) {
	if txn := r.transactions[id]; propertyMatch(ctx, txn) {
		return txn, nil
	}
	return nil, nil
}

func (r *fakeTransactionRepo) List(ctx context.Context, params *repository.TransactionFilterParams) ([]entity.Transaction, int64, error) {
	out := make([]entity.Transaction, 0, len(r.transactions))
	for _, txn := range r.transactions {
		out = append(out, *txn)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) ListWithCursor(ctx context.Context, params *repository.TransactionCursorFilterParams) ([]entity.Transaction, error) {
	out := make([]entity.Transaction, 0, len(r.transactions))
	for _, txn := range r.transactions {
		out = append(out, *txn)
	}
	return out, nil
}

func (r *fakeTransactionRepo) Settle(ctx context.Context, id uuid.UUID, payments []entity.PaymentRecord, recompute repository.SettleFunc) (*entity.Transaction, error) {
	txn, ok := r.transactions[id]
	if !ok || !propertyMatch(ctx, txn) {
		return nil, infraRepo.ErrTransactionNotFound
	}

	paid, balance, status, err := recompute(txn, payments)
	if err != nil {
		return nil, err
	}

	for i := range payments {
		payments[i].TransactionID = txn.ID
	}
	txn.Payments = append(txn.Payments, payments...)
	txn.PaidAmount = paid
	txn.Balance = balance
	txn.Status = status
	return txn, nil
}

func (r *fakeTransactionRepo) Amend(ctx context.Context, id uuid.UUID, apply repository.AmendFunc) (*entity.Transaction, error) {
	txn, ok := r.transactions[id]
	if !ok || !propertyMatch(ctx, txn) {
		return nil, infraRepo.ErrTransactionNotFound
	}

	// Work on a copy so a rejected amendment leaves the stored row untouched,
	// like a rolled-back database transaction would
	cp := *txn
	newLines, newTaxes, effect, err := apply(&cp)
	if err != nil {
		return nil, err
	}
	if err := r.applyEffect(effect); err != nil {
		return nil, err
	}
	cp.Lines = append(append([]entity.TransactionLine{}, cp.Lines...), newLines...)
	cp.Taxes = newTaxes
	*txn = cp
	return txn, nil
}

func (r *fakeTransactionRepo) UpdateGuestDetails(ctx context.Context, id uuid.UUID, name string, phone, email *string) error {
	if txn := r.transactions[id]; propertyMatch(ctx, txn) {
		txn.GuestName = name
		txn.GuestPhone = phone
		txn.GuestEmail = email
	}
	return nil
}

func (r *fakeTransactionRepo) Void(ctx context.Context, id uuid.UUID, at time.Time) error {
	if txn := r.transactions[id]; propertyMatch(ctx, txn) && txn.VoidedAt == nil {
		txn.VoidedAt = &at
	}
	return nil
}

func (r *fakeTransactionRepo) CountForDay(ctx context.Context, propertyID uuid.UUID, txnType enum.TransactionType, day time.Time) (int64, error) {
	var count int64
	for _, txn := range r.transactions {
		if txn.Type == txnType {
			count++
		}
	}
	return count, nil
}

type fakeRoomRepo struct {
	rooms    map[uuid.UUID]*entity.Room
	overlaps map[uuid.UUID]int64
}

func newFakeRoomRepo() *fakeRoomRepo {
	return &fakeRoomRepo{rooms: map[uuid.UUID]*entity.Room{}, overlaps: map[uuid.UUID]int64{}}
}

func (r *fakeRoomRepo) Create(ctx context.Context, room *entity.Room) error {
	if room.ID == uuid.Nil {
		room.ID = uuid.New()
	}
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	return r.rooms[id], nil
}

func (r *fakeRoomRepo) GetByNumber(ctx context.Context, number string) (*entity.Room, error) {
	for _, room := range r.rooms {
		if room.Number == number {
			return room, nil
		}
	}
	return nil, nil
}

func (r *fakeRoomRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Room, error) {
	out := make([]entity.Room, 0, len(ids))
	for _, id := range ids {
		if room, ok := r.rooms[id]; ok {
			out = append(out, *room)
		}
	}
	return out, nil
}

func (r *fakeRoomRepo) Update(ctx context.Context, room *entity.Room) error {
	r.rooms[room.ID] = room
	return nil
}

func (r *fakeRoomRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.rooms, id)
	return nil
}

func (r *fakeRoomRepo) List(ctx context.Context, params *repository.RoomFilterParams) ([]entity.Room, int64, error) {
	return nil, 0, nil
}

func (r *fakeRoomRepo) CountOverlappingStays(ctx context.Context, roomID uuid.UUID, start, end time.Time) (int64, error) {
	return r.overlaps[roomID], nil
}

type fakeMenuItemRepo struct {
	items map[uuid.UUID]*entity.MenuItem
}

func newFakeMenuItemRepo() *fakeMenuItemRepo {
	return &fakeMenuItemRepo{items: map[uuid.UUID]*entity.MenuItem{}}
}

func (r *fakeMenuItemRepo) Create(ctx context.Context, item *entity.MenuItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	r.items[item.ID] = item
	return nil
}

func (r *fakeMenuItemRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	return r.items[id], nil
}

func (r *fakeMenuItemRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	out := make([]entity.MenuItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := r.items[id]; ok {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (r *fakeMenuItemRepo) Update(ctx context.Context, item *entity.MenuItem) error {
	r.items[item.ID] = item
	return nil
}

func (r *fakeMenuItemRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func (r *fakeMenuItemRepo) List(ctx context.Context, params *repository.MenuItemFilterParams) ([]entity.MenuItem, int64, error) {
	return nil, 0, nil
}

func (r *fakeMenuItemRepo) GetLowStock(ctx context.Context, propertyID uuid.UUID) ([]entity.MenuItem, error) {
	return nil, nil
}

func (r *fakeMenuItemRepo) RestockAdjust(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	item := r.items[id]
	if item.InitialStock+delta < item.Sold {
		return false, nil
	}
	item.InitialStock += delta
	return true, nil
}

type fakeGuestRepo struct {
	guests map[uuid.UUID]*entity.Guest
}

func newFakeGuestRepo() *fakeGuestRepo {
	return &fakeGuestRepo{guests: map[uuid.UUID]*entity.Guest{}}
}

func (r *fakeGuestRepo) Create(ctx context.Context, guest *entity.Guest) error {
	if guest.ID == uuid.Nil {
		guest.ID = uuid.New()
	}
	r.guests[guest.ID] = guest
	return nil
}

func (r *fakeGuestRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	return r.guests[id], nil
}

func (r *fakeGuestRepo) GetByEmail(ctx context.Context, email string) (*entity.Guest, error) {
	return nil, nil
}

func (r *fakeGuestRepo) GetByPhone(ctx context.Context, phone string) (*entity.Guest, error) {
	return nil, nil
}

func (r *fakeGuestRepo) Update(ctx context.Context, guest *entity.Guest) error {
	r.guests[guest.ID] = guest
	return nil
}

func (r *fakeGuestRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.guests, id)
	return nil
}

func (r *fakeGuestRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Guest, int64, error) {
	return nil, 0, nil
}

func (r *fakeGuestRepo) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Guest, error) {
	return nil, nil
}

type fakePropertyRepo struct {
	property *entity.Property
}

func (r *fakePropertyRepo) Create(ctx context.Context, property *entity.Property) error { return nil }

func (r *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	if r.property != nil && r.property.ID == id {
		return r.property, nil
	}
	return nil, nil
}

func (r *fakePropertyRepo) GetBySlug(ctx context.Context, slug string) (*entity.Property, error) {
	return nil, nil
}

func (r *fakePropertyRepo) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Property, error) {
	return nil, nil
}

func (r *fakePropertyRepo) Update(ctx context.Context, property *entity.Property) error { return nil }
func (r *fakePropertyRepo) Delete(ctx context.Context, id uuid.UUID) error              { return nil }

func (r *fakePropertyRepo) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.PropertySettings) error {
	r.property.Settings = settings
	return nil
}

func (r *fakePropertyRepo) AddMember(ctx context.Context, membership *entity.PropertyMembership) error {
	return nil
}

func (r *fakePropertyRepo) RemoveMember(ctx context.Context, propertyID, userID uuid.UUID) error {
	return nil
}

func (r *fakePropertyRepo) GetMembership(ctx context.Context, propertyID, userID uuid.UUID) (*entity.PropertyMembership, error) {
	return nil, nil
}

func (r *fakePropertyRepo) ListMembers(ctx context.Context, propertyID uuid.UUID) ([]entity.PropertyMembership, error) {
	return nil, nil
}

func (r *fakePropertyRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Property, error) {
	return nil, nil
}

type fakeTaxRuleRepo struct {
	rules []entity.TaxRule
}

func (r *fakeTaxRuleRepo) Create(ctx context.Context, rule *entity.TaxRule) error {
	if rule.ID == uuid.Nil {
		rule.ID = uuid.New()
	}
	r.rules = append(r.rules, *rule)
	return nil
}

func (r *fakeTaxRuleRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRule, error) {
	for i := range r.rules {
		if r.rules[i].ID == id {
			return &r.rules[i], nil
		}
	}
	return nil, nil
}

func (r *fakeTaxRuleRepo) Update(ctx context.Context, rule *entity.TaxRule) error { return nil }
func (r *fakeTaxRuleRepo) Delete(ctx context.Context, id uuid.UUID) error         { return nil }

func (r *fakeTaxRuleRepo) ListOrdered(ctx context.Context, propertyID uuid.UUID) ([]entity.TaxRule, error) {
	return r.rules, nil
}

func (r *fakeTaxRuleRepo) Reorder(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) error {
	return nil
}

// ---------------------------------------------------------------------------
// Fixture

type fixture struct {
	ctx      context.Context
	svc      *TransactionService
	txnRepo  *fakeTransactionRepo
	roomRepo *fakeRoomRepo
	itemRepo *fakeMenuItemRepo
	userID   uuid.UUID
	itemID   uuid.UUID
	roomID   uuid.UUID
}

func newFixture(t *testing.T, mode enum.PricingMode) *fixture {
	t.Helper()

	propertyID := uuid.New()
	settings := entity.DefaultPropertySettings()
	settings.PricingMode = mode

	propRepo := &fakePropertyRepo{property: &entity.Property{
		ID:       propertyID,
		Name:     "Tid Hotels",
		Slug:     "tid-hotels",
		Settings: settings,
	}}
	taxRepo := &fakeTaxRuleRepo{rules: []entity.TaxRule{
		{ID: uuid.New(), PropertyID: propertyID, Name: "VAT", Rate: 0.075, Kind: enum.TaxKindVAT, VisibleOnReceipt: true, Position: 0},
		{ID: uuid.New(), PropertyID: propertyID, Name: "Service Charge", Rate: 0.10, Kind: enum.TaxKindServiceCharge, VisibleOnReceipt: true, Position: 1},
	}}

	roomRepo := newFakeRoomRepo()
	itemRepo := newFakeMenuItemRepo()
	guestRepo := newFakeGuestRepo()
	txnRepo := newFakeTransactionRepo(roomRepo, itemRepo)

	item := &entity.MenuItem{
		PropertyID:   propertyID,
		Name:         "Jollof Rice",
		Category:     "Food",
		Price:        10000,
		InitialStock: 10,
		Tracked:      true,
	}
	require.NoError(t, itemRepo.Create(context.Background(), item))

	room := &entity.Room{
		PropertyID:  propertyID,
		Number:      "101",
		RoomType:    "Deluxe",
		NightlyRate: 45000,
		Active:      true,
	}
	require.NoError(t, roomRepo.Create(context.Background(), room))

	settingsService := NewSettingsService(propRepo, taxRepo)
	svc := NewTransactionService(txnRepo, roomRepo, itemRepo, guestRepo, settingsService)

	return &fixture{
		ctx:      infraRepo.WithProperty(context.Background(), propertyID),
		svc:      svc,
		txnRepo:  txnRepo,
		roomRepo: roomRepo,
		itemRepo: itemRepo,
		userID:   uuid.New(),
		itemID:   item.ID,
		roomID:   room.ID,
	}
}

// ---------------------------------------------------------------------------
// Checkout

func TestCheckoutInclusivePricing(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	txn, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	// 2 x 10000 inclusive of 7.5% VAT + 10% service charge
	require.InDelta(t, 20000, txn.TotalAmount, 0.01)
	require.InDelta(t, 17021.28, txn.BaseValue, 0.01)
	require.Len(t, txn.Taxes, 2)
	assert.InDelta(t, 1276.60, txn.Taxes[0].Amount, 0.01)
	assert.InDelta(t, 1702.13, txn.Taxes[1].Amount, 0.01)
	assert.Equal(t, enum.SettlementStatusUnpaid, txn.Status)
	assert.InDelta(t, 20000, txn.Balance, 0.01)

	assert.Equal(t, 2, f.itemRepo.items[f.itemID].Sold)
}

func TestCheckoutExclusivePricing(t *testing.T) {
	f := newFixture(t, enum.PricingModeExclusive)

	txn, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	require.InDelta(t, 20000, txn.BaseValue, 0.01)
	require.InDelta(t, 23500, txn.TotalAmount, 0.01)
}

func TestCheckoutWithFullPayment(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	txn, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
		Payments: []billing.PaymentInput{
			{Method: enum.PaymentMethodCash, Amount: 4000},
			{Method: enum.PaymentMethodPOS, Amount: 6000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SettlementStatusPaid, txn.Status)
	assert.InDelta(t, 0, txn.Balance, 0.01)
	assert.Len(t, txn.Payments, 2)
}

func TestCheckoutRejectsOverpayment(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	_, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID:   f.userID,
		Items:    []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: 10001}},
	})
	require.ErrorIs(t, err, apperror.ErrOverpayment)
	assert.Empty(t, f.txnRepo.transactions)
	assert.Equal(t, 0, f.itemRepo.items[f.itemID].Sold)
}

func TestCheckoutInsufficientStock(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	_, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 11}},
	})
	require.ErrorIs(t, err, apperror.ErrInsufficientStock)
	assert.Empty(t, f.txnRepo.transactions)
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	_, err := f.svc.Checkout(f.ctx, &CheckoutInput{UserID: f.userID})
	require.ErrorIs(t, err, apperror.ErrEmptyCart)
}

func TestCheckoutDiscountClampsAtZero(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	txn, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID:   f.userID,
		Items:    []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
		Discount: 15000,
	})
	require.NoError(t, err)

	assert.InDelta(t, 0, txn.TotalAmount, 0.01)
	assert.InDelta(t, 0, txn.Balance, 0.01)
	assert.Equal(t, enum.SettlementStatusUnpaid, txn.Status)
}

func TestCheckoutReferenceSequence(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	first, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
	})
	require.NoError(t, err)
	second, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	day := time.Now().Format("20060102")
	assert.Equal(t, "POS-"+day+"-0001", first.Reference)
	assert.Equal(t, "POS-"+day+"-0002", second.Reference)
}

// ---------------------------------------------------------------------------
// Folio and proforma

func TestCreateFolioBumpsBookedCounter(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	start := time.Now().Truncate(24 * time.Hour)
	end := start.AddDate(0, 0, 3)

	txn, err := f.svc.CreateFolio(f.ctx, &CreateFolioInput{
		UserID:    f.userID,
		GuestName: "Ada Obi",
		StayStart: start,
		StayEnd:   end,
		RoomIDs:   []uuid.UUID{f.roomID},
	})
	require.NoError(t, err)

	require.Len(t, txn.Lines, 1)
	assert.Equal(t, 3, txn.Lines[0].Quantity)
	assert.InDelta(t, 135000, txn.Lines[0].LineTotal, 0.01)
	assert.Equal(t, 3, f.roomRepo.rooms[f.roomID].Booked)
	assert.Equal(t, enum.TransactionTypeFolio, txn.Type)
}

func TestCreateFolioRejectsOverlappingStay(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	f.roomRepo.overlaps[f.roomID] = 1

	start := time.Now().Truncate(24 * time.Hour)
	_, err := f.svc.CreateFolio(f.ctx, &CreateFolioInput{
		UserID:    f.userID,
		GuestName: "Ada Obi",
		StayStart: start,
		StayEnd:   start.AddDate(0, 0, 2),
		RoomIDs:   []uuid.UUID{f.roomID},
	})
	require.ErrorIs(t, err, apperror.ErrRoomUnavailable)
	assert.Equal(t, 0, f.roomRepo.rooms[f.roomID].Booked)
}

func TestCreateProformaReservesNothing(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	start := time.Now().Truncate(24 * time.Hour)
	txn, err := f.svc.CreateProforma(f.ctx, &CreateFolioInput{
		UserID:    f.userID,
		GuestName: "Ada Obi",
		StayStart: start,
		StayEnd:   start.AddDate(0, 0, 2),
		RoomIDs:   []uuid.UUID{f.roomID},
		Items:     []CartItemInput{{MenuItemID: f.itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.TransactionTypeProforma, txn.Type)
	assert.Equal(t, 0, f.roomRepo.rooms[f.roomID].Booked)
	assert.Equal(t, 0, f.itemRepo.items[f.itemID].Sold)
}

func TestCreateProformaRejectsPayments(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	start := time.Now().Truncate(24 * time.Hour)
	_, err := f.svc.CreateProforma(f.ctx, &CreateFolioInput{
		UserID:    f.userID,
		StayStart: start,
		StayEnd:   start.AddDate(0, 0, 1),
		RoomIDs:   []uuid.UUID{f.roomID},
		Payments:  []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: 1000}},
	})
	require.ErrorIs(t, err, apperror.ErrProformaSettle)
}

// ---------------------------------------------------------------------------
// Settlement

func openFolio(t *testing.T, f *fixture) *entity.Transaction {
	t.Helper()
	start := time.Now().Truncate(24 * time.Hour)
	txn, err := f.svc.CreateFolio(f.ctx, &CreateFolioInput{
		UserID:    f.userID,
		GuestName: "Ada Obi",
		StayStart: start,
		StayEnd:   start.AddDate(0, 0, 2),
		RoomIDs:   []uuid.UUID{f.roomID},
	})
	require.NoError(t, err)
	return txn
}

func TestSettlePartialThenFull(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)
	total := txn.TotalAmount

	settled, err := f.svc.Settle(f.ctx, txn.ID, &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodTransfer, Amount: total / 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.SettlementStatusPartial, settled.Status)
	assert.InDelta(t, total/2, settled.Balance, 0.01)

	settled, err = f.svc.Settle(f.ctx, txn.ID, &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: total / 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.SettlementStatusPaid, settled.Status)
	assert.InDelta(t, 0, settled.Balance, 0.01)
}

func TestSettleRejectsBatchOverOutstanding(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)

	_, err := f.svc.Settle(f.ctx, txn.ID, &SettleInput{
		UserID: f.userID,
		Payments: []billing.PaymentInput{
			{Method: enum.PaymentMethodCash, Amount: txn.TotalAmount},
			{Method: enum.PaymentMethodPOS, Amount: 1},
		},
	})
	require.ErrorIs(t, err, apperror.ErrOverpayment)

	// Nothing recorded: all-or-nothing
	assert.Empty(t, f.txnRepo.transactions[txn.ID].Payments)
	assert.Equal(t, enum.SettlementStatusUnpaid, f.txnRepo.transactions[txn.ID].Status)
}

func TestSettleRejectsZeroBatch(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)

	_, err := f.svc.Settle(f.ctx, txn.ID, &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: 0}},
	})
	require.ErrorIs(t, err, apperror.ErrNoPayment)
}

func TestSettleProformaRejected(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	start := time.Now().Truncate(24 * time.Hour)
	txn, err := f.svc.CreateProforma(f.ctx, &CreateFolioInput{
		UserID:    f.userID,
		StayStart: start,
		StayEnd:   start.AddDate(0, 0, 1),
		RoomIDs:   []uuid.UUID{f.roomID},
	})
	require.NoError(t, err)

	_, err = f.svc.Settle(f.ctx, txn.ID, &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: 100}},
	})
	require.ErrorIs(t, err, apperror.ErrProformaSettle)
}

func TestSettleUnknownTransaction(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	_, err := f.svc.Settle(f.ctx, uuid.New(), &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: 100}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 404, appErr.Code)
}

// ---------------------------------------------------------------------------
// Amendment

func TestAmendRaisingTotalRegressesStatus(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)
	total := txn.TotalAmount

	_, err := f.svc.Settle(f.ctx, txn.ID, &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodTransfer, Amount: total}},
	})
	require.NoError(t, err)
	require.Equal(t, enum.SettlementStatusPaid, f.txnRepo.transactions[txn.ID].Status)

	amended, err := f.svc.Amend(f.ctx, txn.ID, &AmendInput{
		AddCharges: []ChargeLineInput{{Description: "Laundry", Quantity: 1, UnitPrice: 5000}},
	})
	require.NoError(t, err)

	assert.Equal(t, enum.SettlementStatusPartial, amended.Status)
	assert.InDelta(t, total+5000, amended.TotalAmount, 0.01)
	assert.InDelta(t, 5000, amended.Balance, 0.01)
	// Recorded payments are untouched
	assert.InDelta(t, total, amended.PaidAmount, 0.01)
}

func TestAmendKeepsIssuedTaxConfiguration(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)
	issuedRates := make([]float64, 0, len(txn.Taxes))
	for _, tax := range txn.Taxes {
		issuedRates = append(issuedRates, tax.Rate)
	}

	amended, err := f.svc.Amend(f.ctx, txn.ID, &AmendInput{
		AddCharges: []ChargeLineInput{{Description: "Room service", Quantity: 1, UnitPrice: 2000}},
	})
	require.NoError(t, err)

	require.Len(t, amended.Taxes, len(issuedRates))
	for i, tax := range amended.Taxes {
		assert.InDelta(t, issuedRates[i], tax.Rate, 0.0001)
	}

	// Recomputed snapshot stays internally consistent
	var taxSum float64
	for _, tax := range amended.Taxes {
		taxSum += tax.Amount
	}
	assert.InDelta(t, amended.TotalAmount-amended.BaseValue, taxSum, 0.01)
}

func TestAmendRejectsPOS(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	txn, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.svc.Amend(f.ctx, txn.ID, &AmendInput{
		AddCharges: []ChargeLineInput{{Description: "Extra", Quantity: 1, UnitPrice: 100}},
	})
	require.Error(t, err)
	appErr := apperror.GetAppError(err)
	assert.Equal(t, 422, appErr.Code)
}

func TestAmendGuestDetailsOnly(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)
	totalBefore := txn.TotalAmount

	newName := "Ngozi Eze"
	amended, err := f.svc.Amend(f.ctx, txn.ID, &AmendInput{GuestName: &newName})
	require.NoError(t, err)

	assert.Equal(t, "Ngozi Eze", amended.GuestName)
	assert.InDelta(t, totalBefore, amended.TotalAmount, 0.01)
}

func TestAmendAddedItemsBumpSoldCounter(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)
	totalBefore := txn.TotalAmount

	amended, err := f.svc.Amend(f.ctx, txn.ID, &AmendInput{
		AddItems: []CartItemInput{{MenuItemID: f.itemID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, f.itemRepo.items[f.itemID].Sold)
	require.Len(t, amended.Lines, 2)
	assert.InDelta(t, 30000, amended.Lines[1].LineTotal, 0.01)
	assert.InDelta(t, totalBefore+30000, amended.TotalAmount, 0.01)
}

func TestAmendOversellingItemRejected(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)
	totalBefore := txn.TotalAmount

	_, err := f.svc.Amend(f.ctx, txn.ID, &AmendInput{
		AddItems: []CartItemInput{{MenuItemID: f.itemID, Quantity: 11}},
	})
	require.ErrorIs(t, err, apperror.ErrInsufficientStock)

	// Nothing moved: no counter bump, no appended line, no new total
	assert.Equal(t, 0, f.itemRepo.items[f.itemID].Sold)
	stored := f.txnRepo.transactions[txn.ID]
	assert.Len(t, stored.Lines, 1)
	assert.InDelta(t, totalBefore, stored.TotalAmount, 0.01)
}

func TestAmendProformaMovesNoCounters(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	start := time.Now().Truncate(24 * time.Hour)
	txn, err := f.svc.CreateProforma(f.ctx, &CreateFolioInput{
		UserID:    f.userID,
		GuestName: "Ada Obi",
		StayStart: start,
		StayEnd:   start.AddDate(0, 0, 2),
		RoomIDs:   []uuid.UUID{f.roomID},
	})
	require.NoError(t, err)

	_, err = f.svc.Amend(f.ctx, txn.ID, &AmendInput{
		AddItems: []CartItemInput{{MenuItemID: f.itemID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, f.itemRepo.items[f.itemID].Sold)
}

func TestAmendScopedToProperty(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)
	totalBefore := txn.TotalAmount

	otherCtx := infraRepo.WithProperty(context.Background(), uuid.New())
	_, err := f.svc.Amend(otherCtx, txn.ID, &AmendInput{
		AddCharges: []ChargeLineInput{{Description: "Laundry", Quantity: 1, UnitPrice: 5000}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
	assert.InDelta(t, totalBefore, f.txnRepo.transactions[txn.ID].TotalAmount, 0.01)
}

// ---------------------------------------------------------------------------
// Charge line validation

func TestCheckoutRejectsInvalidChargeLines(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	_, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID:  f.userID,
		Charges: []ChargeLineInput{{Description: "Corkage", Quantity: 0, UnitPrice: 500}},
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	_, err = f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID:  f.userID,
		Charges: []ChargeLineInput{{Description: "Corkage", Quantity: 1, UnitPrice: -500}},
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)

	assert.Empty(t, f.txnRepo.transactions)
}

func TestAmendRejectsInvalidChargeLines(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)

	_, err := f.svc.Amend(f.ctx, txn.ID, &AmendInput{
		AddCharges: []ChargeLineInput{{Description: "Adjustment", Quantity: -1, UnitPrice: 1000}},
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Len(t, f.txnRepo.transactions[txn.ID].Lines, 1)
}

// ---------------------------------------------------------------------------
// Property scoping on settlement

func TestSettleScopedToProperty(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)

	otherCtx := infraRepo.WithProperty(context.Background(), uuid.New())
	_, err := f.svc.Settle(otherCtx, txn.ID, &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: 100}},
	})
	require.Error(t, err)
	assert.Equal(t, 404, apperror.GetAppError(err).Code)
	assert.Empty(t, f.txnRepo.transactions[txn.ID].Payments)
}

// ---------------------------------------------------------------------------
// Void

func TestVoidKeepsDocumentAndReference(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)

	first, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.VoidTransaction(f.ctx, first.ID))

	kept, err := f.svc.GetTransaction(f.ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, kept.VoidedAt)
	assert.Equal(t, first.Reference, kept.Reference)

	// The voided sale keeps its slot in the day sequence
	second, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 1}},
	})
	require.NoError(t, err)
	day := time.Now().Format("20060102")
	assert.Equal(t, "POS-"+day+"-0002", second.Reference)
}

func TestVoidTwiceConflict(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)

	require.NoError(t, f.svc.VoidTransaction(f.ctx, txn.ID))

	err := f.svc.VoidTransaction(f.ctx, txn.ID)
	require.Error(t, err)
	assert.Equal(t, 409, apperror.GetAppError(err).Code)
}

func TestSettleVoidedRejected(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	txn := openFolio(t, f)

	require.NoError(t, f.svc.VoidTransaction(f.ctx, txn.ID))

	_, err := f.svc.Settle(f.ctx, txn.ID, &SettleInput{
		UserID:   f.userID,
		Payments: []billing.PaymentInput{{Method: enum.PaymentMethodCash, Amount: 100}},
	})
	require.Error(t, err)
	assert.Equal(t, 422, apperror.GetAppError(err).Code)
	assert.Empty(t, f.txnRepo.transactions[txn.ID].Payments)
}

// ---------------------------------------------------------------------------
// Reference collisions

func TestCheckoutRenumbersOnReferenceCollision(t *testing.T) {
	f := newFixture(t, enum.PricingModeInclusive)
	f.txnRepo.createErrs = []error{
		errors.New(`duplicate key value violates unique constraint "transactions_reference_key"`),
	}

	txn, err := f.svc.Checkout(f.ctx, &CheckoutInput{
		UserID: f.userID,
		Items:  []CartItemInput{{MenuItemID: f.itemID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Len(t, f.txnRepo.transactions, 1)
	// Counters land exactly once across the retry
	assert.Equal(t, 2, f.itemRepo.items[f.itemID].Sold)
	assert.NotEmpty(t, txn.Reference)
}
