package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

type unitRepository struct {
	db *gorm.DB
}

// NewUnitRepository creates a new unit repository
func NewUnitRepository(db *gorm.DB) domainRepo.UnitRepository {
	return &unitRepository{db: db}
}

func (r *unitRepository) Create(ctx context.Context, unit *entity.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *unitRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	var unit entity.Unit
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &unit, err
}

func (r *unitRepository) GetBySlug(ctx context.Context, slug string) (*entity.Unit, error) {
	var unit entity.Unit
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&unit, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &unit, err
}

func (r *unitRepository) GetWithBanks(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	var unit entity.Unit
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		Preload("BankAccounts").
		First(&unit, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &unit, err
}

func (r *unitRepository) Update(ctx context.Context, unit *entity.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *unitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Unit{}, "id = ?", id).Error
}

func (r *unitRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Unit, int64, error) {
	var units []entity.Unit
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Unit{}).Scopes(PropertyScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Preload("BankAccounts").
		Order("name ASC").
		Find(&units).Error

	return units, total, err
}

type bankAccountRepository struct {
	db *gorm.DB
}

// NewBankAccountRepository creates a new bank account repository
func NewBankAccountRepository(db *gorm.DB) domainRepo.BankAccountRepository {
	return &bankAccountRepository{db: db}
}

func (r *bankAccountRepository) Create(ctx context.Context, account *entity.BankAccount) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *bankAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error) {
	var account entity.BankAccount
	err := r.db.WithContext(ctx).First(&account, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &account, err
}

func (r *bankAccountRepository) GetByUnitID(ctx context.Context, unitID uuid.UUID) ([]entity.BankAccount, error) {
	var accounts []entity.BankAccount
	err := r.db.WithContext(ctx).
		Where("unit_id = ?", unitID).
		Order("bank_name ASC").
		Find(&accounts).Error
	return accounts, err
}

func (r *bankAccountRepository) Update(ctx context.Context, account *entity.BankAccount) error {
	return r.db.WithContext(ctx).Save(account).Error
}

func (r *bankAccountRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.BankAccount{}, "id = ?", id).Error
}
