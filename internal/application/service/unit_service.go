package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
)

// UnitService handles revenue centers and their settlement accounts
type UnitService struct {
	unitRepo        repository.UnitRepository
	bankAccountRepo repository.BankAccountRepository
}

// NewUnitService creates a new unit service
func NewUnitService(unitRepo repository.UnitRepository, bankAccountRepo repository.BankAccountRepository) *UnitService {
	return &UnitService{
		unitRepo:        unitRepo,
		bankAccountRepo: bankAccountRepo,
	}
}

// CreateUnit creates a new revenue center
func (s *UnitService) CreateUnit(ctx context.Context, name string) (*entity.Unit, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}

	slug := utils.Slugify(name)
	existing, err := s.unitRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A unit with this name already exists")
	}

	unit := &entity.Unit{
		PropertyID: propertyID,
		Name:       name,
		Slug:       slug,
	}
	if err := s.unitRepo.Create(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// GetUnit retrieves a unit with its settlement accounts
func (s *UnitService) GetUnit(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetWithBanks(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}
	return unit, nil
}

// UpdateUnit renames a revenue center
func (s *UnitService) UpdateUnit(ctx context.Context, id uuid.UUID, name string) (*entity.Unit, error) {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	slug := utils.Slugify(name)
	if slug != unit.Slug {
		existing, err := s.unitRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != unit.ID {
			return nil, apperror.NewConflictError("A unit with this name already exists")
		}
	}

	unit.Name = name
	unit.Slug = slug
	if err := s.unitRepo.Update(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

// DeleteUnit soft-deletes a revenue center
func (s *UnitService) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	unit, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if unit == nil {
		return apperror.NewNotFoundError("Unit")
	}
	return s.unitRepo.Delete(ctx, id)
}

// ListUnits retrieves units with pagination and search
func (s *UnitService) ListUnits(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Unit], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	units, total, err := s.unitRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(units, paging), nil
}

// BankAccountInput represents a settlement account input
type BankAccountInput struct {
	BankName      string
	AccountName   string
	AccountNumber string
}

// AddBankAccount attaches a settlement account to a unit
func (s *UnitService) AddBankAccount(ctx context.Context, unitID uuid.UUID, input *BankAccountInput) (*entity.BankAccount, error) {
	unit, err := s.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, apperror.NewNotFoundError("Unit")
	}

	account := &entity.BankAccount{
		UnitID:        unitID,
		BankName:      input.BankName,
		AccountName:   input.AccountName,
		AccountNumber: input.AccountNumber,
	}
	if err := s.bankAccountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// UpdateBankAccount edits a settlement account
func (s *UnitService) UpdateBankAccount(ctx context.Context, id uuid.UUID, input *BankAccountInput) (*entity.BankAccount, error) {
	account, err := s.bankAccountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperror.NewNotFoundError("Bank account")
	}

	account.BankName = input.BankName
	account.AccountName = input.AccountName
	account.AccountNumber = input.AccountNumber
	if err := s.bankAccountRepo.Update(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// RemoveBankAccount detaches a settlement account from its unit
func (s *UnitService) RemoveBankAccount(ctx context.Context, id uuid.UUID) error {
	account, err := s.bankAccountRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account == nil {
		return apperror.NewNotFoundError("Bank account")
	}
	return s.bankAccountRepo.Delete(ctx, id)
}
