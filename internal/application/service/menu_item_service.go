package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// MenuItemService handles the sellable item catalog and its stock counters
type MenuItemService struct {
	menuItemRepo repository.MenuItemRepository
}

// NewMenuItemService creates a new menu item service
func NewMenuItemService(menuItemRepo repository.MenuItemRepository) *MenuItemService {
	return &MenuItemService{menuItemRepo: menuItemRepo}
}

// CreateMenuItemInput represents the create menu item input
type CreateMenuItemInput struct {
	UnitID       *uuid.UUID
	Name         string
	Category     string
	MeasureUnit  string
	Price        float64
	InitialStock int
	StockAlert   int
	Tracked      bool
}

// CreateMenuItem creates a new sellable item
func (s *MenuItemService) CreateMenuItem(ctx context.Context, input *CreateMenuItemInput) (*entity.MenuItem, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}

	if input.Price < 0 {
		return nil, apperror.NewUnprocessableError("Price must not be negative")
	}
	if input.InitialStock < 0 {
		return nil, apperror.NewUnprocessableError("Initial stock must not be negative")
	}

	item := &entity.MenuItem{
		PropertyID:   propertyID,
		UnitID:       input.UnitID,
		Name:         input.Name,
		Category:     input.Category,
		MeasureUnit:  input.MeasureUnit,
		Price:        input.Price,
		InitialStock: input.InitialStock,
		StockAlert:   input.StockAlert,
		Tracked:      input.Tracked,
	}
	if err := s.menuItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (s *MenuItemService) GetMenuItem(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	return item, nil
}

// UpdateMenuItemInput represents the update menu item input. Stock counters
// are not edited here: Sold only moves with sales, InitialStock via Restock.
type UpdateMenuItemInput struct {
	UnitID      *uuid.UUID
	Name        *string
	Category    *string
	MeasureUnit *string
	Price       *float64
	StockAlert  *int
	Tracked     *bool
}

// UpdateMenuItem updates an item's catalog fields
func (s *MenuItemService) UpdateMenuItem(ctx context.Context, id uuid.UUID, input *UpdateMenuItemInput) (*entity.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}

	if input.UnitID != nil {
		item.UnitID = input.UnitID
	}
	if input.Name != nil {
		item.Name = *input.Name
	}
	if input.Category != nil {
		item.Category = *input.Category
	}
	if input.MeasureUnit != nil {
		item.MeasureUnit = *input.MeasureUnit
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperror.NewUnprocessableError("Price must not be negative")
		}
		item.Price = *input.Price
	}
	if input.StockAlert != nil {
		item.StockAlert = *input.StockAlert
	}
	if input.Tracked != nil {
		item.Tracked = *input.Tracked
	}

	if err := s.menuItemRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem soft-deletes an item. Lines referencing it keep their snapshot.
func (s *MenuItemService) DeleteMenuItem(ctx context.Context, id uuid.UUID) error {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return apperror.NewNotFoundError("Menu item")
	}
	return s.menuItemRepo.Delete(ctx, id)
}

// ListMenuItems retrieves menu items with pagination and filtering
func (s *MenuItemService) ListMenuItems(ctx context.Context, params *repository.MenuItemFilterParams) (*pagination.PaginatedResult[entity.MenuItem], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	items, total, err := s.menuItemRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(items, paging), nil
}

// GetLowStock returns tracked items at or below their alert threshold
func (s *MenuItemService) GetLowStock(ctx context.Context) ([]entity.MenuItem, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}
	return s.menuItemRepo.GetLowStock(ctx, propertyID)
}

// Restock shifts an item's stock level by delta. Negative deltas write off
// stock but can never push the level below what has already been sold.
func (s *MenuItemService) Restock(ctx context.Context, id uuid.UUID, delta int) (*entity.MenuItem, error) {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Menu item")
	}
	if delta == 0 {
		return item, nil
	}

	ok, err := s.menuItemRepo.RestockAdjust(ctx, id, delta)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.NewConflictError("Stock level cannot drop below units already sold")
	}
	return s.menuItemRepo.GetByID(ctx, id)
}
