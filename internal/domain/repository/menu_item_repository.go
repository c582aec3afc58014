package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// MenuItemRepository defines the interface for menu item data operations
type MenuItemRepository interface {
	Create(ctx context.Context, item *entity.MenuItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)
	// GetByIDs retrieves multiple items in a single query for cart validation
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error)
	Update(ctx context.Context, item *entity.MenuItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *MenuItemFilterParams) ([]entity.MenuItem, int64, error)
	GetLowStock(ctx context.Context, propertyID uuid.UUID) ([]entity.MenuItem, error)
	// RestockAdjust shifts the initial stock level by delta (positive or
	// negative), never below the sold counter.
	RestockAdjust(ctx context.Context, id uuid.UUID, delta int) (bool, error)
}

// MenuItemFilterParams contains filtering parameters for menu item queries
type MenuItemFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   string
	UnitID     *uuid.UUID
	LowStock   bool
	SortBy     string
	SortOrder  string
}
