package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
)

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository creates a new menu item repository
func NewMenuItemRepository(db *gorm.DB) domainRepo.MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &item, err
}

// GetByIDs retrieves multiple items in a single query
func (r *menuItemRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.MenuItem, error) {
	if len(ids) == 0 {
		return []entity.MenuItem{}, nil
	}
	var items []entity.MenuItem
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		Where("id IN ?", ids).
		Find(&items).Error
	return items, err
}

func (r *menuItemRepository) Update(ctx context.Context, item *entity.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.MenuItem{}, "id = ?", id).Error
}

func (r *menuItemRepository) List(ctx context.Context, params *domainRepo.MenuItemFilterParams) ([]entity.MenuItem, int64, error) {
	var items []entity.MenuItem
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.MenuItem{}).Scopes(PropertyScope(ctx))

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR category ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.UnitID != nil {
		query = query.Where("unit_id = ?", *params.UnitID)
	}
	if params.LowStock {
		query = query.Where("tracked = true AND initial_stock - sold <= stock_alert")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "name"
	sortOrder := "ASC"
	if params.SortBy != "" {
		sortBy = params.SortBy
	}
	if params.SortOrder == "DESC" || params.SortOrder == "desc" {
		sortOrder = "DESC"
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(sortBy + " " + sortOrder).
		Find(&items).Error

	return items, total, err
}

func (r *menuItemRepository) GetLowStock(ctx context.Context, propertyID uuid.UUID) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.db.WithContext(ctx).
		Where("property_id = ? AND tracked = true AND initial_stock - sold <= stock_alert", propertyID).
		Find(&items).Error
	return items, err
}

// RestockAdjust shifts initial stock by delta. The guard keeps the level from
// dropping below what has already been sold.
func (r *menuItemRepository) RestockAdjust(ctx context.Context, id uuid.UUID, delta int) (bool, error) {
	result := r.db.WithContext(ctx).Model(&entity.MenuItem{}).
		Where("id = ? AND initial_stock + ? >= sold", id, delta).
		Update("initial_stock", gorm.Expr("initial_stock + ?", delta))

	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
