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

type guestRepository struct {
	db *gorm.DB
}

// NewGuestRepository creates a new guest repository
func NewGuestRepository(db *gorm.DB) domainRepo.GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *entity.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *guestRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	var guest entity.Guest
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&guest, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &guest, err
}

func (r *guestRepository) GetByEmail(ctx context.Context, email string) (*entity.Guest, error) {
	var guest entity.Guest
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&guest, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &guest, err
}

func (r *guestRepository) GetByPhone(ctx context.Context, phone string) (*entity.Guest, error) {
	var guest entity.Guest
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&guest, "phone = ?", phone).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &guest, err
}

func (r *guestRepository) Update(ctx context.Context, guest *entity.Guest) error {
	return r.db.WithContext(ctx).Save(guest).Error
}

func (r *guestRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Guest{}, "id = ?", id).Error
}

func (r *guestRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Guest, int64, error) {
	var guests []entity.Guest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Guest{}).Scopes(PropertyScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("name ASC").
		Find(&guests).Error

	return guests, total, err
}

// ListWithCursor returns guests using cursor-based pagination
func (r *guestRepository) ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Guest, error) {
	var guests []entity.Guest

	params.Validate()
	query := r.db.WithContext(ctx).Model(&entity.Guest{}).Scopes(PropertyScope(ctx))

	if search != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}

	cursor, err := params.DecodeCursor()
	if err != nil {
		return nil, err
	}

	if cursor != nil {
		if params.Direction == pagination.CursorDirectionNext {
			query = query.Where("(created_at, id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		} else {
			query = query.Where("(created_at, id) < (?, ?)", cursor.CreatedAt, cursor.ID)
		}
	}

	err = query.Limit(params.Limit + 1).
		Order("created_at ASC, id ASC").
		Find(&guests).Error

	return guests, err
}
