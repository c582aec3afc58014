package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
)

type roomRepository struct {
	db *gorm.DB
}

// NewRoomRepository creates a new room repository
func NewRoomRepository(db *gorm.DB) domainRepo.RoomRepository {
	return &roomRepository{db: db}
}

func (r *roomRepository) Create(ctx context.Context, room *entity.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	var room entity.Room
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&room, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &room, err
}

func (r *roomRepository) GetByNumber(ctx context.Context, number string) (*entity.Room, error) {
	var room entity.Room
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&room, "number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &room, err
}

func (r *roomRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Room, error) {
	if len(ids) == 0 {
		return []entity.Room{}, nil
	}
	var rooms []entity.Room
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		Where("id IN ?", ids).
		Find(&rooms).Error
	return rooms, err
}

func (r *roomRepository) Update(ctx context.Context, room *entity.Room) error {
	return r.db.WithContext(ctx).Save(room).Error
}

func (r *roomRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Room{}, "id = ?", id).Error
}

func (r *roomRepository) List(ctx context.Context, params *domainRepo.RoomFilterParams) ([]entity.Room, int64, error) {
	var rooms []entity.Room
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Room{}).Scopes(PropertyScope(ctx))

	if params.Search != "" {
		query = query.Where("number ILIKE ? OR room_type ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.RoomType != "" {
		query = query.Where("room_type = ?", params.RoomType)
	}
	if params.UnitID != nil {
		query = query.Where("unit_id = ?", *params.UnitID)
	}
	if params.ActiveOnly {
		query = query.Where("active = true")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := "number"
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
		Find(&rooms).Error

	return rooms, total, err
}

// CountOverlappingStays counts open POS/folio transactions whose stay window
// intersects [start, end). Proformas are quotes and never block a room.
func (r *roomRepository) CountOverlappingStays(ctx context.Context, roomID uuid.UUID, start, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Transaction{}).
		Joins("JOIN transaction_lines ON transaction_lines.transaction_id = transactions.id").
		Where("transaction_lines.room_id = ?", roomID).
		Where("transactions.type <> ?", enum.TransactionTypeProforma).
		Where("transactions.deleted_at IS NULL AND transaction_lines.deleted_at IS NULL").
		Where("transactions.stay_start < ? AND transactions.stay_end > ?", end, start).
		Count(&count).Error
	return count, err
}
