package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// RoomRepository defines the interface for room data operations
type RoomRepository interface {
	Create(ctx context.Context, room *entity.Room) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Room, error)
	GetByNumber(ctx context.Context, number string) (*entity.Room, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Room, error)
	Update(ctx context.Context, room *entity.Room) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *RoomFilterParams) ([]entity.Room, int64, error)
	// CountOverlappingStays returns how many open folios reference the room
	// for a stay window overlapping [start, end). Proformas never count.
	CountOverlappingStays(ctx context.Context, roomID uuid.UUID, start, end time.Time) (int64, error)
}

// RoomFilterParams contains filtering parameters for room queries
type RoomFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	RoomType   string
	UnitID     *uuid.UUID
	ActiveOnly bool
	SortBy     string
	SortOrder  string
}
