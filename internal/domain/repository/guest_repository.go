package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// GuestRepository defines the interface for guest directory operations
type GuestRepository interface {
	Create(ctx context.Context, guest *entity.Guest) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Guest, error)
	GetByEmail(ctx context.Context, email string) (*entity.Guest, error)
	GetByPhone(ctx context.Context, phone string) (*entity.Guest, error)
	Update(ctx context.Context, guest *entity.Guest) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Guest, int64, error)
	ListWithCursor(ctx context.Context, params *pagination.CursorParams, search string) ([]entity.Guest, error)
}
