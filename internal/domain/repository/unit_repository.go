package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// UnitRepository defines the interface for revenue center data operations
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Unit, error)
	// GetWithBanks loads a unit with its settlement accounts for printing
	GetWithBanks(ctx context.Context, id uuid.UUID) (*entity.Unit, error)
	Update(ctx context.Context, unit *entity.Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Unit, int64, error)
}

// BankAccountRepository defines the interface for settlement account operations
type BankAccountRepository interface {
	Create(ctx context.Context, account *entity.BankAccount) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BankAccount, error)
	GetByUnitID(ctx context.Context, unitID uuid.UUID) ([]entity.BankAccount, error)
	Update(ctx context.Context, account *entity.BankAccount) error
	Delete(ctx context.Context, id uuid.UUID) error
}
