package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
)

// TaxRuleRepository defines the interface for tax rule configuration
type TaxRuleRepository interface {
	Create(ctx context.Context, rule *entity.TaxRule) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRule, error)
	Update(ctx context.Context, rule *entity.TaxRule) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ListOrdered returns the property's rules in position order, the order
	// they are applied and printed in.
	ListOrdered(ctx context.Context, propertyID uuid.UUID) ([]entity.TaxRule, error)
	// Reorder rewrites positions to match the given ID sequence.
	Reorder(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) error
}
