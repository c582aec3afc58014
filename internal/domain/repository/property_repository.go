package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
)

// PropertyRepository defines the interface for property and settings access
type PropertyRepository interface {
	Create(ctx context.Context, property *entity.Property) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Property, error)
	GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Property, error)
	Update(ctx context.Context, property *entity.Property) error
	Delete(ctx context.Context, id uuid.UUID) error
	// UpdateSettings replaces the settings document in one write
	UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.PropertySettings) error

	// Membership management
	AddMember(ctx context.Context, membership *entity.PropertyMembership) error
	RemoveMember(ctx context.Context, propertyID, userID uuid.UUID) error
	GetMembership(ctx context.Context, propertyID, userID uuid.UUID) (*entity.PropertyMembership, error)
	ListMembers(ctx context.Context, propertyID uuid.UUID) ([]entity.PropertyMembership, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Property, error)
}
