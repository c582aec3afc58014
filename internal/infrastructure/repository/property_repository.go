package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
)

type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository
func NewPropertyRepository(db *gorm.DB) domainRepo.PropertyRepository {
	return &propertyRepository{db: db}
}

func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	return r.db.WithContext(ctx).Create(property).Error
}

func (r *propertyRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	var property entity.Property
	err := r.db.WithContext(ctx).First(&property, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &property, err
}

func (r *propertyRepository) GetBySlug(ctx context.Context, slug string) (*entity.Property, error) {
	var property entity.Property
	err := r.db.WithContext(ctx).First(&property, "slug = ?", slug).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &property, err
}

func (r *propertyRepository) GetByOwner(ctx context.Context, ownerID uuid.UUID) ([]entity.Property, error) {
	var properties []entity.Property
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Find(&properties).Error
	return properties, err
}

func (r *propertyRepository) Update(ctx context.Context, property *entity.Property) error {
	return r.db.WithContext(ctx).Save(property).Error
}

func (r *propertyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Property{}, "id = ?", id).Error
}

// UpdateSettings replaces the settings document in a single write
func (r *propertyRepository) UpdateSettings(ctx context.Context, id uuid.UUID, settings entity.PropertySettings) error {
	return r.db.WithContext(ctx).Model(&entity.Property{}).
		Where("id = ?", id).
		Update("settings", settings).Error
}

func (r *propertyRepository) AddMember(ctx context.Context, membership *entity.PropertyMembership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

func (r *propertyRepository) RemoveMember(ctx context.Context, propertyID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("property_id = ? AND user_id = ?", propertyID, userID).
		Delete(&entity.PropertyMembership{}).Error
}

func (r *propertyRepository) GetMembership(ctx context.Context, propertyID, userID uuid.UUID) (*entity.PropertyMembership, error) {
	var membership entity.PropertyMembership
	err := r.db.WithContext(ctx).
		First(&membership, "property_id = ? AND user_id = ?", propertyID, userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &membership, err
}

func (r *propertyRepository) ListMembers(ctx context.Context, propertyID uuid.UUID) ([]entity.PropertyMembership, error) {
	var memberships []entity.PropertyMembership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("property_id = ?", propertyID).
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	for i := range memberships {
		memberships[i].PopulateUserDetails()
	}
	return memberships, nil
}

func (r *propertyRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]entity.Property, error) {
	var properties []entity.Property
	err := r.db.WithContext(ctx).
		Joins("JOIN property_memberships ON property_memberships.property_id = properties.id").
		Where("property_memberships.user_id = ?", userID).
		Find(&properties).Error
	return properties, err
}
