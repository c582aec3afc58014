package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	domainRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
)

type taxRuleRepository struct {
	db *gorm.DB
}

// NewTaxRuleRepository creates a new tax rule repository
func NewTaxRuleRepository(db *gorm.DB) domainRepo.TaxRuleRepository {
	return &taxRuleRepository{db: db}
}

func (r *taxRuleRepository) Create(ctx context.Context, rule *entity.TaxRule) error {
	return r.db.WithContext(ctx).Create(rule).Error
}

func (r *taxRuleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.TaxRule, error) {
	var rule entity.TaxRule
	err := r.db.WithContext(ctx).
		Scopes(PropertyScope(ctx)).
		First(&rule, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &rule, err
}

func (r *taxRuleRepository) Update(ctx context.Context, rule *entity.TaxRule) error {
	return r.db.WithContext(ctx).Save(rule).Error
}

func (r *taxRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.TaxRule{}, "id = ?", id).Error
}

// ListOrdered returns rules in application order
func (r *taxRuleRepository) ListOrdered(ctx context.Context, propertyID uuid.UUID) ([]entity.TaxRule, error) {
	var rules []entity.TaxRule
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("position ASC, created_at ASC").
		Find(&rules).Error
	return rules, err
}

// Reorder rewrites positions to match the given ID sequence in one transaction
func (r *taxRuleRepository) Reorder(ctx context.Context, propertyID uuid.UUID, ids []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for pos, id := range ids {
			result := tx.Model(&entity.TaxRule{}).
				Where("id = ? AND property_id = ?", id, propertyID).
				Update("position", pos)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}
		return nil
	})
}
