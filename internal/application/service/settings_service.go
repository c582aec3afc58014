package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/billing"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
)

// SettingsService manages property billing configuration and hands out the
// immutable tax snapshots that every calculation site works from.
type SettingsService struct {
	propertyRepo repository.PropertyRepository
	taxRuleRepo  repository.TaxRuleRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(propertyRepo repository.PropertyRepository, taxRuleRepo repository.TaxRuleRepository) *SettingsService {
	return &SettingsService{
		propertyRepo: propertyRepo,
		taxRuleRepo:  taxRuleRepo,
	}
}

// GetSettings returns the property's current settings document
func (s *SettingsService) GetSettings(ctx context.Context) (*entity.PropertySettings, error) {
	property, err := s.property(ctx)
	if err != nil {
		return nil, err
	}
	settings := property.Settings
	return &settings, nil
}

// UpdateSettings replaces the settings document. Open carts are unaffected:
// they keep the snapshot they were created with.
func (s *SettingsService) UpdateSettings(ctx context.Context, settings entity.PropertySettings) (*entity.PropertySettings, error) {
	property, err := s.property(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.UpdateSettings(ctx, property.ID, settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Snapshot captures the property's pricing mode and ordered tax rules at the
// moment of the call
func (s *SettingsService) Snapshot(ctx context.Context) (billing.TaxSnapshot, error) {
	property, err := s.property(ctx)
	if err != nil {
		return billing.TaxSnapshot{}, err
	}

	rules, err := s.taxRuleRepo.ListOrdered(ctx, property.ID)
	if err != nil {
		return billing.TaxSnapshot{}, err
	}

	return billing.TaxSnapshot{
		Rules: rules,
		Mode:  property.Settings.PricingMode,
	}, nil
}

// ListTaxRules returns the property's rules in application order
func (s *SettingsService) ListTaxRules(ctx context.Context) ([]entity.TaxRule, error) {
	property, err := s.property(ctx)
	if err != nil {
		return nil, err
	}
	return s.taxRuleRepo.ListOrdered(ctx, property.ID)
}

// CreateTaxRuleInput represents the create tax rule input
type CreateTaxRuleInput struct {
	Name             string
	Rate             float64
	Kind             enum.TaxKind
	VisibleOnReceipt bool
}

// CreateTaxRule appends a rule at the end of the application order
func (s *SettingsService) CreateTaxRule(ctx context.Context, input *CreateTaxRuleInput) (*entity.TaxRule, error) {
	property, err := s.property(ctx)
	if err != nil {
		return nil, err
	}

	if input.Rate < 0 || input.Rate >= 1 {
		return nil, apperror.NewUnprocessableError("Tax rate must be a fraction between 0 and 1")
	}

	existing, err := s.taxRuleRepo.ListOrdered(ctx, property.ID)
	if err != nil {
		return nil, err
	}

	rule := &entity.TaxRule{
		PropertyID:       property.ID,
		Name:             input.Name,
		Rate:             input.Rate,
		Kind:             input.Kind,
		VisibleOnReceipt: input.VisibleOnReceipt,
		Position:         len(existing),
	}
	if err := s.taxRuleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// UpdateTaxRuleInput represents the update tax rule input
type UpdateTaxRuleInput struct {
	Name             *string
	Rate             *float64
	Kind             *enum.TaxKind
	VisibleOnReceipt *bool
}

// UpdateTaxRule edits a rule. Existing transactions keep their snapshots.
func (s *SettingsService) UpdateTaxRule(ctx context.Context, id uuid.UUID, input *UpdateTaxRuleInput) (*entity.TaxRule, error) {
	rule, err := s.taxRuleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NewNotFoundError("Tax rule")
	}

	if input.Name != nil {
		rule.Name = *input.Name
	}
	if input.Rate != nil {
		if *input.Rate < 0 || *input.Rate >= 1 {
			return nil, apperror.NewUnprocessableError("Tax rate must be a fraction between 0 and 1")
		}
		rule.Rate = *input.Rate
	}
	if input.Kind != nil {
		rule.Kind = *input.Kind
	}
	if input.VisibleOnReceipt != nil {
		rule.VisibleOnReceipt = *input.VisibleOnReceipt
	}

	if err := s.taxRuleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

// DeleteTaxRule removes a rule from future calculations
func (s *SettingsService) DeleteTaxRule(ctx context.Context, id uuid.UUID) error {
	rule, err := s.taxRuleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule == nil {
		return apperror.NewNotFoundError("Tax rule")
	}
	return s.taxRuleRepo.Delete(ctx, id)
}

// ReorderTaxRules rewrites the application order
func (s *SettingsService) ReorderTaxRules(ctx context.Context, ids []uuid.UUID) error {
	property, err := s.property(ctx)
	if err != nil {
		return err
	}
	return s.taxRuleRepo.Reorder(ctx, property.ID, ids)
}

func (s *SettingsService) property(ctx context.Context) (*entity.Property, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}

	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperror.NewNotFoundError("Property")
	}
	return property, nil
}
