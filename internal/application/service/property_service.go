package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
)

// PropertyService handles properties and operator memberships
type PropertyService struct {
	propertyRepo repository.PropertyRepository
	userRepo     repository.UserRepository
}

// NewPropertyService creates a new property service
func NewPropertyService(propertyRepo repository.PropertyRepository, userRepo repository.UserRepository) *PropertyService {
	return &PropertyService{
		propertyRepo: propertyRepo,
		userRepo:     userRepo,
	}
}

// CreateProperty creates a property owned by the given user
func (s *PropertyService) CreateProperty(ctx context.Context, ownerID uuid.UUID, name string) (*entity.Property, error) {
	slug := utils.Slugify(name)
	existing, err := s.propertyRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A property with this name already exists")
	}

	property := &entity.Property{
		Name:     name,
		Slug:     slug,
		OwnerID:  ownerID,
		Settings: entity.DefaultPropertySettings(),
	}
	if err := s.propertyRepo.Create(ctx, property); err != nil {
		return nil, err
	}

	membership := &entity.PropertyMembership{
		PropertyID: property.ID,
		UserID:     ownerID,
		Role:       "owner",
	}
	if err := s.propertyRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return property, nil
}

// GetProperty retrieves a property by ID
func (s *PropertyService) GetProperty(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperror.NewNotFoundError("Property")
	}
	return property, nil
}

// ListPropertiesForUser lists the properties a user is a member of
func (s *PropertyService) ListPropertiesForUser(ctx context.Context, userID uuid.UUID) ([]entity.Property, error) {
	return s.propertyRepo.ListForUser(ctx, userID)
}

// UpdateProperty renames a property
func (s *PropertyService) UpdateProperty(ctx context.Context, id uuid.UUID, name string) (*entity.Property, error) {
	property, err := s.propertyRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperror.NewNotFoundError("Property")
	}

	slug := utils.Slugify(name)
	if slug != property.Slug {
		existing, err := s.propertyRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != property.ID {
			return nil, apperror.NewConflictError("A property with this name already exists")
		}
	}

	property.Name = name
	property.Slug = slug
	if err := s.propertyRepo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

// AddMember adds an operator to a property
func (s *PropertyService) AddMember(ctx context.Context, propertyID, userID uuid.UUID, role string) (*entity.PropertyMembership, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperror.NewNotFoundError("Property")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	existing, err := s.propertyRepo.GetMembership(ctx, propertyID, userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("User is already a member of this property")
	}

	if role == "" {
		role = "member"
	}
	membership := &entity.PropertyMembership{
		PropertyID: propertyID,
		UserID:     userID,
		Role:       role,
	}
	if err := s.propertyRepo.AddMember(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// RemoveMember removes an operator from a property. The owner cannot leave.
func (s *PropertyService) RemoveMember(ctx context.Context, propertyID, userID uuid.UUID) error {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return err
	}
	if property == nil {
		return apperror.NewNotFoundError("Property")
	}
	if property.OwnerID == userID {
		return apperror.NewUnprocessableError("The property owner cannot be removed")
	}

	membership, err := s.propertyRepo.GetMembership(ctx, propertyID, userID)
	if err != nil {
		return err
	}
	if membership == nil {
		return apperror.NewNotFoundError("Membership")
	}
	return s.propertyRepo.RemoveMember(ctx, propertyID, userID)
}

// ListMembers lists a property's operators with user details populated
func (s *PropertyService) ListMembers(ctx context.Context, propertyID uuid.UUID) ([]entity.PropertyMembership, error) {
	property, err := s.propertyRepo.GetByID(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, apperror.NewNotFoundError("Property")
	}

	members, err := s.propertyRepo.ListMembers(ctx, propertyID)
	if err != nil {
		return nil, err
	}
	for i := range members {
		members[i].PopulateUserDetails()
	}
	return members, nil
}

// IsMember reports whether a user belongs to a property
func (s *PropertyService) IsMember(ctx context.Context, propertyID, userID uuid.UUID) (bool, error) {
	membership, err := s.propertyRepo.GetMembership(ctx, propertyID, userID)
	if err != nil {
		return false, err
	}
	return membership != nil, nil
}
