package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	infraRepo "github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/infrastructure/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// GuestService handles the guest directory
type GuestService struct {
	guestRepo repository.GuestRepository
}

// NewGuestService creates a new guest service
func NewGuestService(guestRepo repository.GuestRepository) *GuestService {
	return &GuestService{guestRepo: guestRepo}
}

// CreateGuestInput represents the create guest input
type CreateGuestInput struct {
	UserID  uuid.UUID
	Name    string
	Email   *string
	Phone   *string
	Address *string
	Company *string
}

// CreateGuest creates a new guest directory record
func (s *GuestService) CreateGuest(ctx context.Context, input *CreateGuestInput) (*entity.Guest, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}

	if input.Email != nil && *input.Email != "" {
		existing, err := s.guestRepo.GetByEmail(ctx, *input.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("A guest with this email already exists")
		}
	}

	guest := &entity.Guest{
		PropertyID: propertyID,
		UserID:     input.UserID,
		Name:       input.Name,
		Email:      input.Email,
		Phone:      input.Phone,
		Address:    input.Address,
		Company:    input.Company,
	}
	if err := s.guestRepo.Create(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// GetGuest retrieves a guest by ID
func (s *GuestService) GetGuest(ctx context.Context, id uuid.UUID) (*entity.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, apperror.NewNotFoundError("Guest")
	}
	return guest, nil
}

// UpdateGuestInput represents the update guest input
type UpdateGuestInput struct {
	Name    *string
	Email   *string
	Phone   *string
	Address *string
	Company *string
}

// UpdateGuest updates a guest. Transactions carry their own guest snapshot,
// so directory edits never rewrite issued documents.
func (s *GuestService) UpdateGuest(ctx context.Context, id uuid.UUID, input *UpdateGuestInput) (*entity.Guest, error) {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if guest == nil {
		return nil, apperror.NewNotFoundError("Guest")
	}

	if input.Name != nil {
		guest.Name = *input.Name
	}
	if input.Email != nil {
		guest.Email = input.Email
	}
	if input.Phone != nil {
		guest.Phone = input.Phone
	}
	if input.Address != nil {
		guest.Address = input.Address
	}
	if input.Company != nil {
		guest.Company = input.Company
	}

	if err := s.guestRepo.Update(ctx, guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// DeleteGuest soft-deletes a guest directory record
func (s *GuestService) DeleteGuest(ctx context.Context, id uuid.UUID) error {
	guest, err := s.guestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if guest == nil {
		return apperror.NewNotFoundError("Guest")
	}
	return s.guestRepo.Delete(ctx, id)
}

// ListGuests retrieves guests with pagination and search
func (s *GuestService) ListGuests(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Guest], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	guests, total, err := s.guestRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(guests, paging), nil
}

// ListGuestsWithCursor retrieves guests with cursor pagination
func (s *GuestService) ListGuestsWithCursor(ctx context.Context, params *pagination.CursorParams, search string) (*pagination.CursorPaginatedResult[entity.Guest], error) {
	if params == nil {
		params = pagination.DefaultCursorParams()
	}
	params.Validate()

	guests, err := s.guestRepo.ListWithCursor(ctx, params, search)
	if err != nil {
		return nil, err
	}

	paging, items := pagination.NewCursorPagination(guests, params.Limit,
		func(g entity.Guest) string { return g.ID.String() },
		func(g entity.Guest) time.Time { return g.CreatedAt },
	)
	paging.HasPrev = params.Cursor != ""
	return pagination.NewCursorPaginatedResult(items, paging), nil
}
