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

// RoomService handles room catalog operations
type RoomService struct {
	roomRepo repository.RoomRepository
}

// NewRoomService creates a new room service
func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{roomRepo: roomRepo}
}

// CreateRoomInput represents the create room input
type CreateRoomInput struct {
	UnitID      *uuid.UUID
	Number      string
	RoomType    string
	NightlyRate float64
	Capacity    int
	Notes       *string
}

// CreateRoom creates a new room
func (s *RoomService) CreateRoom(ctx context.Context, input *CreateRoomInput) (*entity.Room, error) {
	propertyID, ok := infraRepo.GetPropertyID(ctx)
	if !ok {
		return nil, apperror.NewBadRequestError("Property context required")
	}

	if input.NightlyRate < 0 {
		return nil, apperror.NewUnprocessableError("Nightly rate must not be negative")
	}

	existing, err := s.roomRepo.GetByNumber(ctx, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("A room with this number already exists")
	}

	capacity := input.Capacity
	if capacity <= 0 {
		capacity = 2
	}

	room := &entity.Room{
		PropertyID:  propertyID,
		UnitID:      input.UnitID,
		Number:      input.Number,
		RoomType:    input.RoomType,
		NightlyRate: input.NightlyRate,
		Capacity:    capacity,
		Active:      true,
		Notes:       input.Notes,
	}
	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// GetRoom retrieves a room by ID
func (s *RoomService) GetRoom(ctx context.Context, id uuid.UUID) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NewNotFoundError("Room")
	}
	return room, nil
}

// UpdateRoomInput represents the update room input
type UpdateRoomInput struct {
	UnitID      *uuid.UUID
	Number      *string
	RoomType    *string
	NightlyRate *float64
	Capacity    *int
	Active      *bool
	Notes       *string
}

// UpdateRoom updates a room. Rate changes apply to future folios only; issued
// documents keep their line prices.
func (s *RoomService) UpdateRoom(ctx context.Context, id uuid.UUID, input *UpdateRoomInput) (*entity.Room, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, apperror.NewNotFoundError("Room")
	}

	if input.Number != nil && *input.Number != room.Number {
		existing, err := s.roomRepo.GetByNumber(ctx, *input.Number)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != room.ID {
			return nil, apperror.NewConflictError("A room with this number already exists")
		}
		room.Number = *input.Number
	}
	if input.UnitID != nil {
		room.UnitID = input.UnitID
	}
	if input.RoomType != nil {
		room.RoomType = *input.RoomType
	}
	if input.NightlyRate != nil {
		if *input.NightlyRate < 0 {
			return nil, apperror.NewUnprocessableError("Nightly rate must not be negative")
		}
		room.NightlyRate = *input.NightlyRate
	}
	if input.Capacity != nil && *input.Capacity > 0 {
		room.Capacity = *input.Capacity
	}
	if input.Active != nil {
		room.Active = *input.Active
	}
	if input.Notes != nil {
		room.Notes = input.Notes
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

// DeleteRoom soft-deletes a room. Existing folio lines keep their snapshot.
func (s *RoomService) DeleteRoom(ctx context.Context, id uuid.UUID) error {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if room == nil {
		return apperror.NewNotFoundError("Room")
	}
	return s.roomRepo.Delete(ctx, id)
}

// ListRooms retrieves rooms with pagination and filtering
func (s *RoomService) ListRooms(ctx context.Context, params *repository.RoomFilterParams) (*pagination.PaginatedResult[entity.Room], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	params.Pagination.Validate()

	rooms, total, err := s.roomRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(rooms, paging), nil
}

// CheckAvailability reports whether a room is free for a stay window
func (s *RoomService) CheckAvailability(ctx context.Context, id uuid.UUID, start, end time.Time) (bool, error) {
	room, err := s.roomRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if room == nil {
		return false, apperror.NewNotFoundError("Room")
	}
	if !room.Active {
		return false, nil
	}
	if !end.After(start) {
		return false, apperror.NewUnprocessableError("Stay end must be after stay start")
	}

	overlapping, err := s.roomRepo.CountOverlappingStays(ctx, id, start, end)
	if err != nil {
		return false, err
	}
	return overlapping == 0, nil
}
