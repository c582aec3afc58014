package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/apperror"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/utils"
)

// UserService handles operator administration
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
	}
}

// CreateUserInput represents the create user input
type CreateUserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	RoleIDs   []uint
}

// CreateUser creates an operator account with pre-verified email
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  input.Email,
		Email:     input.Email,
		Password:  hashedPassword,
		Provider:  "local",
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Admin-created accounts skip email verification
	_ = s.userRepo.MarkEmailVerified(ctx, user.ID)

	for _, roleID := range input.RoleIDs {
		if err := s.userRepo.AssignRole(ctx, user.ID, roleID); err != nil {
			return nil, err
		}
	}
	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// GetUser retrieves a user with roles and permissions
func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// UpdateUserInput represents the update user input
type UpdateUserInput struct {
	FirstName *string
	LastName  *string
	Photo     *string
}

// UpdateUser updates an operator's profile fields
func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	if input.FirstName != nil {
		user.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		user.LastName = *input.LastName
	}
	if input.Photo != nil {
		user.Photo = input.Photo
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser soft-deletes an operator account
func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.Delete(ctx, id)
}

// ListUsers retrieves users with pagination and search
func (s *UserService) ListUsers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.User], error) {
	if params == nil {
		params = pagination.DefaultPagination()
	}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, err
	}

	paging := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(users, paging), nil
}

// AssignRole grants a role to a user
func (s *UserService) AssignRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return err
	}
	if role == nil {
		return apperror.NewNotFoundError("Role")
	}
	return s.userRepo.AssignRole(ctx, userID, roleID)
}

// RemoveRole revokes a role from a user
func (s *UserService) RemoveRole(ctx context.Context, userID uuid.UUID, roleID uint) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}
	return s.userRepo.RemoveRole(ctx, userID, roleID)
}

// ListRoles lists all roles with their permissions
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions lists all permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}

// SyncRolePermissions replaces a role's permission set
func (s *UserService) SyncRolePermissions(ctx context.Context, roleID uint, permissionIDs []uint) (*entity.Role, error) {
	role, err := s.roleRepo.GetByID(ctx, roleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role")
	}

	if err := s.roleRepo.SyncPermissions(ctx, roleID, permissionIDs); err != nil {
		return nil, err
	}
	return s.roleRepo.GetWithPermissions(ctx, roleID)
}
