package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// UserHandler handles operator administration HTTP requests
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// CreateUser creates an operator account. Admin-created accounts skip
// email verification.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req struct {
		FirstName string `json:"first_name" binding:"required"`
		LastName  string `json:"last_name" binding:"required"`
		Email     string `json:"email" binding:"required,email"`
		Password  string `json:"password" binding:"required,min=8"`
		RoleIDs   []uint `json:"role_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), &service.CreateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		RoleIDs:   req.RoleIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "User created successfully", user)
}

// GetUser retrieves an operator by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User retrieved successfully", user)
}

// UpdateUser updates an operator's profile fields
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req struct {
		FirstName *string `json:"first_name"`
		LastName  *string `json:"last_name"`
		Photo     *string `json:"photo"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), id, &service.UpdateUserInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Photo:     req.Photo,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User updated successfully", user)
}

// DeleteUser deletes an operator account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	currentID := GetUserID(c)
	if currentID != nil && *currentID == id {
		response.BadRequest(c, "You cannot delete your own account")
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "User deleted successfully", nil)
}

// ListUsers lists operator accounts with pagination
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.userService.ListUsers(c.Request.Context(), &pagination.PaginationParams{Page: page, PerPage: perPage}, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Users retrieved successfully", result)
}

// AssignRole grants a role to an operator
func (h *UserHandler) AssignRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	var req struct {
		RoleID uint `json:"role_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.userService.AssignRole(c.Request.Context(), id, req.RoleID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role assigned successfully", nil)
}

// RemoveRole revokes a role from an operator
func (h *UserHandler) RemoveRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	roleID, err := strconv.ParseUint(c.Param("roleId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid role ID")
		return
	}

	if err := h.userService.RemoveRole(c.Request.Context(), id, uint(roleID)); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role removed successfully", nil)
}

// ListRoles lists all roles with their permissions
func (h *UserHandler) ListRoles(c *gin.Context) {
	roles, err := h.userService.ListRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Roles retrieved successfully", roles)
}

// ListPermissions lists all permissions
func (h *UserHandler) ListPermissions(c *gin.Context) {
	permissions, err := h.userService.ListPermissions(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Permissions retrieved successfully", permissions)
}

// SyncRolePermissions replaces a role's permission set
func (h *UserHandler) SyncRolePermissions(c *gin.Context) {
	roleID, err := strconv.ParseUint(c.Param("roleId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid role ID")
		return
	}

	var req struct {
		PermissionIDs []uint `json:"permission_ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	role, err := h.userService.SyncRolePermissions(c.Request.Context(), uint(roleID), req.PermissionIDs)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Role permissions updated successfully", role)
}
