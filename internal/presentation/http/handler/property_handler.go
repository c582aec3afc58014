package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/middleware"
)

// PropertyHandler handles property management HTTP requests
type PropertyHandler struct {
	propertyService *service.PropertyService
}

// NewPropertyHandler creates a new property handler
func NewPropertyHandler(propertyService *service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// CreateProperty creates a new property owned by the current user
func (h *PropertyHandler) CreateProperty(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	property, err := h.propertyService.CreateProperty(c.Request.Context(), *userID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Property created successfully", property)
}

// ListProperties lists properties the current user belongs to
func (h *PropertyHandler) ListProperties(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	properties, err := h.propertyService.ListPropertiesForUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Properties retrieved successfully", properties)
}

// GetCurrentProperty returns the property resolved from the request header
func (h *PropertyHandler) GetCurrentProperty(c *gin.Context) {
	propertyID := middleware.GetPropertyID(c)
	if propertyID == uuid.Nil {
		response.BadRequest(c, "Property context required")
		return
	}

	property, err := h.propertyService.GetProperty(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Property retrieved successfully", property)
}

// UpdateProperty renames the current property
func (h *PropertyHandler) UpdateProperty(c *gin.Context) {
	propertyID := middleware.GetPropertyID(c)
	if propertyID == uuid.Nil {
		response.BadRequest(c, "Property context required")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	property, err := h.propertyService.UpdateProperty(c.Request.Context(), propertyID, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Property updated successfully", property)
}

// ListMembers lists memberships of the current property
func (h *PropertyHandler) ListMembers(c *gin.Context) {
	propertyID := middleware.GetPropertyID(c)
	if propertyID == uuid.Nil {
		response.BadRequest(c, "Property context required")
		return
	}

	members, err := h.propertyService.ListMembers(c.Request.Context(), propertyID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Members retrieved successfully", members)
}

// AddMember adds an operator to the current property
func (h *PropertyHandler) AddMember(c *gin.Context) {
	propertyID := middleware.GetPropertyID(c)
	if propertyID == uuid.Nil {
		response.BadRequest(c, "Property context required")
		return
	}

	var req struct {
		UserID uuid.UUID `json:"user_id" binding:"required"`
		Role   string    `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	membership, err := h.propertyService.AddMember(c.Request.Context(), propertyID, req.UserID, req.Role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member added successfully", membership)
}

// RemoveMember removes an operator from the current property
func (h *PropertyHandler) RemoveMember(c *gin.Context) {
	propertyID := middleware.GetPropertyID(c)
	if propertyID == uuid.Nil {
		response.BadRequest(c, "Property context required")
		return
	}

	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		response.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.propertyService.RemoveMember(c.Request.Context(), propertyID, userID); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member removed successfully", nil)
}
