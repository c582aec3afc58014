package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// GuestHandler handles guest directory HTTP requests
type GuestHandler struct {
	guestService *service.GuestService
}

// NewGuestHandler creates a new guest handler
func NewGuestHandler(guestService *service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// CreateGuest creates a new guest directory record
func (h *GuestHandler) CreateGuest(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req struct {
		Name    string  `json:"name" binding:"required"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Company *string `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	guest, err := h.guestService.CreateGuest(c.Request.Context(), &service.CreateGuestInput{
		UserID:  *userID,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Company: req.Company,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Guest created successfully", guest)
}

// GetGuest retrieves a guest by ID
func (h *GuestHandler) GetGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid guest ID")
		return
	}

	guest, err := h.guestService.GetGuest(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest retrieved successfully", guest)
}

// UpdateGuest updates a guest directory record
func (h *GuestHandler) UpdateGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid guest ID")
		return
	}

	var req struct {
		Name    *string `json:"name"`
		Email   *string `json:"email"`
		Phone   *string `json:"phone"`
		Address *string `json:"address"`
		Company *string `json:"company"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	guest, err := h.guestService.UpdateGuest(c.Request.Context(), id, &service.UpdateGuestInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Company: req.Company,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest updated successfully", guest)
}

// DeleteGuest deletes a guest directory record
func (h *GuestHandler) DeleteGuest(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid guest ID")
		return
	}

	if err := h.guestService.DeleteGuest(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest deleted successfully", nil)
}

// ListGuests lists guests. Supports both offset and cursor pagination.
func (h *GuestHandler) ListGuests(c *gin.Context) {
	search := c.Query("search")

	if c.Query("cursor") != "" || c.Query("limit") != "" {
		cursorParams := pagination.DefaultCursorParams()
		cursorParams.Cursor = c.Query("cursor")
		if direction := c.Query("direction"); direction != "" {
			cursorParams.Direction = pagination.CursorDirection(direction)
		}
		if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
			cursorParams.Limit = limit
		}

		result, err := h.guestService.ListGuestsWithCursor(c.Request.Context(), cursorParams, search)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Guests retrieved successfully", result)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.guestService.ListGuests(c.Request.Context(), &pagination.PaginationParams{Page: page, PerPage: perPage}, search)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Guests retrieved successfully", result)
}
