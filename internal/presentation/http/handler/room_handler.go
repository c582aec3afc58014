package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// RoomHandler handles room management HTTP requests
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler creates a new room handler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{roomService: roomService}
}

// CreateRoom creates a new room
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req struct {
		UnitID      *uuid.UUID `json:"unit_id"`
		Number      string     `json:"number" binding:"required"`
		RoomType    string     `json:"room_type" binding:"required"`
		NightlyRate float64    `json:"nightly_rate" binding:"required"`
		Capacity    int        `json:"capacity"`
		Notes       *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.CreateRoom(c.Request.Context(), &service.CreateRoomInput{
		UnitID:      req.UnitID,
		Number:      req.Number,
		RoomType:    req.RoomType,
		NightlyRate: req.NightlyRate,
		Capacity:    req.Capacity,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Room created successfully", room)
}

// GetRoom retrieves a room by ID
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	room, err := h.roomService.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room retrieved successfully", room)
}

// UpdateRoom updates a room
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	var req struct {
		UnitID      *uuid.UUID `json:"unit_id"`
		Number      *string    `json:"number"`
		RoomType    *string    `json:"room_type"`
		NightlyRate *float64   `json:"nightly_rate"`
		Capacity    *int       `json:"capacity"`
		Active      *bool      `json:"active"`
		Notes       *string    `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	room, err := h.roomService.UpdateRoom(c.Request.Context(), id, &service.UpdateRoomInput{
		UnitID:      req.UnitID,
		Number:      req.Number,
		RoomType:    req.RoomType,
		NightlyRate: req.NightlyRate,
		Capacity:    req.Capacity,
		Active:      req.Active,
		Notes:       req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room updated successfully", room)
}

// DeleteRoom deletes a room
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	if err := h.roomService.DeleteRoom(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Room deleted successfully", nil)
}

// ListRooms lists rooms with filtering and pagination
func (h *RoomHandler) ListRooms(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.RoomFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		RoomType:   c.Query("room_type"),
		ActiveOnly: c.Query("active") == "true",
		SortBy:     c.DefaultQuery("sort_by", "number"),
		SortOrder:  c.DefaultQuery("sort_order", "asc"),
	}
	if unitID, err := uuid.Parse(c.Query("unit_id")); err == nil {
		params.UnitID = &unitID
	}

	result, err := h.roomService.ListRooms(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Rooms retrieved successfully", result)
}

// CheckAvailability checks whether a room is free for a stay window
func (h *RoomHandler) CheckAvailability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid room ID")
		return
	}

	start := parseDateQuery(c.Query("start"))
	end := parseDateQuery(c.Query("end"))
	if start == nil || end == nil {
		response.BadRequest(c, "start and end dates are required")
		return
	}

	available, err := h.roomService.CheckAvailability(c.Request.Context(), id, *start, *end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Availability checked", gin.H{
		"room_id":   id,
		"start":     start,
		"end":       end,
		"available": available,
	})
}
