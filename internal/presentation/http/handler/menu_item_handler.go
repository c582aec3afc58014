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

// MenuItemHandler handles menu item management HTTP requests
type MenuItemHandler struct {
	menuItemService *service.MenuItemService
}

// NewMenuItemHandler creates a new menu item handler
func NewMenuItemHandler(menuItemService *service.MenuItemService) *MenuItemHandler {
	return &MenuItemHandler{menuItemService: menuItemService}
}

// CreateMenuItem creates a new sellable item
func (h *MenuItemHandler) CreateMenuItem(c *gin.Context) {
	var req struct {
		UnitID       *uuid.UUID `json:"unit_id"`
		Name         string     `json:"name" binding:"required"`
		Category     string     `json:"category"`
		MeasureUnit  string     `json:"measure_unit"`
		Price        float64    `json:"price" binding:"required"`
		InitialStock int        `json:"initial_stock"`
		StockAlert   int        `json:"stock_alert"`
		Tracked      *bool      `json:"tracked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	tracked := true
	if req.Tracked != nil {
		tracked = *req.Tracked
	}

	item, err := h.menuItemService.CreateMenuItem(c.Request.Context(), &service.CreateMenuItemInput{
		UnitID:       req.UnitID,
		Name:         req.Name,
		Category:     req.Category,
		MeasureUnit:  req.MeasureUnit,
		Price:        req.Price,
		InitialStock: req.InitialStock,
		StockAlert:   req.StockAlert,
		Tracked:      tracked,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Menu item created successfully", item)
}

// GetMenuItem retrieves a menu item by ID
func (h *MenuItemHandler) GetMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	item, err := h.menuItemService.GetMenuItem(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item retrieved successfully", item)
}

// UpdateMenuItem updates an item's catalog fields
func (h *MenuItemHandler) UpdateMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req struct {
		UnitID      *uuid.UUID `json:"unit_id"`
		Name        *string    `json:"name"`
		Category    *string    `json:"category"`
		MeasureUnit *string    `json:"measure_unit"`
		Price       *float64   `json:"price"`
		StockAlert  *int       `json:"stock_alert"`
		Tracked     *bool      `json:"tracked"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuItemService.UpdateMenuItem(c.Request.Context(), id, &service.UpdateMenuItemInput{
		UnitID:      req.UnitID,
		Name:        req.Name,
		Category:    req.Category,
		MeasureUnit: req.MeasureUnit,
		Price:       req.Price,
		StockAlert:  req.StockAlert,
		Tracked:     req.Tracked,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item updated successfully", item)
}

// DeleteMenuItem deletes a menu item
func (h *MenuItemHandler) DeleteMenuItem(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	if err := h.menuItemService.DeleteMenuItem(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Menu item deleted successfully", nil)
}

// ListMenuItems lists menu items with filtering and pagination
func (h *MenuItemHandler) ListMenuItems(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.MenuItemFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		Category:   c.Query("category"),
		LowStock:   c.Query("low_stock") == "true",
		SortBy:     c.DefaultQuery("sort_by", "name"),
		SortOrder:  c.DefaultQuery("sort_order", "asc"),
	}
	if unitID, err := uuid.Parse(c.Query("unit_id")); err == nil {
		params.UnitID = &unitID
	}

	result, err := h.menuItemService.ListMenuItems(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Menu items retrieved successfully", result)
}

// GetLowStock lists tracked items at or below their alert threshold
func (h *MenuItemHandler) GetLowStock(c *gin.Context) {
	items, err := h.menuItemService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock items retrieved successfully", items)
}

// Restock adds stock to a tracked item
func (h *MenuItemHandler) Restock(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid menu item ID")
		return
	}

	var req struct {
		Quantity int `json:"quantity" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	item, err := h.menuItemService.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Item restocked successfully", item)
}
