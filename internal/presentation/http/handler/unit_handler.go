package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// UnitHandler handles business unit HTTP requests
type UnitHandler struct {
	unitService *service.UnitService
}

// NewUnitHandler creates a new unit handler
func NewUnitHandler(unitService *service.UnitService) *UnitHandler {
	return &UnitHandler{unitService: unitService}
}

// CreateUnit creates a new business unit
func (h *UnitHandler) CreateUnit(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	unit, err := h.unitService.CreateUnit(c.Request.Context(), req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Unit created successfully", unit)
}

// GetUnit retrieves a unit with its bank accounts
func (h *UnitHandler) GetUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	unit, err := h.unitService.GetUnit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unit retrieved successfully", unit)
}

// UpdateUnit renames a unit
func (h *UnitHandler) UpdateUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	unit, err := h.unitService.UpdateUnit(c.Request.Context(), id, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unit updated successfully", unit)
}

// DeleteUnit deletes a unit
func (h *UnitHandler) DeleteUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	if err := h.unitService.DeleteUnit(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Unit deleted successfully", nil)
}

// ListUnits lists units with pagination
func (h *UnitHandler) ListUnits(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	result, err := h.unitService.ListUnits(c.Request.Context(), &pagination.PaginationParams{Page: page, PerPage: perPage}, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Units retrieved successfully", result)
}

// AddBankAccount attaches a settlement account to a unit
func (h *UnitHandler) AddBankAccount(c *gin.Context) {
	unitID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid unit ID")
		return
	}

	var req struct {
		BankName      string `json:"bank_name" binding:"required"`
		AccountName   string `json:"account_name" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.unitService.AddBankAccount(c.Request.Context(), unitID, &service.BankAccountInput{
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Bank account added successfully", account)
}

// UpdateBankAccount updates a bank account
func (h *UnitHandler) UpdateBankAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		response.BadRequest(c, "Invalid bank account ID")
		return
	}

	var req struct {
		BankName      string `json:"bank_name" binding:"required"`
		AccountName   string `json:"account_name" binding:"required"`
		AccountNumber string `json:"account_number" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	account, err := h.unitService.UpdateBankAccount(c.Request.Context(), id, &service.BankAccountInput{
		BankName:      req.BankName,
		AccountName:   req.AccountName,
		AccountNumber: req.AccountNumber,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bank account updated successfully", account)
}

// RemoveBankAccount removes a bank account from a unit
func (h *UnitHandler) RemoveBankAccount(c *gin.Context) {
	id, err := uuid.Parse(c.Param("accountId"))
	if err != nil {
		response.BadRequest(c, "Invalid bank account ID")
		return
	}

	if err := h.unitService.RemoveBankAccount(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bank account removed successfully", nil)
}
