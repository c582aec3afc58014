package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
)

// SettingsHandler handles property settings and tax configuration requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetSettings returns the current property settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings retrieved successfully", settings)
}

// UpdateSettings replaces the property settings. Pricing mode changes apply
// to new documents only; issued documents keep the snapshot they were
// computed under.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var settings entity.PropertySettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.settingsService.UpdateSettings(c.Request.Context(), settings)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Settings updated successfully", updated)
}

// ListTaxRules lists tax rules in application order
func (h *SettingsHandler) ListTaxRules(c *gin.Context) {
	rules, err := h.settingsService.ListTaxRules(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rules retrieved successfully", rules)
}

// CreateTaxRule appends a tax rule at the end of the application order
func (h *SettingsHandler) CreateTaxRule(c *gin.Context) {
	var req struct {
		Name             string       `json:"name" binding:"required"`
		Rate             float64      `json:"rate" binding:"required"`
		Kind             enum.TaxKind `json:"kind"`
		VisibleOnReceipt *bool        `json:"visible_on_receipt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	visible := true
	if req.VisibleOnReceipt != nil {
		visible = *req.VisibleOnReceipt
	}

	rule, err := h.settingsService.CreateTaxRule(c.Request.Context(), &service.CreateTaxRuleInput{
		Name:             req.Name,
		Rate:             req.Rate,
		Kind:             req.Kind,
		VisibleOnReceipt: visible,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Tax rule created successfully", rule)
}

// UpdateTaxRule edits a tax rule. Issued documents keep their snapshots.
func (h *SettingsHandler) UpdateTaxRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax rule ID")
		return
	}

	var req struct {
		Name             *string       `json:"name"`
		Rate             *float64      `json:"rate"`
		Kind             *enum.TaxKind `json:"kind"`
		VisibleOnReceipt *bool         `json:"visible_on_receipt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	rule, err := h.settingsService.UpdateTaxRule(c.Request.Context(), id, &service.UpdateTaxRuleInput{
		Name:             req.Name,
		Rate:             req.Rate,
		Kind:             req.Kind,
		VisibleOnReceipt: req.VisibleOnReceipt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rule updated successfully", rule)
}

// DeleteTaxRule removes a tax rule from future documents
func (h *SettingsHandler) DeleteTaxRule(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid tax rule ID")
		return
	}

	if err := h.settingsService.DeleteTaxRule(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rule deleted successfully", nil)
}

// ReorderTaxRules sets the application order of all tax rules
func (h *SettingsHandler) ReorderTaxRules(c *gin.Context) {
	var req struct {
		IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.settingsService.ReorderTaxRules(c.Request.Context(), req.IDs); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Tax rules reordered successfully", nil)
}
