package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
)

// ExportHandler handles report download HTTP requests
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// ExportTransactions streams the filtered transaction register as CSV or XLSX
func (h *ExportHandler) ExportTransactions(c *gin.Context) {
	input := &service.ExportTransactionsInput{
		Format:    c.DefaultQuery("format", "csv"),
		Type:      parseTransactionType(c.Query("type")),
		Status:    parseSettlementStatus(c.Query("status")),
		StartDate: parseDateQuery(c.Query("start_date")),
		EndDate:   parseDateQuery(c.Query("end_date")),
	}

	file, err := h.exportService.ExportTransactions(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(200, file.ContentType, file.Data)
}

// ExportInventory streams the inventory counter report as CSV or XLSX
func (h *ExportHandler) ExportInventory(c *gin.Context) {
	file, err := h.exportService.ExportInventory(c.Request.Context(), c.DefaultQuery("format", "csv"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(200, file.ContentType, file.Data)
}
