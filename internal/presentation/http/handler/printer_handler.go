package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
)

// PrinterHandler handles thermal printer HTTP requests
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns printer connection status
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint prints a short alignment docket
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	docket, err := h.printerService.TestPrint()
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Test docket printed", docket)
}

// PrintTransaction renders a transaction receipt and sends it to the printer
func (h *PrinterHandler) PrintTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	docket, err := h.printerService.PrintTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", docket)
}

// BuildDocket renders a transaction receipt as plain text without printing.
// Useful for on-screen previews and environments with no printer attached.
func (h *PrinterHandler) BuildDocket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	docket, err := h.printerService.BuildDocket(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt rendered successfully", docket)
}
