package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/application/service"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/billing"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/entity"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/enum"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/domain/repository"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/request"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/internal/presentation/http/dto/response"
	"github.com/itadmin-bot/Tid-Hotels-Resorts-Revenue-Terminal-sub000/pkg/pagination"
)

// TransactionHandler handles revenue transaction HTTP requests
type TransactionHandler struct {
	txnService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txnService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// Checkout records a walk-in POS sale
func (h *TransactionHandler) Checkout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.txnService.Checkout(c.Request.Context(), &service.CheckoutInput{
		UserID:    *userID,
		UnitID:    req.UnitID,
		GuestName: req.GuestName,
		Items:     toCartItems(req.Items),
		Charges:   toChargeLines(req.Charges),
		Discount:  req.Discount,
		Payments:  toPayments(req.Payments),
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale recorded successfully", txn)
}

// CreateFolio opens a room folio for a stay
func (h *TransactionHandler) CreateFolio(c *gin.Context) {
	h.createStayDocument(c, false)
}

// CreateProforma issues a proforma invoice for a prospective stay
func (h *TransactionHandler) CreateProforma(c *gin.Context) {
	h.createStayDocument(c, true)
}

func (h *TransactionHandler) createStayDocument(c *gin.Context, proforma bool) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.CreateFolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	input := &service.CreateFolioInput{
		UserID:     *userID,
		UnitID:     req.UnitID,
		GuestID:    req.GuestID,
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		GuestEmail: req.GuestEmail,
		StayStart:  req.StayStart,
		StayEnd:    req.StayEnd,
		RoomIDs:    req.RoomIDs,
		Items:      toCartItems(req.Items),
		Charges:    toChargeLines(req.Charges),
		Discount:   req.Discount,
		Payments:   toPayments(req.Payments),
		Notes:      req.Notes,
	}

	var txn *entity.Transaction
	var err error
	if proforma {
		txn, err = h.txnService.CreateProforma(c.Request.Context(), input)
	} else {
		txn, err = h.txnService.CreateFolio(c.Request.Context(), input)
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Folio created successfully"
	if proforma {
		message = "Proforma invoice created successfully"
	}
	response.Created(c, message, txn)
}

// Settle appends a payment batch to a transaction's ledger
func (h *TransactionHandler) Settle(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.SettleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.txnService.Settle(c.Request.Context(), id, &service.SettleInput{
		UserID:   *userID,
		Payments: toPayments(req.Payments),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", txn)
}

// Amend edits an open folio or proforma
func (h *TransactionHandler) Amend(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.AmendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.txnService.Amend(c.Request.Context(), id, &service.AmendInput{
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		GuestEmail: req.GuestEmail,
		StayStart:  req.StayStart,
		StayEnd:    req.StayEnd,
		Notes:      req.Notes,
		Discount:   req.Discount,
		AddItems:   toCartItems(req.AddItems),
		AddCharges: toChargeLines(req.AddCharges),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction amended successfully", txn)
}

// UpdateGuestDetails edits the guest snapshot on a transaction
func (h *TransactionHandler) UpdateGuestDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req struct {
		GuestName  string  `json:"guest_name" binding:"required"`
		GuestPhone *string `json:"guest_phone"`
		GuestEmail *string `json:"guest_email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	txn, err := h.txnService.UpdateGuestDetails(c.Request.Context(), id, &service.UpdateGuestDetailsInput{
		GuestName:  req.GuestName,
		GuestPhone: req.GuestPhone,
		GuestEmail: req.GuestEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Guest details updated successfully", txn)
}

// GetTransaction retrieves a transaction with its lines, taxes and payments
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.txnService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// GetByReference retrieves a transaction by its document reference
func (h *TransactionHandler) GetByReference(c *gin.Context) {
	reference := c.Param("reference")
	if reference == "" {
		response.BadRequest(c, "Reference is required")
		return
	}

	txn, err := h.txnService.GetByReference(c.Request.Context(), reference)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// ListTransactions lists transactions with filtering. Supports both
// offset pagination and cursor pagination; the presence of a cursor or
// limit query switches to cursor mode.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	if c.Query("cursor") != "" || c.Query("limit") != "" {
		h.listWithCursor(c)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))

	params := &repository.TransactionFilterParams{
		Pagination: &pagination.PaginationParams{Page: page, PerPage: perPage},
		Search:     c.Query("search"),
		Type:       parseTransactionType(c.Query("type")),
		Status:     parseSettlementStatus(c.Query("status")),
		SortBy:     c.DefaultQuery("sort_by", "created_at"),
		SortOrder:  c.DefaultQuery("sort_order", "desc"),
	}
	if unitID, err := uuid.Parse(c.Query("unit_id")); err == nil {
		params.UnitID = &unitID
	}
	if guestID, err := uuid.Parse(c.Query("guest_id")); err == nil {
		params.GuestID = &guestID
	}
	params.StartDate = parseDateQuery(c.Query("start_date"))
	params.EndDate = parseDateQuery(c.Query("end_date"))

	result, err := h.txnService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

func (h *TransactionHandler) listWithCursor(c *gin.Context) {
	cursorParams := pagination.DefaultCursorParams()
	cursorParams.Cursor = c.Query("cursor")
	if direction := c.Query("direction"); direction != "" {
		cursorParams.Direction = pagination.CursorDirection(direction)
	}
	if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
		cursorParams.Limit = limit
	}

	params := &repository.TransactionCursorFilterParams{
		Cursor: cursorParams,
		Search: c.Query("search"),
		Type:   parseTransactionType(c.Query("type")),
		Status: parseSettlementStatus(c.Query("status")),
	}
	if unitID, err := uuid.Parse(c.Query("unit_id")); err == nil {
		params.UnitID = &unitID
	}
	params.StartDate = parseDateQuery(c.Query("start_date"))
	params.EndDate = parseDateQuery(c.Query("end_date"))

	result, err := h.txnService.ListTransactionsWithCursor(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transactions retrieved successfully", result)
}

// VoidTransaction voids a transaction. The document keeps its reference;
// void is an annotation, not a deletion.
func (h *TransactionHandler) VoidTransaction(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.txnService.VoidTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction voided successfully", nil)
}

func toCartItems(items []request.CartItemRequest) []service.CartItemInput {
	out := make([]service.CartItemInput, 0, len(items))
	for _, item := range items {
		out = append(out, service.CartItemInput{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}
	return out
}

func toChargeLines(charges []request.ChargeLineRequest) []service.ChargeLineInput {
	out := make([]service.ChargeLineInput, 0, len(charges))
	for _, charge := range charges {
		out = append(out, service.ChargeLineInput{
			Description: charge.Description,
			Quantity:    charge.Quantity,
			UnitPrice:   charge.UnitPrice,
		})
	}
	return out
}

func toPayments(payments []request.PaymentRequest) []billing.PaymentInput {
	out := make([]billing.PaymentInput, 0, len(payments))
	for _, p := range payments {
		out = append(out, billing.PaymentInput{
			Method: enum.PaymentMethod(p.Method),
			Amount: p.Amount,
		})
	}
	return out
}

func parseTransactionType(value string) *enum.TransactionType {
	var t enum.TransactionType
	switch value {
	case "POS", "pos":
		t = enum.TransactionTypePOS
	case "Folio", "folio":
		t = enum.TransactionTypeFolio
	case "Proforma", "proforma":
		t = enum.TransactionTypeProforma
	default:
		return nil
	}
	return &t
}

func parseSettlementStatus(value string) *enum.SettlementStatus {
	var s enum.SettlementStatus
	switch value {
	case "Unpaid", "unpaid":
		s = enum.SettlementStatusUnpaid
	case "Partial", "partial":
		s = enum.SettlementStatusPartial
	case "Paid", "paid":
		s = enum.SettlementStatusPaid
	default:
		return nil
	}
	return &s
}

func parseDateQuery(value string) *time.Time {
	if value == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t
	}
	return nil
}
