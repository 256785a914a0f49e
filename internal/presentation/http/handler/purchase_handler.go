package handler

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/service"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PurchaseHandler handles purchase intake HTTP requests
type PurchaseHandler struct {
	purchaseService *service.PurchaseService
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService}
}

// Create handles booking a supplier invoice
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req struct {
		SupplierID    uuid.UUID                   `json:"supplier_id" binding:"required"`
		InvoiceNumber *string                     `json:"invoice_number"`
		Date          time.Time                   `json:"date"`
		SGST          float64                     `json:"sgst"`
		CGST          float64                     `json:"cgst"`
		Status        enum.PaymentStatus          `json:"status" binding:"required"`
		PaymentMethod *string                     `json:"payment_method"`
		AmountPaid    float64                     `json:"amount_paid"`
		Notes         *string                     `json:"notes"`
		Items         []service.PurchaseItemInput `json:"items" binding:"required,min=1"`
		AttachmentIDs []uuid.UUID                 `json:"attachment_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.purchaseService.CreatePurchase(c.Request.Context(), &service.CreatePurchaseInput{
		SupplierID:    req.SupplierID,
		InvoiceNumber: req.InvoiceNumber,
		Date:          req.Date,
		SGST:          req.SGST,
		CGST:          req.CGST,
		Status:        req.Status,
		PaymentMethod: req.PaymentMethod,
		AmountPaid:    req.AmountPaid,
		Notes:         req.Notes,
		Items:         req.Items,
		AttachmentIDs: req.AttachmentIDs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Purchase recorded successfully", purchase)
}

// List handles listing purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	params := &repository.PurchaseFilterParams{
		Pagination: bindPagination(c),
	}
	if supplierIDStr := c.Query("supplier_id"); supplierIDStr != "" {
		if supplierID, err := uuid.Parse(supplierIDStr); err == nil {
			params.SupplierID = &supplierID
		}
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := enum.PaymentStatus(statusStr)
		params.Status = &status
	}
	if startStr := c.Query("start_date"); startStr != "" {
		if start, err := time.Parse("2006-01-02", startStr); err == nil {
			params.StartDate = &start
		}
	}
	if endStr := c.Query("end_date"); endStr != "" {
		if end, err := time.Parse("2006-01-02", endStr); err == nil {
			params.EndDate = &end
		}
	}

	result, err := h.purchaseService.ListPurchases(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Purchases retrieved successfully", result)
}

// Get handles retrieving a single purchase with its items
func (h *PurchaseHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	purchase, err := h.purchaseService.GetPurchase(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Purchase retrieved successfully", purchase)
}

// PaySupplier handles recording a payment against a credit purchase
func (h *PurchaseHandler) PaySupplier(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
		Method string  `json:"method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.purchaseService.PaySupplier(c.Request.Context(), id, req.Amount, req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", purchase)
}

// ApplyCreditNote handles applying an open credit note against a payable
func (h *PurchaseHandler) ApplyCreditNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid purchase ID")
		return
	}

	var req struct {
		CreditNoteID uuid.UUID `json:"credit_note_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	purchase, err := h.purchaseService.ApplyCreditNote(c.Request.Context(), req.CreditNoteID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit note applied successfully", purchase)
}
