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

// SaleHandler handles point-of-sale HTTP requests
type SaleHandler struct {
	saleService *service.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

type checkoutRequest struct {
	CustomerID      *uuid.UUID                  `json:"customer_id"`
	CustomerName    *string                     `json:"customer_name"`
	DoctorName      *string                     `json:"doctor_name"`
	DoctorRegNo     *string                     `json:"doctor_reg_no"`
	IsRGHS          bool                        `json:"is_rghs"`
	DiscountPercent float64                     `json:"discount_percent"`
	VoucherID       *uuid.UUID                  `json:"voucher_id"`
	Status          enum.PaymentStatus          `json:"status" binding:"required"`
	PaymentMethod   *string                     `json:"payment_method"`
	AmountPaid      float64                     `json:"amount_paid"`
	Items           []service.CheckoutItemInput `json:"items" binding:"required,min=1"`
	AttachmentIDs   []uuid.UUID                 `json:"attachment_ids"`
}

func (r *checkoutRequest) toInput() *service.CheckoutInput {
	return &service.CheckoutInput{
		CustomerID:      r.CustomerID,
		CustomerName:    r.CustomerName,
		DoctorName:      r.DoctorName,
		DoctorRegNo:     r.DoctorRegNo,
		IsRGHS:          r.IsRGHS,
		DiscountPercent: r.DiscountPercent,
		VoucherID:       r.VoucherID,
		Status:          r.Status,
		PaymentMethod:   r.PaymentMethod,
		AmountPaid:      r.AmountPaid,
		Items:           r.Items,
		AttachmentIDs:   r.AttachmentIDs,
	}
}

// Checkout handles committing a sale
func (h *SaleHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	sale, err := h.saleService.Checkout(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Sale completed successfully", sale)
}

// Preview handles computing a bill without committing anything
func (h *SaleHandler) Preview(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	summary, err := h.saleService.PreviewBill(c.Request.Context(), req.toInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill preview computed successfully", summary)
}

// List handles listing sales
func (h *SaleHandler) List(c *gin.Context) {
	params := &repository.SaleFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		if customerID, err := uuid.Parse(customerIDStr); err == nil {
			params.CustomerID = &customerID
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

	result, err := h.saleService.ListSales(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sales retrieved successfully", result)
}

// Get handles retrieving a single sale with its items
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetSale(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Sale retrieved successfully", sale)
}

// ReceivePayment handles recording a payment against a credit sale
func (h *SaleHandler) ReceivePayment(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid sale ID")
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

	sale, err := h.saleService.ReceivePayment(c.Request.Context(), id, req.Amount, req.Method)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment recorded successfully", sale)
}
