package handler

import (
	"github.com/aushadhi/pharmacy-api/internal/application/service"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// VoucherHandler handles voucher and credit note HTTP requests
type VoucherHandler struct {
	voucherService *service.VoucherService
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(voucherService *service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// ListVouchers handles listing vouchers
func (h *VoucherHandler) ListVouchers(c *gin.Context) {
	result, err := h.voucherService.ListVouchers(c.Request.Context(), bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Vouchers retrieved successfully", result)
}

// GetVoucher handles retrieving a single voucher
func (h *VoucherHandler) GetVoucher(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid voucher ID")
		return
	}

	voucher, err := h.voucherService.GetVoucher(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Voucher retrieved successfully", voucher)
}

// ListActive handles listing redeemable vouchers
func (h *VoucherHandler) ListActive(c *gin.Context) {
	vouchers, err := h.voucherService.ListActiveVouchers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Active vouchers retrieved successfully", vouchers)
}

// ExpireStale handles sweeping vouchers past their validity window
func (h *VoucherHandler) ExpireStale(c *gin.Context) {
	count, err := h.voucherService.ExpireStaleVouchers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Stale vouchers expired successfully", gin.H{"expired": count})
}

// ListCreditNotes handles listing credit notes
func (h *VoucherHandler) ListCreditNotes(c *gin.Context) {
	result, err := h.voucherService.ListCreditNotes(c.Request.Context(), bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Credit notes retrieved successfully", result)
}

// GetCreditNote handles retrieving a single credit note
func (h *VoucherHandler) GetCreditNote(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid credit note ID")
		return
	}

	note, err := h.voucherService.GetCreditNote(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Credit note retrieved successfully", note)
}
