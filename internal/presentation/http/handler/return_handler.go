package handler

import (
	"github.com/aushadhi/pharmacy-api/internal/application/service"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReturnHandler handles return-flow HTTP requests
type ReturnHandler struct {
	returnService *service.ReturnService
}

// NewReturnHandler creates a new return handler
func NewReturnHandler(returnService *service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

// CreateCustomerReturn handles booking goods handed back by a customer
func (h *ReturnHandler) CreateCustomerReturn(c *gin.Context) {
	var req struct {
		SaleID     uuid.UUID                 `json:"sale_id" binding:"required"`
		Settlement enum.CustomerSettlement   `json:"settlement" binding:"required"`
		Items      []service.ReturnItemInput `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.returnService.CreateCustomerReturn(c.Request.Context(), &service.CreateCustomerReturnInput{
		SaleID:     req.SaleID,
		Settlement: req.Settlement,
		Items:      req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer return recorded successfully", result)
}

// ListCustomerReturns handles listing customer returns
func (h *ReturnHandler) ListCustomerReturns(c *gin.Context) {
	result, err := h.returnService.ListCustomerReturns(c.Request.Context(), bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customer returns retrieved successfully", result)
}

// GetCustomerReturn handles retrieving a single customer return
func (h *ReturnHandler) GetCustomerReturn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returnService.GetCustomerReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer return retrieved successfully", ret)
}

// CreateSupplierReturn handles booking goods sent back to a supplier
func (h *ReturnHandler) CreateSupplierReturn(c *gin.Context) {
	var req struct {
		PurchaseID uuid.UUID                 `json:"purchase_id" binding:"required"`
		Settlement enum.SupplierSettlement   `json:"settlement" binding:"required"`
		Items      []service.ReturnItemInput `json:"items" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.returnService.CreateSupplierReturn(c.Request.Context(), &service.CreateSupplierReturnInput{
		PurchaseID: req.PurchaseID,
		Settlement: req.Settlement,
		Items:      req.Items,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier return recorded successfully", result)
}

// ListSupplierReturns handles listing supplier returns
func (h *ReturnHandler) ListSupplierReturns(c *gin.Context) {
	result, err := h.returnService.ListSupplierReturns(c.Request.Context(), bindPagination(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Supplier returns retrieved successfully", result)
}

// GetSupplierReturn handles retrieving a single supplier return
func (h *ReturnHandler) GetSupplierReturn(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid return ID")
		return
	}

	ret, err := h.returnService.GetSupplierReturn(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier return retrieved successfully", ret)
}
