package handler

import (
	"strconv"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/service"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product catalog HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products
func (h *ProductHandler) List(c *gin.Context) {
	params := &repository.ProductFilterParams{
		Pagination: bindPagination(c),
		Search:     c.Query("search"),
		LowStock:   c.Query("low_stock") == "true",
	}
	if category := c.Query("category"); category != "" {
		params.Category = &category
	}

	result, err := h.productService.ListProducts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Products retrieved successfully", result)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req struct {
		HSNCode      string        `json:"hsn_code" binding:"required"`
		Name         string        `json:"name" binding:"required"`
		Pack         string        `json:"pack" binding:"required"`
		Manufacturer string        `json:"manufacturer"`
		Salts        *string       `json:"salts"`
		Schedule     enum.Schedule `json:"schedule"`
		Category     *string       `json:"category"`
		MinStock     int           `json:"min_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), &service.CreateProductInput{
		HSNCode:      req.HSNCode,
		Name:         req.Name,
		Pack:         req.Pack,
		Manufacturer: req.Manufacturer,
		Salts:        req.Salts,
		Schedule:     req.Schedule,
		Category:     req.Category,
		MinStock:     req.MinStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Get handles retrieving a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req struct {
		HSNCode      *string        `json:"hsn_code"`
		Name         *string        `json:"name"`
		Pack         *string        `json:"pack"`
		Manufacturer *string        `json:"manufacturer"`
		Salts        *string        `json:"salts"`
		Schedule     *enum.Schedule `json:"schedule"`
		Category     *string        `json:"category"`
		MinStock     *int           `json:"min_stock"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, &service.UpdateProductInput{
		HSNCode:      req.HSNCode,
		Name:         req.Name,
		Pack:         req.Pack,
		Manufacturer: req.Manufacturer,
		Salts:        req.Salts,
		Schedule:     req.Schedule,
		Category:     req.Category,
		MinStock:     req.MinStock,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// LowStock handles listing products at or below their minimum stock level
func (h *ProductHandler) LowStock(c *gin.Context) {
	products, err := h.productService.GetLowStock(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Low stock products retrieved successfully", products)
}

// ExpiringBatches handles listing batches that expire within a window
func (h *ProductHandler) ExpiringBatches(c *gin.Context) {
	withinDays, _ := strconv.Atoi(c.DefaultQuery("within_days", "90"))

	batches, err := h.productService.ListExpiringBatches(c.Request.Context(), withinDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Expiring batches retrieved successfully", batches)
}

// AddBatch handles adding a batch to a product outside the purchase flow
func (h *ProductHandler) AddBatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	var req struct {
		BatchNumber string    `json:"batch_number" binding:"required"`
		ExpiryDate  time.Time `json:"expiry_date" binding:"required"`
		Stock       int       `json:"stock" binding:"min=0"`
		MRP         float64   `json:"mrp" binding:"required"`
		Price       float64   `json:"price"`
		Discount    float64   `json:"discount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	batch, err := h.productService.AddBatch(c.Request.Context(), id, &service.AddBatchInput{
		BatchNumber: req.BatchNumber,
		ExpiryDate:  req.ExpiryDate,
		Stock:       req.Stock,
		MRP:         req.MRP,
		Price:       req.Price,
		Discount:    req.Discount,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Batch added successfully", batch)
}

// SuggestBatch handles picking the earliest-expiring batch for a sale line
func (h *ProductHandler) SuggestBatch(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid product ID")
		return
	}

	requested, _ := strconv.Atoi(c.DefaultQuery("quantity", "1"))

	suggestion, err := h.productService.SuggestBatch(c.Request.Context(), id, requested)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Batch suggestion retrieved successfully", suggestion)
}
