package service

import (
	"context"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/billing"
	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductService handles the product catalog and batch-level inventory
type ProductService struct {
	productRepo repository.ProductRepository
	batchRepo   repository.BatchRepository
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, batchRepo repository.BatchRepository) *ProductService {
	return &ProductService{productRepo: productRepo, batchRepo: batchRepo}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	HSNCode      string
	Name         string
	Pack         string
	Manufacturer string
	Salts        *string
	Schedule     enum.Schedule
	Category     *string
	MinStock     int
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewValidationError("product name is required")
	}
	if input.HSNCode == "" {
		return nil, apperror.NewValidationError("HSN code is required")
	}
	schedule := input.Schedule
	if schedule == "" {
		schedule = enum.ScheduleNone
	}
	if !schedule.IsValid() {
		return nil, apperror.NewValidationError("unrecognised schedule")
	}

	product := &entity.Product{
		HSNCode:      input.HSNCode,
		Name:         input.Name,
		Pack:         input.Pack,
		Manufacturer: input.Manufacturer,
		Salts:        input.Salts,
		Schedule:     schedule,
		Category:     input.Category,
		MinStock:     input.MinStock,
	}
	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetProduct retrieves a product with its batches
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input
type UpdateProductInput struct {
	HSNCode      *string
	Name         *string
	Pack         *string
	Manufacturer *string
	Salts        *string
	Schedule     *enum.Schedule
	Category     *string
	MinStock     *int
}

// UpdateProduct updates a product's catalog fields
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.HSNCode != nil {
		product.HSNCode = *input.HSNCode
	}
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Pack != nil {
		product.Pack = *input.Pack
	}
	if input.Manufacturer != nil {
		product.Manufacturer = *input.Manufacturer
	}
	if input.Salts != nil {
		product.Salts = input.Salts
	}
	if input.Schedule != nil {
		if !input.Schedule.IsValid() {
			return nil, apperror.NewValidationError("unrecognised schedule")
		}
		product.Schedule = *input.Schedule
	}
	if input.Category != nil {
		product.Category = input.Category
	}
	if input.MinStock != nil {
		product.MinStock = *input.MinStock
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct soft-deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts lists products with filters
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) (*pagination.PaginatedResult[entity.Product], error) {
	products, total, err := s.productRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(products, pag), nil
}

// GetLowStock returns products whose total stock is at or below their
// minimum stock level.
func (s *ProductService) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx)
}

// ListExpiringBatches returns batches with remaining stock expiring within
// the given number of days.
func (s *ProductService) ListExpiringBatches(ctx context.Context, withinDays int) ([]entity.Batch, error) {
	if withinDays <= 0 {
		withinDays = 90
	}
	cutoff := time.Now().AddDate(0, 0, withinDays)
	return s.batchRepo.ListExpiring(ctx, cutoff)
}

// AddBatchInput represents the add batch input
type AddBatchInput struct {
	BatchNumber string
	ExpiryDate  time.Time
	Stock       int
	MRP         float64
	Price       float64
	Discount    float64
}

// AddBatch adds a new batch to a product outside the purchase flow, for
// opening stock and corrections.
func (s *ProductService) AddBatch(ctx context.Context, productID uuid.UUID, input *AddBatchInput) (*entity.Batch, error) {
	if input.BatchNumber == "" {
		return nil, apperror.NewValidationError("batch number is required")
	}
	if input.Stock < 0 {
		return nil, apperror.NewValidationError("stock cannot be negative")
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	existing, err := s.batchRepo.FindByProductAndNumber(ctx, productID, input.BatchNumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewBadRequestError("batch number already exists for this product")
	}

	batch := &entity.Batch{
		ProductID:   productID,
		BatchNumber: input.BatchNumber,
		ExpiryDate:  input.ExpiryDate,
		Stock:       input.Stock,
		MRP:         input.MRP,
		Price:       input.Price,
		Discount:    input.Discount,
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// BatchSuggestion is the counter's answer to "add N of this product":
// the batch to draw from, the clamped quantity and the pack size.
type BatchSuggestion struct {
	Batch        *entity.Batch `json:"batch"`
	Quantity     int           `json:"quantity"`
	Clamped      bool          `json:"clamped"`
	UnitsPerPack int           `json:"units_per_pack"`
}

// SuggestBatch picks the earliest-expiring batch with stock for the product
// and clamps the requested quantity to what that batch holds.
func (s *ProductService) SuggestBatch(ctx context.Context, productID uuid.UUID, requested int) (*BatchSuggestion, error) {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	batch := billing.SelectFIFOBatch(product.Batches)
	if batch == nil {
		return nil, apperror.NewInsufficientStockError(product.Name + " has no batch with stock")
	}

	qty, clamped, err := billing.ClampQuantity(requested, batch.Stock)
	if err != nil {
		return nil, err
	}

	return &BatchSuggestion{
		Batch:        batch,
		Quantity:     qty,
		Clamped:      clamped,
		UnitsPerPack: billing.UnitsPerPack(product.Pack),
	}, nil
}
