package repository

import (
	"context"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDs retrieves multiple products with their batches in a single query
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams) ([]entity.Product, int64, error)
	// GetLowStock returns products whose total batch stock is at or below min_stock
	GetLowStock(ctx context.Context) ([]entity.Product, error)
}

// ProductFilterParams contains filtering parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	Category   *string
	LowStock   bool
}

// StockDelta is one signed quantity change against a specific batch:
// negative for sale or supplier-return consumption, positive for purchase or
// customer-return restock.
type StockDelta struct {
	ProductID uuid.UUID
	BatchID   uuid.UUID
	Delta     int
}

// BatchRepository defines the interface for batch data operations
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.Batch) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Batch, error)
	GetByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Batch, error)
	// FindByProductAndNumber looks up a batch by its human batch number within a product
	FindByProductAndNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (*entity.Batch, error)
	Update(ctx context.Context, batch *entity.Batch) error
	// AdjustStock applies all deltas atomically. Each decrement runs as a
	// conditional UPDATE that refuses to take stock below zero; any failed
	// row aborts the whole set and the surrounding transaction.
	AdjustStock(ctx context.Context, deltas []StockDelta) error
	// ListExpiring returns batches with stock that expire on or before the cutoff
	ListExpiring(ctx context.Context, before time.Time) ([]entity.Batch, error)
}
