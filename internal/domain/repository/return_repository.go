package repository

import (
	"context"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// CustomerReturnRepository defines the interface for customer return data operations
type CustomerReturnRepository interface {
	Create(ctx context.Context, ret *entity.CustomerReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerReturn, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CustomerReturn, int64, error)
}

// SupplierReturnRepository defines the interface for supplier return data operations
type SupplierReturnRepository interface {
	Create(ctx context.Context, ret *entity.SupplierReturn) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierReturn, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.SupplierReturn, int64, error)
}
