package repository

import (
	"context"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// VoucherRepository defines the interface for voucher data operations
type VoucherRepository interface {
	Create(ctx context.Context, voucher *entity.Voucher) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error)
	Update(ctx context.Context, voucher *entity.Voucher) error
	ListActive(ctx context.Context) ([]entity.Voucher, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Voucher, int64, error)
}

// CreditNoteRepository defines the interface for credit note data operations
type CreditNoteRepository interface {
	Create(ctx context.Context, note *entity.CreditNote) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CreditNote, error)
	Update(ctx context.Context, note *entity.CreditNote) error
	ListOpenBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.CreditNote, error)
	List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CreditNote, int64, error)
}
