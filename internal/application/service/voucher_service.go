package service

import (
	"context"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// voucherValidityDays is how long a store-credit voucher stays redeemable
const voucherValidityDays = 365

// VoucherService handles store-credit vouchers and supplier credit notes.
// Issuance happens inside the return flows; this service covers lookup,
// listing and expiry.
type VoucherService struct {
	voucherRepo    repository.VoucherRepository
	creditNoteRepo repository.CreditNoteRepository
}

// NewVoucherService creates a new voucher service
func NewVoucherService(voucherRepo repository.VoucherRepository, creditNoteRepo repository.CreditNoteRepository) *VoucherService {
	return &VoucherService{voucherRepo: voucherRepo, creditNoteRepo: creditNoteRepo}
}

// GetVoucher retrieves a voucher by ID
func (s *VoucherService) GetVoucher(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	voucher, err := s.voucherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if voucher == nil {
		return nil, apperror.NewNotFoundError("Voucher")
	}
	return voucher, nil
}

// ListVouchers lists vouchers
func (s *VoucherService) ListVouchers(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Voucher], error) {
	vouchers, total, err := s.voucherRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(vouchers, pag), nil
}

// ListActiveVouchers lists redeemable vouchers, oldest first, for the
// counter's voucher picker.
func (s *VoucherService) ListActiveVouchers(ctx context.Context) ([]entity.Voucher, error) {
	return s.voucherRepo.ListActive(ctx)
}

// ExpireStaleVouchers flips active vouchers past their validity window to
// expired. Run from a periodic job; an expired voucher keeps its balance on
// record but can no longer be redeemed.
func (s *VoucherService) ExpireStaleVouchers(ctx context.Context) (int, error) {
	active, err := s.voucherRepo.ListActive(ctx)
	if err != nil {
		return 0, err
	}

	cutoff := time.Now().AddDate(0, 0, -voucherValidityDays)
	expired := 0
	for i := range active {
		v := &active[i]
		if v.CreatedDate.After(cutoff) {
			continue
		}
		v.Status = enum.VoucherStatusExpired
		if err := s.voucherRepo.Update(ctx, v); err != nil {
			return expired, err
		}
		expired++
	}
	return expired, nil
}

// GetCreditNote retrieves a credit note by ID
func (s *VoucherService) GetCreditNote(ctx context.Context, id uuid.UUID) (*entity.CreditNote, error) {
	note, err := s.creditNoteRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Credit note")
	}
	return note, nil
}

// ListCreditNotes lists credit notes
func (s *VoucherService) ListCreditNotes(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CreditNote], error) {
	notes, total, err := s.creditNoteRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(notes, pag), nil
}

// ListOpenCreditNotes lists a supplier's open credit notes, for picking one
// to apply against a payable.
func (s *VoucherService) ListOpenCreditNotes(ctx context.Context, supplierID uuid.UUID) ([]entity.CreditNote, error) {
	return s.creditNoteRepo.ListOpenBySupplier(ctx, supplierID)
}
