package repository

import (
	"context"
	"errors"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	domainRepo "github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type voucherRepository struct {
	db *gorm.DB
}

// NewVoucherRepository creates a new voucher repository
func NewVoucherRepository(db *gorm.DB) domainRepo.VoucherRepository {
	return &voucherRepository{db: db}
}

func (r *voucherRepository) Create(ctx context.Context, voucher *entity.Voucher) error {
	return dbFrom(ctx, r.db).Create(voucher).Error
}

func (r *voucherRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Voucher, error) {
	var voucher entity.Voucher
	err := dbFrom(ctx, r.db).First(&voucher, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &voucher, nil
}

func (r *voucherRepository) Update(ctx context.Context, voucher *entity.Voucher) error {
	return dbFrom(ctx, r.db).Save(voucher).Error
}

func (r *voucherRepository) ListActive(ctx context.Context) ([]entity.Voucher, error) {
	var vouchers []entity.Voucher
	err := dbFrom(ctx, r.db).
		Where("status = ?", enum.VoucherStatusActive).
		Order("created_date ASC").
		Find(&vouchers).Error
	return vouchers, err
}

func (r *voucherRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.Voucher, int64, error) {
	var vouchers []entity.Voucher
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Voucher{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("created_date DESC").
		Find(&vouchers).Error

	return vouchers, total, err
}

type creditNoteRepository struct {
	db *gorm.DB
}

// NewCreditNoteRepository creates a new credit note repository
func NewCreditNoteRepository(db *gorm.DB) domainRepo.CreditNoteRepository {
	return &creditNoteRepository{db: db}
}

func (r *creditNoteRepository) Create(ctx context.Context, note *entity.CreditNote) error {
	return dbFrom(ctx, r.db).Create(note).Error
}

func (r *creditNoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CreditNote, error) {
	var note entity.CreditNote
	err := dbFrom(ctx, r.db).First(&note, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (r *creditNoteRepository) Update(ctx context.Context, note *entity.CreditNote) error {
	return dbFrom(ctx, r.db).Save(note).Error
}

func (r *creditNoteRepository) ListOpenBySupplier(ctx context.Context, supplierID uuid.UUID) ([]entity.CreditNote, error) {
	var notes []entity.CreditNote
	err := dbFrom(ctx, r.db).
		Where("supplier_id = ? AND status = ?", supplierID, enum.CreditNoteStatusOpen).
		Order("date ASC").
		Find(&notes).Error
	return notes, err
}

func (r *creditNoteRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CreditNote, int64, error) {
	var notes []entity.CreditNote
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.CreditNote{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("date DESC").
		Find(&notes).Error

	return notes, total, err
}
