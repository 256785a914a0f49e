package repository

import (
	"context"
	"errors"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	domainRepo "github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type customerReturnRepository struct {
	db *gorm.DB
}

// NewCustomerReturnRepository creates a new customer return repository
func NewCustomerReturnRepository(db *gorm.DB) domainRepo.CustomerReturnRepository {
	return &customerReturnRepository{db: db}
}

func (r *customerReturnRepository) Create(ctx context.Context, ret *entity.CustomerReturn) error {
	return dbFrom(ctx, r.db).Create(ret).Error
}

func (r *customerReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CustomerReturn, error) {
	var ret entity.CustomerReturn
	err := dbFrom(ctx, r.db).Preload("Items").First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *customerReturnRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.CustomerReturn, int64, error) {
	var returns []entity.CustomerReturn
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.CustomerReturn{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Items").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("date DESC").
		Find(&returns).Error

	return returns, total, err
}

type supplierReturnRepository struct {
	db *gorm.DB
}

// NewSupplierReturnRepository creates a new supplier return repository
func NewSupplierReturnRepository(db *gorm.DB) domainRepo.SupplierReturnRepository {
	return &supplierReturnRepository{db: db}
}

func (r *supplierReturnRepository) Create(ctx context.Context, ret *entity.SupplierReturn) error {
	return dbFrom(ctx, r.db).Create(ret).Error
}

func (r *supplierReturnRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SupplierReturn, error) {
	var ret entity.SupplierReturn
	err := dbFrom(ctx, r.db).Preload("Items").First(&ret, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func (r *supplierReturnRepository) List(ctx context.Context, params *pagination.PaginationParams) ([]entity.SupplierReturn, int64, error) {
	var returns []entity.SupplierReturn
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.SupplierReturn{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Preload("Items").
		Offset(params.Offset()).Limit(params.PerPage).
		Order("date DESC").
		Find(&returns).Error

	return returns, total, err
}
