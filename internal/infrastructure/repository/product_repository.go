package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	domainRepo "github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return dbFrom(ctx, r.db).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := dbFrom(ctx, r.db).Preload("Batches").First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFrom(ctx, r.db).Preload("Batches").Find(&products, "id IN ?", ids).Error
	return products, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return dbFrom(ctx, r.db).Omit("Batches").Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return dbFrom(ctx, r.db).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR salts ILIKE ? OR manufacturer ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%", "%"+params.Search+"%")
	}
	if params.Category != nil {
		query = query.Where("category = ?", *params.Category)
	}
	if params.LowStock {
		query = query.Where(
			"min_stock >= (SELECT COALESCE(SUM(stock), 0) FROM batches WHERE batches.product_id = products.id AND batches.deleted_at IS NULL)")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Preload("Batches").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("name ASC").
		Find(&products).Error

	return products, total, err
}

func (r *productRepository) GetLowStock(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := dbFrom(ctx, r.db).Preload("Batches").
		Where("min_stock >= (SELECT COALESCE(SUM(stock), 0) FROM batches WHERE batches.product_id = products.id AND batches.deleted_at IS NULL)").
		Order("name ASC").
		Find(&products).Error
	return products, err
}

type batchRepository struct {
	db *gorm.DB
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *gorm.DB) domainRepo.BatchRepository {
	return &batchRepository{db: db}
}

func (r *batchRepository) Create(ctx context.Context, batch *entity.Batch) error {
	return dbFrom(ctx, r.db).Create(batch).Error
}

func (r *batchRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Batch, error) {
	var batch entity.Batch
	err := dbFrom(ctx, r.db).First(&batch, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepository) GetByProduct(ctx context.Context, productID uuid.UUID) ([]entity.Batch, error) {
	var batches []entity.Batch
	err := dbFrom(ctx, r.db).
		Where("product_id = ?", productID).
		Order("expiry_date ASC").
		Find(&batches).Error
	return batches, err
}

func (r *batchRepository) FindByProductAndNumber(ctx context.Context, productID uuid.UUID, batchNumber string) (*entity.Batch, error) {
	var batch entity.Batch
	err := dbFrom(ctx, r.db).
		First(&batch, "product_id = ? AND batch_number = ?", productID, batchNumber).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *batchRepository) Update(ctx context.Context, batch *entity.Batch) error {
	return dbFrom(ctx, r.db).Save(batch).Error
}

// AdjustStock applies every delta as a conditional UPDATE that refuses to
// take stock below zero. A zero-row result means the batch is gone or the
// guard failed; either way the error aborts the surrounding transaction and
// no delta of the set survives.
func (r *batchRepository) AdjustStock(ctx context.Context, deltas []domainRepo.StockDelta) error {
	db := dbFrom(ctx, r.db)
	for _, d := range deltas {
		res := db.Model(&entity.Batch{}).
			Where("id = ? AND product_id = ? AND stock + ? >= 0", d.BatchID, d.ProductID, d.Delta).
			UpdateColumn("stock", gorm.Expr("stock + ?", d.Delta))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var batch entity.Batch
			if err := db.First(&batch, "id = ?", d.BatchID).Error; err != nil {
				return apperror.NewIntegrityError("batch " + d.BatchID.String() + " does not exist")
			}
			return apperror.NewInsufficientStockError(
				"batch " + batch.BatchNumber + " cannot absorb the requested quantity")
		}
	}
	return nil
}

func (r *batchRepository) ListExpiring(ctx context.Context, before time.Time) ([]entity.Batch, error) {
	var batches []entity.Batch
	err := dbFrom(ctx, r.db).Preload("Product").
		Where("stock > 0 AND expiry_date <= ?", before).
		Order("expiry_date ASC").
		Find(&batches).Error
	return batches, err
}
