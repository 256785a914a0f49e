package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/ledger"
	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// PurchaseService handles stock intake from suppliers and supplier payments
type PurchaseService struct {
	purchaseRepo   repository.PurchaseRepository
	supplierRepo   repository.SupplierRepository
	productRepo    repository.ProductRepository
	batchRepo      repository.BatchRepository
	creditNoteRepo repository.CreditNoteRepository
	journalRepo    repository.JournalRepository
	attachmentRepo repository.AttachmentRepository
	tx             repository.TxManager
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	creditNoteRepo repository.CreditNoteRepository,
	journalRepo repository.JournalRepository,
	attachmentRepo repository.AttachmentRepository,
	tx repository.TxManager,
) *PurchaseService {
	return &PurchaseService{
		purchaseRepo:   purchaseRepo,
		supplierRepo:   supplierRepo,
		productRepo:    productRepo,
		batchRepo:      batchRepo,
		creditNoteRepo: creditNoteRepo,
		journalRepo:    journalRepo,
		attachmentRepo: attachmentRepo,
		tx:             tx,
	}
}

// PurchaseItemInput is one received line of a supplier invoice
type PurchaseItemInput struct {
	ProductID   uuid.UUID `json:"product_id" binding:"required"`
	BatchNumber string    `json:"batch_number" binding:"required"`
	ExpiryDate  time.Time `json:"expiry_date" binding:"required"`
	Quantity    int       `json:"quantity" binding:"required"`
	MRP         float64   `json:"mrp" binding:"required"`
	Price       float64   `json:"price" binding:"required"`
	Discount    float64   `json:"discount"`
}

// CreatePurchaseInput represents the purchase intake input
type CreatePurchaseInput struct {
	SupplierID    uuid.UUID
	InvoiceNumber *string
	Date          time.Time
	SGST          float64
	CGST          float64
	Status        enum.PaymentStatus
	PaymentMethod *string
	AmountPaid    float64
	Notes         *string
	Items         []PurchaseItemInput
	AttachmentIDs []uuid.UUID
}

// CreatePurchase books a supplier invoice: batches are found or created per
// line, stock is incremented, and the invoice is posted to the journal. All
// of it commits in one transaction.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *CreatePurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("a purchase needs at least one item")
	}
	if !input.Status.IsValid() {
		return nil, apperror.NewValidationError("status must be paid or credit")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, input.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	for _, it := range input.Items {
		if it.Quantity <= 0 {
			return nil, apperror.NewValidationError("item quantity must be positive")
		}
		if it.Price < 0 || it.MRP < 0 {
			return nil, apperror.NewValidationError("item prices cannot be negative")
		}
	}

	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	purchase := &entity.Purchase{
		ID:            uuid.New(),
		SupplierID:    input.SupplierID,
		InvoiceNumber: input.InvoiceNumber,
		Date:          date,
		SGST:          input.SGST,
		CGST:          input.CGST,
		Status:        input.Status,
		PaymentMethod: input.PaymentMethod,
		Notes:         input.Notes,
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		deltas := make([]repository.StockDelta, 0, len(input.Items))
		for _, it := range input.Items {
			product, err := s.productRepo.GetByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return apperror.NewIntegrityError(fmt.Sprintf("product %s does not exist", it.ProductID))
			}

			batch, err := s.findOrCreateBatch(ctx, product.ID, it)
			if err != nil {
				return err
			}

			amount := float64(it.Quantity) * it.Price * (1 - it.Discount/100)
			purchase.Items = append(purchase.Items, entity.PurchaseItem{
				ID:          uuid.New(),
				PurchaseID:  purchase.ID,
				ProductID:   product.ID,
				BatchID:     batch.ID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				Price:       it.Price,
				Amount:      amount,
			})
			purchase.SubTotal += amount

			deltas = append(deltas, repository.StockDelta{
				ProductID: product.ID,
				BatchID:   batch.ID,
				Delta:     it.Quantity,
			})
		}

		purchase.Total = purchase.SubTotal + purchase.SGST + purchase.CGST
		if input.Status == enum.PaymentStatusPaid {
			purchase.AmountPaid = purchase.Total
		} else {
			purchase.AmountPaid = input.AmountPaid
			purchase.Due = purchase.Total - input.AmountPaid
		}

		if err := s.batchRepo.AdjustStock(ctx, deltas); err != nil {
			return err
		}
		if err := s.purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		entry, err := ledger.PurchaseEntry(purchase, supplier.Name)
		if err != nil {
			return err
		}
		if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
			return err
		}
		if len(input.AttachmentIDs) > 0 {
			if err := s.attachmentRepo.AttachToPurchase(ctx, purchase.ID, input.AttachmentIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return purchase, nil
}

// findOrCreateBatch reuses an existing batch of the product with the same
// batch number, refreshing its pricing, or creates a new one with zero stock
// (the stock arrives through the delta set).
func (s *PurchaseService) findOrCreateBatch(ctx context.Context, productID uuid.UUID, it PurchaseItemInput) (*entity.Batch, error) {
	batch, err := s.batchRepo.FindByProductAndNumber(ctx, productID, it.BatchNumber)
	if err != nil {
		return nil, err
	}
	if batch != nil {
		batch.ExpiryDate = it.ExpiryDate
		batch.MRP = it.MRP
		batch.Price = it.Price
		batch.Discount = it.Discount
		if err := s.batchRepo.Update(ctx, batch); err != nil {
			return nil, err
		}
		return batch, nil
	}

	batch = &entity.Batch{
		ID:          uuid.New(),
		ProductID:   productID,
		BatchNumber: it.BatchNumber,
		ExpiryDate:  it.ExpiryDate,
		Stock:       0,
		MRP:         it.MRP,
		Price:       it.Price,
		Discount:    it.Discount,
	}
	if err := s.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetPurchase retrieves a purchase with its items
func (s *PurchaseService) GetPurchase(ctx context.Context, id uuid.UUID) (*entity.Purchase, error) {
	purchase, err := s.purchaseRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	return purchase, nil
}

// ListPurchases lists purchases with filters
func (s *PurchaseService) ListPurchases(ctx context.Context, params *repository.PurchaseFilterParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	purchases, total, err := s.purchaseRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(purchases, pag), nil
}

// PaySupplier records a payment against a credit purchase and posts it to
// the journal. Paying the due down to zero flips the purchase to paid.
func (s *PurchaseService) PaySupplier(ctx context.Context, purchaseID uuid.UUID, amount float64, method string) (*entity.Purchase, error) {
	if amount <= 0 {
		return nil, apperror.NewValidationError("payment amount must be positive")
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.Status != enum.PaymentStatusCredit {
		return nil, apperror.NewValidationError("purchase is not a credit purchase")
	}
	if amount > purchase.Due {
		return nil, apperror.NewValidationError("payment exceeds outstanding due")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, purchase.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	amountPaid := purchase.AmountPaid + amount
	due := purchase.Due - amount
	status := purchase.Status
	if due <= 0 {
		due = 0
		status = enum.PaymentStatusPaid
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.purchaseRepo.UpdatePayment(ctx, purchaseID, amountPaid, due, status); err != nil {
			return err
		}
		entry, err := ledger.SupplierPaymentEntry(purchase, supplier.Name, amount, method, time.Now())
		if err != nil {
			return err
		}
		return s.journalRepo.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	purchase.AmountPaid = amountPaid
	purchase.Due = due
	purchase.Status = status
	return purchase, nil
}

// ApplyCreditNote offsets an open credit note against a credit purchase's
// outstanding due. The note flips to applied and the reduction is posted to
// the journal; a note larger than the due is rejected rather than split.
func (s *PurchaseService) ApplyCreditNote(ctx context.Context, noteID, purchaseID uuid.UUID) (*entity.Purchase, error) {
	note, err := s.creditNoteRepo.GetByID(ctx, noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, apperror.NewNotFoundError("Credit note")
	}
	if note.Status != enum.CreditNoteStatusOpen {
		return nil, apperror.NewValidationError("credit note has already been applied")
	}

	purchase, err := s.purchaseRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}
	if purchase.SupplierID != note.SupplierID {
		return nil, apperror.NewValidationError("credit note belongs to a different supplier")
	}
	if purchase.Status != enum.PaymentStatusCredit {
		return nil, apperror.NewValidationError("purchase has no outstanding due")
	}
	if note.Amount > purchase.Due {
		return nil, apperror.NewValidationError("credit note exceeds outstanding due")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, note.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	due := purchase.Due - note.Amount
	status := purchase.Status
	if due <= 0 {
		due = 0
		status = enum.PaymentStatusPaid
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		note.Status = enum.CreditNoteStatusApplied
		note.AppliedPurchaseID = &purchaseID
		if err := s.creditNoteRepo.Update(ctx, note); err != nil {
			return err
		}
		if err := s.purchaseRepo.UpdatePayment(ctx, purchaseID, purchase.AmountPaid, due, status); err != nil {
			return err
		}
		entry, err := ledger.CreditNoteApplicationEntry(note, supplier.Name, purchaseID)
		if err != nil {
			return err
		}
		return s.journalRepo.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	purchase.Due = due
	purchase.Status = status
	return purchase, nil
}
