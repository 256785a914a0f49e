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
	"github.com/aushadhi/pharmacy-api/pkg/utils"
	"github.com/google/uuid"
)

// ReturnService handles customer and supplier returns. Each return restocks
// or destocks the exact batches the original document touched, settles with
// the party, and posts to the journal, all in one transaction.
type ReturnService struct {
	customerReturnRepo repository.CustomerReturnRepository
	supplierReturnRepo repository.SupplierReturnRepository
	saleRepo           repository.SaleRepository
	purchaseRepo       repository.PurchaseRepository
	supplierRepo       repository.SupplierRepository
	batchRepo          repository.BatchRepository
	voucherRepo        repository.VoucherRepository
	creditNoteRepo     repository.CreditNoteRepository
	journalRepo        repository.JournalRepository
	tx                 repository.TxManager
}

// NewReturnService creates a new return service
func NewReturnService(
	customerReturnRepo repository.CustomerReturnRepository,
	supplierReturnRepo repository.SupplierReturnRepository,
	saleRepo repository.SaleRepository,
	purchaseRepo repository.PurchaseRepository,
	supplierRepo repository.SupplierRepository,
	batchRepo repository.BatchRepository,
	voucherRepo repository.VoucherRepository,
	creditNoteRepo repository.CreditNoteRepository,
	journalRepo repository.JournalRepository,
	tx repository.TxManager,
) *ReturnService {
	return &ReturnService{
		customerReturnRepo: customerReturnRepo,
		supplierReturnRepo: supplierReturnRepo,
		saleRepo:           saleRepo,
		purchaseRepo:       purchaseRepo,
		supplierRepo:       supplierRepo,
		batchRepo:          batchRepo,
		voucherRepo:        voucherRepo,
		creditNoteRepo:     creditNoteRepo,
		journalRepo:        journalRepo,
		tx:                 tx,
	}
}

// ReturnItemInput is one returned line, identified by the original document's
// product and batch.
type ReturnItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	BatchID   uuid.UUID `json:"batch_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// CreateCustomerReturnInput represents the customer return input
type CreateCustomerReturnInput struct {
	SaleID     uuid.UUID
	Settlement enum.CustomerSettlement
	Items      []ReturnItemInput
}

// CustomerReturnResult carries the created return and, for voucher
// settlements, the issued voucher.
type CustomerReturnResult struct {
	Return  *entity.CustomerReturn `json:"return"`
	Voucher *entity.Voucher        `json:"voucher,omitempty"`
}

// CreateCustomerReturn books goods handed back against a prior sale. Every
// returned line must match a line of the original sale and cannot exceed its
// sold quantity. Stock goes back into the original batches. Settlement is a
// cash refund posted to the journal or a store-credit voucher for the
// returned value.
func (s *ReturnService) CreateCustomerReturn(ctx context.Context, input *CreateCustomerReturnInput) (*CustomerReturnResult, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("a return needs at least one item")
	}
	if !input.Settlement.IsValid() {
		return nil, apperror.NewValidationError("settlement must be refund or voucher")
	}

	sale, err := s.saleRepo.GetWithItems(ctx, input.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	ret := &entity.CustomerReturn{
		ID:           uuid.New(),
		ReturnNo:     utils.GenerateReturnNo(),
		SaleID:       sale.ID,
		CustomerName: sale.CustomerName,
		Settlement:   input.Settlement,
		Date:         time.Now(),
	}

	deltas := make([]repository.StockDelta, 0, len(input.Items))
	for _, it := range input.Items {
		sold := findSaleItem(sale.Items, it.ProductID, it.BatchID)
		if sold == nil {
			return nil, apperror.NewIntegrityError(
				fmt.Sprintf("batch %s of product %s was not on bill %s", it.BatchID, it.ProductID, sale.BillNo))
		}
		if it.Quantity <= 0 || it.Quantity > sold.Quantity {
			return nil, apperror.NewValidationError(
				fmt.Sprintf("%s: returned quantity must be between 1 and %d", sold.ProductName, sold.Quantity))
		}

		// refund at the effective per-unit value the customer actually paid
		unitValue := sold.Price
		if sale.SubTotal > 0 {
			unitValue = sold.Price * (sale.SubTotal - sale.DiscountAmount - sale.VoucherAmount) / sale.SubTotal
		}
		amount := unitValue * float64(it.Quantity)

		// give back the GST collected on the returned units too
		tax := 0.0
		if !sale.IsRGHS {
			tax = amount * sold.TaxRate / 100
		}

		ret.Items = append(ret.Items, entity.CustomerReturnItem{
			ID:          uuid.New(),
			ReturnID:    ret.ID,
			ProductID:   it.ProductID,
			BatchID:     it.BatchID,
			ProductName: sold.ProductName,
			Quantity:    it.Quantity,
			Price:       sold.Price,
			Amount:      amount,
		})
		ret.SGST += tax / 2
		ret.CGST += tax / 2
		ret.TotalAmount += amount + tax

		deltas = append(deltas, repository.StockDelta{
			ProductID: it.ProductID,
			BatchID:   it.BatchID,
			Delta:     it.Quantity,
		})
	}

	result := &CustomerReturnResult{Return: ret}
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.batchRepo.AdjustStock(ctx, deltas); err != nil {
			return err
		}

		if input.Settlement == enum.CustomerSettlementVoucher {
			voucher := &entity.Voucher{
				ID:            uuid.New(),
				VoucherNo:     utils.GenerateVoucherNo(),
				CustomerName:  sale.CustomerName,
				InitialAmount: ret.TotalAmount,
				Balance:       ret.TotalAmount,
				CreatedDate:   ret.Date,
				Status:        enum.VoucherStatusActive,
			}
			if err := s.voucherRepo.Create(ctx, voucher); err != nil {
				return err
			}
			ret.VoucherID = &voucher.ID
			result.Voucher = voucher
		}

		if err := s.customerReturnRepo.Create(ctx, ret); err != nil {
			return err
		}

		if input.Settlement == enum.CustomerSettlementRefund {
			entry, err := ledger.RefundEntry(ret)
			if err != nil {
				return err
			}
			if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// CreateSupplierReturnInput represents the supplier return input
type CreateSupplierReturnInput struct {
	PurchaseID uuid.UUID
	Settlement enum.SupplierSettlement
	Items      []ReturnItemInput
}

// SupplierReturnResult carries the created return and, for credit-note
// settlements, the issued note.
type SupplierReturnResult struct {
	Return     *entity.SupplierReturn `json:"return"`
	CreditNote *entity.CreditNote     `json:"credit_note,omitempty"`
}

// CreateSupplierReturn books goods sent back against a prior purchase. Every
// returned line must match a line of the original purchase and cannot exceed
// its received quantity; stock is drawn back out of the original batches and
// the mutation fails if the shelf no longer holds enough. Settlement is
// either a credit note held open for a later payable or an immediate ledger
// adjustment posted against the supplier's account.
func (s *ReturnService) CreateSupplierReturn(ctx context.Context, input *CreateSupplierReturnInput) (*SupplierReturnResult, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("a return needs at least one item")
	}
	if !input.Settlement.IsValid() {
		return nil, apperror.NewValidationError("settlement must be credit_note or ledger_adjustment")
	}

	purchase, err := s.purchaseRepo.GetWithItems(ctx, input.PurchaseID)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, apperror.NewNotFoundError("Purchase")
	}

	supplier, err := s.supplierRepo.GetByID(ctx, purchase.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, apperror.NewNotFoundError("Supplier")
	}

	ret := &entity.SupplierReturn{
		ID:         uuid.New(),
		ReturnNo:   utils.GenerateReturnNo(),
		PurchaseID: purchase.ID,
		SupplierID: purchase.SupplierID,
		Settlement: input.Settlement,
		Date:       time.Now(),
	}

	deltas := make([]repository.StockDelta, 0, len(input.Items))
	for _, it := range input.Items {
		received := findPurchaseItem(purchase.Items, it.ProductID, it.BatchID)
		if received == nil {
			return nil, apperror.NewIntegrityError(
				fmt.Sprintf("batch %s of product %s was not on this purchase", it.BatchID, it.ProductID))
		}
		if it.Quantity <= 0 || it.Quantity > received.Quantity {
			return nil, apperror.NewValidationError(
				fmt.Sprintf("%s: returned quantity must be between 1 and %d", received.ProductName, received.Quantity))
		}

		amount := received.Amount / float64(received.Quantity) * float64(it.Quantity)
		ret.Items = append(ret.Items, entity.SupplierReturnItem{
			ID:          uuid.New(),
			ReturnID:    ret.ID,
			ProductID:   it.ProductID,
			BatchID:     it.BatchID,
			ProductName: received.ProductName,
			Quantity:    it.Quantity,
			Price:       received.Price,
			Amount:      amount,
		})
		ret.TotalAmount += amount

		deltas = append(deltas, repository.StockDelta{
			ProductID: it.ProductID,
			BatchID:   it.BatchID,
			Delta:     -it.Quantity,
		})
	}

	result := &SupplierReturnResult{Return: ret}
	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.batchRepo.AdjustStock(ctx, deltas); err != nil {
			return err
		}

		if input.Settlement == enum.SupplierSettlementCreditNote {
			note := &entity.CreditNote{
				ID:               uuid.New(),
				CreditNoteNo:     utils.GenerateCreditNoteNo(),
				SupplierID:       purchase.SupplierID,
				SupplierReturnID: ret.ID,
				Amount:           ret.TotalAmount,
				Date:             ret.Date,
				Status:           enum.CreditNoteStatusOpen,
			}
			if err := s.creditNoteRepo.Create(ctx, note); err != nil {
				return err
			}
			ret.CreditNoteID = &note.ID
			result.CreditNote = note
		}

		if err := s.supplierReturnRepo.Create(ctx, ret); err != nil {
			return err
		}

		if input.Settlement == enum.SupplierSettlementLedgerAdjustment {
			entry, err := ledger.SupplierAdjustmentEntry(ret, supplier.Name)
			if err != nil {
				return err
			}
			if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// GetCustomerReturn retrieves a customer return by ID
func (s *ReturnService) GetCustomerReturn(ctx context.Context, id uuid.UUID) (*entity.CustomerReturn, error) {
	ret, err := s.customerReturnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Customer return")
	}
	return ret, nil
}

// ListCustomerReturns lists customer returns
func (s *ReturnService) ListCustomerReturns(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.CustomerReturn], error) {
	returns, total, err := s.customerReturnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

// GetSupplierReturn retrieves a supplier return by ID
func (s *ReturnService) GetSupplierReturn(ctx context.Context, id uuid.UUID) (*entity.SupplierReturn, error) {
	ret, err := s.supplierReturnRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, apperror.NewNotFoundError("Supplier return")
	}
	return ret, nil
}

// ListSupplierReturns lists supplier returns
func (s *ReturnService) ListSupplierReturns(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.SupplierReturn], error) {
	returns, total, err := s.supplierReturnRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Page, params.PerPage, total)
	return pagination.NewPaginatedResult(returns, pag), nil
}

func findSaleItem(items []entity.SaleItem, productID, batchID uuid.UUID) *entity.SaleItem {
	for i := range items {
		if items[i].ProductID == productID && items[i].BatchID == batchID {
			return &items[i]
		}
	}
	return nil
}

func findPurchaseItem(items []entity.PurchaseItem, productID, batchID uuid.UUID) *entity.PurchaseItem {
	for i := range items {
		if items[i].ProductID == productID && items[i].BatchID == batchID {
			return &items[i]
		}
	}
	return nil
}
