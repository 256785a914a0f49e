package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/billing"
	"github.com/aushadhi/pharmacy-api/internal/application/ledger"
	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/aushadhi/pharmacy-api/pkg/utils"
	"github.com/google/uuid"
)

// SaleService handles checkout and sale queries. Checkout is the hot path of
// the counter: everything it writes (stock, sale, voucher, journal) commits
// in one transaction or not at all.
type SaleService struct {
	saleRepo       repository.SaleRepository
	productRepo    repository.ProductRepository
	batchRepo      repository.BatchRepository
	voucherRepo    repository.VoucherRepository
	journalRepo    repository.JournalRepository
	settingsRepo   repository.SettingsRepository
	attachmentRepo repository.AttachmentRepository
	tx             repository.TxManager
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	batchRepo repository.BatchRepository,
	voucherRepo repository.VoucherRepository,
	journalRepo repository.JournalRepository,
	settingsRepo repository.SettingsRepository,
	attachmentRepo repository.AttachmentRepository,
	tx repository.TxManager,
) *SaleService {
	return &SaleService{
		saleRepo:       saleRepo,
		productRepo:    productRepo,
		batchRepo:      batchRepo,
		voucherRepo:    voucherRepo,
		journalRepo:    journalRepo,
		settingsRepo:   settingsRepo,
		attachmentRepo: attachmentRepo,
		tx:             tx,
	}
}

// CheckoutItemInput is one cart line as submitted by the counter
type CheckoutItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	BatchID   uuid.UUID `json:"batch_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required"`
}

// CheckoutInput represents the checkout input
type CheckoutInput struct {
	CustomerID      *uuid.UUID
	CustomerName    *string
	DoctorName      *string
	DoctorRegNo     *string
	IsRGHS          bool
	DiscountPercent float64
	VoucherID       *uuid.UUID
	Status          enum.PaymentStatus
	PaymentMethod   *string
	AmountPaid      float64
	Items           []CheckoutItemInput
	AttachmentIDs   []uuid.UUID
}

// Checkout commits a sale. Totals are always recomputed server-side from the
// submitted quantities and the stored batch prices; client-sent amounts are
// never trusted.
func (s *SaleService) Checkout(ctx context.Context, input *CheckoutInput) (*entity.Sale, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewValidationError("a sale needs at least one item")
	}
	if !input.Status.IsValid() {
		return nil, apperror.NewValidationError("status must be paid or credit")
	}
	if input.Status == enum.PaymentStatusCredit && input.CustomerID == nil {
		return nil, apperror.NewValidationError("a credit sale needs a customer")
	}
	if input.DiscountPercent < 0 || input.DiscountPercent > 100 {
		return nil, apperror.NewValidationError("discount percent must be between 0 and 100")
	}

	lines, products, err := s.buildCart(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	if err := s.checkSchedules(products, input); err != nil {
		return nil, err
	}

	var voucher *entity.Voucher
	voucherBalance := 0.0
	if input.VoucherID != nil {
		voucher, err = s.voucherRepo.GetByID(ctx, *input.VoucherID)
		if err != nil {
			return nil, err
		}
		if voucher == nil {
			return nil, apperror.NewNotFoundError("Voucher")
		}
		if !voucher.Redeemable() {
			return nil, apperror.NewValidationError("voucher is not redeemable")
		}
		voucherBalance = voucher.Balance
	}

	summary := billing.ComputeBillSummary(lines, input.DiscountPercent, input.IsRGHS, voucherBalance)

	sale := s.assembleSale(input, lines, summary)

	deltas := make([]repository.StockDelta, 0, len(lines))
	for _, l := range lines {
		deltas = append(deltas, repository.StockDelta{
			ProductID: l.ProductID,
			BatchID:   l.BatchID,
			Delta:     -l.Quantity,
		})
	}

	// Validate the combined draw before opening the transaction. Per-line
	// checks in buildCart cannot see two lines consuming the same batch.
	snapshot := make([]entity.Product, 0, len(products))
	for _, p := range products {
		snapshot = append(snapshot, *p)
	}
	if _, err := billing.ApplyStockDeltas(snapshot, deltas); err != nil {
		return nil, err
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.batchRepo.AdjustStock(ctx, deltas); err != nil {
			return err
		}
		if err := s.saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		if voucher != nil && summary.VoucherDiscount > 0 {
			if err := s.redeemVoucher(ctx, voucher, summary.VoucherDiscount); err != nil {
				return err
			}
		}
		entry, err := ledger.SaleEntry(sale)
		if err != nil {
			return err
		}
		if entry != nil {
			if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
				return err
			}
		}
		if len(input.AttachmentIDs) > 0 {
			if err := s.attachmentRepo.AttachToSale(ctx, sale.ID, input.AttachmentIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sale, nil
}

// PreviewBill computes the totals for a cart without committing anything.
// The counter calls this on every cart edit to render live totals.
func (s *SaleService) PreviewBill(ctx context.Context, input *CheckoutInput) (*billing.BillSummary, error) {
	lines, _, err := s.buildCart(ctx, input.Items)
	if err != nil {
		return nil, err
	}

	voucherBalance := 0.0
	if input.VoucherID != nil {
		voucher, err := s.voucherRepo.GetByID(ctx, *input.VoucherID)
		if err != nil {
			return nil, err
		}
		if voucher != nil && voucher.Redeemable() {
			voucherBalance = voucher.Balance
		}
	}

	summary := billing.ComputeBillSummary(lines, input.DiscountPercent, input.IsRGHS, voucherBalance)
	return &summary, nil
}

// buildCart resolves the submitted items against stored products and batches
// and freezes prices and tax rates into cart lines.
func (s *SaleService) buildCart(ctx context.Context, items []CheckoutItemInput) ([]billing.CartLine, map[uuid.UUID]*entity.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := map[uuid.UUID]bool{}
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, nil, apperror.NewValidationError("item quantity must be positive")
		}
		if !seen[it.ProductID] {
			seen[it.ProductID] = true
			ids = append(ids, it.ProductID)
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*entity.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, nil, err
	}
	rates := billing.GSTRates{
		Subsidized: settings.Subsidized,
		General:    settings.General,
		Food:       settings.Food,
	}

	lines := make([]billing.CartLine, 0, len(items))
	for _, it := range items {
		product, ok := byID[it.ProductID]
		if !ok {
			return nil, nil, apperror.NewIntegrityError(fmt.Sprintf("product %s does not exist", it.ProductID))
		}

		var batch *entity.Batch
		for i := range product.Batches {
			if product.Batches[i].ID == it.BatchID {
				batch = &product.Batches[i]
				break
			}
		}
		if batch == nil {
			return nil, nil, apperror.NewIntegrityError(
				fmt.Sprintf("batch %s does not belong to product %s", it.BatchID, product.Name))
		}
		if batch.Stock < it.Quantity {
			return nil, nil, apperror.NewInsufficientStockError(
				fmt.Sprintf("%s batch %s has %d units, %d requested", product.Name, batch.BatchNumber, batch.Stock, it.Quantity))
		}

		lines = append(lines, billing.CartLine{
			ProductID:   product.ID,
			BatchID:     batch.ID,
			ProductName: product.Name,
			Quantity:    it.Quantity,
			Price:       batch.MRP,
			TaxRate:     billing.GSTRate(product.HSNCode, rates),
		})
	}

	return lines, byID, nil
}

// checkSchedules blocks checkout of scheduled drugs without a prescribing
// doctor or an attached prescription.
func (s *SaleService) checkSchedules(products map[uuid.UUID]*entity.Product, input *CheckoutInput) error {
	hasDoctor := input.DoctorName != nil && *input.DoctorName != ""
	hasPrescription := len(input.AttachmentIDs) > 0
	if hasDoctor || hasPrescription {
		return nil
	}
	for _, p := range products {
		if p.Schedule.RequiresPrescription() {
			return apperror.NewValidationError(
				fmt.Sprintf("%s is a schedule %s drug and needs a prescribing doctor or prescription", p.Name, p.Schedule))
		}
	}
	return nil
}

func (s *SaleService) assembleSale(input *CheckoutInput, lines []billing.CartLine, summary billing.BillSummary) *entity.Sale {
	sale := &entity.Sale{
		ID:              uuid.New(),
		BillNo:          utils.GenerateBillNo(),
		CustomerID:      input.CustomerID,
		CustomerName:    input.CustomerName,
		DoctorName:      input.DoctorName,
		DoctorRegNo:     input.DoctorRegNo,
		IsRGHS:          input.IsRGHS,
		Date:            time.Now(),
		SubTotal:        summary.SubTotal,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  summary.DiscountAmount,
		VoucherAmount:   summary.VoucherDiscount,
		TaxableValue:    summary.TaxableValue,
		SGST:            summary.TotalSGST,
		CGST:            summary.TotalCGST,
		Total:           summary.GrandTotal,
		Status:          input.Status,
		PaymentMethod:   input.PaymentMethod,
	}
	if summary.VoucherDiscount > 0 {
		sale.VoucherID = input.VoucherID
	}

	if input.Status == enum.PaymentStatusPaid {
		sale.AmountPaid = summary.GrandTotal
	} else {
		sale.AmountPaid = input.AmountPaid
		sale.Due = summary.GrandTotal - input.AmountPaid
	}

	for _, l := range lines {
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:          uuid.New(),
			SaleID:      sale.ID,
			ProductID:   l.ProductID,
			BatchID:     l.BatchID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Price:       l.Price,
			TaxRate:     l.TaxRate,
		})
	}
	return sale
}

// redeemVoucher draws the redeemed amount off the voucher balance. The
// balance only ever decreases; once it hits zero the voucher flips to used.
func (s *SaleService) redeemVoucher(ctx context.Context, voucher *entity.Voucher, redeemed float64) error {
	voucher.Balance -= redeemed
	if voucher.Balance <= 0 {
		voucher.Balance = 0
		voucher.Status = enum.VoucherStatusUsed
	}
	return s.voucherRepo.Update(ctx, voucher)
}

// GetSale retrieves a sale with its items
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetWithItems(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales lists sales with filters
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) (*pagination.PaginatedResult[entity.Sale], error) {
	sales, total, err := s.saleRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(sales, pag), nil
}

// ReceivePayment records a payment against a credit sale and posts it to the
// journal. Paying the due down to zero flips the sale to paid.
func (s *SaleService) ReceivePayment(ctx context.Context, saleID uuid.UUID, amount float64, method string) (*entity.Sale, error) {
	if amount <= 0 {
		return nil, apperror.NewValidationError("payment amount must be positive")
	}

	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	if sale.Status != enum.PaymentStatusCredit {
		return nil, apperror.NewValidationError("sale is not a credit sale")
	}
	if amount > sale.Due {
		return nil, apperror.NewValidationError("payment exceeds outstanding due")
	}

	amountPaid := sale.AmountPaid + amount
	due := sale.Due - amount
	status := sale.Status
	if due <= 0 {
		due = 0
		status = enum.PaymentStatusPaid
	}

	err = s.tx.Do(ctx, func(ctx context.Context) error {
		if err := s.saleRepo.UpdatePayment(ctx, saleID, amountPaid, due, status); err != nil {
			return err
		}
		entry, err := ledger.CustomerPaymentEntry(sale, amount, method, time.Now())
		if err != nil {
			return err
		}
		return s.journalRepo.CreateEntry(ctx, entry)
	})
	if err != nil {
		return nil, err
	}

	sale.AmountPaid = amountPaid
	sale.Due = due
	sale.Status = status
	return sale, nil
}
