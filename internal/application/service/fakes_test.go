package service

import (
	"context"
	"fmt"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// In-memory fakes backing the service tests. The tx fake just runs the
// function; rollback behavior is covered by the ordering inside the
// services (stock mutation first) and the repository integration layer.

type fakeTx struct{}

func (fakeTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeProductRepo struct {
	products map[uuid.UUID]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uuid.UUID]*entity.Product{}}
}

func (r *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Product, error) {
	return r.products[id], nil
}

func (r *fakeProductRepo) GetByIDs(_ context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	var out []entity.Product
	for _, id := range ids {
		if p, ok := r.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) List(_ context.Context, _ *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	var out []entity.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) GetLowStock(_ context.Context) ([]entity.Product, error) {
	var out []entity.Product
	for _, p := range r.products {
		if p.TotalStock() <= p.MinStock {
			out = append(out, *p)
		}
	}
	return out, nil
}

type fakeBatchRepo struct {
	products *fakeProductRepo
}

func (r *fakeBatchRepo) find(productID, batchID uuid.UUID) *entity.Batch {
	p, ok := r.products.products[productID]
	if !ok {
		return nil
	}
	for i := range p.Batches {
		if p.Batches[i].ID == batchID {
			return &p.Batches[i]
		}
	}
	return nil
}

func (r *fakeBatchRepo) Create(_ context.Context, b *entity.Batch) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	p, ok := r.products.products[b.ProductID]
	if !ok {
		return apperror.NewIntegrityError("product does not exist")
	}
	p.Batches = append(p.Batches, *b)
	return nil
}

func (r *fakeBatchRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Batch, error) {
	for _, p := range r.products.products {
		for i := range p.Batches {
			if p.Batches[i].ID == id {
				return &p.Batches[i], nil
			}
		}
	}
	return nil, nil
}

func (r *fakeBatchRepo) GetByProduct(_ context.Context, productID uuid.UUID) ([]entity.Batch, error) {
	p, ok := r.products.products[productID]
	if !ok {
		return nil, nil
	}
	return p.Batches, nil
}

func (r *fakeBatchRepo) FindByProductAndNumber(_ context.Context, productID uuid.UUID, batchNumber string) (*entity.Batch, error) {
	p, ok := r.products.products[productID]
	if !ok {
		return nil, nil
	}
	for i := range p.Batches {
		if p.Batches[i].BatchNumber == batchNumber {
			return &p.Batches[i], nil
		}
	}
	return nil, nil
}

func (r *fakeBatchRepo) Update(_ context.Context, b *entity.Batch) error {
	existing := r.find(b.ProductID, b.ID)
	if existing == nil {
		return apperror.NewIntegrityError("batch does not exist")
	}
	*existing = *b
	return nil
}

func (r *fakeBatchRepo) AdjustStock(_ context.Context, deltas []repository.StockDelta) error {
	for _, d := range deltas {
		b := r.find(d.ProductID, d.BatchID)
		if b == nil {
			return apperror.NewIntegrityError(fmt.Sprintf("batch %s does not exist", d.BatchID))
		}
		if b.Stock+d.Delta < 0 {
			return apperror.NewInsufficientStockError(fmt.Sprintf("batch %s", d.BatchID))
		}
	}
	for _, d := range deltas {
		r.find(d.ProductID, d.BatchID).Stock += d.Delta
	}
	return nil
}

func (r *fakeBatchRepo) ListExpiring(_ context.Context, before time.Time) ([]entity.Batch, error) {
	var out []entity.Batch
	for _, p := range r.products.products {
		for _, b := range p.Batches {
			if b.Stock > 0 && !b.ExpiryDate.After(before) {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

type fakeSaleRepo struct {
	sales map[uuid.UUID]*entity.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[uuid.UUID]*entity.Sale{}}
}

func (r *fakeSaleRepo) Create(_ context.Context, s *entity.Sale) error {
	r.sales[s.ID] = s
	return nil
}

func (r *fakeSaleRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Sale, error) {
	return r.sales[id], nil
}

func (r *fakeSaleRepo) List(_ context.Context, _ *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	var out []entity.Sale
	for _, s := range r.sales {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

func (r *fakeSaleRepo) UpdatePayment(_ context.Context, id uuid.UUID, amountPaid, due float64, status enum.PaymentStatus) error {
	s, ok := r.sales[id]
	if !ok {
		return apperror.NewNotFoundError("Sale")
	}
	s.AmountPaid = amountPaid
	s.Due = due
	s.Status = status
	return nil
}

type fakePurchaseRepo struct {
	purchases map[uuid.UUID]*entity.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{purchases: map[uuid.UUID]*entity.Purchase{}}
}

func (r *fakePurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	r.purchases[p.ID] = p
	return nil
}

func (r *fakePurchaseRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return r.purchases[id], nil
}

func (r *fakePurchaseRepo) GetWithItems(_ context.Context, id uuid.UUID) (*entity.Purchase, error) {
	return r.purchases[id], nil
}

func (r *fakePurchaseRepo) List(_ context.Context, _ *repository.PurchaseFilterParams) ([]entity.Purchase, int64, error) {
	var out []entity.Purchase
	for _, p := range r.purchases {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakePurchaseRepo) UpdatePayment(_ context.Context, id uuid.UUID, amountPaid, due float64, status enum.PaymentStatus) error {
	p, ok := r.purchases[id]
	if !ok {
		return apperror.NewNotFoundError("Purchase")
	}
	p.AmountPaid = amountPaid
	p.Due = due
	p.Status = status
	return nil
}

type fakeSupplierRepo struct {
	suppliers map[uuid.UUID]*entity.Supplier
}

func newFakeSupplierRepo() *fakeSupplierRepo {
	return &fakeSupplierRepo{suppliers: map[uuid.UUID]*entity.Supplier{}}
}

func (r *fakeSupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	r.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

func (r *fakeSupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	r.suppliers[s.ID] = s
	return nil
}

func (r *fakeSupplierRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.suppliers, id)
	return nil
}

func (r *fakeSupplierRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.Supplier, int64, error) {
	var out []entity.Supplier
	for _, s := range r.suppliers {
		out = append(out, *s)
	}
	return out, int64(len(out)), nil
}

type fakeVoucherRepo struct {
	vouchers map[uuid.UUID]*entity.Voucher
}

func newFakeVoucherRepo() *fakeVoucherRepo {
	return &fakeVoucherRepo{vouchers: map[uuid.UUID]*entity.Voucher{}}
}

func (r *fakeVoucherRepo) Create(_ context.Context, v *entity.Voucher) error {
	r.vouchers[v.ID] = v
	return nil
}

func (r *fakeVoucherRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Voucher, error) {
	return r.vouchers[id], nil
}

func (r *fakeVoucherRepo) Update(_ context.Context, v *entity.Voucher) error {
	r.vouchers[v.ID] = v
	return nil
}

func (r *fakeVoucherRepo) ListActive(_ context.Context) ([]entity.Voucher, error) {
	var out []entity.Voucher
	for _, v := range r.vouchers {
		if v.Status == enum.VoucherStatusActive {
			out = append(out, *v)
		}
	}
	return out, nil
}

func (r *fakeVoucherRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.Voucher, int64, error) {
	var out []entity.Voucher
	for _, v := range r.vouchers {
		out = append(out, *v)
	}
	return out, int64(len(out)), nil
}

type fakeCreditNoteRepo struct {
	notes map[uuid.UUID]*entity.CreditNote
}

func newFakeCreditNoteRepo() *fakeCreditNoteRepo {
	return &fakeCreditNoteRepo{notes: map[uuid.UUID]*entity.CreditNote{}}
}

func (r *fakeCreditNoteRepo) Create(_ context.Context, n *entity.CreditNote) error {
	r.notes[n.ID] = n
	return nil
}

func (r *fakeCreditNoteRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CreditNote, error) {
	return r.notes[id], nil
}

func (r *fakeCreditNoteRepo) Update(_ context.Context, n *entity.CreditNote) error {
	r.notes[n.ID] = n
	return nil
}

func (r *fakeCreditNoteRepo) ListOpenBySupplier(_ context.Context, supplierID uuid.UUID) ([]entity.CreditNote, error) {
	var out []entity.CreditNote
	for _, n := range r.notes {
		if n.SupplierID == supplierID && n.Status == enum.CreditNoteStatusOpen {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeCreditNoteRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.CreditNote, int64, error) {
	var out []entity.CreditNote
	for _, n := range r.notes {
		out = append(out, *n)
	}
	return out, int64(len(out)), nil
}

type fakeJournalRepo struct {
	entries []*entity.JournalEntry
}

func (r *fakeJournalRepo) CreateEntry(_ context.Context, e *entity.JournalEntry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *fakeJournalRepo) GetEntry(_ context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeJournalRepo) ListEntries(_ context.Context, _ *repository.JournalFilterParams) ([]entity.JournalEntry, int64, error) {
	var out []entity.JournalEntry
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeJournalRepo) ListEntriesByAccount(_ context.Context, accountID string) ([]entity.JournalEntry, error) {
	var out []entity.JournalEntry
	for _, e := range r.entries {
		for _, l := range e.Lines {
			if l.AccountID == accountID {
				out = append(out, *e)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeJournalRepo) ListAccounts(_ context.Context) ([]entity.Account, error) {
	return nil, nil
}

type fakeSettingsRepo struct {
	settings entity.GSTSettings
}

func (r *fakeSettingsRepo) Get(_ context.Context) (*entity.GSTSettings, error) {
	s := r.settings
	return &s, nil
}

func (r *fakeSettingsRepo) Update(_ context.Context, s *entity.GSTSettings) error {
	r.settings = *s
	return nil
}

type fakeCustomerReturnRepo struct {
	returns map[uuid.UUID]*entity.CustomerReturn
}

func newFakeCustomerReturnRepo() *fakeCustomerReturnRepo {
	return &fakeCustomerReturnRepo{returns: map[uuid.UUID]*entity.CustomerReturn{}}
}

func (r *fakeCustomerReturnRepo) Create(_ context.Context, ret *entity.CustomerReturn) error {
	r.returns[ret.ID] = ret
	return nil
}

func (r *fakeCustomerReturnRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.CustomerReturn, error) {
	return r.returns[id], nil
}

func (r *fakeCustomerReturnRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.CustomerReturn, int64, error) {
	var out []entity.CustomerReturn
	for _, ret := range r.returns {
		out = append(out, *ret)
	}
	return out, int64(len(out)), nil
}

type fakeSupplierReturnRepo struct {
	returns map[uuid.UUID]*entity.SupplierReturn
}

func newFakeSupplierReturnRepo() *fakeSupplierReturnRepo {
	return &fakeSupplierReturnRepo{returns: map[uuid.UUID]*entity.SupplierReturn{}}
}

func (r *fakeSupplierReturnRepo) Create(_ context.Context, ret *entity.SupplierReturn) error {
	r.returns[ret.ID] = ret
	return nil
}

func (r *fakeSupplierReturnRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.SupplierReturn, error) {
	return r.returns[id], nil
}

func (r *fakeSupplierReturnRepo) List(_ context.Context, _ *pagination.PaginationParams) ([]entity.SupplierReturn, int64, error) {
	var out []entity.SupplierReturn
	for _, ret := range r.returns {
		out = append(out, *ret)
	}
	return out, int64(len(out)), nil
}

type fakeAttachmentRepo struct {
	attachments map[uuid.UUID]*entity.Attachment
}

func newFakeAttachmentRepo() *fakeAttachmentRepo {
	return &fakeAttachmentRepo{attachments: map[uuid.UUID]*entity.Attachment{}}
}

func (r *fakeAttachmentRepo) Create(_ context.Context, a *entity.Attachment) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.attachments[a.ID] = a
	return nil
}

func (r *fakeAttachmentRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Attachment, error) {
	return r.attachments[id], nil
}

func (r *fakeAttachmentRepo) AttachToSale(_ context.Context, saleID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		a, ok := r.attachments[id]
		if !ok {
			return apperror.NewNotFoundError("Attachment")
		}
		sid := saleID
		a.SaleID = &sid
	}
	return nil
}

func (r *fakeAttachmentRepo) AttachToPurchase(_ context.Context, purchaseID uuid.UUID, ids []uuid.UUID) error {
	for _, id := range ids {
		a, ok := r.attachments[id]
		if !ok {
			return apperror.NewNotFoundError("Attachment")
		}
		pid := purchaseID
		a.PurchaseID = &pid
	}
	return nil
}
