package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/ledger"
	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type saleFixture struct {
	svc         *SaleService
	products    *fakeProductRepo
	batches     *fakeBatchRepo
	sales       *fakeSaleRepo
	vouchers    *fakeVoucherRepo
	journal     *fakeJournalRepo
	attachments *fakeAttachmentRepo

	product *entity.Product
	batch   *entity.Batch
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()

	products := newFakeProductRepo()
	batches := &fakeBatchRepo{products: products}
	sales := newFakeSaleRepo()
	vouchers := newFakeVoucherRepo()
	journal := &fakeJournalRepo{}
	attachments := newFakeAttachmentRepo()
	settings := &fakeSettingsRepo{settings: entity.GSTSettings{Subsidized: 5, General: 12, Food: 18}}

	product := &entity.Product{
		ID:      uuid.New(),
		HSNCode: "30049099",
		Name:    "Paracetamol 500",
		Pack:    "10 tabs",
	}
	batch := entity.Batch{
		ID:          uuid.New(),
		ProductID:   product.ID,
		BatchNumber: "PB-01",
		ExpiryDate:  time.Now().AddDate(1, 0, 0),
		Stock:       10,
		MRP:         100,
		Price:       70,
	}
	product.Batches = []entity.Batch{batch}
	products.products[product.ID] = product

	svc := NewSaleService(sales, products, batches, vouchers, journal, settings, attachments, fakeTx{})
	return &saleFixture{
		svc:         svc,
		products:    products,
		batches:     batches,
		sales:       sales,
		vouchers:    vouchers,
		journal:     journal,
		attachments: attachments,
		product:     product,
		batch:       &product.Batches[0],
	}
}

func TestCheckoutPaidCash(t *testing.T) {
	f := newSaleFixture(t)
	method := "cash"

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		DiscountPercent: 10,
		Status:          enum.PaymentStatusPaid,
		PaymentMethod:   &method,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	// 2 x 100 at 12% with 10% discount
	if math.Abs(sale.Total-201.6) > 1e-6 {
		t.Errorf("Total = %v, want 201.6", sale.Total)
	}
	if sale.AmountPaid != sale.Total || sale.Due != 0 {
		t.Errorf("paid sale has AmountPaid %v Due %v", sale.AmountPaid, sale.Due)
	}
	if f.batch.Stock != 8 {
		t.Errorf("batch stock = %d, want 8", f.batch.Stock)
	}
	if len(f.sales.sales) != 1 {
		t.Errorf("got %d stored sales, want 1", len(f.sales.sales))
	}

	if len(f.journal.entries) != 1 {
		t.Fatalf("got %d journal entries, want 1", len(f.journal.entries))
	}
	entry := f.journal.entries[0]
	if err := ledger.Validate(entry); err != nil {
		t.Errorf("posted entry is unbalanced: %v", err)
	}
	var cashDebit decimal.Decimal
	for _, l := range entry.Lines {
		if l.AccountID == ledger.AccountCash && l.Side == enum.EntrySideDebit {
			cashDebit = l.Amount
		}
	}
	if !cashDebit.Equal(decimal.NewFromFloat(201.6)) {
		t.Errorf("cash debit = %s, want 201.6", cashDebit)
	}
}

func TestCheckoutInsufficientStockLeavesNothingBehind(t *testing.T) {
	f := newSaleFixture(t)
	method := "cash"

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 11},
		},
	})
	if err == nil {
		t.Fatal("oversell accepted")
	}

	if f.batch.Stock != 10 {
		t.Errorf("batch stock = %d, want 10 untouched", f.batch.Stock)
	}
	if len(f.sales.sales) != 0 || len(f.journal.entries) != 0 {
		t.Error("failed checkout left records behind")
	}
}

func TestCheckoutTwoLinesSameBatchOversell(t *testing.T) {
	f := newSaleFixture(t)
	method := "cash"

	// Each line passes the per-line stock check on its own.
	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 6},
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 6},
		},
	})
	if err == nil {
		t.Fatal("combined oversell accepted")
	}

	if f.batch.Stock != 10 {
		t.Errorf("batch stock = %d, want 10 untouched", f.batch.Stock)
	}
	if len(f.sales.sales) != 0 || len(f.journal.entries) != 0 {
		t.Error("failed checkout left records behind")
	}
}

func TestCheckoutScheduledDrugNeedsDoctor(t *testing.T) {
	f := newSaleFixture(t)
	f.product.Schedule = enum.ScheduleH1
	method := "cash"

	input := &CheckoutInput{
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 1},
		},
	}
	if _, err := f.svc.Checkout(context.Background(), input); err == nil {
		t.Fatal("scheduled drug sold without doctor or prescription")
	}

	doctor := "Dr. Meena"
	input.DoctorName = &doctor
	if _, err := f.svc.Checkout(context.Background(), input); err != nil {
		t.Fatalf("checkout with doctor rejected: %v", err)
	}
}

func TestCheckoutRedeemsVoucher(t *testing.T) {
	f := newSaleFixture(t)
	method := "cash"

	voucher := &entity.Voucher{
		ID:            uuid.New(),
		VoucherNo:     "VCH-TEST0001",
		InitialAmount: 50,
		Balance:       50,
		CreatedDate:   time.Now(),
		Status:        enum.VoucherStatusActive,
	}
	f.vouchers.vouchers[voucher.ID] = voucher

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
		VoucherID:     &voucher.ID,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if sale.VoucherAmount != 50 {
		t.Errorf("VoucherAmount = %v, want 50", sale.VoucherAmount)
	}
	if voucher.Balance != 0 {
		t.Errorf("voucher balance = %v, want 0", voucher.Balance)
	}
	if voucher.Status != enum.VoucherStatusUsed {
		t.Errorf("voucher status = %s, want used", voucher.Status)
	}
}

func TestCheckoutFullyVoucherSettled(t *testing.T) {
	f := newSaleFixture(t)
	method := "cash"

	// voucher big enough to swallow the whole bill
	voucher := &entity.Voucher{
		ID:            uuid.New(),
		VoucherNo:     "VCH-TEST0003",
		InitialAmount: 150,
		Balance:       150,
		CreatedDate:   time.Now(),
		Status:        enum.VoucherStatusActive,
	}
	f.vouchers.vouchers[voucher.ID] = voucher

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
		VoucherID:     &voucher.ID,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}

	if sale.Total != 0 {
		t.Errorf("Total = %v, want 0", sale.Total)
	}
	if sale.VoucherAmount != 100 {
		t.Errorf("VoucherAmount = %v, want 100", sale.VoucherAmount)
	}
	if f.batch.Stock != 9 {
		t.Errorf("batch stock = %d, want 9", f.batch.Stock)
	}
	if len(f.sales.sales) != 1 {
		t.Errorf("got %d stored sales, want 1", len(f.sales.sales))
	}
	if voucher.Balance != 50 || voucher.Status != enum.VoucherStatusActive {
		t.Errorf("voucher = %v/%s, want 50/active", voucher.Balance, voucher.Status)
	}
	// no money moved, nothing posts
	if len(f.journal.entries) != 0 {
		t.Errorf("zero-total checkout posted %d journal entries", len(f.journal.entries))
	}
}

func TestCheckoutExhaustedVoucherRejected(t *testing.T) {
	f := newSaleFixture(t)
	method := "cash"

	voucher := &entity.Voucher{
		ID:        uuid.New(),
		VoucherNo: "VCH-TEST0002",
		Balance:   0,
		Status:    enum.VoucherStatusUsed,
	}
	f.vouchers.vouchers[voucher.ID] = voucher

	_, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
		VoucherID:     &voucher.ID,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 1},
		},
	})
	if err == nil {
		t.Fatal("used voucher accepted")
	}
}

func TestReceivePayment(t *testing.T) {
	f := newSaleFixture(t)
	custID := uuid.New()
	name := "Sita"

	sale, err := f.svc.Checkout(context.Background(), &CheckoutInput{
		CustomerID:   &custID,
		CustomerName: &name,
		Status:       enum.PaymentStatusCredit,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if sale.Due != sale.Total {
		t.Fatalf("credit sale due = %v, want %v", sale.Due, sale.Total)
	}

	if _, err := f.svc.ReceivePayment(context.Background(), sale.ID, sale.Total+1, "cash"); err == nil {
		t.Error("overpayment accepted")
	}

	updated, err := f.svc.ReceivePayment(context.Background(), sale.ID, sale.Total, "cash")
	if err != nil {
		t.Fatalf("ReceivePayment: %v", err)
	}
	if updated.Due != 0 || updated.Status != enum.PaymentStatusPaid {
		t.Errorf("after full payment: due %v status %s", updated.Due, updated.Status)
	}

	// the customer's account must net to zero: sale debit, payment credit
	entries, _ := f.journal.ListEntriesByAccount(context.Background(), custID.String())
	bal := ledger.AccountBalance(entries, custID.String())
	if !bal.Amount.IsZero() {
		t.Errorf("customer balance = %s %s, want 0", bal.Amount, bal.Type)
	}
}

func TestPreviewBillCommitsNothing(t *testing.T) {
	f := newSaleFixture(t)

	summary, err := f.svc.PreviewBill(context.Background(), &CheckoutInput{
		DiscountPercent: 10,
		Items: []CheckoutItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("PreviewBill: %v", err)
	}
	if math.Abs(summary.GrandTotal-201.6) > 1e-6 {
		t.Errorf("GrandTotal = %v, want 201.6", summary.GrandTotal)
	}
	if f.batch.Stock != 10 || len(f.sales.sales) != 0 || len(f.journal.entries) != 0 {
		t.Error("preview mutated state")
	}
}
