package service

import (
	"context"
	"testing"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/ledger"
	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type returnFixture struct {
	svc      *ReturnService
	products *fakeProductRepo
	sales    *fakeSaleRepo
	pur      *fakePurchaseRepo
	vouchers *fakeVoucherRepo
	notes    *fakeCreditNoteRepo
	journal  *fakeJournalRepo

	product  *entity.Product
	batch    *entity.Batch
	supplier *entity.Supplier
}

func newReturnFixture(t *testing.T) *returnFixture {
	t.Helper()

	products := newFakeProductRepo()
	batches := &fakeBatchRepo{products: products}
	sales := newFakeSaleRepo()
	purchases := newFakePurchaseRepo()
	suppliers := newFakeSupplierRepo()
	vouchers := newFakeVoucherRepo()
	notes := newFakeCreditNoteRepo()
	journal := &fakeJournalRepo{}

	product := &entity.Product{ID: uuid.New(), HSNCode: "30041000", Name: "Amoxicillin 250"}
	batch := entity.Batch{
		ID:          uuid.New(),
		ProductID:   product.ID,
		BatchNumber: "AMX-7",
		ExpiryDate:  time.Now().AddDate(0, 6, 0),
		Stock:       8,
		MRP:         50,
		Price:       32,
	}
	product.Batches = []entity.Batch{batch}
	products.products[product.ID] = product

	supplier := &entity.Supplier{ID: uuid.New(), Name: "MedSupply Co"}
	suppliers.suppliers[supplier.ID] = supplier

	svc := NewReturnService(
		newFakeCustomerReturnRepo(), newFakeSupplierReturnRepo(),
		sales, purchases, suppliers, batches, vouchers, notes, journal, fakeTx{})

	return &returnFixture{
		svc:      svc,
		products: products,
		sales:    sales,
		pur:      purchases,
		vouchers: vouchers,
		notes:    notes,
		journal:  journal,
		product:  product,
		batch:    &product.Batches[0],
		supplier: supplier,
	}
}

func (f *returnFixture) seedSale() *entity.Sale {
	sale := &entity.Sale{
		ID:       uuid.New(),
		BillNo:   "BILL-SEED0001",
		Date:     time.Now(),
		SubTotal: 200,
		Total:    200,
		Status:   enum.PaymentStatusPaid,
		Items: []entity.SaleItem{{
			ID:          uuid.New(),
			ProductID:   f.product.ID,
			BatchID:     f.batch.ID,
			ProductName: f.product.Name,
			Quantity:    4,
			Price:       50,
		}},
	}
	f.sales.sales[sale.ID] = sale
	return sale
}

func (f *returnFixture) seedPurchase() *entity.Purchase {
	purchase := &entity.Purchase{
		ID:         uuid.New(),
		SupplierID: f.supplier.ID,
		Date:       time.Now(),
		SubTotal:   160,
		Total:      160,
		Status:     enum.PaymentStatusCredit,
		Due:        160,
		Items: []entity.PurchaseItem{{
			ID:          uuid.New(),
			ProductID:   f.product.ID,
			BatchID:     f.batch.ID,
			ProductName: f.product.Name,
			Quantity:    5,
			Price:       32,
			Amount:      160,
		}},
	}
	f.pur.purchases[purchase.ID] = purchase
	return purchase
}

func TestCustomerReturnRefund(t *testing.T) {
	f := newReturnFixture(t)
	sale := f.seedSale()

	result, err := f.svc.CreateCustomerReturn(context.Background(), &CreateCustomerReturnInput{
		SaleID:     sale.ID,
		Settlement: enum.CustomerSettlementRefund,
		Items: []ReturnItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateCustomerReturn: %v", err)
	}

	if result.Return.TotalAmount != 100 {
		t.Errorf("TotalAmount = %v, want 100", result.Return.TotalAmount)
	}
	if f.batch.Stock != 10 {
		t.Errorf("batch stock = %d, want 10 after restock", f.batch.Stock)
	}
	if result.Voucher != nil {
		t.Error("refund settlement issued a voucher")
	}

	if len(f.journal.entries) != 1 {
		t.Fatalf("got %d journal entries, want 1", len(f.journal.entries))
	}
	entry := f.journal.entries[0]
	if err := ledger.Validate(entry); err != nil {
		t.Errorf("refund entry unbalanced: %v", err)
	}
	if entry.ReferenceType != enum.ReferenceTypeCustomerReturn {
		t.Errorf("reference type = %s", entry.ReferenceType)
	}
}

func TestCustomerReturnRefundReversesTax(t *testing.T) {
	f := newReturnFixture(t)
	sale := f.seedSale()
	sale.Items[0].TaxRate = 12

	result, err := f.svc.CreateCustomerReturn(context.Background(), &CreateCustomerReturnInput{
		SaleID:     sale.ID,
		Settlement: enum.CustomerSettlementRefund,
		Items: []ReturnItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateCustomerReturn: %v", err)
	}

	// 100 net plus 12% GST handed back with the refund
	if result.Return.TotalAmount != 112 {
		t.Errorf("TotalAmount = %v, want 112", result.Return.TotalAmount)
	}
	if result.Return.SGST != 6 || result.Return.CGST != 6 {
		t.Errorf("GST split = %v/%v, want 6/6", result.Return.SGST, result.Return.CGST)
	}

	if len(f.journal.entries) != 1 {
		t.Fatalf("got %d journal entries, want 1", len(f.journal.entries))
	}
	entry := f.journal.entries[0]
	if err := ledger.Validate(entry); err != nil {
		t.Errorf("refund entry unbalanced: %v", err)
	}
	for _, want := range []struct {
		account string
		side    enum.EntrySide
		amount  int64
	}{
		{ledger.AccountSalesReturns, enum.EntrySideDebit, 100},
		{ledger.AccountSGSTOutput, enum.EntrySideDebit, 6},
		{ledger.AccountCGSTOutput, enum.EntrySideDebit, 6},
		{ledger.AccountCash, enum.EntrySideCredit, 112},
	} {
		found := false
		for _, l := range entry.Lines {
			if l.AccountID == want.account && l.Side == want.side {
				found = true
				if !l.Amount.Equal(decimal.NewFromInt(want.amount)) {
					t.Errorf("%s %s = %s, want %d", want.account, want.side, l.Amount, want.amount)
				}
			}
		}
		if !found {
			t.Errorf("no %s line for %s", want.side, want.account)
		}
	}
}

func TestCustomerReturnVoucher(t *testing.T) {
	f := newReturnFixture(t)
	sale := f.seedSale()

	result, err := f.svc.CreateCustomerReturn(context.Background(), &CreateCustomerReturnInput{
		SaleID:     sale.ID,
		Settlement: enum.CustomerSettlementVoucher,
		Items: []ReturnItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateCustomerReturn: %v", err)
	}

	if result.Voucher == nil {
		t.Fatal("voucher settlement issued no voucher")
	}
	if result.Voucher.Balance != 50 || result.Voucher.InitialAmount != 50 {
		t.Errorf("voucher = %v/%v, want 50/50", result.Voucher.Balance, result.Voucher.InitialAmount)
	}
	if result.Voucher.Status != enum.VoucherStatusActive {
		t.Errorf("voucher status = %s, want active", result.Voucher.Status)
	}
	if result.Return.VoucherID == nil || *result.Return.VoucherID != result.Voucher.ID {
		t.Error("return does not reference the issued voucher")
	}
	// store credit is not a money movement yet, nothing posts
	if len(f.journal.entries) != 0 {
		t.Errorf("voucher settlement posted %d journal entries", len(f.journal.entries))
	}
}

func TestCustomerReturnRejectsForeignAndExcessItems(t *testing.T) {
	f := newReturnFixture(t)
	sale := f.seedSale()

	_, err := f.svc.CreateCustomerReturn(context.Background(), &CreateCustomerReturnInput{
		SaleID:     sale.ID,
		Settlement: enum.CustomerSettlementRefund,
		Items: []ReturnItemInput{
			{ProductID: uuid.New(), BatchID: f.batch.ID, Quantity: 1},
		},
	})
	if err == nil {
		t.Error("item not on the bill accepted")
	}

	_, err = f.svc.CreateCustomerReturn(context.Background(), &CreateCustomerReturnInput{
		SaleID:     sale.ID,
		Settlement: enum.CustomerSettlementRefund,
		Items: []ReturnItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 5},
		},
	})
	if err == nil {
		t.Error("returned more than was sold")
	}

	if f.batch.Stock != 8 {
		t.Errorf("batch stock = %d, want 8 untouched", f.batch.Stock)
	}
}

func TestSupplierReturnCreditNote(t *testing.T) {
	f := newReturnFixture(t)
	purchase := f.seedPurchase()

	result, err := f.svc.CreateSupplierReturn(context.Background(), &CreateSupplierReturnInput{
		PurchaseID: purchase.ID,
		Settlement: enum.SupplierSettlementCreditNote,
		Items: []ReturnItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("CreateSupplierReturn: %v", err)
	}

	if f.batch.Stock != 5 {
		t.Errorf("batch stock = %d, want 5 after destock", f.batch.Stock)
	}
	if result.CreditNote == nil {
		t.Fatal("credit note settlement issued no note")
	}
	if result.CreditNote.Amount != 96 {
		t.Errorf("note amount = %v, want 96", result.CreditNote.Amount)
	}
	if result.CreditNote.Status != enum.CreditNoteStatusOpen {
		t.Errorf("note status = %s, want open", result.CreditNote.Status)
	}
	// the note only posts when applied
	if len(f.journal.entries) != 0 {
		t.Errorf("credit note issuance posted %d journal entries", len(f.journal.entries))
	}
}

func TestSupplierReturnLedgerAdjustment(t *testing.T) {
	f := newReturnFixture(t)
	purchase := f.seedPurchase()

	result, err := f.svc.CreateSupplierReturn(context.Background(), &CreateSupplierReturnInput{
		PurchaseID: purchase.ID,
		Settlement: enum.SupplierSettlementLedgerAdjustment,
		Items: []ReturnItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 2},
		},
	})
	if err != nil {
		t.Fatalf("CreateSupplierReturn: %v", err)
	}

	if result.CreditNote != nil {
		t.Error("ledger adjustment issued a credit note")
	}
	if len(f.journal.entries) != 1 {
		t.Fatalf("got %d journal entries, want 1", len(f.journal.entries))
	}
	entry := f.journal.entries[0]
	if err := ledger.Validate(entry); err != nil {
		t.Errorf("adjustment entry unbalanced: %v", err)
	}

	// the supplier account is debited, shrinking the payable
	bal := ledger.AccountBalance([]entity.JournalEntry{*entry}, f.supplier.ID.String())
	if bal.Type != ledger.Dr || !bal.Amount.Equal(decimal.NewFromInt(64)) {
		t.Errorf("supplier movement = %s %s, want 64 Dr", bal.Amount, bal.Type)
	}
}

func TestSupplierReturnInsufficientShelfStock(t *testing.T) {
	f := newReturnFixture(t)
	purchase := f.seedPurchase()
	f.batch.Stock = 1

	_, err := f.svc.CreateSupplierReturn(context.Background(), &CreateSupplierReturnInput{
		PurchaseID: purchase.ID,
		Settlement: enum.SupplierSettlementCreditNote,
		Items: []ReturnItemInput{
			{ProductID: f.product.ID, BatchID: f.batch.ID, Quantity: 3},
		},
	})
	if err == nil {
		t.Fatal("returned stock the shelf no longer holds")
	}
	if f.batch.Stock != 1 {
		t.Errorf("batch stock = %d, want 1 untouched", f.batch.Stock)
	}
	if len(f.notes.notes) != 0 {
		t.Error("failed return issued a credit note")
	}
}
