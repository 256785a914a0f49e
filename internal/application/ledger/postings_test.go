package ledger

import (
	"testing"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func lineAmount(t *testing.T, e *entity.JournalEntry, accountID string, side enum.EntrySide) decimal.Decimal {
	t.Helper()
	for _, l := range e.Lines {
		if l.AccountID == accountID && l.Side == side {
			return l.Amount
		}
	}
	t.Fatalf("no %s line for account %s", side, accountID)
	return decimal.Zero
}

func TestSaleEntryCash(t *testing.T) {
	// 200 taxable, 18+18 GST, cash tender
	method := "cash"
	sale := &entity.Sale{
		ID:            uuid.New(),
		BillNo:        "BILL-AB12CD34",
		Date:          testDate,
		TaxableValue:  200,
		SGST:          18,
		CGST:          18,
		Total:         236,
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
	}

	entry, err := SaleEntry(sale)
	if err != nil {
		t.Fatalf("SaleEntry: %v", err)
	}

	if got := lineAmount(t, entry, AccountCash, enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(236)) {
		t.Errorf("cash debit = %s, want 236", got)
	}
	if got := lineAmount(t, entry, AccountSales, enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(200)) {
		t.Errorf("sales credit = %s, want 200", got)
	}
	if got := lineAmount(t, entry, AccountSGSTOutput, enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(18)) {
		t.Errorf("sgst credit = %s, want 18", got)
	}
	if got := lineAmount(t, entry, AccountCGSTOutput, enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(18)) {
		t.Errorf("cgst credit = %s, want 18", got)
	}
	if entry.ReferenceType != enum.ReferenceTypeSale {
		t.Errorf("reference type = %s", entry.ReferenceType)
	}
}

func TestSaleEntryCredit(t *testing.T) {
	custID := uuid.New()
	name := "Ramesh"
	sale := &entity.Sale{
		ID:           uuid.New(),
		BillNo:       "BILL-EF56AB78",
		Date:         testDate,
		CustomerID:   &custID,
		CustomerName: &name,
		TaxableValue: 500,
		SGST:         12.5,
		CGST:         12.5,
		Status:       enum.PaymentStatusCredit,
	}

	entry, err := SaleEntry(sale)
	if err != nil {
		t.Fatalf("SaleEntry: %v", err)
	}

	if got := lineAmount(t, entry, custID.String(), enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(525)) {
		t.Errorf("customer debit = %s, want 525", got)
	}
}

func TestSaleEntryCreditNoCustomer(t *testing.T) {
	sale := &entity.Sale{ID: uuid.New(), BillNo: "BILL-X", Status: enum.PaymentStatusCredit, TaxableValue: 100}
	if _, err := SaleEntry(sale); err == nil {
		t.Fatal("credit sale without a customer accepted")
	}
}

func TestSaleEntryRGHSNoTaxLegs(t *testing.T) {
	method := "cash"
	sale := &entity.Sale{
		ID:            uuid.New(),
		BillNo:        "BILL-RG01",
		Date:          testDate,
		IsRGHS:        true,
		TaxableValue:  300,
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
	}

	entry, err := SaleEntry(sale)
	if err != nil {
		t.Fatalf("SaleEntry: %v", err)
	}
	if len(entry.Lines) != 2 {
		t.Fatalf("got %d lines, want 2 (no tax legs)", len(entry.Lines))
	}
}

func TestSaleEntryZeroTotalPostsNothing(t *testing.T) {
	// a voucher covering the whole bill leaves nothing to post
	method := "cash"
	sale := &entity.Sale{
		ID:            uuid.New(),
		BillNo:        "BILL-VC99",
		Date:          testDate,
		SubTotal:      100,
		VoucherAmount: 100,
		Status:        enum.PaymentStatusPaid,
		PaymentMethod: &method,
	}

	entry, err := SaleEntry(sale)
	if err != nil {
		t.Fatalf("SaleEntry: %v", err)
	}
	if entry != nil {
		t.Fatalf("zero-total sale produced an entry with %d lines", len(entry.Lines))
	}
}

func TestPurchaseEntryCredit(t *testing.T) {
	supplierID := uuid.New()
	inv := "INV-4471"
	purchase := &entity.Purchase{
		ID:            uuid.New(),
		SupplierID:    supplierID,
		InvoiceNumber: &inv,
		Date:          testDate,
		SubTotal:      1000,
		SGST:          60,
		CGST:          60,
		Total:         1120,
		Status:        enum.PaymentStatusCredit,
	}

	entry, err := PurchaseEntry(purchase, "MedSupply Co")
	if err != nil {
		t.Fatalf("PurchaseEntry: %v", err)
	}

	if got := lineAmount(t, entry, supplierID.String(), enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(1120)) {
		t.Errorf("supplier credit = %s, want 1120", got)
	}
	if got := lineAmount(t, entry, AccountPurchases, enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("purchases debit = %s, want 1000", got)
	}
	if got := lineAmount(t, entry, AccountSGSTInput, enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(60)) {
		t.Errorf("sgst input debit = %s, want 60", got)
	}
}

func TestRefundEntry(t *testing.T) {
	// 100 net plus the 9+9 GST collected on the returned units
	ret := &entity.CustomerReturn{
		ID:          uuid.New(),
		ReturnNo:    "RET-11AA22BB",
		TotalAmount: 118,
		SGST:        9,
		CGST:        9,
		Settlement:  enum.CustomerSettlementRefund,
		Date:        testDate,
	}

	entry, err := RefundEntry(ret)
	if err != nil {
		t.Fatalf("RefundEntry: %v", err)
	}
	if got := lineAmount(t, entry, AccountSalesReturns, enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("sales returns debit = %s, want 100", got)
	}
	if got := lineAmount(t, entry, AccountSGSTOutput, enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(9)) {
		t.Errorf("sgst output debit = %s, want 9", got)
	}
	if got := lineAmount(t, entry, AccountCGSTOutput, enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(9)) {
		t.Errorf("cgst output debit = %s, want 9", got)
	}
	if got := lineAmount(t, entry, AccountCash, enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(118)) {
		t.Errorf("cash credit = %s, want 118", got)
	}
	if entry.ReferenceType != enum.ReferenceTypeCustomerReturn {
		t.Errorf("reference type = %s", entry.ReferenceType)
	}
}

func TestRefundEntryUntaxed(t *testing.T) {
	ret := &entity.CustomerReturn{
		ID:          uuid.New(),
		ReturnNo:    "RET-55EE66FF",
		TotalAmount: 100,
		Settlement:  enum.CustomerSettlementRefund,
		Date:        testDate,
	}

	entry, err := RefundEntry(ret)
	if err != nil {
		t.Fatalf("RefundEntry: %v", err)
	}
	if len(entry.Lines) != 2 {
		t.Fatalf("got %d lines, want 2 (no tax legs)", len(entry.Lines))
	}
	if got := lineAmount(t, entry, AccountCash, enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("cash credit = %s, want 100", got)
	}
}

func TestSupplierPaymentEntry(t *testing.T) {
	supplierID := uuid.New()
	purchase := &entity.Purchase{ID: uuid.New(), SupplierID: supplierID, Date: testDate}

	paidAt := testDate.Add(48 * time.Hour)
	entry, err := SupplierPaymentEntry(purchase, "MedSupply Co", 500, "bank", paidAt)
	if err != nil {
		t.Fatalf("SupplierPaymentEntry: %v", err)
	}
	if !entry.Date.Equal(paidAt) {
		t.Errorf("entry date = %v, want payment date %v", entry.Date, paidAt)
	}
	if got := lineAmount(t, entry, AccountBank, enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(500)) {
		t.Errorf("bank credit = %s, want 500", got)
	}
}

func TestCreditNoteApplicationEntry(t *testing.T) {
	supplierID := uuid.New()
	purchaseID := uuid.New()
	note := &entity.CreditNote{
		ID:           uuid.New(),
		CreditNoteNo: "CRN-33CC44DD",
		SupplierID:   supplierID,
		Amount:       250,
		Date:         testDate,
		Status:       enum.CreditNoteStatusOpen,
	}

	entry, err := CreditNoteApplicationEntry(note, "MedSupply Co", purchaseID)
	if err != nil {
		t.Fatalf("CreditNoteApplicationEntry: %v", err)
	}
	if got := lineAmount(t, entry, supplierID.String(), enum.EntrySideDebit); !got.Equal(decimal.NewFromInt(250)) {
		t.Errorf("supplier debit = %s, want 250", got)
	}
	if got := lineAmount(t, entry, AccountPurchaseReturns, enum.EntrySideCredit); !got.Equal(decimal.NewFromInt(250)) {
		t.Errorf("purchase returns credit = %s, want 250", got)
	}
	if entry.ReferenceID == nil || *entry.ReferenceID != purchaseID {
		t.Error("entry should reference the purchase it was applied to")
	}
}
