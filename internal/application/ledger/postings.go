package ledger

import (
	"fmt"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// The standard posting patterns. Each builder assembles the legs for one
// business event and runs them through NewEntry, so every entry leaving this
// file is balanced. Totals are derived by summing the rounded component legs
// rather than rounding the float total, which keeps the books exact.

func sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

func round2(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func line(accountID, accountName string, side enum.EntrySide, amount decimal.Decimal) entity.JournalLine {
	return entity.JournalLine{
		AccountID:   accountID,
		AccountName: accountName,
		Side:        side,
		Amount:      amount,
	}
}

// SaleEntry posts a checkout. Paid sales debit the tender account for the
// grand total; credit sales debit the customer's account instead. Credits go
// to Sales for the taxable value and to the GST output accounts for the
// split. RGHS bills carry no tax legs. A bill brought to zero by a voucher
// or a full discount moves no money at all; it returns a nil entry and the
// caller posts nothing.
func SaleEntry(sale *entity.Sale) (*entity.JournalEntry, error) {
	taxable := round2(sale.TaxableValue)
	sgst := round2(sale.SGST)
	cgst := round2(sale.CGST)
	total := sum(taxable, sgst, cgst)
	if total.IsZero() {
		return nil, nil
	}

	var debitID, debitName string
	if sale.Status == enum.PaymentStatusCredit {
		if sale.CustomerID == nil {
			return nil, fmt.Errorf("credit sale %s has no customer account", sale.BillNo)
		}
		debitID = sale.CustomerID.String()
		debitName = customerDisplayName(sale)
	} else {
		method := ""
		if sale.PaymentMethod != nil {
			method = *sale.PaymentMethod
		}
		debitID, debitName = PaymentAccount(method)
	}

	lines := []entity.JournalLine{
		line(debitID, debitName, enum.EntrySideDebit, total),
		line(AccountSales, SystemAccounts[AccountSales], enum.EntrySideCredit, taxable),
		line(AccountSGSTOutput, SystemAccounts[AccountSGSTOutput], enum.EntrySideCredit, sgst),
		line(AccountCGSTOutput, SystemAccounts[AccountCGSTOutput], enum.EntrySideCredit, cgst),
	}

	saleID := sale.ID
	return NewEntry(sale.Date, &saleID, enum.ReferenceTypeSale,
		fmt.Sprintf("Sale %s", sale.BillNo), lines)
}

// PurchaseEntry posts a stock receipt: debit Purchases for the pre-tax
// subtotal and the GST input accounts for the split; credit the tender
// account (paid) or the supplier's account (credit).
func PurchaseEntry(purchase *entity.Purchase, supplierName string) (*entity.JournalEntry, error) {
	subTotal := round2(purchase.SubTotal)
	sgst := round2(purchase.SGST)
	cgst := round2(purchase.CGST)
	total := sum(subTotal, sgst, cgst)

	var creditID, creditName string
	if purchase.Status == enum.PaymentStatusCredit {
		creditID = purchase.SupplierID.String()
		creditName = supplierName
	} else {
		method := ""
		if purchase.PaymentMethod != nil {
			method = *purchase.PaymentMethod
		}
		creditID, creditName = PaymentAccount(method)
	}

	lines := []entity.JournalLine{
		line(AccountPurchases, SystemAccounts[AccountPurchases], enum.EntrySideDebit, subTotal),
		line(AccountSGSTInput, SystemAccounts[AccountSGSTInput], enum.EntrySideDebit, sgst),
		line(AccountCGSTInput, SystemAccounts[AccountCGSTInput], enum.EntrySideDebit, cgst),
		line(creditID, creditName, enum.EntrySideCredit, total),
	}

	purchaseID := purchase.ID
	narration := "Purchase"
	if purchase.InvoiceNumber != nil {
		narration = fmt.Sprintf("Purchase %s", *purchase.InvoiceNumber)
	}
	return NewEntry(purchase.Date, &purchaseID, enum.ReferenceTypePurchase, narration, lines)
}

// RefundEntry posts a customer return settled in cash: debit Sales Returns
// for the net value and the GST output accounts for the tax handed back,
// credit Cash for the full refund. Refunds go through the same journal as
// everything else so every money movement stays a balanced entry.
func RefundEntry(ret *entity.CustomerReturn) (*entity.JournalEntry, error) {
	sgst := round2(ret.SGST)
	cgst := round2(ret.CGST)
	net := round2(ret.TotalAmount - ret.SGST - ret.CGST)
	lines := []entity.JournalLine{
		line(AccountSalesReturns, SystemAccounts[AccountSalesReturns], enum.EntrySideDebit, net),
		line(AccountSGSTOutput, SystemAccounts[AccountSGSTOutput], enum.EntrySideDebit, sgst),
		line(AccountCGSTOutput, SystemAccounts[AccountCGSTOutput], enum.EntrySideDebit, cgst),
		line(AccountCash, SystemAccounts[AccountCash], enum.EntrySideCredit, sum(net, sgst, cgst)),
	}

	retID := ret.ID
	return NewEntry(ret.Date, &retID, enum.ReferenceTypeCustomerReturn,
		fmt.Sprintf("Customer return %s (refund)", ret.ReturnNo), lines)
}

// SupplierAdjustmentEntry posts a supplier return settled directly against
// the supplier's account: debit the supplier (reducing the payable), credit
// Purchase Returns.
func SupplierAdjustmentEntry(ret *entity.SupplierReturn, supplierName string) (*entity.JournalEntry, error) {
	amount := round2(ret.TotalAmount)
	lines := []entity.JournalLine{
		line(ret.SupplierID.String(), supplierName, enum.EntrySideDebit, amount),
		line(AccountPurchaseReturns, SystemAccounts[AccountPurchaseReturns], enum.EntrySideCredit, amount),
	}

	retID := ret.ID
	return NewEntry(ret.Date, &retID, enum.ReferenceTypeSupplierReturn,
		fmt.Sprintf("Supplier return %s (ledger adjustment)", ret.ReturnNo), lines)
}

// CustomerPaymentEntry posts money received against a credit sale: debit the
// tender account, credit the customer's account.
func CustomerPaymentEntry(sale *entity.Sale, amount float64, method string, date time.Time) (*entity.JournalEntry, error) {
	rounded := round2(amount)
	if sale.CustomerID == nil {
		return nil, fmt.Errorf("sale %s has no customer account", sale.BillNo)
	}
	tenderID, tenderName := PaymentAccount(method)
	lines := []entity.JournalLine{
		line(tenderID, tenderName, enum.EntrySideDebit, rounded),
		line(sale.CustomerID.String(), customerDisplayName(sale), enum.EntrySideCredit, rounded),
	}

	saleID := sale.ID
	return NewEntry(date, &saleID, enum.ReferenceTypePayment,
		fmt.Sprintf("Payment received against %s", sale.BillNo), lines)
}

// SupplierPaymentEntry posts money paid against a credit purchase: debit the
// supplier's account, credit the tender account.
func SupplierPaymentEntry(purchase *entity.Purchase, supplierName string, amount float64, method string, date time.Time) (*entity.JournalEntry, error) {
	rounded := round2(amount)
	tenderID, tenderName := PaymentAccount(method)
	lines := []entity.JournalLine{
		line(purchase.SupplierID.String(), supplierName, enum.EntrySideDebit, rounded),
		line(tenderID, tenderName, enum.EntrySideCredit, rounded),
	}

	purchaseID := purchase.ID
	return NewEntry(date, &purchaseID, enum.ReferenceTypePayment,
		fmt.Sprintf("Payment made against purchase %s", purchase.ID), lines)
}

// CreditNoteApplicationEntry posts the application of an open credit note
// against a purchase payable: debit the supplier (payable shrinks), credit
// Purchase Returns. Issuance itself posts nothing; the note only becomes a
// book event when applied.
func CreditNoteApplicationEntry(note *entity.CreditNote, supplierName string, purchaseID uuid.UUID) (*entity.JournalEntry, error) {
	amount := round2(note.Amount)
	lines := []entity.JournalLine{
		line(note.SupplierID.String(), supplierName, enum.EntrySideDebit, amount),
		line(AccountPurchaseReturns, SystemAccounts[AccountPurchaseReturns], enum.EntrySideCredit, amount),
	}

	return NewEntry(note.Date, &purchaseID, enum.ReferenceTypeCreditNote,
		fmt.Sprintf("Credit note %s applied", note.CreditNoteNo), lines)
}

func customerDisplayName(sale *entity.Sale) string {
	if sale.CustomerName != nil && *sale.CustomerName != "" {
		return *sale.CustomerName
	}
	return "Customer"
}
