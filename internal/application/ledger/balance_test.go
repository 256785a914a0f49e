package ledger

import (
	"testing"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func entryOn(day int, narration string, lines ...entity.JournalLine) entity.JournalEntry {
	return entity.JournalEntry{
		Date:      time.Date(2025, 4, day, 0, 0, 0, 0, time.UTC),
		Narration: narration,
		Lines:     lines,
	}
}

func TestAccountBalanceSides(t *testing.T) {
	entries := []entity.JournalEntry{
		entryOn(1, "Sale BILL-1",
			Debit(AccountCash, "Cash", 236),
			Credit(AccountSales, "Sales", 200),
			Credit(AccountSGSTOutput, "SGST Output", 18),
			Credit(AccountCGSTOutput, "CGST Output", 18),
		),
		entryOn(2, "Customer return RET-1 (refund)",
			Debit(AccountSalesReturns, "Sales Returns", 36),
			Credit(AccountCash, "Cash", 36),
		),
	}

	cash := AccountBalance(entries, AccountCash)
	if cash.Type != Dr || !cash.Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("cash = %s %s, want 200 Dr", cash.Amount, cash.Type)
	}

	sales := AccountBalance(entries, AccountSales)
	if sales.Type != Cr || !sales.Amount.Equal(decimal.NewFromInt(200)) {
		t.Errorf("sales = %s %s, want 200 Cr", sales.Amount, sales.Type)
	}

	empty := AccountBalance(entries, AccountBank)
	if empty.Type != Dr || !empty.Amount.IsZero() {
		t.Errorf("untouched account = %s %s, want 0 Dr", empty.Amount, empty.Type)
	}
}

func TestStatementRunningBalance(t *testing.T) {
	supplier := "f3b1c0de-0000-0000-0000-000000000001"
	// deliberately out of date order; Statement must sort before replaying
	entries := []entity.JournalEntry{
		entryOn(10, "Payment made",
			Debit(supplier, "MedSupply Co", 400),
			Credit(AccountCash, "Cash", 400),
		),
		entryOn(3, "Purchase INV-1",
			Debit(AccountPurchases, "Purchases", 1000),
			Credit(supplier, "MedSupply Co", 1000),
		),
		entryOn(7, "Supplier return RET-S1 (ledger adjustment)",
			Debit(supplier, "MedSupply Co", 150),
			Credit(AccountPurchaseReturns, "Purchase Returns", 150),
		),
		entryOn(5, "Sale BILL-9",
			Debit(AccountCash, "Cash", 100),
			Credit(AccountSales, "Sales", 100),
		),
	}

	rows := Statement(entries, supplier)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}

	wantRunning := []int64{-1000, -850, -450}
	for i, want := range wantRunning {
		if !rows[i].RunningBalance.Equal(decimal.NewFromInt(want)) {
			t.Errorf("row %d running balance = %s, want %d", i, rows[i].RunningBalance, want)
		}
	}
	if !rows[0].Date.Before(rows[1].Date) || !rows[1].Date.Before(rows[2].Date) {
		t.Error("statement rows not in date order")
	}

	// the statement's final running balance must agree with AccountBalance
	bal := AccountBalance(entries, supplier)
	if bal.Type != Cr || !bal.Amount.Equal(decimal.NewFromInt(450)) {
		t.Errorf("balance = %s %s, want 450 Cr", bal.Amount, bal.Type)
	}
}

func TestStatementCollapsesEntryLegs(t *testing.T) {
	// both legs of an entry touch the same account; the row shows both columns
	acct := "a0000000-0000-0000-0000-00000000000a"
	entries := []entity.JournalEntry{
		entryOn(1, "Contra",
			Line(acct, "X", enum.EntrySideDebit, 100),
			Line(acct, "X", enum.EntrySideCredit, 40),
		),
	}

	rows := Statement(entries, acct)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if !rows[0].Debit.Equal(decimal.NewFromInt(100)) || !rows[0].Credit.Equal(decimal.NewFromInt(40)) {
		t.Errorf("row = Dr %s / Cr %s, want 100/40", rows[0].Debit, rows[0].Credit)
	}
	if !rows[0].RunningBalance.Equal(decimal.NewFromInt(60)) {
		t.Errorf("running = %s, want 60", rows[0].RunningBalance)
	}
}
