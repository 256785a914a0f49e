package ledger

import (
	"sort"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// DrCr is the display side of a ledger balance
type DrCr string

const (
	Dr DrCr = "Dr"
	Cr DrCr = "Cr"
)

// Balance is a per-account ledger balance. Amount is the absolute value;
// Type says which side it sits on.
type Balance struct {
	Amount decimal.Decimal `json:"amount"`
	Type   DrCr            `json:"type"`
}

// StatementRow is one line of a ledger statement: the entry's narration and
// the account's movement, with the running balance after it.
type StatementRow struct {
	Date           time.Time          `json:"date"`
	Narration      string             `json:"narration"`
	ReferenceType  enum.ReferenceType `json:"reference_type"`
	Debit          decimal.Decimal    `json:"debit"`
	Credit         decimal.Decimal    `json:"credit"`
	RunningBalance decimal.Decimal    `json:"running_balance"`
}

// AccountBalance folds every line touching the account into a signed
// debit-minus-credit sum. Non-negative shows as Dr, negative as Cr with the
// sign dropped.
func AccountBalance(entries []entity.JournalEntry, accountID string) Balance {
	net := decimal.Zero
	for _, e := range entries {
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			if l.Side == enum.EntrySideDebit {
				net = net.Add(l.Amount)
			} else {
				net = net.Sub(l.Amount)
			}
		}
	}

	if net.IsNegative() {
		return Balance{Amount: net.Neg(), Type: Cr}
	}
	return Balance{Amount: net, Type: Dr}
}

// Statement replays every entry touching the account in date order and
// emits one row per entry with the running balance recomputed left to
// right. This is the audit trail reconciled against supplier and customer
// dues.
func Statement(entries []entity.JournalEntry, accountID string) []StatementRow {
	ordered := make([]entity.JournalEntry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	rows := make([]StatementRow, 0, len(ordered))
	running := decimal.Zero
	for _, e := range ordered {
		debit := decimal.Zero
		credit := decimal.Zero
		touched := false
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			touched = true
			if l.Side == enum.EntrySideDebit {
				debit = debit.Add(l.Amount)
			} else {
				credit = credit.Add(l.Amount)
			}
		}
		if !touched {
			continue
		}
		running = running.Add(debit).Sub(credit)
		rows = append(rows, StatementRow{
			Date:           e.Date,
			Narration:      e.Narration,
			ReferenceType:  e.ReferenceType,
			Debit:          debit,
			Credit:         credit,
			RunningBalance: running,
		})
	}
	return rows
}
