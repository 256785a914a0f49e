package ledger

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Line builds a journal line with the amount rounded to two places
func Line(accountID, accountName string, side enum.EntrySide, amount float64) entity.JournalLine {
	return entity.JournalLine{
		AccountID:   accountID,
		AccountName: accountName,
		Side:        side,
		Amount:      decimal.NewFromFloat(amount).Round(2),
	}
}

// Debit builds a debit line
func Debit(accountID, accountName string, amount float64) entity.JournalLine {
	return Line(accountID, accountName, enum.EntrySideDebit, amount)
}

// Credit builds a credit line
func Credit(accountID, accountName string, amount float64) entity.JournalLine {
	return Line(accountID, accountName, enum.EntrySideCredit, amount)
}

// NewEntry assembles and validates an entry. Zero-amount lines are dropped
// (a bill with no tax posts no tax legs); what remains must balance.
func NewEntry(date time.Time, refID *uuid.UUID, refType enum.ReferenceType, narration string, lines []entity.JournalLine) (*entity.JournalEntry, error) {
	kept := make([]entity.JournalLine, 0, len(lines))
	for _, l := range lines {
		if l.Amount.IsZero() {
			continue
		}
		kept = append(kept, l)
	}

	entry := &entity.JournalEntry{
		Date:          date,
		ReferenceID:   refID,
		ReferenceType: refType,
		Narration:     narration,
		Lines:         kept,
	}
	if err := Validate(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// balanceTolerance absorbs paisa-level float drift in caller-assembled
// entries. The builders in postings.go always balance exactly.
var balanceTolerance = decimal.New(1, -2)

// Validate enforces the double-entry invariants: at least two lines, every
// amount strictly positive, and debit total equal to credit total within a
// paisa.
func Validate(entry *entity.JournalEntry) error {
	if len(entry.Lines) < 2 {
		return apperror.NewValidationError("journal entry needs at least two lines")
	}

	debits := decimal.Zero
	credits := decimal.Zero
	for _, l := range entry.Lines {
		if !l.Side.IsValid() {
			return apperror.NewValidationError("journal line side must be debit or credit")
		}
		if l.Amount.IsNegative() || l.Amount.IsZero() {
			return apperror.NewValidationError("journal line amounts must be positive")
		}
		if l.AccountID == "" {
			return apperror.NewValidationError("journal line needs an account")
		}
		if l.Side == enum.EntrySideDebit {
			debits = debits.Add(l.Amount)
		} else {
			credits = credits.Add(l.Amount)
		}
	}

	if debits.Sub(credits).Abs().GreaterThan(balanceTolerance) {
		return apperror.NewUnbalancedEntryError(debits.String(), credits.String())
	}
	return nil
}
