package service

import (
	"context"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/application/ledger"
	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// LedgerService exposes the journal: entry listing, per-account balances and
// statements, and manual adjustment entries.
type LedgerService struct {
	journalRepo repository.JournalRepository
}

// NewLedgerService creates a new ledger service
func NewLedgerService(journalRepo repository.JournalRepository) *LedgerService {
	return &LedgerService{journalRepo: journalRepo}
}

// GetEntry retrieves a journal entry with its lines
func (s *LedgerService) GetEntry(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	entry, err := s.journalRepo.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, apperror.NewNotFoundError("Journal entry")
	}
	return entry, nil
}

// ListEntries lists journal entries with filters
func (s *LedgerService) ListEntries(ctx context.Context, params *repository.JournalFilterParams) (*pagination.PaginatedResult[entity.JournalEntry], error) {
	entries, total, err := s.journalRepo.ListEntries(ctx, params)
	if err != nil {
		return nil, err
	}
	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(entries, pag), nil
}

// ListAccounts returns the seeded system accounts
func (s *LedgerService) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	return s.journalRepo.ListAccounts(ctx)
}

// AccountBalance returns the current balance of an account, shown as Dr or
// Cr. The account ID is a system code or a customer/supplier UUID string.
func (s *LedgerService) AccountBalance(ctx context.Context, accountID string) (*ledger.Balance, error) {
	if accountID == "" {
		return nil, apperror.NewValidationError("account id is required")
	}
	entries, err := s.journalRepo.ListEntriesByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	balance := ledger.AccountBalance(entries, accountID)
	return &balance, nil
}

// AccountStatement returns the account's full statement with running
// balances, the reconciliation view for supplier and customer dues.
func (s *LedgerService) AccountStatement(ctx context.Context, accountID string) ([]ledger.StatementRow, error) {
	if accountID == "" {
		return nil, apperror.NewValidationError("account id is required")
	}
	entries, err := s.journalRepo.ListEntriesByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return ledger.Statement(entries, accountID), nil
}

// ManualLineInput is one leg of a manual journal entry
type ManualLineInput struct {
	AccountID   string         `json:"account_id" binding:"required"`
	AccountName string         `json:"account_name"`
	Side        enum.EntrySide `json:"side" binding:"required"`
	Amount      float64        `json:"amount" binding:"required"`
}

// CreateManualEntryInput represents the manual journal entry input
type CreateManualEntryInput struct {
	Date      time.Time
	Narration string
	Lines     []ManualLineInput
}

// CreateManualEntry posts a hand-written adjustment entry. The same balance
// rules apply as to system postings; an unbalanced entry is rejected and
// nothing reaches the journal.
func (s *LedgerService) CreateManualEntry(ctx context.Context, input *CreateManualEntryInput) (*entity.JournalEntry, error) {
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}

	lines := make([]entity.JournalLine, 0, len(input.Lines))
	for _, l := range input.Lines {
		lines = append(lines, ledger.Line(l.AccountID, l.AccountName, l.Side, l.Amount))
	}

	entry, err := ledger.NewEntry(date, nil, enum.ReferenceTypeManual, input.Narration, lines)
	if err != nil {
		return nil, err
	}
	if err := s.journalRepo.CreateEntry(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
