package repository

import (
	"context"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/pkg/pagination"
	"github.com/google/uuid"
)

// JournalRepository defines the interface for journal data operations.
// Entries are append-only; there is no update or delete.
type JournalRepository interface {
	CreateEntry(ctx context.Context, entry *entity.JournalEntry) error
	GetEntry(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error)
	ListEntries(ctx context.Context, params *JournalFilterParams) ([]entity.JournalEntry, int64, error)
	// ListEntriesByAccount returns all entries with at least one line touching
	// the account, lines preloaded, ordered by entry date ascending. This is
	// the input for ledger statements and balances.
	ListEntriesByAccount(ctx context.Context, accountID string) ([]entity.JournalEntry, error)
	// ListAccounts returns the seeded system accounts
	ListAccounts(ctx context.Context) ([]entity.Account, error)
}

// JournalFilterParams contains filtering parameters for journal queries
type JournalFilterParams struct {
	Pagination *pagination.PaginationParams
	StartDate  *time.Time
	EndDate    *time.Time
}
