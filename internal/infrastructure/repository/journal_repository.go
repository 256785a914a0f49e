package repository

import (
	"context"
	"errors"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	domainRepo "github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type journalRepository struct {
	db *gorm.DB
}

// NewJournalRepository creates a new journal repository
func NewJournalRepository(db *gorm.DB) domainRepo.JournalRepository {
	return &journalRepository{db: db}
}

func (r *journalRepository) CreateEntry(ctx context.Context, entry *entity.JournalEntry) error {
	return dbFrom(ctx, r.db).Create(entry).Error
}

func (r *journalRepository) GetEntry(ctx context.Context, id uuid.UUID) (*entity.JournalEntry, error) {
	var entry entity.JournalEntry
	err := dbFrom(ctx, r.db).Preload("Lines").First(&entry, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *journalRepository) ListEntries(ctx context.Context, params *domainRepo.JournalFilterParams) ([]entity.JournalEntry, int64, error) {
	var entries []entity.JournalEntry
	var total int64

	query := dbFrom(ctx, r.db).Model(&entity.JournalEntry{})
	if params.StartDate != nil {
		query = query.Where("date >= ?", *params.StartDate)
	}
	if params.EndDate != nil {
		query = query.Where("date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Preload("Lines").
		Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("date DESC").
		Find(&entries).Error

	return entries, total, err
}

func (r *journalRepository) ListEntriesByAccount(ctx context.Context, accountID string) ([]entity.JournalEntry, error) {
	var entries []entity.JournalEntry
	err := dbFrom(ctx, r.db).Preload("Lines").
		Where("id IN (SELECT entry_id FROM journal_lines WHERE account_id = ?)", accountID).
		Order("date ASC").
		Find(&entries).Error
	return entries, err
}

func (r *journalRepository) ListAccounts(ctx context.Context) ([]entity.Account, error) {
	var accounts []entity.Account
	err := dbFrom(ctx, r.db).Order("id ASC").Find(&accounts).Error
	return accounts, err
}
