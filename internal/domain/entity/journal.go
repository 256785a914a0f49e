package entity

import (
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// JournalEntry is one balanced double-entry posting. Invariant: at least two
// lines and the debit total equals the credit total; the ledger engine
// rejects anything else before it reaches the repository.
type JournalEntry struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Date          time.Time          `gorm:"not null;index" json:"date"`
	ReferenceID   *uuid.UUID         `gorm:"type:uuid;index" json:"reference_id,omitempty"`
	ReferenceType enum.ReferenceType `gorm:"size:30;not null" json:"reference_type"`
	Narration     string             `gorm:"type:text" json:"narration"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Relationships
	Lines []JournalLine `gorm:"foreignKey:EntryID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new journal entry
func (e *JournalEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JournalEntry model
func (JournalEntry) TableName() string {
	return "journal_entries"
}

// JournalLine is one leg of an entry. AccountID is either a system account
// code (CASH, SALES, ...) or a customer/supplier UUID string.
type JournalLine struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	EntryID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"entry_id"`
	AccountID   string          `gorm:"size:100;not null;index" json:"account_id"`
	AccountName string          `gorm:"size:255;not null" json:"account_name"`
	Side        enum.EntrySide  `gorm:"size:10;not null" json:"side"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`

	// Relationships
	Entry JournalEntry `gorm:"foreignKey:EntryID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new journal line
func (l *JournalLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the JournalLine model
func (JournalLine) TableName() string {
	return "journal_lines"
}

// Account is a named ledger account. System accounts are seeded at migration;
// customer and supplier accounts are implicit (their UUIDs used directly as
// line account IDs).
type Account struct {
	ID        string    `gorm:"size:100;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the table name for the Account model
func (Account) TableName() string {
	return "accounts"
}
