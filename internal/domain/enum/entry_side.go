package enum

// EntrySide is the side of a journal line in double-entry bookkeeping
type EntrySide string

const (
	EntrySideDebit  EntrySide = "debit"
	EntrySideCredit EntrySide = "credit"
)

// IsValid checks if the side is a recognised value
func (s EntrySide) IsValid() bool {
	return s == EntrySideDebit || s == EntrySideCredit
}
