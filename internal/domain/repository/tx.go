package repository

import "context"

// TxManager runs a function inside a single database transaction. Every
// multi-step commit (stock mutation + document record + journal posting +
// voucher/credit-note) goes through this boundary so a mid-sequence failure
// rolls everything back; inventory is never decremented without its invoice.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
