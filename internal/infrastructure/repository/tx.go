package repository

import (
	"context"

	domainRepo "github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"gorm.io/gorm"
)

type txKey struct{}

// gormTxManager implements TxManager on a GORM transaction carried in the
// context. Repositories resolve their handle with dbFrom, so the same
// repository code runs inside or outside a transaction.
type gormTxManager struct {
	db *gorm.DB
}

// NewTxManager creates a new transaction manager
func NewTxManager(db *gorm.DB) domainRepo.TxManager {
	return &gormTxManager{db: db}
}

func (m *gormTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// nested Do reuses the outer transaction
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFrom returns the transaction carried in the context, or the base handle
func dbFrom(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return db.WithContext(ctx)
}
