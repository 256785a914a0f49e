package billing

import (
	"fmt"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/aushadhi/pharmacy-api/pkg/apperror"
)

// ApplyStockDeltas applies signed batch-level quantity changes to an
// in-memory product snapshot and returns the mutated copy. The input is
// never modified. Semantics are all-or-nothing: a missing product or batch
// is an integrity error, a delta that would drive stock negative is an
// insufficient-stock error, and in either case the originals are returned
// untouched alongside the error.
//
// The persistent counterpart is BatchRepository.AdjustStock, which enforces
// the same rules with conditional UPDATEs inside the checkout transaction;
// this pure form exists so callers can validate an operation before opening
// the transaction and so the rules are testable in isolation.
func ApplyStockDeltas(products []entity.Product, deltas []repository.StockDelta) ([]entity.Product, error) {
	next := make([]entity.Product, len(products))
	index := make(map[string]*entity.Batch)
	for i, p := range products {
		next[i] = p
		next[i].Batches = make([]entity.Batch, len(p.Batches))
		copy(next[i].Batches, p.Batches)
		for j := range next[i].Batches {
			b := &next[i].Batches[j]
			index[p.ID.String()+"/"+b.ID.String()] = b
		}
	}

	for _, d := range deltas {
		b, ok := index[d.ProductID.String()+"/"+d.BatchID.String()]
		if !ok {
			return products, apperror.NewIntegrityError(
				fmt.Sprintf("batch %s of product %s does not exist", d.BatchID, d.ProductID))
		}
		if b.Stock+d.Delta < 0 {
			return products, apperror.NewInsufficientStockError(
				fmt.Sprintf("batch %s has %d units, delta %d would go negative", d.BatchID, b.Stock, d.Delta))
		}
		b.Stock += d.Delta
	}

	return next, nil
}
