package billing

import (
	"testing"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/aushadhi/pharmacy-api/internal/domain/repository"
	"github.com/google/uuid"
)

func fixtureProducts() ([]entity.Product, uuid.UUID, uuid.UUID, uuid.UUID) {
	productID := uuid.New()
	batchA := uuid.New()
	batchB := uuid.New()
	products := []entity.Product{
		{
			ID: productID,
			Batches: []entity.Batch{
				{ID: batchA, ProductID: productID, Stock: 10},
				{ID: batchB, ProductID: productID, Stock: 3},
			},
		},
	}
	return products, productID, batchA, batchB
}

func TestApplyStockDeltas(t *testing.T) {
	products, productID, batchA, batchB := fixtureProducts()

	next, err := ApplyStockDeltas(products, []repository.StockDelta{
		{ProductID: productID, BatchID: batchA, Delta: -4},
		{ProductID: productID, BatchID: batchB, Delta: 2},
	})
	if err != nil {
		t.Fatalf("ApplyStockDeltas() error = %v", err)
	}

	if next[0].Batches[0].Stock != 6 || next[0].Batches[1].Stock != 5 {
		t.Errorf("stocks = %d/%d, want 6/5", next[0].Batches[0].Stock, next[0].Batches[1].Stock)
	}

	// input snapshot must be untouched
	if products[0].Batches[0].Stock != 10 || products[0].Batches[1].Stock != 3 {
		t.Error("ApplyStockDeltas mutated its input")
	}
}

func TestApplyStockDeltasNeverGoesNegative(t *testing.T) {
	products, productID, batchA, batchB := fixtureProducts()

	_, err := ApplyStockDeltas(products, []repository.StockDelta{
		{ProductID: productID, BatchID: batchB, Delta: -4},
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}

	// a later failing delta must not leave the earlier one applied
	_, err = ApplyStockDeltas(products, []repository.StockDelta{
		{ProductID: productID, BatchID: batchA, Delta: -1},
		{ProductID: productID, BatchID: batchB, Delta: -100},
	})
	if err == nil {
		t.Fatal("expected insufficient stock error")
	}
	if products[0].Batches[0].Stock != 10 {
		t.Error("partial mutation leaked into the input")
	}
}

func TestApplyStockDeltasMissingBatch(t *testing.T) {
	products, productID, _, _ := fixtureProducts()

	_, err := ApplyStockDeltas(products, []repository.StockDelta{
		{ProductID: productID, BatchID: uuid.New(), Delta: -1},
	})
	if err == nil {
		t.Fatal("expected integrity error for unknown batch")
	}

	_, err = ApplyStockDeltas(products, []repository.StockDelta{
		{ProductID: uuid.New(), BatchID: products[0].Batches[0].ID, Delta: -1},
	})
	if err == nil {
		t.Fatal("expected integrity error for unknown product")
	}
}
