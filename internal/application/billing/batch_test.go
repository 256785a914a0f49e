package billing

import (
	"testing"
	"time"

	"github.com/aushadhi/pharmacy-api/internal/domain/entity"
	"github.com/google/uuid"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestSelectFIFOBatch(t *testing.T) {
	a := uuid.New()
	b := uuid.New()

	tests := []struct {
		name    string
		batches []entity.Batch
		wantID  *uuid.UUID
	}{
		{
			name: "earliest expiry wins",
			batches: []entity.Batch{
				{ID: a, Stock: 5, ExpiryDate: date("2025-01-01")},
				{ID: b, Stock: 3, ExpiryDate: date("2024-06-01")},
			},
			wantID: &b,
		},
		{
			name: "empty batches are skipped",
			batches: []entity.Batch{
				{ID: a, Stock: 0, ExpiryDate: date("2024-06-01")},
				{ID: b, Stock: 3, ExpiryDate: date("2025-01-01")},
			},
			wantID: &b,
		},
		{
			name: "all out of stock returns nil",
			batches: []entity.Batch{
				{ID: a, Stock: 0, ExpiryDate: date("2024-06-01")},
				{ID: b, Stock: 0, ExpiryDate: date("2025-01-01")},
			},
			wantID: nil,
		},
		{
			name:    "no batches returns nil",
			batches: nil,
			wantID:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SelectFIFOBatch(tt.batches)
			if tt.wantID == nil {
				if got != nil {
					t.Fatalf("SelectFIFOBatch() = %v, want nil", got.ID)
				}
				return
			}
			if got == nil {
				t.Fatal("SelectFIFOBatch() = nil, want a batch")
			}
			if got.ID != *tt.wantID {
				t.Errorf("SelectFIFOBatch() = %v, want %v", got.ID, *tt.wantID)
			}
		})
	}
}

func TestUnitsPerPack(t *testing.T) {
	tests := []struct {
		pack string
		want int
	}{
		{"10 tabs", 10},
		{"10 tablets", 10},
		{"1 cap", 1},
		{"15 Capsules", 15},
		{"10TAB", 10},
		{"200ml", 1},
		{"1 tube", 1},
		{"", 1},
	}

	for _, tt := range tests {
		t.Run(tt.pack, func(t *testing.T) {
			if got := UnitsPerPack(tt.pack); got != tt.want {
				t.Errorf("UnitsPerPack(%q) = %d, want %d", tt.pack, got, tt.want)
			}
		})
	}
}

func TestClampQuantity(t *testing.T) {
	qty, clamped, err := ClampQuantity(5, 10)
	if err != nil || clamped || qty != 5 {
		t.Errorf("ClampQuantity(5, 10) = (%d, %v, %v), want (5, false, nil)", qty, clamped, err)
	}

	qty, clamped, err = ClampQuantity(12, 10)
	if err != nil || !clamped || qty != 10 {
		t.Errorf("ClampQuantity(12, 10) = (%d, %v, %v), want (10, true, nil)", qty, clamped, err)
	}

	if _, _, err = ClampQuantity(-1, 10); err == nil {
		t.Error("ClampQuantity(-1, 10) accepted a negative quantity")
	}
}
