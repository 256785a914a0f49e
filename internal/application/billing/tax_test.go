package billing

import (
	"math"
	"testing"
)

var testRates = GSTRates{Subsidized: 5, General: 12, Food: 18}

func TestGSTRate(t *testing.T) {
	tests := []struct {
		name string
		hsn  string
		want float64
	}{
		{"medicament prefix", "30049099", 12},
		{"exact medicament", "3004", 12},
		{"food preparation prefix", "21069099", 18},
		{"unknown falls to subsidized", "90189011", 5},
		{"empty falls to subsidized", "", 5},
		{"prefix must lead", "99003004", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GSTRate(tt.hsn, testRates); got != tt.want {
				t.Errorf("GSTRate(%q) = %v, want %v", tt.hsn, got, tt.want)
			}
		})
	}
}

func TestSplitTaxHalves(t *testing.T) {
	cases := []struct {
		amount, rate float64
	}{
		{200, 12},
		{180, 12},
		{0, 18},
		{999.99, 5},
		{1, 0},
	}

	for _, c := range cases {
		sgst, cgst := SplitTax(c.amount, c.rate)
		if sgst != cgst {
			t.Errorf("SplitTax(%v, %v): sgst %v != cgst %v", c.amount, c.rate, sgst, cgst)
		}
		total := c.amount * c.rate / 100
		if diff := math.Abs(sgst + cgst - total); diff > 1e-9 {
			t.Errorf("SplitTax(%v, %v): halves sum %v, want %v", c.amount, c.rate, sgst+cgst, total)
		}
	}
}
