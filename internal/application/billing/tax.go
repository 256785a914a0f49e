// Package billing holds the pure computation core of the point of sale:
// GST arithmetic, FIFO batch allocation, bill summary aggregation and stock
// delta application. Nothing in this package touches storage; functions take
// their inputs explicitly and return new values.
package billing

import "strings"

// GSTRates are the configurable rate bands, in percent
type GSTRates struct {
	Subsidized float64
	General    float64
	Food       float64
}

// GSTRate maps a product's HSN code to its rate band. Only the 3004
// (medicaments) and 2106 (food preparations) prefixes are recognised;
// everything else falls into the subsidized band. This mirrors the billing
// rules the store actually runs on, so no further prefixes belong here.
func GSTRate(hsnCode string, rates GSTRates) float64 {
	switch {
	case strings.HasPrefix(hsnCode, "3004"):
		return rates.General
	case strings.HasPrefix(hsnCode, "2106"):
		return rates.Food
	default:
		return rates.Subsidized
	}
}

// SplitTax splits a taxable amount's GST into equal SGST and CGST halves
func SplitTax(amount, rate float64) (sgst, cgst float64) {
	half := amount * rate / 200
	return half, half
}
