package billing

import (
	"github.com/google/uuid"
)

// CartLine is one line of a bill before totals are computed. Price is the
// MRP frozen at the time of sale, TaxRate the GST percent for the product.
type CartLine struct {
	ProductID   uuid.UUID
	BatchID     uuid.UUID
	ProductName string
	Quantity    int
	Price       float64
	TaxRate     float64
}

// TaxSlab accumulates the taxable value and tax split for one GST rate
type TaxSlab struct {
	TaxableValue float64 `json:"taxable_value"`
	SGST         float64 `json:"sgst"`
	CGST         float64 `json:"cgst"`
}

// BillSummary is the computed result of a cart
type BillSummary struct {
	SubTotal        float64             `json:"sub_total"`
	DiscountAmount  float64             `json:"discount_amount"`
	VoucherDiscount float64             `json:"voucher_discount"`
	TaxableValue    float64             `json:"taxable_value"`
	TotalSGST       float64             `json:"total_sgst"`
	TotalCGST       float64             `json:"total_cgst"`
	GrandTotal      float64             `json:"grand_total"`
	TaxBreakdown    map[float64]TaxSlab `json:"tax_breakdown"`
}

// ComputeBillSummary aggregates cart lines into a bill. The invoice-level
// discount and any applied voucher are redistributed pro rata across lines,
// weighted by gross line value, before per-line tax is computed. Taxing
// gross values and subtracting a flat discount afterwards would overstate
// the tax on mixed-rate carts.
//
// voucherBalance is the remaining balance of the applied voucher, or 0 when
// none is applied. RGHS sales are GST-exempt: the breakdown stays empty and
// the grand total is the post-discount value.
//
// Degenerate inputs (empty cart, zero subtotal) produce zeroed summaries,
// never an error.
func ComputeBillSummary(lines []CartLine, discountPercent float64, isRGHS bool, voucherBalance float64) BillSummary {
	s := BillSummary{TaxBreakdown: map[float64]TaxSlab{}}

	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		s.SubTotal += l.Price * float64(l.Quantity)
	}

	s.DiscountAmount = s.SubTotal * discountPercent / 100
	afterDiscount := s.SubTotal - s.DiscountAmount

	if voucherBalance > 0 {
		s.VoucherDiscount = voucherBalance
		if s.VoucherDiscount > afterDiscount {
			s.VoucherDiscount = afterDiscount
		}
		afterDiscount -= s.VoucherDiscount
	}

	s.TaxableValue = afterDiscount

	if isRGHS {
		s.GrandTotal = afterDiscount
		return s
	}

	for _, l := range lines {
		if l.Quantity <= 0 {
			continue
		}
		gross := l.Price * float64(l.Quantity)
		var proportional float64
		if s.SubTotal > 0 {
			proportional = gross / s.SubTotal * afterDiscount
		}
		sgst, cgst := SplitTax(proportional, l.TaxRate)

		slab := s.TaxBreakdown[l.TaxRate]
		slab.TaxableValue += proportional
		slab.SGST += sgst
		slab.CGST += cgst
		s.TaxBreakdown[l.TaxRate] = slab

		s.TotalSGST += sgst
		s.TotalCGST += cgst
	}

	s.GrandTotal = afterDiscount + s.TotalSGST + s.TotalCGST
	return s
}
