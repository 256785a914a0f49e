package enum

// CustomerSettlement is how a customer return is paid out
type CustomerSettlement string

const (
	CustomerSettlementRefund  CustomerSettlement = "refund"
	CustomerSettlementVoucher CustomerSettlement = "voucher"
)

// IsValid checks if the settlement is a recognised value
func (s CustomerSettlement) IsValid() bool {
	return s == CustomerSettlementRefund || s == CustomerSettlementVoucher
}

// SupplierSettlement is how a supplier return is settled
type SupplierSettlement string

const (
	SupplierSettlementCreditNote       SupplierSettlement = "credit_note"
	SupplierSettlementLedgerAdjustment SupplierSettlement = "ledger_adjustment"
)

// IsValid checks if the settlement is a recognised value
func (s SupplierSettlement) IsValid() bool {
	return s == SupplierSettlementCreditNote || s == SupplierSettlementLedgerAdjustment
}
