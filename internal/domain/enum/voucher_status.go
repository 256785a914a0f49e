package enum

// VoucherStatus tracks the lifecycle of a store-credit voucher.
// A voucher flips to used once its balance is exhausted and is never
// topped back up.
type VoucherStatus string

const (
	VoucherStatusActive  VoucherStatus = "active"
	VoucherStatusUsed    VoucherStatus = "used"
	VoucherStatusExpired VoucherStatus = "expired"
)

// CreditNoteStatus tracks a supplier credit note from issuance until it is
// applied against a purchase payable.
type CreditNoteStatus string

const (
	CreditNoteStatusOpen    CreditNoteStatus = "open"
	CreditNoteStatusApplied CreditNoteStatus = "applied"
)
