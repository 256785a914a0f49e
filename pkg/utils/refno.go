package utils

import (
	"strings"

	"github.com/google/uuid"
)

func shortRef(prefix string) string {
	return prefix + strings.ToUpper(uuid.New().String()[:8])
}

// GenerateBillNo generates a unique sale bill number
func GenerateBillNo() string {
	return shortRef("BILL-")
}

// GenerateVoucherNo generates a unique store-credit voucher number
func GenerateVoucherNo() string {
	return shortRef("VCH-")
}

// GenerateCreditNoteNo generates a unique supplier credit note number
func GenerateCreditNoteNo() string {
	return shortRef("CRN-")
}

// GenerateReturnNo generates a unique return reference number
func GenerateReturnNo() string {
	return shortRef("RET-")
}
