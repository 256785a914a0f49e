package enum

// ReferenceType names the source document a journal entry was posted for
type ReferenceType string

const (
	ReferenceTypeSale           ReferenceType = "sale"
	ReferenceTypePurchase       ReferenceType = "purchase"
	ReferenceTypeCustomerReturn ReferenceType = "customer_return"
	ReferenceTypeSupplierReturn ReferenceType = "supplier_return"
	ReferenceTypePayment        ReferenceType = "payment"
	ReferenceTypeCreditNote     ReferenceType = "credit_note"
	ReferenceTypeManual         ReferenceType = "manual"
)
