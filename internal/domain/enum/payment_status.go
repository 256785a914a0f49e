package enum

// PaymentStatus indicates whether a sale or purchase was settled immediately
// or booked against the party's account.
type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusCredit PaymentStatus = "credit"
)

// IsValid checks if the payment status is a recognised value
func (p PaymentStatus) IsValid() bool {
	return p == PaymentStatusPaid || p == PaymentStatusCredit
}
