package enums

import "fmt"

// PaymentStatus is derived from the payments recorded against an order.
type PaymentStatus string

const (
	PaymentStatusUnpaid    PaymentStatus = "Unpaid"
	PaymentStatusPartial   PaymentStatus = "Partial"
	PaymentStatusPaid      PaymentStatus = "Paid"
	PaymentStatusCancelled PaymentStatus = "Cancelled"
)

var validPaymentStatuses = []PaymentStatus{
	PaymentStatusUnpaid,
	PaymentStatusPartial,
	PaymentStatusPaid,
	PaymentStatusCancelled,
}

// String implements fmt.Stringer.
func (p PaymentStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PaymentStatus.
func (p PaymentStatus) IsValid() bool {
	for _, candidate := range validPaymentStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePaymentStatus converts raw input into a PaymentStatus.
func ParsePaymentStatus(value string) (PaymentStatus, error) {
	for _, candidate := range validPaymentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid payment status %q", value)
}
