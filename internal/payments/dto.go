package payments

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpbazaar/backoffice/pkg/enums"
)

// RecordInput books one payment against an order.
type RecordInput struct {
	Amount        decimal.Decimal `json:"amount" validate:"required"`
	PaymentMethod string          `json:"paymentMethod"`
	Note          string          `json:"note"`
	PaymentDate   time.Time       `json:"paymentDate"`
}

// RecordOutput reflects the state derived within the booking transaction, so
// the caller can render it without a follow-up read.
type RecordOutput struct {
	PaymentID     uint                `json:"paymentId"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	TotalPaid     decimal.Decimal     `json:"totalPaid"`
}

// DeleteOutput reports the order's state after a payment was removed.
type DeleteOutput struct {
	OrderID       uint                `json:"orderId"`
	PaymentStatus enums.PaymentStatus `json:"paymentStatus"`
	RemainingPaid decimal.Decimal     `json:"remainingPaid"`
}
