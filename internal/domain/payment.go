package domain

import "time"

type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "PENDING"
	PaymentCompleted PaymentStatus = "COMPLETED"
	PaymentFailed    PaymentStatus = "FAILED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	}
	return false
}

// Payment settles an order. Each order has at most one.
type Payment struct {
	ID            string        `json:"id"`
	OrderID       string        `json:"orderId"`
	Method        string        `json:"method"`
	TransactionID *string       `json:"transactionId,omitempty"`
	Amount        Cents         `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Order         *Order        `json:"order,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}
