package payment

import (
	"context"
	"errors"

	"jerseyshop/internal/domain"
)

// ErrNotPayable is returned when the order is no longer awaiting payment.
var ErrNotPayable = errors.New("order is not payable")

type NewPayment struct {
	OrderID       string
	Method        string
	TransactionID *string
}

type ListFilter struct {
	Status domain.PaymentStatus
	Page   domain.PageRequest
}

type Repository interface {
	// Settle records a completed payment for the order's frozen total and
	// marks the order PAID in one transaction. It returns
	// domain.ErrAlreadyExists when the order already has a payment.
	Settle(ctx context.Context, p NewPayment) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, f ListFilter) (domain.Page[domain.Payment], error)
	Recent(ctx context.Context, limit int) ([]domain.Payment, error)
}
