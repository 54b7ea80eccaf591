// Package payment settles orders. Confirmation is synchronous: a recorded
// payment is COMPLETED and unlocks the order's downloads immediately.
package payment

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/metrics"
	paymentrepo "jerseyshop/internal/repository/payment"
)

type paymentRepo interface {
	Settle(ctx context.Context, p paymentrepo.NewPayment) (*domain.Payment, error)
	GetByID(ctx context.Context, id string) (*domain.Payment, error)
}

type orderReader interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
}

type Service struct {
	payments paymentRepo
	orders   orderReader
	metrics  metrics.Recorder
	logger   *slog.Logger
}

func New(payments paymentRepo, orders orderReader, rec metrics.Recorder, logger *slog.Logger) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{payments: payments, orders: orders, metrics: rec, logger: logging.OrDiscard(logger)}
}

type ProcessInput struct {
	OrderID       string  `json:"orderId"`
	Method        string  `json:"method"`
	TransactionID *string `json:"transactionId"`
}

// Result is returned by a successful payment.
type Result struct {
	Payment       *domain.Payment       `json:"payment"`
	Order         *domain.Order         `json:"order"`
	DownloadLinks []domain.DownloadLink `json:"downloadLinks"`
}

// Process records the payment for the order's frozen total and marks it
// PAID. A second payment for the same order is a conflict.
func (s *Service) Process(ctx context.Context, in ProcessInput) (*Result, error) {
	const op = "payment.process"
	orderID := strings.TrimSpace(in.OrderID)
	method := strings.TrimSpace(in.Method)
	if orderID == "" || method == "" {
		return nil, domain.Invalid(op, "Order ID and payment method are required")
	}
	if _, err := uuid.Parse(orderID); err != nil {
		return nil, domain.NotFound(op, "Order not found")
	}
	var txID *string
	if in.TransactionID != nil && strings.TrimSpace(*in.TransactionID) != "" {
		v := strings.TrimSpace(*in.TransactionID)
		txID = &v
	}

	p, err := s.payments.Settle(ctx, paymentrepo.NewPayment{OrderID: orderID, Method: method, TransactionID: txID})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.NotFound(op, "Order not found")
		case errors.Is(err, domain.ErrAlreadyExists):
			s.metrics.PaymentRejected("duplicate")
			s.logger.Warn("duplicate payment attempt", slog.String("order_id", orderID))
			return nil, domain.Conflict(op, "Payment already exists for this order")
		case errors.Is(err, paymentrepo.ErrNotPayable):
			s.metrics.PaymentRejected("not_payable")
			return nil, domain.Conflict(op, "Order is not payable")
		default:
			return nil, domain.Internal(err, op)
		}
	}
	s.metrics.PaymentCompleted(p.Method, p.Amount)
	s.logger.Info("payment completed",
		slog.String("payment_id", p.ID),
		slog.String("order_id", orderID),
		slog.String("amount", p.Amount.String()),
	)

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, domain.Internal(err, op)
	}
	projected := o.Projected()
	p.Order = nil
	return &Result{Payment: p, Order: &projected, DownloadLinks: o.DownloadLinks()}, nil
}

// Get returns a payment with its order, items and buyer.
func (s *Service) Get(ctx context.Context, id string) (*domain.Payment, error) {
	const op = "payment.get"
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound(op, "Payment not found")
	}
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op, "Payment not found")
		}
		return nil, domain.Internal(err, op)
	}
	o, err := s.orders.GetByID(ctx, p.OrderID)
	if err != nil {
		return nil, domain.Internal(err, op)
	}
	projected := o.Projected()
	projected.Payment = nil
	p.Order = &projected
	return p, nil
}
