package payment

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"jerseyshop/internal/domain"
	paymentrepo "jerseyshop/internal/repository/payment"
)

const (
	orderID   = "6a0c1e2f-3b4d-4e5f-8a7b-9c0d1e2f3a4b"
	paymentID = "1f2e3d4c-5b6a-4798-8a9b-0c1d2e3f4a5b"
)

// store mimics the transactional settle: one payment per order, PENDING only.
type store struct {
	orders   map[string]*domain.Order
	payments map[string]*domain.Payment
	last     paymentrepo.NewPayment
	err      error
}

func newStore() *store {
	id1, id2 := int64(1), int64(2)
	return &store{
		orders: map[string]*domain.Order{
			orderID: {
				ID:       orderID,
				Status:   domain.OrderPending,
				Subtotal: 25000,
				Tax:      4500,
				Total:    29500,
				Items: []domain.OrderItem{
					{JerseyID: &id1, Name: "A", Quantity: 2, Price: 10000, Jersey: &domain.OrderJersey{ID: 1, Name: "A", DownloadURL: "https://files/a.zip"}},
					{JerseyID: &id2, Name: "B", Quantity: 1, Price: 5000, Jersey: &domain.OrderJersey{ID: 2, Name: "B", DownloadURL: "https://files/b.zip"}},
				},
			},
		},
		payments: map[string]*domain.Payment{},
	}
}

func (s *store) Settle(_ context.Context, in paymentrepo.NewPayment) (*domain.Payment, error) {
	s.last = in
	if s.err != nil {
		return nil, s.err
	}
	o, ok := s.orders[in.OrderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if o.Payment != nil {
		return nil, domain.ErrAlreadyExists
	}
	if o.Status != domain.OrderPending {
		return nil, paymentrepo.ErrNotPayable
	}
	p := &domain.Payment{
		ID:            paymentID,
		OrderID:       o.ID,
		Method:        in.Method,
		TransactionID: in.TransactionID,
		Amount:        o.Total,
		Status:        domain.PaymentCompleted,
	}
	o.Payment = p
	o.Status = domain.OrderPaid
	s.payments[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s *store) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	if p, ok := s.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

type orders struct{ s *store }

func (o orders) GetByID(_ context.Context, id string) (*domain.Order, error) {
	ord, ok := o.s.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *ord
	return &cp, nil
}

func newService(s *store) *Service {
	return New(s, orders{s: s}, nil, nil)
}

func TestProcessUnlocksDownloads(t *testing.T) {
	s := newStore()
	svc := newService(s)

	tx := " txn-42 "
	res, err := svc.Process(context.Background(), ProcessInput{OrderID: orderID, Method: "card", TransactionID: &tx})
	require.NoError(t, err)

	assert.Equal(t, domain.PaymentCompleted, res.Payment.Status)
	assert.Equal(t, "295.00", res.Payment.Amount.String())
	assert.Equal(t, "txn-42", *s.last.TransactionID)
	assert.Equal(t, domain.OrderPaid, res.Order.Status)
	require.Len(t, res.DownloadLinks, 2)
	for _, it := range res.Order.Items {
		assert.NotEmpty(t, it.Jersey.DownloadURL)
	}
}

func TestProcessTwiceConflicts(t *testing.T) {
	s := newStore()
	svc := newService(s)

	_, err := svc.Process(context.Background(), ProcessInput{OrderID: orderID, Method: "card"})
	require.NoError(t, err)

	_, err = svc.Process(context.Background(), ProcessInput{OrderID: orderID, Method: "card"})
	require.Error(t, err)
	assert.True(t, domain.IsCode(err, domain.ECONFLICT))
	assert.Equal(t, "Payment already exists for this order", domain.ErrorMessage(err))
	assert.Equal(t, domain.OrderPaid, s.orders[orderID].Status, "order stays paid")
	assert.Len(t, s.payments, 1)
}

func TestProcessValidation(t *testing.T) {
	svc := newService(newStore())

	_, err := svc.Process(context.Background(), ProcessInput{OrderID: orderID})
	assert.Equal(t, "Order ID and payment method are required", domain.ErrorMessage(err))

	_, err = svc.Process(context.Background(), ProcessInput{Method: "card"})
	assert.True(t, domain.IsCode(err, domain.EINVALID))

	_, err = svc.Process(context.Background(), ProcessInput{OrderID: "nope", Method: "card"})
	assert.Equal(t, "Order not found", domain.ErrorMessage(err))

	_, err = svc.Process(context.Background(), ProcessInput{OrderID: "00000000-0000-0000-0000-000000000000", Method: "card"})
	assert.True(t, domain.IsCode(err, domain.ENOTFOUND))
}

func TestProcessCancelledOrder(t *testing.T) {
	s := newStore()
	s.orders[orderID].Status = domain.OrderCancelled
	_, err := newService(s).Process(context.Background(), ProcessInput{OrderID: orderID, Method: "card"})
	assert.True(t, domain.IsCode(err, domain.ECONFLICT))
	assert.Equal(t, domain.OrderCancelled, s.orders[orderID].Status)
}

func TestProcessStoreFailure(t *testing.T) {
	s := newStore()
	s.err = errors.New("connection reset")
	_, err := newService(s).Process(context.Background(), ProcessInput{OrderID: orderID, Method: "card"})
	assert.True(t, domain.IsCode(err, domain.EINTERNAL))
	assert.NotContains(t, domain.ErrorMessage(err), "connection reset")
}

func TestGetAttachesOrder(t *testing.T) {
	s := newStore()
	svc := newService(s)
	_, err := svc.Process(context.Background(), ProcessInput{OrderID: orderID, Method: "card"})
	require.NoError(t, err)

	p, err := svc.Get(context.Background(), paymentID)
	require.NoError(t, err)
	require.NotNil(t, p.Order)
	assert.Len(t, p.Order.Items, 2)
	assert.Equal(t, domain.OrderPaid, p.Order.Status)

	_, err = svc.Get(context.Background(), "bad")
	assert.Equal(t, "Payment not found", domain.ErrorMessage(err))
	_, err = svc.Get(context.Background(), orderID)
	assert.True(t, domain.IsCode(err, domain.ENOTFOUND))
}
