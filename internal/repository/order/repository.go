package order

import (
	"context"
	"errors"

	"jerseyshop/internal/domain"
)

// ErrCartChanged is returned by Create when the cart being consumed no longer
// holds the lines the order was priced from.
var ErrCartChanged = errors.New("cart changed during checkout")

// NewItem is one priced line of an order about to be written.
type NewItem struct {
	JerseyID int64
	Name     string
	Quantity int
	Price    domain.Cents
}

// CartLine is a cart line as it was read when the order was priced.
type CartLine struct {
	JerseyID int64
	Quantity int
}

// NewOrder is the input of Create. When ConsumeCartID is set the cart is
// locked, its lines must still equal ConsumeLines, and they are deleted in the
// same transaction as the order insert.
type NewOrder struct {
	UserID        string
	Subtotal      domain.Cents
	Tax           domain.Cents
	Total         domain.Cents
	Items         []NewItem
	ConsumeCartID string
	ConsumeLines  []CartLine
}

// ListFilter narrows the admin order listing.
type ListFilter struct {
	Status domain.OrderStatus
	Page   domain.PageRequest
}

type Repository interface {
	Create(ctx context.Context, o NewOrder) (*domain.Order, error)
	// GetByID loads the order with its items, payment and user.
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	List(ctx context.Context, f ListFilter) (domain.Page[domain.Order], error)
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
}
