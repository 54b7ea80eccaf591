// Package order turns a cart or an explicit item list into a priced order.
package order

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/metrics"
	"jerseyshop/internal/pricing"
	orderrepo "jerseyshop/internal/repository/order"
)

type orderRepo interface {
	Create(ctx context.Context, o orderrepo.NewOrder) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type userRepo interface {
	UpsertContact(ctx context.Context, c domain.Contact) (*domain.User, error)
}

type cartReader interface {
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
}

type jerseyReader interface {
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Jersey, error)
}

const (
	sourceCart  = "cart"
	sourceItems = "items"
)

type Service struct {
	orders  orderRepo
	users   userRepo
	carts   cartReader
	jerseys jerseyReader
	calc    *pricing.Calculator
	metrics metrics.Recorder
	logger  *slog.Logger
}

type Deps struct {
	Orders  orderRepo
	Users   userRepo
	Carts   cartReader
	Jerseys jerseyReader
	Pricing *pricing.Calculator
	Metrics metrics.Recorder
	Logger  *slog.Logger
}

func New(d Deps) *Service {
	if d.Metrics == nil {
		d.Metrics = metrics.Nop{}
	}
	return &Service{
		orders:  d.Orders,
		users:   d.Users,
		carts:   d.Carts,
		jerseys: d.Jerseys,
		calc:    d.Pricing,
		metrics: d.Metrics,
		logger:  logging.OrDiscard(d.Logger),
	}
}

// ItemInput is one requested line of a direct purchase.
type ItemInput struct {
	JerseyID int64 `json:"jerseyId"`
	Quantity int   `json:"quantity"`
}

// CreateInput is the checkout form. When Items is nil the buyer's server-side
// cart is checked out and emptied; a non-nil Items buys exactly those lines
// and leaves the cart alone.
type CreateInput struct {
	CompanyName string      `json:"companyName"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Items       []ItemInput `json:"items"`
}

type line struct {
	jerseyID int64
	quantity int
}

// Create prices the requested lines at current catalog prices, freezes the
// totals and stores the order with its lines atomically.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Order, error) {
	const op = "order.create"
	contact, err := domain.NormalizeContact(op, domain.Contact{CompanyName: in.CompanyName, Email: in.Email, Phone: in.Phone})
	if err != nil {
		return nil, err
	}

	var requested []line
	if in.Items != nil {
		if requested, err = mergeItems(op, in.Items); err != nil {
			return nil, err
		}
		if len(requested) == 0 {
			return nil, domain.Invalid(op, "Cart is empty")
		}
	}

	user, err := s.users.UpsertContact(ctx, contact)
	if err != nil {
		return nil, domain.Internal(err, op)
	}

	source := sourceItems
	consumeCartID := ""
	var consumeLines []orderrepo.CartLine
	if in.Items == nil {
		source = sourceCart
		cart, err := s.carts.GetByUser(ctx, user.ID)
		if err != nil && !errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Internal(err, op)
		}
		if cart != nil {
			consumeCartID = cart.ID
			for _, it := range cart.Items {
				requested = append(requested, line{jerseyID: it.JerseyID, quantity: it.Quantity})
				consumeLines = append(consumeLines, orderrepo.CartLine{JerseyID: it.JerseyID, Quantity: it.Quantity})
			}
		}
	}
	if len(requested) == 0 {
		return nil, domain.Invalid(op, "Cart is empty")
	}

	items, totals, err := s.price(ctx, op, requested)
	if err != nil {
		return nil, err
	}

	created, err := s.orders.Create(ctx, orderrepo.NewOrder{
		UserID:        user.ID,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Items:         items,
		ConsumeCartID: consumeCartID,
		ConsumeLines:  consumeLines,
	})
	if err != nil {
		if errors.Is(err, orderrepo.ErrCartChanged) {
			return nil, domain.Conflict(op, "Cart changed during checkout, please retry")
		}
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Invalid(op, "One or more jerseys not found")
		}
		return nil, domain.Internal(err, op)
	}

	s.metrics.OrderCreated(created.Total, len(items), source)
	s.logger.Info("order created",
		slog.String("order_id", created.ID),
		slog.String("user_id", user.ID),
		slog.String("source", source),
		slog.String("total", created.Total.String()),
	)
	projected := created.Projected()
	return &projected, nil
}

// price loads every jersey once and snapshots its current price.
func (s *Service) price(ctx context.Context, op string, requested []line) ([]orderrepo.NewItem, pricing.Totals, error) {
	ids := make([]int64, len(requested))
	for i, l := range requested {
		ids[i] = l.jerseyID
	}
	jerseys, err := s.jerseys.GetByIDs(ctx, ids)
	if err != nil {
		return nil, pricing.Totals{}, domain.Internal(err, op)
	}
	byID := make(map[int64]domain.Jersey, len(jerseys))
	for _, j := range jerseys {
		byID[j.ID] = j
	}

	items := make([]orderrepo.NewItem, 0, len(requested))
	lines := make([]pricing.Line, 0, len(requested))
	for _, l := range requested {
		j, ok := byID[l.jerseyID]
		if !ok {
			return nil, pricing.Totals{}, domain.Invalid(op, "One or more jerseys not found")
		}
		price := pricing.CurrentPrice(j)
		items = append(items, orderrepo.NewItem{
			JerseyID: j.ID,
			Name:     j.Name,
			Quantity: l.quantity,
			Price:    price,
		})
		lines = append(lines, pricing.Line{UnitPrice: price, Quantity: l.quantity})
	}
	return items, s.calc.Totals(lines), nil
}

// mergeItems folds repeated jerseys into one line. A zero quantity counts as
// one; negative quantities are rejected.
func mergeItems(op string, in []ItemInput) ([]line, error) {
	qty := make(map[int64]int, len(in))
	for _, it := range in {
		if it.JerseyID <= 0 {
			return nil, domain.Invalid(op, "Jersey ID is required")
		}
		switch {
		case it.Quantity < 0:
			return nil, domain.Invalid(op, "Quantity must be a positive integer")
		case it.Quantity == 0:
			qty[it.JerseyID]++
		default:
			qty[it.JerseyID] += it.Quantity
		}
	}
	out := make([]line, 0, len(qty))
	for id, q := range qty {
		out = append(out, line{jerseyID: id, quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].jerseyID < out[j].jerseyID })
	return out, nil
}

// Get returns an order. Download locations are only present once it is paid.
func (s *Service) Get(ctx context.Context, id string) (*domain.Order, error) {
	const op = "order.get"
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound(op, "Order not found")
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op, "Order not found")
		}
		return nil, domain.Internal(err, op)
	}
	projected := o.Projected()
	return &projected, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	const op = "order.list_by_user"
	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op)
	}
	for i := range orders {
		orders[i] = orders[i].Projected()
	}
	return orders, nil
}
