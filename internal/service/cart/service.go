package cart

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/metrics"
	"jerseyshop/internal/pricing"
)

// MaxLineQuantity bounds a single cart line.
const MaxLineQuantity = 999

type cartRepo interface {
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID string, jerseyID int64, quantity int) (*domain.CartItem, error)
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}

type jerseyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Jersey, error)
}

type Service struct {
	repo    cartRepo
	jerseys jerseyReader
	metrics metrics.Recorder
	logger  *slog.Logger
}

func New(repo cartRepo, jerseys jerseyReader, rec metrics.Recorder, logger *slog.Logger) *Service {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &Service{repo: repo, jerseys: jerseys, metrics: rec, logger: logging.OrDiscard(logger)}
}

// AddInput is the add-to-cart payload. A missing quantity means one.
type AddInput struct {
	JerseyID int64 `json:"jerseyId"`
	Quantity *int  `json:"quantity"`
}

// UpdateInput sets an absolute quantity. Zero or less removes the line.
type UpdateInput struct {
	Quantity *int `json:"quantity"`
}

// Get returns the caller's cart priced at current catalog prices, creating an
// empty cart on first use.
func (s *Service) Get(ctx context.Context, userID string) (*domain.CartSummary, error) {
	const op = "cart.get"
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized(op, "User not found")
		}
		return nil, domain.Internal(err, op)
	}
	for i := range c.Items {
		if c.Items[i].Jersey != nil {
			pub := c.Items[i].Jersey.Public()
			c.Items[i].Jersey = &pub
		}
	}
	subtotal, count := pricing.CartSubtotal(c.Items)
	return &domain.CartSummary{Cart: *c, Subtotal: subtotal, ItemCount: count}, nil
}

// AddItem puts a jersey in the cart or raises the quantity of its line.
func (s *Service) AddItem(ctx context.Context, userID string, in AddInput) (*domain.CartItem, error) {
	const op = "cart.add_item"
	if in.JerseyID <= 0 {
		return nil, domain.Invalid(op, "Jersey ID is required")
	}
	qty := 1
	if in.Quantity != nil {
		qty = *in.Quantity
	}
	if qty <= 0 || qty > MaxLineQuantity {
		return nil, domain.Invalid(op, "Quantity must be a positive integer")
	}

	if _, err := s.jerseys.GetByID(ctx, in.JerseyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op, "Jersey not found")
		}
		return nil, domain.Internal(err, op)
	}
	c, err := s.repo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, domain.Internal(err, op)
	}
	item, err := s.repo.AddItem(ctx, c.ID, in.JerseyID, qty)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op, "Jersey not found")
		}
		return nil, domain.Internal(err, op)
	}
	s.metrics.CartItemAdded(in.JerseyID, qty)
	s.logger.Debug("cart item added",
		slog.String("cart_id", c.ID),
		slog.Int64("jersey_id", in.JerseyID),
		slog.Int("quantity", item.Quantity),
	)
	return publicItem(item), nil
}

// UpdateItem sets a line's quantity. The returned item is nil when the line
// was removed.
func (s *Service) UpdateItem(ctx context.Context, userID, itemID string, in UpdateInput) (*domain.CartItem, error) {
	const op = "cart.update_item"
	if in.Quantity == nil {
		return nil, domain.Invalid(op, "Quantity is required")
	}
	if *in.Quantity > MaxLineQuantity {
		return nil, domain.Invalid(op, "Quantity must be a positive integer")
	}
	cartID, err := s.ownedCart(ctx, op, userID, itemID)
	if err != nil {
		return nil, err
	}
	item, err := s.repo.ChangeItemQuantity(ctx, cartID, itemID, *in.Quantity)
	if err != nil {
		return nil, s.itemError(op, err)
	}
	return publicItem(item), nil
}

func (s *Service) RemoveItem(ctx context.Context, userID, itemID string) error {
	const op = "cart.remove_item"
	cartID, err := s.ownedCart(ctx, op, userID, itemID)
	if err != nil {
		return err
	}
	if err := s.repo.RemoveItem(ctx, cartID, itemID); err != nil {
		return s.itemError(op, err)
	}
	return nil
}

// Clear empties the caller's cart. A user without a cart is a no-op.
func (s *Service) Clear(ctx context.Context, userID string) error {
	const op = "cart.clear"
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return domain.Internal(err, op)
	}
	if err := s.repo.Clear(ctx, c.ID); err != nil {
		return domain.Internal(err, op)
	}
	return nil
}

// ownedCart returns the id of the caller's cart. Items are always addressed
// through it so one user cannot touch another's lines.
func (s *Service) ownedCart(ctx context.Context, op, userID, itemID string) (string, error) {
	if _, err := uuid.Parse(itemID); err != nil {
		return "", domain.NotFound(op, "Cart item not found")
	}
	c, err := s.repo.GetByUser(ctx, userID)
	if err != nil {
		return "", s.itemError(op, err)
	}
	return c.ID, nil
}

func (s *Service) itemError(op string, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound(op, "Cart item not found")
	}
	return domain.Internal(err, op)
}

func publicItem(it *domain.CartItem) *domain.CartItem {
	if it == nil || it.Jersey == nil {
		return it
	}
	pub := it.Jersey.Public()
	it.Jersey = &pub
	return it
}
