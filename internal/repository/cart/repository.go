package cart

import (
	"context"

	"jerseyshop/internal/domain"
)

type Repository interface {
	// GetOrCreate returns the user's cart, creating an empty one when missing.
	GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error)
	GetByUser(ctx context.Context, userID string) (*domain.Cart, error)
	GetItem(ctx context.Context, cartID, itemID string) (*domain.CartItem, error)
	// AddItem inserts the line or increments the existing quantity atomically.
	AddItem(ctx context.Context, cartID string, jerseyID int64, quantity int) (*domain.CartItem, error)
	// ChangeItemQuantity sets an absolute quantity. A quantity <= 0 deletes
	// the line and returns a nil item.
	ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.CartItem, error)
	RemoveItem(ctx context.Context, cartID, itemID string) error
	Clear(ctx context.Context, cartID string) error
}
