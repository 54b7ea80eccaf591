package domain

import "time"

// Cart is a user's pre-checkout selection. There is at most one per user.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CartItem is one (cart, jersey) line. Quantity is always positive.
type CartItem struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	JerseyID  int64     `json:"jerseyId"`
	Quantity  int       `json:"quantity"`
	Jersey    *Jersey   `json:"jersey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CartSummary is a cart priced at current catalog prices.
type CartSummary struct {
	Cart      Cart  `json:"cart"`
	Subtotal  Cents `json:"subtotal"`
	ItemCount int   `json:"itemCount"`
}
