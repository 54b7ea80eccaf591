package domain

import "time"

type OrderStatus string

const (
	OrderPending OrderStatus = "PENDING"
	OrderPaid    OrderStatus = "PAID"
	// OrderCancelled is reserved for an external cancellation workflow; nothing
	// in this service moves an order into it.
	OrderCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPaid, OrderCancelled:
		return true
	}
	return false
}

// Order is a priced checkout. Subtotal, Tax and Total are fixed at creation.
type Order struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Status    OrderStatus `json:"status"`
	Subtotal  Cents       `json:"subtotal"`
	Tax       Cents       `json:"tax"`
	Total     Cents       `json:"total"`
	Items     []OrderItem `json:"items"`
	Payment   *Payment    `json:"payment"`
	User      *User       `json:"user,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// OrderItem holds the price a jersey had when the order was placed.
// JerseyID is nil once the jersey has been deleted from the catalog.
type OrderItem struct {
	ID       string       `json:"id"`
	OrderID  string       `json:"orderId"`
	JerseyID *int64       `json:"jerseyId"`
	Name     string       `json:"name"`
	Quantity int          `json:"quantity"`
	Price    Cents        `json:"price"`
	Jersey   *OrderJersey `json:"jersey,omitempty"`
}

// OrderJersey is the catalog detail attached to an order line.
type OrderJersey struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Player      string `json:"player"`
	Image       string `json:"image"`
	Price       Cents  `json:"price"`
	DownloadURL string `json:"downloadUrl,omitempty"`
}

// DownloadLink is handed to the buyer once an order is paid.
type DownloadLink struct {
	JerseyID    int64  `json:"jerseyId"`
	Name        string `json:"name"`
	DownloadURL string `json:"downloadUrl"`
}

func (o Order) DownloadsUnlocked() bool {
	return o.Status == OrderPaid
}

// Projected returns a copy of o safe to return to a caller: every item's
// download location is cleared unless the order is paid. The stored value is
// untouched.
func (o Order) Projected() Order {
	if len(o.Items) == 0 {
		return o
	}
	items := make([]OrderItem, len(o.Items))
	for i, it := range o.Items {
		if it.Jersey != nil {
			j := *it.Jersey
			if !o.DownloadsUnlocked() {
				j.DownloadURL = ""
			}
			it.Jersey = &j
		}
		items[i] = it
	}
	o.Items = items
	return o
}

// DownloadLinks lists the assets of a paid order. It is empty otherwise.
func (o Order) DownloadLinks() []DownloadLink {
	links := []DownloadLink{}
	if !o.DownloadsUnlocked() {
		return links
	}
	for _, it := range o.Items {
		if it.Jersey == nil || it.Jersey.DownloadURL == "" {
			continue
		}
		links = append(links, DownloadLink{
			JerseyID:    it.Jersey.ID,
			Name:        it.Jersey.Name,
			DownloadURL: it.Jersey.DownloadURL,
		})
	}
	return links
}

// StatusCount is one bucket of the orders-by-status breakdown.
type StatusCount struct {
	Status OrderStatus `json:"status"`
	Count  int         `json:"count"`
}
