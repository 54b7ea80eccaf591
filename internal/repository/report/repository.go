// Package report runs the aggregate queries behind the admin dashboard.
package report

import (
	"context"

	"jerseyshop/internal/domain"
)

// Stats are the headline numbers of the dashboard.
type Stats struct {
	TotalUsers     int                  `json:"totalUsers"`
	TotalOrders    int                  `json:"totalOrders"`
	TotalJerseys   int                  `json:"totalJerseys"`
	TotalRevenue   domain.Cents         `json:"totalRevenue"`
	OrdersByStatus []domain.StatusCount `json:"ordersByStatus"`
}

type Repository interface {
	// Stats counts rows and sums the amount of completed payments.
	Stats(ctx context.Context) (Stats, error)
}
