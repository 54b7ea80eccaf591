// Package admin serves the back-office reports.
package admin

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"
	"jerseyshop/internal/domain"
	orderrepo "jerseyshop/internal/repository/order"
	paymentrepo "jerseyshop/internal/repository/payment"
	"jerseyshop/internal/repository/report"
)

// RecentLimit is the length of the dashboard's recent lists.
const RecentLimit = 5

type reportRepo interface {
	Stats(ctx context.Context) (report.Stats, error)
}

type orderRepo interface {
	List(ctx context.Context, f orderrepo.ListFilter) (domain.Page[domain.Order], error)
	Recent(ctx context.Context, limit int) ([]domain.Order, error)
}

type paymentRepo interface {
	List(ctx context.Context, f paymentrepo.ListFilter) (domain.Page[domain.Payment], error)
	Recent(ctx context.Context, limit int) ([]domain.Payment, error)
}

type userRepo interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error)
}

type Service struct {
	reports  reportRepo
	orders   orderRepo
	payments paymentRepo
	users    userRepo
}

func New(reports reportRepo, orders orderRepo, payments paymentRepo, users userRepo) *Service {
	return &Service{reports: reports, orders: orders, payments: payments, users: users}
}

type Dashboard struct {
	Stats          report.Stats     `json:"stats"`
	RecentOrders   []domain.Order   `json:"recentOrders"`
	RecentPayments []domain.Payment `json:"recentPayments"`
}

// Dashboard runs the three dashboard queries concurrently.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	const op = "admin.dashboard"
	var d Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		d.Stats, err = s.reports.Stats(gctx)
		return err
	})
	g.Go(func() error {
		orders, err := s.orders.Recent(gctx, RecentLimit)
		if err != nil {
			return err
		}
		for i := range orders {
			orders[i] = orders[i].Projected()
		}
		d.RecentOrders = orders
		return nil
	})
	g.Go(func() error {
		var err error
		d.RecentPayments, err = s.payments.Recent(gctx, RecentLimit)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, domain.Internal(err, op)
	}
	return &d, nil
}

func (s *Service) Orders(ctx context.Context, status string, page domain.PageRequest) (domain.Page[domain.Order], error) {
	const op = "admin.orders"
	st := domain.OrderStatus(strings.ToUpper(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return domain.Page[domain.Order]{}, domain.Invalid(op, "Unknown order status")
	}
	res, err := s.orders.List(ctx, orderrepo.ListFilter{Status: st, Page: page.Normalize()})
	if err != nil {
		return domain.Page[domain.Order]{}, domain.Internal(err, op)
	}
	for i := range res.Items {
		res.Items[i] = res.Items[i].Projected()
	}
	return res, nil
}

func (s *Service) Payments(ctx context.Context, status string, page domain.PageRequest) (domain.Page[domain.Payment], error) {
	const op = "admin.payments"
	st := domain.PaymentStatus(strings.ToUpper(strings.TrimSpace(status)))
	if st != "" && !st.Valid() {
		return domain.Page[domain.Payment]{}, domain.Invalid(op, "Unknown payment status")
	}
	res, err := s.payments.List(ctx, paymentrepo.ListFilter{Status: st, Page: page.Normalize()})
	if err != nil {
		return domain.Page[domain.Payment]{}, domain.Internal(err, op)
	}
	return res, nil
}

func (s *Service) Users(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error) {
	const op = "admin.users"
	res, err := s.users.List(ctx, page.Normalize())
	if err != nil {
		return domain.Page[domain.User]{}, domain.Internal(err, op)
	}
	return res, nil
}
