package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/repository/pgerr"
)

const orderUniqueConstraint = "payments_order_id_key"

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger)}
}

const paymentColumns = `
SELECT p.id::text, p.order_id::text, p.method, p.transaction_id, p.amount_cents, p.status, p.created_at,
       o.user_id::text, o.status, o.subtotal_cents, o.tax_cents, o.total_cents, o.created_at, o.updated_at,
       u.email, u.company_name, u.phone, u.role, u.created_at, u.updated_at
FROM payments p
JOIN orders o ON o.id = p.order_id
JOIN users u ON u.id = o.user_id
`

func (r *postgresRepo) Settle(ctx context.Context, in NewPayment) (*domain.Payment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	var (
		status domain.OrderStatus
		total  domain.Cents
		paid   bool
	)
	err = tx.QueryRow(ctx, `SELECT status, total_cents FROM orders WHERE id = $1 FOR UPDATE`, in.OrderID).
		Scan(&status, &total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("lock order: %w", err)
	}
	// Checked after the lock so a payment committed while waiting is visible.
	err = tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM payments WHERE order_id = $1)`, in.OrderID).Scan(&paid)
	if err != nil {
		return nil, fmt.Errorf("check payment: %w", err)
	}
	if paid {
		return nil, domain.ErrAlreadyExists
	}
	if status != domain.OrderPending {
		return nil, ErrNotPayable
	}

	var paymentID string
	err = tx.QueryRow(ctx, `
INSERT INTO payments (order_id, method, transaction_id, amount_cents, status)
VALUES ($1, $2, $3, $4, 'COMPLETED')
RETURNING id::text
`, in.OrderID, in.Method, in.TransactionID, total).Scan(&paymentID)
	if err != nil {
		if pgerr.IsUniqueViolation(err) && pgerr.Constraint(err) == orderUniqueConstraint {
			return nil, domain.ErrAlreadyExists
		}
		return nil, fmt.Errorf("insert payment: %w", err)
	}

	cmd, err := tx.Exec(ctx, `
UPDATE orders
SET status = 'PAID', updated_at = now()
WHERE id = $1 AND status = 'PENDING'
`, in.OrderID)
	if err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, ErrNotPayable
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("payment repo: settled",
		slog.String("payment_id", paymentID),
		slog.String("order_id", in.OrderID),
		slog.String("amount", total.String()),
	)
	return r.GetByID(ctx, paymentID)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	p, err := scanPayment(r.pool.QueryRow(ctx, paymentColumns+"WHERE p.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) (domain.Page[domain.Payment], error) {
	page := f.Page.Normalize()

	var total int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM payments p WHERE ($1 = '' OR p.status = $1)
`, string(f.Status)).Scan(&total); err != nil {
		return domain.Page[domain.Payment]{}, err
	}

	payments, err := r.query(ctx, paymentColumns+`
WHERE ($1 = '' OR p.status = $1)
ORDER BY p.created_at DESC, p.id
LIMIT $2 OFFSET $3
`, string(f.Status), page.Limit, page.Offset())
	if err != nil {
		return domain.Page[domain.Payment]{}, err
	}
	return domain.Page[domain.Payment]{Items: payments, Pagination: domain.NewPagination(page, total)}, nil
}

func (r *postgresRepo) Recent(ctx context.Context, limit int) ([]domain.Payment, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.query(ctx, paymentColumns+"ORDER BY p.created_at DESC, p.id LIMIT $1", limit)
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...any) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	payments := []domain.Payment{}
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// scanPayment reads a payment with its order header and buyer. Order items
// are not loaded here.
func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var (
		p domain.Payment
		o domain.Order
		u domain.User
	)
	err := row.Scan(
		&p.ID, &p.OrderID, &p.Method, &p.TransactionID, &p.Amount, &p.Status, &p.CreatedAt,
		&o.UserID, &o.Status, &o.Subtotal, &o.Tax, &o.Total, &o.CreatedAt, &o.UpdatedAt,
		&u.Email, &u.CompanyName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.ID = p.OrderID
	u.ID = o.UserID
	o.User = &u
	p.Order = &o
	return &p, nil
}
