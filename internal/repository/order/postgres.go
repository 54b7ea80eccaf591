package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/repository/pgerr"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger)}
}

const orderColumns = `
SELECT o.id::text, o.user_id::text, o.status, o.subtotal_cents, o.tax_cents, o.total_cents, o.created_at, o.updated_at,
       u.email, u.company_name, u.phone, u.role, u.created_at, u.updated_at,
       p.id::text, p.method, p.transaction_id, p.amount_cents, p.status, p.created_at
FROM orders o
JOIN users u ON u.id = o.user_id
LEFT JOIN payments p ON p.order_id = o.id
`

func (r *postgresRepo) Create(ctx context.Context, in NewOrder) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if in.ConsumeCartID != "" {
		if err := lockCart(ctx, tx, in.ConsumeCartID, in.ConsumeLines); err != nil {
			return nil, err
		}
	}

	var orderID string
	err = tx.QueryRow(ctx, `
INSERT INTO orders (user_id, status, subtotal_cents, tax_cents, total_cents)
VALUES ($1, 'PENDING', $2, $3, $4)
RETURNING id::text
`, in.UserID, in.Subtotal, in.Tax, in.Total).Scan(&orderID)
	if err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert order: %w", err)
	}

	batch := &pgx.Batch{}
	for _, it := range in.Items {
		batch.Queue(`
INSERT INTO order_items (order_id, jersey_id, jersey_name, quantity, price_cents)
VALUES ($1, $2, $3, $4, $5)
`, orderID, it.JerseyID, it.Name, it.Quantity, it.Price)
	}
	if in.ConsumeCartID != "" {
		batch.Queue(`DELETE FROM cart_items WHERE cart_id = $1`, in.ConsumeCartID)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert order items: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Info("order repo: created",
		slog.String("order_id", orderID),
		slog.String("user_id", in.UserID),
		slog.Int("items", len(in.Items)),
	)
	return r.GetByID(ctx, orderID)
}

// lockCart takes a row lock on the cart, which blocks new lines through the
// foreign key, and on its current lines. It fails with ErrCartChanged unless
// the locked lines are exactly the expected ones.
func lockCart(ctx context.Context, tx pgx.Tx, cartID string, expected []CartLine) error {
	var locked string
	err := tx.QueryRow(ctx, `SELECT id::text FROM carts WHERE id = $1 FOR UPDATE`, cartID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrCartChanged
		}
		return fmt.Errorf("lock cart: %w", err)
	}

	rows, err := tx.Query(ctx, `
SELECT jersey_id, quantity FROM cart_items WHERE cart_id = $1 FOR UPDATE
`, cartID)
	if err != nil {
		return fmt.Errorf("lock cart items: %w", err)
	}
	var current []CartLine
	for rows.Next() {
		var l CartLine
		if err := rows.Scan(&l.JerseyID, &l.Quantity); err != nil {
			rows.Close()
			return err
		}
		current = append(current, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock cart items: %w", err)
	}

	if len(current) == 0 || len(current) != len(expected) {
		return ErrCartChanged
	}
	want := make(map[int64]int, len(expected))
	for _, l := range expected {
		want[l.JerseyID] += l.Quantity
	}
	for _, l := range current {
		if want[l.JerseyID] != l.Quantity {
			return ErrCartChanged
		}
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, orderColumns+"WHERE o.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	orders := []domain.Order{*o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return r.query(ctx, orderColumns+"WHERE o.user_id = $1 ORDER BY o.created_at DESC, o.id", userID)
}

func (r *postgresRepo) List(ctx context.Context, f ListFilter) (domain.Page[domain.Order], error) {
	page := f.Page.Normalize()

	var total int
	if err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM orders o WHERE ($1 = '' OR o.status = $1)
`, string(f.Status)).Scan(&total); err != nil {
		return domain.Page[domain.Order]{}, err
	}

	orders, err := r.query(ctx, orderColumns+`
WHERE ($1 = '' OR o.status = $1)
ORDER BY o.created_at DESC, o.id
LIMIT $2 OFFSET $3
`, string(f.Status), page.Limit, page.Offset())
	if err != nil {
		return domain.Page[domain.Order]{}, err
	}
	return domain.Page[domain.Order]{Items: orders, Pagination: domain.NewPagination(page, total)}, nil
}

func (r *postgresRepo) Recent(ctx context.Context, limit int) ([]domain.Order, error) {
	if limit <= 0 {
		limit = 5
	}
	return r.query(ctx, orderColumns+"ORDER BY o.created_at DESC, o.id LIMIT $1", limit)
}

func (r *postgresRepo) query(ctx context.Context, q string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// attachItems loads the lines of every order in one round trip.
func (r *postgresRepo) attachItems(ctx context.Context, orders []domain.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	index := make(map[string]int, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		index[orders[i].ID] = i
		orders[i].Items = []domain.OrderItem{}
	}

	rows, err := r.pool.Query(ctx, `
SELECT oi.id::text, oi.order_id::text, oi.jersey_id, oi.jersey_name, oi.quantity, oi.price_cents,
       j.id, j.name, j.player, j.image, j.price_cents, j.download_url
FROM order_items oi
LEFT JOIN jerseys j ON j.id = oi.jersey_id
WHERE oi.order_id = ANY($1::text[]::uuid[])
ORDER BY oi.order_id, oi.jersey_name, oi.id
`, ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			it           domain.OrderItem
			jID          *int64
			jName        *string
			jPlayer      *string
			jImage       *string
			jPrice       *domain.Cents
			jDownloadURL *string
		)
		if err := rows.Scan(
			&it.ID, &it.OrderID, &it.JerseyID, &it.Name, &it.Quantity, &it.Price,
			&jID, &jName, &jPlayer, &jImage, &jPrice, &jDownloadURL,
		); err != nil {
			return err
		}
		if jID != nil {
			it.Jersey = &domain.OrderJersey{
				ID:          *jID,
				Name:        deref(jName),
				Player:      deref(jPlayer),
				Image:       deref(jImage),
				DownloadURL: deref(jDownloadURL),
			}
			if jPrice != nil {
				it.Jersey.Price = *jPrice
			}
		}
		i := index[it.OrderID]
		orders[i].Items = append(orders[i].Items, it)
	}
	return rows.Err()
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o    domain.Order
		u    domain.User
		pID  *string
		pMth *string
		pTx  *string
		pAmt *domain.Cents
		pSt  *string
		pAt  *time.Time
	)
	err := row.Scan(
		&o.ID, &o.UserID, &o.Status, &o.Subtotal, &o.Tax, &o.Total, &o.CreatedAt, &o.UpdatedAt,
		&u.Email, &u.CompanyName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt,
		&pID, &pMth, &pTx, &pAmt, &pSt, &pAt,
	)
	if err != nil {
		return nil, err
	}
	u.ID = o.UserID
	o.User = &u
	if pID != nil {
		p := &domain.Payment{
			ID:            *pID,
			OrderID:       o.ID,
			Method:        deref(pMth),
			TransactionID: pTx,
			Status:        domain.PaymentStatus(deref(pSt)),
		}
		if pAmt != nil {
			p.Amount = *pAmt
		}
		if pAt != nil {
			p.CreatedAt = *pAt
		}
		o.Payment = p
	}
	return &o, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
