package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger)}
}

func (r *postgresRepo) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
SELECT (SELECT COUNT(*) FROM users)::int,
       (SELECT COUNT(*) FROM orders)::int,
       (SELECT COUNT(*) FROM jerseys)::int,
       (SELECT COALESCE(SUM(amount_cents), 0) FROM payments WHERE status = 'COMPLETED')::bigint
`).Scan(&s.TotalUsers, &s.TotalOrders, &s.TotalJerseys, &s.TotalRevenue)
	if err != nil {
		return Stats{}, fmt.Errorf("count totals: %w", err)
	}

	rows, err := r.pool.Query(ctx, `
SELECT status, COUNT(*)::int
FROM orders
GROUP BY status
ORDER BY status
`)
	if err != nil {
		return Stats{}, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	s.OrdersByStatus = []domain.StatusCount{}
	for rows.Next() {
		var c domain.StatusCount
		if err := rows.Scan(&c.Status, &c.Count); err != nil {
			return Stats{}, err
		}
		s.OrdersByStatus = append(s.OrdersByStatus, c)
	}
	if err := rows.Err(); err != nil {
		return Stats{}, err
	}
	r.logger.Debug("report repo: stats", slog.Int("orders", s.TotalOrders))
	return s, nil
}
