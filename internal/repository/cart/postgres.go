package cart

import (
	"context"
	"errors"
	"log/slog"

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

const itemColumns = `
SELECT ci.id::text, ci.cart_id::text, ci.jersey_id, ci.quantity, ci.created_at,
       j.id, j.name, j.player, j.price_cents, j.original_price_cents, j.image,
       j.badge, j.badge_color, j.rating::float8, j.review_count, j.category_id, j.created_at, j.updated_at
FROM cart_items ci
JOIN jerseys j ON j.id = ci.jersey_id
`

func (r *postgresRepo) GetOrCreate(ctx context.Context, userID string) (*domain.Cart, error) {
	if _, err := r.pool.Exec(ctx, `INSERT INTO carts (user_id) VALUES ($1) ON CONFLICT (user_id) DO NOTHING`, userID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return r.GetByUser(ctx, userID)
}

func (r *postgresRepo) GetByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := r.pool.QueryRow(ctx, `
SELECT id::text, user_id::text, created_at
FROM carts
WHERE user_id = $1
`, userID).Scan(&cart.ID, &cart.UserID, &cart.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, itemColumns+"WHERE ci.cart_id = $1 ORDER BY ci.created_at ASC, ci.id", cart.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cart.Items = []domain.CartItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		cart.Items = append(cart.Items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *postgresRepo) GetItem(ctx context.Context, cartID, itemID string) (*domain.CartItem, error) {
	item, err := scanItem(r.pool.QueryRow(ctx, itemColumns+"WHERE ci.cart_id = $1 AND ci.id = $2", cartID, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) AddItem(ctx context.Context, cartID string, jerseyID int64, quantity int) (*domain.CartItem, error) {
	const q = `
INSERT INTO cart_items (cart_id, jersey_id, quantity)
VALUES ($1, $2, $3)
ON CONFLICT (cart_id, jersey_id) DO UPDATE
SET quantity = cart_items.quantity + EXCLUDED.quantity
RETURNING id::text
`
	var itemID string
	if err := r.pool.QueryRow(ctx, q, cartID, jerseyID, quantity).Scan(&itemID); err != nil {
		if pgerr.IsForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("cart repo: add item", slog.String("cart_id", cartID), slog.Int64("jersey_id", jerseyID), slog.Any("error", err))
		return nil, err
	}
	return r.GetItem(ctx, cartID, itemID)
}

func (r *postgresRepo) ChangeItemQuantity(ctx context.Context, cartID, itemID string, quantity int) (*domain.CartItem, error) {
	if quantity <= 0 {
		if err := r.RemoveItem(ctx, cartID, itemID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	cmd, err := r.pool.Exec(ctx, `
UPDATE cart_items
SET quantity = $1
WHERE id = $2 AND cart_id = $3
`, quantity, itemID, cartID)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetItem(ctx, cartID, itemID)
}

func (r *postgresRepo) RemoveItem(ctx context.Context, cartID, itemID string) error {
	cmd, err := r.pool.Exec(ctx, `
DELETE FROM cart_items
WHERE id = $1 AND cart_id = $2
`, itemID, cartID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Clear(ctx context.Context, cartID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM cart_items WHERE cart_id = $1`, cartID)
	return err
}

func scanItem(row pgx.Row) (*domain.CartItem, error) {
	var (
		item domain.CartItem
		j    domain.Jersey
	)
	err := row.Scan(
		&item.ID, &item.CartID, &item.JerseyID, &item.Quantity, &item.CreatedAt,
		&j.ID, &j.Name, &j.Player, &j.Price, &j.OriginalPrice, &j.Image,
		&j.Badge, &j.BadgeColor, &j.Rating, &j.ReviewCount, &j.CategoryID, &j.CreatedAt, &j.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	item.Jersey = &j
	return &item, nil
}
