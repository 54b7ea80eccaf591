package category

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

func (r *postgresRepo) List(ctx context.Context) ([]domain.Category, error) {
	const q = `
SELECT c.id, c.name, c.image, c.description, c.created_at, COUNT(j.id)::int
FROM categories c
LEFT JOIN jerseys j ON j.category_id = c.id
GROUP BY c.id
ORDER BY c.name ASC
`
	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := []domain.Category{}
	for rows.Next() {
		var (
			c     domain.Category
			count int
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Image, &c.Description, &c.CreatedAt, &count); err != nil {
			return nil, err
		}
		c.JerseyCount = &count
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	const q = `
SELECT id, name, image, description, created_at
FROM categories
WHERE id = $1
`
	var c domain.Category
	if err := r.pool.QueryRow(ctx, q, id).Scan(&c.ID, &c.Name, &c.Image, &c.Description, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	const jerseysQ = `
SELECT id, name, player, price_cents, original_price_cents, image, badge, badge_color, rating::float8, review_count, category_id, created_at, updated_at
FROM jerseys
WHERE category_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, jerseysQ, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	c.Jerseys = []domain.Jersey{}
	for rows.Next() {
		var j domain.Jersey
		if err := rows.Scan(&j.ID, &j.Name, &j.Player, &j.Price, &j.OriginalPrice, &j.Image, &j.Badge, &j.BadgeColor, &j.Rating, &j.ReviewCount, &j.CategoryID, &j.CreatedAt, &j.UpdatedAt); err != nil {
			return nil, err
		}
		c.Jerseys = append(c.Jerseys, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	count := len(c.Jerseys)
	c.JerseyCount = &count
	return &c, nil
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, name, image, description)
VALUES ($1, $2, $3, $4)
RETURNING created_at
`
	out := c
	if err := r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Image, c.Description).Scan(&out.CreatedAt); err != nil {
		if pgerr.IsUniqueViolation(err) {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Error("category repo: create", slog.String("id", c.ID), slog.Any("error", err))
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, c domain.Category) (*domain.Category, error) {
	const q = `
INSERT INTO categories (id, name, image, description)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO UPDATE
SET name = EXCLUDED.name,
    image = COALESCE(NULLIF(EXCLUDED.image, ''), categories.image),
    description = COALESCE(NULLIF(EXCLUDED.description, ''), categories.description)
RETURNING name, image, description, created_at
`
	out := domain.Category{ID: c.ID}
	if err := r.pool.QueryRow(ctx, q, c.ID, c.Name, c.Image, c.Description).
		Scan(&out.Name, &out.Image, &out.Description, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}
