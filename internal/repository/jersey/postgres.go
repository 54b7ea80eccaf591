package jersey

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

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

const selectColumns = `
SELECT j.id, j.name, j.player, j.price_cents, j.original_price_cents, j.image, j.download_url,
       j.badge, j.badge_color, j.rating::float8, j.review_count, j.category_id, j.created_at, j.updated_at,
       c.id, c.name, c.image, c.description, c.created_at
FROM jerseys j
JOIN categories c ON c.id = j.category_id
`

func scanJersey(row pgx.Row) (*domain.Jersey, error) {
	var (
		j   domain.Jersey
		cat domain.Category
	)
	err := row.Scan(
		&j.ID, &j.Name, &j.Player, &j.Price, &j.OriginalPrice, &j.Image, &j.DownloadURL,
		&j.Badge, &j.BadgeColor, &j.Rating, &j.ReviewCount, &j.CategoryID, &j.CreatedAt, &j.UpdatedAt,
		&cat.ID, &cat.Name, &cat.Image, &cat.Description, &cat.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	j.Category = &cat
	return &j, nil
}

func (r *postgresRepo) List(ctx context.Context, f domain.JerseyFilter) (domain.Page[domain.Jersey], error) {
	page := f.Page.Normalize()

	var (
		where []string
		args  []interface{}
	)
	add := func(clause string, v interface{}) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(clause, len(args)))
	}
	if f.CategoryID != "" {
		add("j.category_id = $%d", f.CategoryID)
	}
	if f.MinPrice != nil {
		add("j.price_cents >= $%d", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		add("j.price_cents <= $%d", *f.MaxPrice)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("(j.name ILIKE $%[1]d OR j.player ILIKE $%[1]d)", "%"+escapeLike(s)+"%")
	}
	clause := ""
	if len(where) > 0 {
		clause = "WHERE " + strings.Join(where, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jerseys j "+clause, args...).Scan(&total); err != nil {
		return domain.Page[domain.Jersey]{}, err
	}

	q := selectColumns + clause + fmt.Sprintf(" ORDER BY j.created_at DESC, j.id DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	rows, err := r.pool.Query(ctx, q, append(args, page.Limit, page.Offset())...)
	if err != nil {
		r.logger.Error("jersey repo: list", slog.Any("error", err))
		return domain.Page[domain.Jersey]{}, err
	}
	defer rows.Close()

	items := []domain.Jersey{}
	for rows.Next() {
		j, err := scanJersey(rows)
		if err != nil {
			return domain.Page[domain.Jersey]{}, err
		}
		items = append(items, *j)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.Jersey]{}, err
	}
	r.logger.Debug("jersey repo: list", slog.Int("count", len(items)), slog.Int("total", total))
	return domain.Page[domain.Jersey]{Items: items, Pagination: domain.NewPagination(page, total)}, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Jersey, error) {
	j, err := scanJersey(r.pool.QueryRow(ctx, selectColumns+"WHERE j.id = $1", id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

func (r *postgresRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Jersey, error) {
	if len(ids) == 0 {
		return []domain.Jersey{}, nil
	}
	rows, err := r.pool.Query(ctx, selectColumns+"WHERE j.id = ANY($1) ORDER BY j.id", ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]domain.Jersey, 0, len(ids))
	for rows.Next() {
		j, err := scanJersey(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *j)
	}
	return result, rows.Err()
}

func (r *postgresRepo) Create(ctx context.Context, j domain.Jersey) (*domain.Jersey, error) {
	const q = `
INSERT INTO jerseys (name, player, price_cents, original_price_cents, image, download_url, badge, badge_color, rating, review_count, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
RETURNING id
`
	var id int64
	err := r.pool.QueryRow(ctx, q,
		j.Name, j.Player, j.Price, j.OriginalPrice, j.Image, j.DownloadURL,
		j.Badge, j.BadgeColor, j.Rating, j.ReviewCount, j.CategoryID,
	).Scan(&id)
	if err != nil {
		return nil, r.classify("create", err)
	}
	r.logger.Info("jersey repo: created", slog.Int64("id", id), slog.String("category_id", j.CategoryID))
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Update(ctx context.Context, id int64, p Patch) (*domain.Jersey, error) {
	const q = `
UPDATE jerseys SET
    name = COALESCE($2, name),
    player = COALESCE($3, player),
    price_cents = COALESCE($4, price_cents),
    original_price_cents = COALESCE($5, original_price_cents),
    image = COALESCE($6, image),
    download_url = COALESCE($7, download_url),
    badge = COALESCE($8, badge),
    badge_color = COALESCE($9, badge_color),
    rating = COALESCE($10, rating),
    review_count = COALESCE($11, review_count),
    category_id = COALESCE($12, category_id),
    updated_at = now()
WHERE id = $1
`
	cmd, err := r.pool.Exec(ctx, q, id,
		p.Name, p.Player, p.Price, p.OriginalPrice, p.Image, p.DownloadURL,
		p.Badge, p.BadgeColor, p.Rating, p.ReviewCount, p.CategoryID,
	)
	if err != nil {
		return nil, r.classify("update", err)
	}
	if cmd.RowsAffected() == 0 {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jerseys WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	r.logger.Info("jersey repo: deleted", slog.Int64("id", id))
	return nil
}

func (r *postgresRepo) Upsert(ctx context.Context, j domain.Jersey) (*domain.Jersey, error) {
	const q = `
INSERT INTO jerseys (name, player, price_cents, original_price_cents, image, download_url, badge, badge_color, rating, review_count, category_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (name, player) DO UPDATE SET
    price_cents = EXCLUDED.price_cents,
    original_price_cents = EXCLUDED.original_price_cents,
    image = EXCLUDED.image,
    download_url = EXCLUDED.download_url,
    badge = EXCLUDED.badge,
    badge_color = EXCLUDED.badge_color,
    rating = EXCLUDED.rating,
    review_count = EXCLUDED.review_count,
    category_id = EXCLUDED.category_id,
    updated_at = now()
RETURNING id
`
	var id int64
	err := r.pool.QueryRow(ctx, q,
		j.Name, j.Player, j.Price, j.OriginalPrice, j.Image, j.DownloadURL,
		j.Badge, j.BadgeColor, j.Rating, j.ReviewCount, j.CategoryID,
	).Scan(&id)
	if err != nil {
		return nil, r.classify("upsert", err)
	}
	return r.GetByID(ctx, id)
}

func (r *postgresRepo) classify(op string, err error) error {
	switch {
	case pgerr.IsForeignKeyViolation(err):
		return ErrUnknownCategory
	case pgerr.IsUniqueViolation(err):
		return domain.ErrAlreadyExists
	}
	r.logger.Error("jersey repo: "+op, slog.Any("error", err))
	return err
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
