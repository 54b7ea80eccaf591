package user

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *slog.Logger) Repository {
	return &postgresRepo{pool: pool, logger: logging.OrDiscard(logger)}
}

const userColumns = `id::text, email, company_name, phone, role, COALESCE(password_hash, ''), created_at, updated_at`

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, normalizeEmail(email)))
}

func (r *postgresRepo) FindOrCreate(ctx context.Context, c domain.Contact) (*domain.User, bool, error) {
	q := `
INSERT INTO users (email, company_name, phone, role)
VALUES ($1, $2, $3, 'USER')
ON CONFLICT (email) DO NOTHING
RETURNING ` + userColumns
	u, err := r.scanUser(r.pool.QueryRow(ctx, q, normalizeEmail(c.Email), c.CompanyName, c.Phone))
	if err == nil {
		r.logger.Info("user repo: created", slog.String("user_id", u.ID))
		return u, true, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, false, err
	}
	u, err = r.GetByEmail(ctx, c.Email)
	if err != nil {
		return nil, false, err
	}
	return u, false, nil
}

func (r *postgresRepo) UpsertContact(ctx context.Context, c domain.Contact) (*domain.User, error) {
	q := `
INSERT INTO users (email, company_name, phone, role)
VALUES ($1, $2, $3, 'USER')
ON CONFLICT (email) DO UPDATE
SET company_name = EXCLUDED.company_name,
    phone = EXCLUDED.phone,
    updated_at = now()
RETURNING ` + userColumns
	return r.scanUser(r.pool.QueryRow(ctx, q, normalizeEmail(c.Email), c.CompanyName, c.Phone))
}

func (r *postgresRepo) EnsureAdmin(ctx context.Context, email, companyName, passwordHash string) (*domain.User, error) {
	q := `
INSERT INTO users (email, company_name, phone, role, password_hash)
VALUES ($1, $2, '', 'ADMIN', $3)
ON CONFLICT (email) DO UPDATE
SET role = 'ADMIN',
    password_hash = EXCLUDED.password_hash,
    updated_at = now()
RETURNING ` + userColumns
	return r.scanUser(r.pool.QueryRow(ctx, q, normalizeEmail(email), companyName, passwordHash))
}

func (r *postgresRepo) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error) {
	page = page.Normalize()

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return domain.Page[domain.User]{}, err
	}

	const q = `
SELECT u.id::text, u.email, u.company_name, u.phone, u.role, u.created_at, u.updated_at,
       (SELECT COUNT(*) FROM orders o WHERE o.user_id = u.id)::int
FROM users u
ORDER BY u.created_at DESC, u.id
LIMIT $1 OFFSET $2
`
	rows, err := r.pool.Query(ctx, q, page.Limit, page.Offset())
	if err != nil {
		return domain.Page[domain.User]{}, err
	}
	defer rows.Close()

	users := []domain.User{}
	for rows.Next() {
		var (
			u     domain.User
			count int
		)
		if err := rows.Scan(&u.ID, &u.Email, &u.CompanyName, &u.Phone, &u.Role, &u.CreatedAt, &u.UpdatedAt, &count); err != nil {
			return domain.Page[domain.User]{}, err
		}
		u.OrderCount = &count
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return domain.Page[domain.User]{}, err
	}
	return domain.Page[domain.User]{Items: users, Pagination: domain.NewPagination(page, total)}, nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.CompanyName, &u.Phone, &u.Role, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		r.logger.Error("user repo: scan", slog.Any("error", err))
		return nil, err
	}
	return &u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
