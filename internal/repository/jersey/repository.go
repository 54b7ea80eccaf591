package jersey

import (
	"context"
	"errors"

	"jerseyshop/internal/domain"
)

// ErrUnknownCategory is returned when a write references a missing category.
var ErrUnknownCategory = errors.New("unknown category")

// Patch holds the fields of a partial update; nil means unchanged.
type Patch struct {
	Name          *string
	Player        *string
	Price         *domain.Cents
	OriginalPrice *domain.Cents
	Image         *string
	DownloadURL   *string
	Badge         *string
	BadgeColor    *string
	Rating        *float64
	ReviewCount   *int
	CategoryID    *string
}

type Repository interface {
	List(ctx context.Context, f domain.JerseyFilter) (domain.Page[domain.Jersey], error)
	GetByID(ctx context.Context, id int64) (*domain.Jersey, error)
	GetByIDs(ctx context.Context, ids []int64) ([]domain.Jersey, error)
	Create(ctx context.Context, j domain.Jersey) (*domain.Jersey, error)
	Update(ctx context.Context, id int64, p Patch) (*domain.Jersey, error)
	Delete(ctx context.Context, id int64) error
	Upsert(ctx context.Context, j domain.Jersey) (*domain.Jersey, error)
}
