package jersey

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	jerseyrepo "jerseyshop/internal/repository/jersey"
)

type Service struct {
	repo   jerseyrepo.Repository
	logger *slog.Logger
}

func New(repo jerseyrepo.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrDiscard(logger)}
}

// Input is the admin payload for creating a jersey.
type Input struct {
	Name          string        `json:"name"`
	Player        string        `json:"player"`
	Price         domain.Cents  `json:"price"`
	OriginalPrice *domain.Cents `json:"originalPrice"`
	Image         string        `json:"image"`
	DownloadURL   string        `json:"downloadUrl"`
	Badge         *string       `json:"badge"`
	BadgeColor    *string       `json:"badgeColor"`
	Rating        float64       `json:"rating"`
	ReviewCount   int           `json:"reviewCount"`
	CategoryID    string        `json:"categoryId"`
}

// PatchInput is a partial update; absent fields are left unchanged.
type PatchInput struct {
	Name          *string       `json:"name"`
	Player        *string       `json:"player"`
	Price         *domain.Cents `json:"price"`
	OriginalPrice *domain.Cents `json:"originalPrice"`
	Image         *string       `json:"image"`
	DownloadURL   *string       `json:"downloadUrl"`
	Badge         *string       `json:"badge"`
	BadgeColor    *string       `json:"badgeColor"`
	Rating        *float64      `json:"rating"`
	ReviewCount   *int          `json:"reviewCount"`
	CategoryID    *string       `json:"categoryId"`
}

// List returns a page of the public catalog.
func (s *Service) List(ctx context.Context, f domain.JerseyFilter) (domain.Page[domain.Jersey], error) {
	const op = "jersey.list"
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return domain.Page[domain.Jersey]{}, domain.Invalid(op, "minPrice must not exceed maxPrice")
	}
	f.Search = strings.TrimSpace(f.Search)
	f.Page = f.Page.Normalize()
	page, err := s.repo.List(ctx, f)
	if err != nil {
		return domain.Page[domain.Jersey]{}, domain.Internal(err, op)
	}
	for i := range page.Items {
		page.Items[i] = page.Items[i].Public()
	}
	return page, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Jersey, error) {
	const op = "jersey.get"
	j, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op, "Jersey not found")
		}
		return nil, domain.Internal(err, op)
	}
	pub := j.Public()
	return &pub, nil
}

func (s *Service) Create(ctx context.Context, in Input) (*domain.Jersey, error) {
	const op = "jersey.create"
	j := domain.Jersey{
		Name:          strings.TrimSpace(in.Name),
		Player:        strings.TrimSpace(in.Player),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         strings.TrimSpace(in.Image),
		DownloadURL:   strings.TrimSpace(in.DownloadURL),
		Badge:         in.Badge,
		BadgeColor:    in.BadgeColor,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		CategoryID:    strings.TrimSpace(in.CategoryID),
	}
	if j.Name == "" || j.Player == "" || j.Image == "" || j.DownloadURL == "" || j.CategoryID == "" || j.Price <= 0 {
		return nil, domain.Invalid(op, "Required fields missing")
	}
	if err := validateExtras(op, j.OriginalPrice, &j.Rating, &j.ReviewCount); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, j)
	if err != nil {
		return nil, s.writeError(op, err)
	}
	s.logger.Info("jersey created", slog.Int64("jersey_id", created.ID), slog.String("category_id", created.CategoryID))
	return created, nil
}

func (s *Service) Update(ctx context.Context, id int64, in PatchInput) (*domain.Jersey, error) {
	const op = "jersey.update"
	p := jerseyrepo.Patch{
		Name:          trimmed(in.Name),
		Player:        trimmed(in.Player),
		Price:         in.Price,
		OriginalPrice: in.OriginalPrice,
		Image:         trimmed(in.Image),
		DownloadURL:   trimmed(in.DownloadURL),
		Badge:         in.Badge,
		BadgeColor:    in.BadgeColor,
		Rating:        in.Rating,
		ReviewCount:   in.ReviewCount,
		CategoryID:    trimmed(in.CategoryID),
	}
	for _, f := range []*string{p.Name, p.Player, p.Image, p.DownloadURL, p.CategoryID} {
		if f != nil && *f == "" {
			return nil, domain.Invalid(op, "Required fields missing")
		}
	}
	if p.Price != nil && *p.Price <= 0 {
		return nil, domain.Invalid(op, "price must be positive")
	}
	if err := validateExtras(op, p.OriginalPrice, p.Rating, p.ReviewCount); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, id, p)
	if err != nil {
		return nil, s.writeError(op, err)
	}
	s.logger.Info("jersey updated", slog.Int64("jersey_id", id))
	return updated, nil
}

// Delete removes a jersey. Cart lines go with it; order lines keep their
// snapshot name and price.
func (s *Service) Delete(ctx context.Context, id int64) error {
	const op = "jersey.delete"
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.writeError(op, err)
	}
	s.logger.Info("jersey deleted", slog.Int64("jersey_id", id))
	return nil
}

func (s *Service) writeError(op string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return domain.NotFound(op, "Jersey not found")
	case errors.Is(err, jerseyrepo.ErrUnknownCategory):
		return domain.NotFound(op, "Category not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		return domain.Conflict(op, "A jersey with this name and player already exists")
	default:
		return domain.Internal(err, op)
	}
}

func validateExtras(op string, originalPrice *domain.Cents, rating *float64, reviews *int) error {
	if originalPrice != nil && *originalPrice <= 0 {
		return domain.Invalid(op, "originalPrice must be positive")
	}
	if rating != nil && (*rating < 0 || *rating > 5) {
		return domain.Invalid(op, "rating must be between 0 and 5")
	}
	if reviews != nil && *reviews < 0 {
		return domain.Invalid(op, "reviewCount must not be negative")
	}
	return nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
