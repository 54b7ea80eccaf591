package category

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
	"jerseyshop/internal/repository/category"
)

type Service struct {
	repo   category.Repository
	logger *slog.Logger
}

func New(repo category.Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logging.OrDiscard(logger)}
}

// CreateInput is the admin payload for a new category.
type CreateInput struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	Description string `json:"description"`
}

// List returns every category with its jersey count.
func (s *Service) List(ctx context.Context) ([]domain.Category, error) {
	const op = "category.list"
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, domain.Internal(err, op)
	}
	return cats, nil
}

// Get returns a category with its jerseys. Download locations are stripped.
func (s *Service) Get(ctx context.Context, id string) (*domain.Category, error) {
	const op = "category.get"
	c, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op, "Category not found")
		}
		return nil, domain.Internal(err, op)
	}
	for i := range c.Jerseys {
		c.Jerseys[i] = c.Jerseys[i].Public()
	}
	return c, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Category, error) {
	const op = "category.create"
	c := domain.Category{
		ID:          strings.ToLower(strings.TrimSpace(in.ID)),
		Name:        strings.TrimSpace(in.Name),
		Image:       strings.TrimSpace(in.Image),
		Description: strings.TrimSpace(in.Description),
	}
	if c.ID == "" || c.Name == "" || c.Image == "" || c.Description == "" {
		return nil, domain.Invalid(op, "All fields are required")
	}
	created, err := s.repo.Create(ctx, c)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			return nil, domain.Conflict(op, "Category already exists")
		}
		return nil, domain.Internal(err, op)
	}
	s.logger.Info("category created", slog.String("category_id", created.ID))
	return created, nil
}
