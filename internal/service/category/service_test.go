package category

import (
	"context"
	"errors"
	"testing"

	"jerseyshop/internal/domain"
)

type stubRepo struct {
	list       []domain.Category
	get        *domain.Category
	getErr     error
	createErr  error
	lastCreate domain.Category
}

func (s *stubRepo) List(context.Context) ([]domain.Category, error) { return s.list, nil }

func (s *stubRepo) GetByID(context.Context, string) (*domain.Category, error) {
	return s.get, s.getErr
}

func (s *stubRepo) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	s.lastCreate = c
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &c, nil
}

func (s *stubRepo) Upsert(_ context.Context, c domain.Category) (*domain.Category, error) {
	return &c, nil
}

func TestGetStripsDownloadURLs(t *testing.T) {
	repo := &stubRepo{get: &domain.Category{
		ID:      "football",
		Jerseys: []domain.Jersey{{ID: 1, DownloadURL: "https://files/1.zip"}},
	}}
	c, err := New(repo, nil).Get(context.Background(), "football")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Jerseys[0].DownloadURL != "" {
		t.Fatalf("download url leaked: %q", c.Jerseys[0].DownloadURL)
	}
}

func TestGetMissing(t *testing.T) {
	repo := &stubRepo{getErr: domain.ErrNotFound}
	_, err := New(repo, nil).Get(context.Background(), "nope")
	if !domain.IsCode(err, domain.ENOTFOUND) || domain.ErrorMessage(err) != "Category not found" {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateValidates(t *testing.T) {
	repo := &stubRepo{}
	_, err := New(repo, nil).Create(context.Background(), CreateInput{ID: "x", Name: "X"})
	if !domain.IsCode(err, domain.EINVALID) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestCreateNormalizesAndMapsConflict(t *testing.T) {
	repo := &stubRepo{}
	svc := New(repo, nil)
	in := CreateInput{ID: " Football ", Name: "Football", Image: "img", Description: "desc"}
	if _, err := svc.Create(context.Background(), in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if repo.lastCreate.ID != "football" {
		t.Fatalf("expected slug id, got %q", repo.lastCreate.ID)
	}

	repo.createErr = domain.ErrAlreadyExists
	_, err := svc.Create(context.Background(), in)
	if !domain.IsCode(err, domain.ECONFLICT) {
		t.Fatalf("expected conflict, got %v", err)
	}

	repo.createErr = errors.New("boom")
	_, err = svc.Create(context.Background(), in)
	if !domain.IsCode(err, domain.EINTERNAL) {
		t.Fatalf("expected internal, got %v", err)
	}
}
