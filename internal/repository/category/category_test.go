package category

import (
	"context"
	"errors"
	"testing"

	"jerseyshop/internal/domain"
	"jerseyshop/internal/repository/repotest"
)

func TestPostgres_CreateAndList(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)

	repo := NewPostgres(pool, nil)
	cat, err := repo.Create(ctx, domain.Category{ID: "football", Name: "Football", Image: "img", Description: "Kits"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if cat.CreatedAt.IsZero() {
		t.Fatalf("expected created_at to be set")
	}
	repotest.InsertJersey(t, pool, "football", "Messi Home", 8999)

	list, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID != "football" || list[0].JerseyCount == nil || *list[0].JerseyCount != 1 {
		t.Fatalf("unexpected list %+v", list)
	}

	got, err := repo.GetByID(ctx, "football")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if len(got.Jerseys) != 1 || got.Jerseys[0].DownloadURL != "" {
		t.Fatalf("expected one jersey without download url, got %+v", got.Jerseys)
	}
}

func TestPostgres_CreateDuplicate(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)

	in := domain.Category{ID: "cricket", Name: "Cricket", Image: "img", Description: "d"}
	if _, err := repo.Create(ctx, in); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := repo.Create(ctx, in); !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPostgres_UpsertUpdatesExisting(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)

	if _, err := repo.Upsert(ctx, domain.Category{ID: "volleyball", Name: "Volley", Image: "img", Description: "d"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := repo.Upsert(ctx, domain.Category{ID: "volleyball", Name: "Volleyball"})
	if err != nil {
		t.Fatalf("upsert update: %v", err)
	}
	if second.Name != "Volleyball" || second.Image != "img" {
		t.Fatalf("expected name updated and image kept, got %+v", second)
	}
	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
