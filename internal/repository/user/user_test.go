package user

import (
	"context"
	"errors"
	"testing"

	"jerseyshop/internal/domain"
	"jerseyshop/internal/repository/repotest"
)

func TestPostgres_FindOrCreate(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)

	first, created, err := repo.FindOrCreate(ctx, domain.Contact{CompanyName: "Acme", Email: "Buyer@Example.com", Phone: "1"})
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	if !created || first.Email != "buyer@example.com" || first.Role != domain.RoleUser {
		t.Fatalf("unexpected first user %+v created=%v", first, created)
	}

	second, created, err := repo.FindOrCreate(ctx, domain.Contact{CompanyName: "Other", Email: "buyer@example.com", Phone: "2"})
	if err != nil {
		t.Fatalf("find or create again: %v", err)
	}
	if created || second.ID != first.ID || second.CompanyName != "Acme" {
		t.Fatalf("expected existing user untouched, got %+v created=%v", second, created)
	}
}

func TestPostgres_UpsertContactRefreshes(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)

	first, err := repo.UpsertContact(ctx, domain.Contact{CompanyName: "Acme", Email: "a@example.com", Phone: "1"})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if _, err := pool.Exec(ctx, `UPDATE users SET role = 'ADMIN' WHERE id = $1`, first.ID); err != nil {
		t.Fatalf("promote: %v", err)
	}
	second, err := repo.UpsertContact(ctx, domain.Contact{CompanyName: "Acme Ltd", Email: "A@example.com", Phone: "2"})
	if err != nil {
		t.Fatalf("upsert again: %v", err)
	}
	if second.ID != first.ID || second.CompanyName != "Acme Ltd" || second.Phone != "2" {
		t.Fatalf("expected refreshed contact, got %+v", second)
	}
	if second.Role != domain.RoleAdmin {
		t.Fatalf("checkout must not change role, got %s", second.Role)
	}
}

func TestPostgres_GetAndList(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)
	id := repotest.InsertUser(t, pool, "x@example.com")
	repotest.InsertUser(t, pool, "y@example.com")

	u, err := repo.GetByID(ctx, id)
	if err != nil || u.Email != "x@example.com" {
		t.Fatalf("get by id: %+v %v", u, err)
	}
	if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	page, err := repo.List(ctx, domain.PageRequest{Page: 1, Limit: 1})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if page.Pagination.Total != 2 || page.Pagination.TotalPages != 2 || len(page.Items) != 1 {
		t.Fatalf("unexpected page %+v", page.Pagination)
	}
	if page.Items[0].OrderCount == nil || *page.Items[0].OrderCount != 0 {
		t.Fatalf("expected order count 0")
	}
}

func TestPostgres_EnsureAdminPromotesExisting(t *testing.T) {
	ctx := context.Background()
	pool := repotest.Pool(t)
	repo := NewPostgres(pool, nil)

	buyer, _, err := repo.FindOrCreate(ctx, domain.Contact{CompanyName: "Acme", Email: "ops@example.com", Phone: "1"})
	if err != nil {
		t.Fatalf("find or create: %v", err)
	}
	admin, err := repo.EnsureAdmin(ctx, "OPS@example.com", "Jersey Shop", "hash-1")
	if err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if admin.ID != buyer.ID || admin.Role != domain.RoleAdmin || admin.PasswordHash != "hash-1" {
		t.Fatalf("expected promoted buyer, got %+v", admin)
	}
	if admin.CompanyName != "Acme" {
		t.Fatalf("expected company name kept, got %q", admin.CompanyName)
	}

	again, err := repo.EnsureAdmin(ctx, "ops@example.com", "Jersey Shop", "hash-2")
	if err != nil {
		t.Fatalf("ensure admin again: %v", err)
	}
	if again.PasswordHash != "hash-2" {
		t.Fatalf("expected rotated hash, got %q", again.PasswordHash)
	}
}
