// Package seed loads demo catalog data and bootstrap accounts.
package seed

import (
	"context"
	"fmt"
	"log/slog"

	"jerseyshop/internal/auth"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
)

type categoryWriter interface {
	Upsert(ctx context.Context, c domain.Category) (*domain.Category, error)
}

type jerseyWriter interface {
	Upsert(ctx context.Context, j domain.Jersey) (*domain.Jersey, error)
}

type userWriter interface {
	FindOrCreate(ctx context.Context, c domain.Contact) (*domain.User, bool, error)
	EnsureAdmin(ctx context.Context, email, companyName, passwordHash string) (*domain.User, error)
}

// Deps are the stores the seed writes through.
type Deps struct {
	Categories categoryWriter
	Jerseys    jerseyWriter
	Users      userWriter
	Logger     *slog.Logger
}

// Options configures the admin account. No admin is created without a password.
type Options struct {
	AdminEmail    string
	AdminPassword string
}

// Result counts what Apply wrote.
type Result struct {
	Categories int
	Jerseys    int
	Users      int
	Admin      bool
}

var categories = []domain.Category{
	{ID: "cricket", Name: "Cricket", Image: "https://images.unsplash.com/photo-1531415074968-036ba1b575da?q=80&w=1000&auto=format&fit=crop", Description: "Premium Cricket Jerseys"},
	{ID: "football", Name: "Football", Image: "https://images.unsplash.com/photo-1517466787929-bc90951d6dbd?q=80&w=1000&auto=format&fit=crop", Description: "International Football Kits"},
	{ID: "volleyball", Name: "Volleyball", Image: "https://images.unsplash.com/photo-1612872087720-bb876e2e67d1?q=80&w=1000&auto=format&fit=crop", Description: "Professional Volleyball Jerseys"},
	{ID: "basketball", Name: "Basketball", Image: "https://images.unsplash.com/photo-1546519638-68e109498ee3?q=80&w=1000&auto=format&fit=crop", Description: "Basketball Association Jerseys"},
}

type jerseySeed struct {
	Name          string
	Player        string
	Price         domain.Cents
	OriginalPrice domain.Cents
	Slug          string
	CategoryID    string
	Rating        float64
	ReviewCount   int
}

var jerseys = []jerseySeed{
	{Name: "India Virat Kohli Jersey", Player: "Virat Kohli", Price: 8999, OriginalPrice: 11000, Slug: "india-kohli", CategoryID: "cricket", Rating: 4.9, ReviewCount: 234},
	{Name: "Argentina Messi Home Kit", Player: "Lionel Messi", Price: 9999, OriginalPrice: 12000, Slug: "argentina-messi", CategoryID: "football", Rating: 4.9, ReviewCount: 342},
	{Name: "USA Volleyball Team Jersey", Player: "Team USA", Price: 7999, OriginalPrice: 9500, Slug: "usa-volleyball", CategoryID: "volleyball", Rating: 4.7, ReviewCount: 89},
	{Name: "Lakers LeBron James Jersey", Player: "LeBron James", Price: 11999, OriginalPrice: 14000, Slug: "lakers-lebron", CategoryID: "basketball", Rating: 4.8, ReviewCount: 156},
}

var demoCustomer = domain.Contact{CompanyName: "John Doe", Email: "customer@test.com", Phone: "0987654321"}

// Apply upserts the demo data. Running it twice leaves the same rows.
func Apply(ctx context.Context, d Deps, opts Options) (Result, error) {
	logger := logging.OrDiscard(d.Logger)
	var res Result

	images := make(map[string]string, len(categories))
	for _, c := range categories {
		if _, err := d.Categories.Upsert(ctx, c); err != nil {
			return res, fmt.Errorf("upsert category %s: %w", c.ID, err)
		}
		images[c.ID] = c.Image
		res.Categories++
	}

	for _, js := range jerseys {
		original := js.OriginalPrice
		j := domain.Jersey{
			Name:          js.Name,
			Player:        js.Player,
			Price:         js.Price,
			OriginalPrice: &original,
			Image:         images[js.CategoryID],
			DownloadURL:   "https://example.com/downloads/" + js.Slug + ".zip",
			Rating:        js.Rating,
			ReviewCount:   js.ReviewCount,
			CategoryID:    js.CategoryID,
		}
		if _, err := d.Jerseys.Upsert(ctx, j); err != nil {
			return res, fmt.Errorf("upsert jersey %q: %w", js.Name, err)
		}
		res.Jerseys++
	}

	if _, _, err := d.Users.FindOrCreate(ctx, demoCustomer); err != nil {
		return res, fmt.Errorf("seed customer: %w", err)
	}
	res.Users++

	if opts.AdminPassword == "" {
		logger.Warn("seed: ADMIN_PASSWORD not set, skipping admin account")
		return res, nil
	}
	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return res, fmt.Errorf("hash admin password: %w", err)
	}
	admin, err := d.Users.EnsureAdmin(ctx, opts.AdminEmail, "Jersey Shop", hash)
	if err != nil {
		return res, fmt.Errorf("seed admin: %w", err)
	}
	logger.Info("seed: admin ready", slog.String("email", admin.Email))
	res.Admin = true
	return res, nil
}
