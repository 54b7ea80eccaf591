package user

import (
	"context"

	"jerseyshop/internal/domain"
)

// Repository persists and fetches users. Emails are stored lower-cased.
type Repository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindOrCreate returns the user for c.Email, inserting it with role USER
	// when absent. Existing rows are left untouched.
	FindOrCreate(ctx context.Context, c domain.Contact) (*domain.User, bool, error)
	// UpsertContact inserts or refreshes company name and phone for c.Email.
	UpsertContact(ctx context.Context, c domain.Contact) (*domain.User, error)
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.User], error)
	// EnsureAdmin creates or promotes the account for email to ADMIN with the
	// given bcrypt hash.
	EnsureAdmin(ctx context.Context, email, companyName, passwordHash string) (*domain.User, error)
}
