// Package identity registers buyers, signs in administrators and resolves
// bearer tokens to callers.
package identity

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"jerseyshop/internal/auth"
	"jerseyshop/internal/domain"
	"jerseyshop/internal/logging"
)

type userRepo interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	FindOrCreate(ctx context.Context, c domain.Contact) (*domain.User, bool, error)
}

type orderLister interface {
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
}

type tokenIssuer interface {
	Issue(u domain.User) (string, error)
	Parse(raw string) (auth.Identity, error)
}

type Service struct {
	users  userRepo
	orders orderLister
	tokens tokenIssuer
	logger *slog.Logger
}

func New(users userRepo, orders orderLister, tokens tokenIssuer, logger *slog.Logger) *Service {
	return &Service{users: users, orders: orders, tokens: tokens, logger: logging.OrDiscard(logger)}
}

// RegisterInput is the checkout contact form.
type RegisterInput struct {
	CompanyName string `json:"companyName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
}

// Session is a user plus the bearer token that identifies them.
type Session struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token"`
}

// Register finds the user for the email or creates one. Existing users are
// returned as stored. The boolean reports whether a user was created.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, bool, error) {
	const op = "identity.register"
	contact, err := domain.NormalizeContact(op, domain.Contact{CompanyName: in.CompanyName, Email: in.Email, Phone: in.Phone})
	if err != nil {
		return nil, false, err
	}
	u, created, err := s.users.FindOrCreate(ctx, contact)
	if err != nil {
		return nil, false, domain.Internal(err, op)
	}
	token, err := s.tokens.Issue(*u)
	if err != nil {
		return nil, false, domain.Internal(err, op)
	}
	if created {
		s.logger.Info("user registered", slog.String("user_id", u.ID))
	}
	return &Session{User: u, Token: token}, created, nil
}

// AdminLogin checks an administrator's password.
func (s *Service) AdminLogin(ctx context.Context, email, password string) (*Session, error) {
	const op = "identity.admin_login"
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.Invalid(op, "Email and password are required")
	}
	invalid := domain.Unauthorized(op, "Invalid credentials")

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, invalid
		}
		return nil, domain.Internal(err, op)
	}
	if !u.IsAdmin() {
		s.logger.Warn("admin login by non-admin", slog.String("user_id", u.ID))
		return nil, invalid
	}
	if err := auth.VerifyPassword(password, u.PasswordHash); err != nil {
		return nil, invalid
	}
	token, err := s.tokens.Issue(*u)
	if err != nil {
		return nil, domain.Internal(err, op)
	}
	s.logger.Info("admin signed in", slog.String("user_id", u.ID))
	return &Session{User: u, Token: token}, nil
}

// Authenticate resolves a bearer token to the caller. The role is read from
// the stored user so demotions apply to tokens already issued.
func (s *Service) Authenticate(ctx context.Context, token string) (auth.Identity, error) {
	const op = "identity.authenticate"
	if strings.TrimSpace(token) == "" {
		return auth.Identity{}, domain.Unauthorized(op, "Authentication required")
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return auth.Identity{}, domain.Unauthorized(op, "Invalid or expired token")
	}
	u, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return auth.Identity{}, domain.Unauthorized(op, "User not found")
		}
		return auth.Identity{}, domain.Internal(err, op)
	}
	return auth.Identity{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}

// GetUser returns a user with their orders. Callers may read themselves;
// administrators may read anyone.
func (s *Service) GetUser(ctx context.Context, caller auth.Identity, id string) (*domain.User, error) {
	const op = "identity.get_user"
	if caller.UserID != id && !caller.IsAdmin() {
		return nil, domain.Forbidden(op, "Access denied")
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.NotFound(op, "User not found")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NotFound(op, "User not found")
		}
		return nil, domain.Internal(err, op)
	}
	orders, err := s.orders.ListByUser(ctx, u.ID)
	if err != nil {
		return nil, domain.Internal(err, op)
	}
	u.Orders = make([]domain.Order, len(orders))
	for i, o := range orders {
		o.User = nil
		u.Orders[i] = o.Projected()
	}
	return u, nil
}

// Me returns the caller's own profile.
func (s *Service) Me(ctx context.Context, caller auth.Identity) (*domain.User, error) {
	return s.GetUser(ctx, caller, caller.UserID)
}
