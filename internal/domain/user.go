package domain

import (
	"net/mail"
	"strings"
	"time"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is a buyer or an administrator, identified by a unique email.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	CompanyName  string    `json:"companyName"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	PasswordHash string    `json:"-"`
	OrderCount   *int      `json:"orderCount,omitempty"`
	Orders       []Order   `json:"orders,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Contact is the checkout identity supplied by a buyer.
type Contact struct {
	CompanyName string
	Email       string
	Phone       string
}

// NormalizeContact trims c, lower-cases the email and checks that every field
// is present and the email parses.
func NormalizeContact(op string, c Contact) (Contact, error) {
	c = Contact{
		CompanyName: strings.TrimSpace(c.CompanyName),
		Email:       strings.ToLower(strings.TrimSpace(c.Email)),
		Phone:       strings.TrimSpace(c.Phone),
	}
	if c.CompanyName == "" || c.Email == "" || c.Phone == "" {
		return c, Invalid(op, "Company name, email, and phone are required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return c, Invalid(op, "A valid email address is required")
	}
	return c, nil
}
