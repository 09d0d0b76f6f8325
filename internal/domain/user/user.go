package user

import (
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/example/pharmacare-storefront/internal/domain/cart"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrInvalidName        = errors.New("name is required")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// User is the remote per-user record. Cart and Favorites are the mirrored
// copies of the device state and may be absent.
type User struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	Password      string          `json:"password,omitempty"`
	Name          string          `json:"name"`
	Phone         string          `json:"phone,omitempty"`
	Address       string          `json:"address,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	LoyaltyPoints int             `json:"loyaltyPoints,omitempty"`
	Cart          []cart.CartItem `json:"cart,omitempty"`
	Favorites     []string        `json:"favorites,omitempty"`
}

// Public returns a copy safe to cache or hand to a UI.
func (u User) Public() User {
	u.Password = ""
	return u
}

// Registration is what a new shopper submits.
type Registration struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone,omitempty"`
	Address  string `json:"address,omitempty"`
}

// Normalize trims fields and lowercases the email.
func (r Registration) Normalize() Registration {
	r.Email = NormalizeEmail(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	return r
}

// Validate checks the fields other than the password, which the session
// layer validates when hashing.
func (r Registration) Validate() error {
	if _, err := mail.ParseAddress(r.Email); err != nil || r.Email == "" {
		return ErrInvalidEmail
	}
	if r.Name == "" {
		return ErrInvalidName
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
