package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/pharmacare-storefront/internal/domain/user"
	"github.com/example/pharmacare-storefront/internal/infrastructure/localstore"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrNotAuthenticated = errors.New("not signed in")

// UserDirectory is the remote user record service.
type UserDirectory interface {
	FindUsersByEmail(ctx context.Context, email string) ([]user.User, error)
	CreateUser(ctx context.Context, u user.User) (user.User, error)
}

// Session is the signed-in user with the token that proves it.
type Session struct {
	User      user.User `json:"user"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Manager owns the token and user keys of the local store.
type Manager struct {
	users  UserDirectory
	local  localstore.Store
	jwt    *JWTService
	logger zerolog.Logger
}

func NewManager(users UserDirectory, local localstore.Store, jwt *JWTService, logger zerolog.Logger) *Manager {
	return &Manager{
		users:  users,
		local:  local,
		jwt:    jwt,
		logger: logger,
	}
}

// Register creates the remote user record and signs the new user in.
func (m *Manager) Register(ctx context.Context, reg user.Registration) (Session, error) {
	reg = reg.Normalize()
	if err := reg.Validate(); err != nil {
		return Session{}, err
	}
	hash, err := HashPassword(reg.Password)
	if err != nil {
		return Session{}, err
	}

	existing, err := m.users.FindUsersByEmail(ctx, reg.Email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up email: %w", err)
	}
	if len(existing) > 0 {
		return Session{}, user.ErrEmailTaken
	}

	created, err := m.users.CreateUser(ctx, user.User{
		ID:        uuid.New().String(),
		Email:     reg.Email,
		Password:  hash,
		Name:      reg.Name,
		Phone:     reg.Phone,
		Address:   reg.Address,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return Session{}, fmt.Errorf("failed to create user: %w", err)
	}

	m.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return m.start(ctx, created)
}

// Login checks the credentials against the remote user record.
func (m *Manager) Login(ctx context.Context, email, password string) (Session, error) {
	email = user.NormalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, user.ErrInvalidCredentials
	}

	candidates, err := m.users.FindUsersByEmail(ctx, email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to look up email: %w", err)
	}
	for _, u := range candidates {
		if user.NormalizeEmail(u.Email) == email && CheckPassword(password, u.Password) {
			m.logger.Info().Str("user_id", u.ID).Msg("user signed in")
			return m.start(ctx, u)
		}
	}
	return Session{}, user.ErrInvalidCredentials
}

// Logout forgets the token and the cached user.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.local.Remove(ctx, localstore.KeyToken); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	if err := m.local.Remove(ctx, localstore.KeyUser); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	return nil
}

// Current returns the stored session if its token is still valid.
func (m *Manager) Current(ctx context.Context) (Session, error) {
	token, ok, err := m.local.Get(ctx, localstore.KeyToken)
	if err != nil {
		return Session{}, fmt.Errorf("failed to read token: %w", err)
	}
	if !ok || token == "" {
		return Session{}, ErrNotAuthenticated
	}

	claims, err := m.jwt.ValidateToken(token)
	if err != nil {
		return Session{}, err
	}

	u, ok, err := localstore.GetJSON[user.User](ctx, m.local, localstore.KeyUser)
	if err != nil || !ok || u.ID != claims.UserID {
		// the token alone still identifies the user
		u = user.User{ID: claims.UserID, Email: claims.Email}
	}

	return Session{User: u, Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// UserID reports the signed-in user, if any.
func (m *Manager) UserID(ctx context.Context) (string, bool) {
	s, err := m.Current(ctx)
	if err != nil {
		if !errors.Is(err, ErrNotAuthenticated) {
			m.logger.Debug().Err(err).Msg("no usable session")
		}
		return "", false
	}
	return s.User.ID, true
}

func (m *Manager) start(ctx context.Context, u user.User) (Session, error) {
	token, expiresAt, err := m.jwt.GenerateToken(u.ID, u.Email)
	if err != nil {
		return Session{}, fmt.Errorf("failed to generate token: %w", err)
	}

	pub := u.Public()
	if err := localstore.SetJSON(ctx, m.local, localstore.KeyUser, pub); err != nil {
		return Session{}, fmt.Errorf("failed to store user: %w", err)
	}
	if err := m.local.Set(ctx, localstore.KeyToken, token); err != nil {
		return Session{}, fmt.Errorf("failed to store token: %w", err)
	}

	return Session{User: pub, Token: token, ExpiresAt: expiresAt}, nil
}
