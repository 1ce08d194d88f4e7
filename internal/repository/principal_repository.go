package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spec-kit/admin-portal/internal/auth"
	"github.com/spec-kit/admin-portal/internal/domain"
)

// ErrPrincipalNotFound is returned when no admin user matches.
var ErrPrincipalNotFound = errors.New("admin user not found")

// PrincipalLookup resolves admin users by login email.
type PrincipalLookup interface {
	FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error)
}

// StaticUser is a seed entry with a plaintext password.
type StaticUser struct {
	ID       string
	Email    string
	Password string
	Name     string
	Role     domain.Role
}

// DemoUsers are the built-in operator accounts.
func DemoUsers() []StaticUser {
	return []StaticUser{
		{ID: "1", Email: "admin@angelsense.com", Password: "admin123", Name: "Admin User", Role: domain.RoleAdmin},
		{ID: "2", Email: "support@angelsense.com", Password: "support123", Name: "Support Agent", Role: domain.RoleSupport},
		{ID: "3", Email: "manager@angelsense.com", Password: "manager123", Name: "Support Manager", Role: domain.RoleManager},
	}
}

type staticPrincipalStore struct {
	byEmail map[string]domain.AdminUser
}

// NewStaticPrincipalStore hashes the seed passwords once and serves them from memory.
func NewStaticPrincipalStore(users []StaticUser, bcryptCost int) (PrincipalLookup, error) {
	store := &staticPrincipalStore{byEmail: make(map[string]domain.AdminUser, len(users))}
	for _, u := range users {
		if !u.Role.Valid() {
			return nil, fmt.Errorf("seed user %s: unknown role %q", u.Email, u.Role)
		}
		hash, err := auth.HashPassword(u.Password, bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash seed user %s: %w", u.Email, err)
		}
		store.byEmail[normalizeEmail(u.Email)] = domain.AdminUser{
			ID:           u.ID,
			Email:        u.Email,
			PasswordHash: hash,
			Name:         u.Name,
			Role:         u.Role,
			Active:       true,
		}
	}
	return store, nil
}

func (s *staticPrincipalStore) FindByEmail(_ context.Context, email string) (*domain.AdminUser, error) {
	user, ok := s.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, ErrPrincipalNotFound
	}
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
