package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/admin-portal/internal/domain"
)

type postgresPrincipalStore struct {
	pool *pgxpool.Pool
}

// NewPostgresPrincipalStore returns a lookup backed by the admin_users table.
func NewPostgresPrincipalStore(pool *pgxpool.Pool) PrincipalLookup {
	return &postgresPrincipalStore{pool: pool}
}

func (r *postgresPrincipalStore) FindByEmail(ctx context.Context, email string) (*domain.AdminUser, error) {
	const query = `
        SELECT id, email, password_hash, name, role, active_flag, created_at, updated_at
        FROM admin_users WHERE lower(email)=$1`

	var user domain.AdminUser
	if err := r.pool.QueryRow(ctx, query, normalizeEmail(email)).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Name,
		&user.Role,
		&user.Active,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, err
	}
	return &user, nil
}
