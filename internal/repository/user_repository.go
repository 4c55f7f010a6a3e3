package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/airquality-service/internal/domain"
)

// UserRepository defines directory access for accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ListTenantUsers(ctx context.Context) ([]domain.TenantUser, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (nome, sobrenome, email, password_hash, perfil, hubspot)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		user.Nome,
		user.Sobrenome,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.TenantID,
	).Scan(&user.ID)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, nome, sobrenome, email, password_hash, perfil, hubspot
        FROM users WHERE email=$1`

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Nome,
		&user.Sobrenome,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.TenantID,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListTenantUsers returns the roster of accounts linked to a tenant.
// Accounts without a tenant id are still being provisioned and are omitted.
func (r *userRepository) ListTenantUsers(ctx context.Context) ([]domain.TenantUser, error) {
	const query = `
        SELECT id, nome, sobrenome, email, hubspot
        FROM users WHERE hubspot IS NOT NULL
        ORDER BY id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TenantUser
	for rows.Next() {
		var user domain.TenantUser
		if err := rows.Scan(
			&user.ID,
			&user.Nome,
			&user.Sobrenome,
			&user.Email,
			&user.TenantID,
		); err != nil {
			return nil, err
		}
		result = append(result, user)
	}
	return result, rows.Err()
}
