package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hansshop/storefront/internal/models"
	"github.com/hansshop/storefront/internal/service"
)

// PostgresAuthRepository implements user and token persistence against
// a PostgreSQL database.
type PostgresAuthRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresAuthRepository creates a PostgresAuthRepository with the
// given database connection.
func NewPostgresAuthRepository(db *sql.DB) *PostgresAuthRepository {
	return &PostgresAuthRepository{DB: db}
}

// CreateUser stores a new user record with its password hash.
func (r *PostgresAuthRepository) CreateUser(ctx context.Context, user models.User, passwordHash string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, name, email, role, password_hash) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Email, user.Role, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("CreateUser: %w", err)
	}
	return nil
}

// UserByEmail fetches a user and password hash by email.
func (r *PostgresAuthRepository) UserByEmail(ctx context.Context, email string) (*models.User, string, error) {
	var u models.User
	var hash string
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, name, email, role, password_hash FROM users WHERE lower(email) = lower($1)
	`, email).Scan(&u.ID, &u.Name, &u.Email, &u.Role, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", service.ErrNotFound
	}
	if err != nil {
		return nil, "", fmt.Errorf("UserByEmail: %w", err)
	}
	return &u, hash, nil
}

// SaveToken stores a bearer token for a user.
func (r *PostgresAuthRepository) SaveToken(ctx context.Context, token, userID string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO tokens (token, user_id) VALUES ($1, $2)`,
		token, userID,
	)
	if err != nil {
		return fmt.Errorf("SaveToken: %w", err)
	}
	return nil
}

// UserByToken resolves a bearer token to its user.
func (r *PostgresAuthRepository) UserByToken(ctx context.Context, token string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(ctx, `
		SELECT u.id, u.name, u.email, u.role
		  FROM tokens t JOIN users u ON u.id = t.user_id
		 WHERE t.token = $1
	`, token).Scan(&u.ID, &u.Name, &u.Email, &u.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, service.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("UserByToken: %w", err)
	}
	return &u, nil
}
