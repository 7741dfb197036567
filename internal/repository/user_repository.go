package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

const pqUniqueViolation = "23505"

// UserRepository provides access to the credential store (public database).
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a credential row. The store's unique indexes are the only
// duplicate guard; a violation is mapped to the matching typed error by
// constraint name so concurrent losers fail cleanly.
func (r *UserRepository) Create(ctx context.Context, user *models.PublicUser) error {
	const query = `INSERT INTO public_users (username, email, password_hash, role, active)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`
	err := r.db.QueryRowxContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.Role, user.Active,
	).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			if strings.Contains(pqErr.Constraint, "email") {
				return appErrors.ErrDuplicateEmail
			}
			return appErrors.ErrDuplicateUsername
		}
		return fmt.Errorf("create credential: %w", err)
	}
	return nil
}

// FindByUsername returns a credential by username (case-sensitive).
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.PublicUser, error) {
	const query = `SELECT id, username, email, password_hash, role, active, created_at FROM public_users WHERE username = $1 LIMIT 1`
	var user models.PublicUser
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find credential by username: %w", err)
	}
	return &user, nil
}

// FindByID returns a credential by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id int64) (*models.PublicUser, error) {
	const query = `SELECT id, username, email, password_hash, role, active, created_at FROM public_users WHERE id = $1 LIMIT 1`
	var user models.PublicUser
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find credential by id: %w", err)
	}
	return &user, nil
}

// Delete hard-deletes a credential row. Only the registration compensation
// path uses this; account deactivation elsewhere flips the active flag.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM public_users WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}

// List returns credentials matching the filter, newest first.
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter) ([]models.PublicUser, error) {
	query := `SELECT id, username, email, password_hash, role, active, created_at FROM public_users WHERE 1=1`
	var args []interface{}

	if filter.Role != nil {
		args = append(args, *filter.Role)
		query += fmt.Sprintf(" AND role = $%d", len(args))
	}
	if filter.Active != nil {
		args = append(args, *filter.Active)
		query += fmt.Sprintf(" AND active = $%d", len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		query += fmt.Sprintf(" AND (LOWER(username) LIKE $%d OR LOWER(email) LIKE $%d)", len(args), len(args))
	}
	query += " ORDER BY created_at DESC"

	var users []models.PublicUser
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	return users, nil
}
