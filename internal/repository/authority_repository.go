package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

// AuthorityRepository provides access to authority profiles in the
// authority store and implements the role profile store capability.
type AuthorityRepository struct {
	db *sqlx.DB
}

// NewAuthorityRepository creates the repository.
func NewAuthorityRepository(db *sqlx.DB) *AuthorityRepository {
	return &AuthorityRepository{db: db}
}

// Role identifies which profile variant this store owns.
func (r *AuthorityRepository) Role() models.Role {
	return models.RoleAuthority
}

// CreateProfile inserts an authority profile referencing the credential id.
// Position defaults to Staff until the owner edits it.
func (r *AuthorityRepository) CreateProfile(ctx context.Context, userID int64, fields models.ProfileFields) (*models.Profile, error) {
	const query = `INSERT INTO authorities (user_id, first_name, last_name, phone)
VALUES ($1, $2, $3, $4)
RETURNING id`
	var localID int64
	err := r.db.QueryRowxContext(ctx, query, userID, fields.FirstName, fields.LastName, fields.Phone).Scan(&localID)
	if err != nil {
		return nil, fmt.Errorf("create authority profile: %w", err)
	}
	return &models.Profile{
		LocalID:   localID,
		UserID:    userID,
		Role:      models.RoleAuthority,
		FirstName: fields.FirstName,
		LastName:  fields.LastName,
		Phone:     fields.Phone,
	}, nil
}

// FindByCredentialID resolves a credential id to its authority profile view.
func (r *AuthorityRepository) FindByCredentialID(ctx context.Context, userID int64) (*models.Profile, error) {
	authority, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return authorityProfile(authority), nil
}

// FindByLocalID resolves an authority-store local id to its profile view.
func (r *AuthorityRepository) FindByLocalID(ctx context.Context, localID int64) (*models.Profile, error) {
	const query = `SELECT id, user_id, first_name, last_name, position, phone, created_at FROM authorities WHERE id = $1 LIMIT 1`
	var authority models.Authority
	if err := r.db.GetContext(ctx, &authority, query, localID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find authority by local id: %w", err)
	}
	return authorityProfile(&authority), nil
}

// DeleteByCredentialID removes the profile linked to a credential.
func (r *AuthorityRepository) DeleteByCredentialID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM authorities WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete authority profile: %w", err)
	}
	return nil
}

// Count returns the number of authority profiles.
func (r *AuthorityRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM authorities`); err != nil {
		return 0, fmt.Errorf("count authorities: %w", err)
	}
	return n, nil
}

// ListCredentialIDs returns every user_id referenced by an authority
// profile.
func (r *AuthorityRepository) ListCredentialIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM authorities`); err != nil {
		return nil, fmt.Errorf("list authority credential ids: %w", err)
	}
	return ids, nil
}

// GetByUserID returns the full authority row for a credential id.
func (r *AuthorityRepository) GetByUserID(ctx context.Context, userID int64) (*models.Authority, error) {
	const query = `SELECT id, user_id, first_name, last_name, position, phone, created_at FROM authorities WHERE user_id = $1 LIMIT 1`
	var authority models.Authority
	if err := r.db.GetContext(ctx, &authority, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find authority by user id: %w", err)
	}
	return &authority, nil
}

// ListAll returns every authority profile ordered by name.
func (r *AuthorityRepository) ListAll(ctx context.Context) ([]models.Authority, error) {
	const query = `SELECT id, user_id, first_name, last_name, position, phone, created_at
FROM authorities ORDER BY last_name, first_name`
	var authorities []models.Authority
	if err := r.db.SelectContext(ctx, &authorities, query); err != nil {
		return nil, fmt.Errorf("list authorities: %w", err)
	}
	return authorities, nil
}

// UpdateFields applies the owner-editable profile fields.
func (r *AuthorityRepository) UpdateFields(ctx context.Context, localID int64, patch models.AuthorityProfilePatch) error {
	const query = `UPDATE authorities SET position = $2, phone = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, localID, patch.Position, patch.Phone)
	if err != nil {
		return fmt.Errorf("update authority profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func authorityProfile(a *models.Authority) *models.Profile {
	return &models.Profile{
		LocalID:   a.ID,
		UserID:    a.UserID,
		Role:      models.RoleAuthority,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
	}
}
