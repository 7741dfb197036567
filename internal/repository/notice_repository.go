package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

// NoticeRepository persists school notices in the authority store.
type NoticeRepository struct {
	db *sqlx.DB
}

// NewNoticeRepository creates the repository.
func NewNoticeRepository(db *sqlx.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

// Create inserts a new notice; notices start active.
func (r *NoticeRepository) Create(ctx context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO school_notices (id, title, content, priority, target_audience, active, created_by, created_at, expires_at)
VALUES (:id, :title, :content, :priority, :target_audience, :active, :created_by, :created_at, :expires_at)`
	if _, err := r.db.NamedExecContext(ctx, query, notice); err != nil {
		return fmt.Errorf("create notice: %w", err)
	}
	return nil
}

// GetByID returns a notice by identifier.
func (r *NoticeRepository) GetByID(ctx context.Context, id string) (*models.Notice, error) {
	const query = `SELECT id, title, content, priority, target_audience, active, created_by, created_at, expires_at
FROM school_notices WHERE id = $1 LIMIT 1`
	var notice models.Notice
	if err := r.db.GetContext(ctx, &notice, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find notice: %w", err)
	}
	return &notice, nil
}

// Toggle flips the active flag. Notices are never hard-deleted.
func (r *NoticeRepository) Toggle(ctx context.Context, id string) error {
	const query = `UPDATE school_notices SET active = NOT active WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("toggle notice: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAll returns every notice newest first, for the authority screens.
func (r *NoticeRepository) ListAll(ctx context.Context) ([]models.Notice, error) {
	const query = `SELECT id, title, content, priority, target_audience, active, created_by, created_at, expires_at
FROM school_notices ORDER BY created_at DESC`
	var notices []models.Notice
	if err := r.db.SelectContext(ctx, &notices, query); err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	return notices, nil
}

// ListForAudience returns active, unexpired notices visible to the given
// audiences, newest first. Expiry is enforced here at read time; the
// stored expires_at is never mutated.
func (r *NoticeRepository) ListForAudience(ctx context.Context, audiences []models.NoticeAudience, limit int) ([]models.Notice, error) {
	values := make([]string, len(audiences))
	for i, a := range audiences {
		values[i] = string(a)
	}
	const query = `SELECT id, title, content, priority, target_audience, active, created_by, created_at, expires_at
FROM school_notices
WHERE active = TRUE
  AND target_audience = ANY($1)
  AND (expires_at IS NULL OR expires_at > NOW())
ORDER BY created_at DESC
LIMIT $2`
	var notices []models.Notice
	if err := r.db.SelectContext(ctx, &notices, query, pq.Array(values), limit); err != nil {
		return nil, fmt.Errorf("list notices for audience: %w", err)
	}
	return notices, nil
}

// CountActive returns the number of active notices.
func (r *NoticeRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM school_notices WHERE active = TRUE`); err != nil {
		return 0, fmt.Errorf("count active notices: %w", err)
	}
	return n, nil
}

// ListByCreator returns the latest notices created by an authority
// credential id.
func (r *NoticeRepository) ListByCreator(ctx context.Context, createdBy int64, limit int) ([]models.Notice, error) {
	const query = `SELECT id, title, content, priority, target_audience, active, created_by, created_at, expires_at
FROM school_notices WHERE created_by = $1 ORDER BY created_at DESC LIMIT $2`
	var notices []models.Notice
	if err := r.db.SelectContext(ctx, &notices, query, createdBy, limit); err != nil {
		return nil, fmt.Errorf("list notices by creator: %w", err)
	}
	return notices, nil
}
