package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

// FeeRepository persists the append-only fee schedule in the authority
// store. Entries are never edited; a new active row supersedes an old one.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository creates the repository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// Create inserts a fee entry; entries start active.
func (r *FeeRepository) Create(ctx context.Context, fee *models.FeeEntry) error {
	if fee.ID == "" {
		fee.ID = uuid.NewString()
	}
	if fee.CreatedAt.IsZero() {
		fee.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO fee_structure (id, grade, fee_type, amount, academic_year, active, created_by, created_at)
VALUES (:id, :grade, :fee_type, :amount, :academic_year, :active, :created_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("create fee entry: %w", err)
	}
	return nil
}

// ListActive returns the active fee schedule ordered by grade.
func (r *FeeRepository) ListActive(ctx context.Context) ([]models.FeeEntry, error) {
	const query = `SELECT id, grade, fee_type, amount, academic_year, active, created_by, created_at
FROM fee_structure WHERE active = TRUE ORDER BY grade, fee_type`
	var fees []models.FeeEntry
	if err := r.db.SelectContext(ctx, &fees, query); err != nil {
		return nil, fmt.Errorf("list active fees: %w", err)
	}
	return fees, nil
}

// ListAll returns every fee entry newest first.
func (r *FeeRepository) ListAll(ctx context.Context) ([]models.FeeEntry, error) {
	const query = `SELECT id, grade, fee_type, amount, academic_year, active, created_by, created_at
FROM fee_structure ORDER BY created_at DESC`
	var fees []models.FeeEntry
	if err := r.db.SelectContext(ctx, &fees, query); err != nil {
		return nil, fmt.Errorf("list fees: %w", err)
	}
	return fees, nil
}
