package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

// StudentRepository provides access to student profiles in the student
// store. It implements the role profile store capability for the identity
// layer alongside the richer student-specific queries.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Role identifies which profile variant this store owns.
func (r *StudentRepository) Role() models.Role {
	return models.RoleStudent
}

// CreateProfile inserts a student profile referencing the credential id.
// The display code is derived from the credential id here, once, and never
// recomputed. All other fields start as placeholders.
func (r *StudentRepository) CreateProfile(ctx context.Context, userID int64, fields models.ProfileFields) (*models.Profile, error) {
	const query = `INSERT INTO students (user_id, student_code, first_name, last_name, phone)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	code := models.DisplayCode(models.RoleStudent, userID)
	var localID int64
	err := r.db.QueryRowxContext(ctx, query, userID, code, fields.FirstName, fields.LastName, fields.Phone).Scan(&localID)
	if err != nil {
		return nil, fmt.Errorf("create student profile: %w", err)
	}
	return &models.Profile{
		LocalID:     localID,
		UserID:      userID,
		Role:        models.RoleStudent,
		DisplayCode: code,
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		Phone:       fields.Phone,
	}, nil
}

// FindByCredentialID resolves a credential id to its student profile view.
func (r *StudentRepository) FindByCredentialID(ctx context.Context, userID int64) (*models.Profile, error) {
	student, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return studentProfile(student), nil
}

// FindByLocalID resolves a student-store local id to its profile view.
func (r *StudentRepository) FindByLocalID(ctx context.Context, localID int64) (*models.Profile, error) {
	const query = `SELECT id, user_id, student_code, first_name, last_name, grade, section, phone, address, guardian_name, guardian_phone, created_at
FROM students WHERE id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, localID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by local id: %w", err)
	}
	return studentProfile(&student), nil
}

// DeleteByCredentialID removes the profile linked to a credential. Used by
// reconciliation tooling; registration never deletes profiles.
func (r *StudentRepository) DeleteByCredentialID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete student profile: %w", err)
	}
	return nil
}

// Count returns the number of student profiles.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM students`); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return n, nil
}

// ListCredentialIDs returns every user_id referenced by a student profile.
// The reconciliation pass joins this in application code against the
// credential store, since no SQL join can span the two databases.
func (r *StudentRepository) ListCredentialIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM students`); err != nil {
		return nil, fmt.Errorf("list student credential ids: %w", err)
	}
	return ids, nil
}

// GetByUserID returns the full student row for a credential id.
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	const query = `SELECT id, user_id, student_code, first_name, last_name, grade, section, phone, address, guardian_name, guardian_phone, created_at
FROM students WHERE user_id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by user id: %w", err)
	}
	return &student, nil
}

// GetByLocalID returns the full student row for a student-store id.
func (r *StudentRepository) GetByLocalID(ctx context.Context, localID int64) (*models.Student, error) {
	const query = `SELECT id, user_id, student_code, first_name, last_name, grade, section, phone, address, guardian_name, guardian_phone, created_at
FROM students WHERE id = $1 LIMIT 1`
	var student models.Student
	if err := r.db.GetContext(ctx, &student, query, localID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find student by id: %w", err)
	}
	return &student, nil
}

// ListAll returns every student profile ordered by code.
func (r *StudentRepository) ListAll(ctx context.Context) ([]models.Student, error) {
	const query = `SELECT id, user_id, student_code, first_name, last_name, grade, section, phone, address, guardian_name, guardian_phone, created_at
FROM students ORDER BY student_code`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// UpdateFields applies the owner-editable profile fields.
func (r *StudentRepository) UpdateFields(ctx context.Context, localID int64, patch models.StudentProfilePatch) error {
	const query = `UPDATE students SET grade = $2, section = $3, phone = $4, address = $5, guardian_name = $6, guardian_phone = $7 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, localID, patch.Grade, patch.Section, patch.Phone, patch.Address, patch.GuardianName, patch.GuardianPhone)
	if err != nil {
		return fmt.Errorf("update student profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func studentProfile(s *models.Student) *models.Profile {
	return &models.Profile{
		LocalID:     s.ID,
		UserID:      s.UserID,
		Role:        models.RoleStudent,
		DisplayCode: s.StudentCode,
		FirstName:   s.FirstName,
		LastName:    s.LastName,
		Phone:       s.Phone,
	}
}
