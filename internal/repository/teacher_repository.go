package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

// TeacherRepository provides access to teacher profiles in the teacher
// store and implements the role profile store capability.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates the repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Role identifies which profile variant this store owns.
func (r *TeacherRepository) Role() models.Role {
	return models.RoleTeacher
}

// CreateProfile inserts a teacher profile referencing the credential id.
func (r *TeacherRepository) CreateProfile(ctx context.Context, userID int64, fields models.ProfileFields) (*models.Profile, error) {
	const query = `INSERT INTO teachers (user_id, teacher_code, first_name, last_name, phone)
VALUES ($1, $2, $3, $4, $5)
RETURNING id`
	code := models.DisplayCode(models.RoleTeacher, userID)
	var localID int64
	err := r.db.QueryRowxContext(ctx, query, userID, code, fields.FirstName, fields.LastName, fields.Phone).Scan(&localID)
	if err != nil {
		return nil, fmt.Errorf("create teacher profile: %w", err)
	}
	return &models.Profile{
		LocalID:     localID,
		UserID:      userID,
		Role:        models.RoleTeacher,
		DisplayCode: code,
		FirstName:   fields.FirstName,
		LastName:    fields.LastName,
		Phone:       fields.Phone,
	}, nil
}

// FindByCredentialID resolves a credential id to its teacher profile view.
func (r *TeacherRepository) FindByCredentialID(ctx context.Context, userID int64) (*models.Profile, error) {
	teacher, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return teacherProfile(teacher), nil
}

// FindByLocalID resolves a teacher-store local id to its profile view.
func (r *TeacherRepository) FindByLocalID(ctx context.Context, localID int64) (*models.Profile, error) {
	const query = `SELECT id, user_id, teacher_code, first_name, last_name, subjects, phone, qualification, experience_years, created_at
FROM teachers WHERE id = $1 LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, localID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by local id: %w", err)
	}
	return teacherProfile(&teacher), nil
}

// DeleteByCredentialID removes the profile linked to a credential.
func (r *TeacherRepository) DeleteByCredentialID(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM teachers WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete teacher profile: %w", err)
	}
	return nil
}

// Count returns the number of teacher profiles.
func (r *TeacherRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM teachers`); err != nil {
		return 0, fmt.Errorf("count teachers: %w", err)
	}
	return n, nil
}

// ListCredentialIDs returns every user_id referenced by a teacher profile.
func (r *TeacherRepository) ListCredentialIDs(ctx context.Context) ([]int64, error) {
	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, `SELECT user_id FROM teachers`); err != nil {
		return nil, fmt.Errorf("list teacher credential ids: %w", err)
	}
	return ids, nil
}

// GetByUserID returns the full teacher row for a credential id.
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	const query = `SELECT id, user_id, teacher_code, first_name, last_name, subjects, phone, qualification, experience_years, created_at
FROM teachers WHERE user_id = $1 LIMIT 1`
	var teacher models.Teacher
	if err := r.db.GetContext(ctx, &teacher, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find teacher by user id: %w", err)
	}
	return &teacher, nil
}

// ListAll returns every teacher profile ordered by code.
func (r *TeacherRepository) ListAll(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, user_id, teacher_code, first_name, last_name, subjects, phone, qualification, experience_years, created_at
FROM teachers ORDER BY teacher_code`
	var teachers []models.Teacher
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// UpdateFields applies the owner-editable profile fields.
func (r *TeacherRepository) UpdateFields(ctx context.Context, localID int64, patch models.TeacherProfilePatch) error {
	const query = `UPDATE teachers SET subjects = $2, phone = $3, qualification = $4, experience_years = $5 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, localID, patch.Subjects, patch.Phone, patch.Qualification, patch.ExperienceYears)
	if err != nil {
		return fmt.Errorf("update teacher profile: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// AddSubject assigns a subject to a teacher inside the teacher store.
func (r *TeacherRepository) AddSubject(ctx context.Context, subject *models.TeacherSubject) error {
	if subject.ID == "" {
		subject.ID = uuid.NewString()
	}
	const query = `INSERT INTO teacher_subjects (id, teacher_id, subject_name, grade, section)
VALUES (:id, :teacher_id, :subject_name, :grade, :section)`
	if _, err := r.db.NamedExecContext(ctx, query, subject); err != nil {
		return fmt.Errorf("add teacher subject: %w", err)
	}
	return nil
}

// ListSubjects returns the subject assignments for a teacher.
func (r *TeacherRepository) ListSubjects(ctx context.Context, teacherID int64) ([]models.TeacherSubject, error) {
	const query = `SELECT id, teacher_id, subject_name, grade, section FROM teacher_subjects WHERE teacher_id = $1 ORDER BY subject_name`
	var subjects []models.TeacherSubject
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher subjects: %w", err)
	}
	return subjects, nil
}

func teacherProfile(t *models.Teacher) *models.Profile {
	return &models.Profile{
		LocalID:     t.ID,
		UserID:      t.UserID,
		Role:        models.RoleTeacher,
		DisplayCode: t.TeacherCode,
		FirstName:   t.FirstName,
		LastName:    t.LastName,
		Phone:       t.Phone,
	}
}
