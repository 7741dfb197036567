package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

// AcademicRepository persists the append-only academic record logs in the
// student store. Records are never updated; superseding an entry means
// appending a new one.
type AcademicRepository struct {
	db *sqlx.DB
}

// NewAcademicRepository creates the repository.
func NewAcademicRepository(db *sqlx.DB) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// CreateMark appends a marks entry. There is no uniqueness across
// student/subject/date; presentation decides which entry wins.
func (r *AcademicRepository) CreateMark(ctx context.Context, mark *models.Mark) error {
	if mark.ID == "" {
		mark.ID = uuid.NewString()
	}
	if mark.CreatedAt.IsZero() {
		mark.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO student_marks (id, student_id, subject, exam_type, marks_obtained, total_marks, grade, exam_date, recorded_by, created_at)
VALUES (:id, :student_id, :subject, :exam_type, :marks_obtained, :total_marks, :grade, :exam_date, :recorded_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, mark); err != nil {
		return fmt.Errorf("create mark: %w", err)
	}
	return nil
}

// CreateAttendance appends an attendance entry.
func (r *AcademicRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID == "" {
		attendance.ID = uuid.NewString()
	}
	if attendance.CreatedAt.IsZero() {
		attendance.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO student_attendance (id, student_id, date, status, subject, recorded_by, created_at)
VALUES (:id, :student_id, :date, :status, :subject, :recorded_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, attendance); err != nil {
		return fmt.Errorf("create attendance: %w", err)
	}
	return nil
}

// CreateAssignment appends an assignment entry.
func (r *AcademicRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO student_assignments (id, student_id, title, subject, assigned_date, due_date, status, marks, recorded_by, created_at)
VALUES (:id, :student_id, :title, :subject, :assigned_date, :due_date, :status, :marks, :recorded_by, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// ListMarksForStudent returns marks newest first. The ordering is a
// usability choice, not a storage guarantee.
func (r *AcademicRepository) ListMarksForStudent(ctx context.Context, studentID int64) ([]models.Mark, error) {
	const query = `SELECT id, student_id, subject, exam_type, marks_obtained, total_marks, grade, exam_date, recorded_by, created_at
FROM student_marks WHERE student_id = $1 ORDER BY created_at DESC`
	var marks []models.Mark
	if err := r.db.SelectContext(ctx, &marks, query, studentID); err != nil {
		return nil, fmt.Errorf("list marks: %w", err)
	}
	return marks, nil
}

// ListAttendanceForStudent returns attendance entries newest first.
func (r *AcademicRepository) ListAttendanceForStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	const query = `SELECT id, student_id, date, status, subject, recorded_by, created_at
FROM student_attendance WHERE student_id = $1 ORDER BY created_at DESC`
	var entries []models.Attendance
	if err := r.db.SelectContext(ctx, &entries, query, studentID); err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return entries, nil
}

// ListAssignmentsForStudent returns assignment entries newest first.
func (r *AcademicRepository) ListAssignmentsForStudent(ctx context.Context, studentID int64) ([]models.Assignment, error) {
	const query = `SELECT id, student_id, title, subject, assigned_date, due_date, status, marks, recorded_by, created_at
FROM student_assignments WHERE student_id = $1 ORDER BY created_at DESC`
	var assignments []models.Assignment
	if err := r.db.SelectContext(ctx, &assignments, query, studentID); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return assignments, nil
}

// RecentMarksByTeacher returns the latest marks recorded by a teacher
// credential id, for the teacher dashboard.
func (r *AcademicRepository) RecentMarksByTeacher(ctx context.Context, teacherUserID int64, limit int) ([]models.Mark, error) {
	const query = `SELECT id, student_id, subject, exam_type, marks_obtained, total_marks, grade, exam_date, recorded_by, created_at
FROM student_marks WHERE recorded_by = $1 ORDER BY created_at DESC LIMIT $2`
	var marks []models.Mark
	if err := r.db.SelectContext(ctx, &marks, query, teacherUserID, limit); err != nil {
		return nil, fmt.Errorf("recent marks by teacher: %w", err)
	}
	return marks, nil
}

// RecentAttendanceByTeacher returns the latest attendance recorded by a
// teacher credential id.
func (r *AcademicRepository) RecentAttendanceByTeacher(ctx context.Context, teacherUserID int64, limit int) ([]models.Attendance, error) {
	const query = `SELECT id, student_id, date, status, subject, recorded_by, created_at
FROM student_attendance WHERE recorded_by = $1 ORDER BY created_at DESC LIMIT $2`
	var entries []models.Attendance
	if err := r.db.SelectContext(ctx, &entries, query, teacherUserID, limit); err != nil {
		return nil, fmt.Errorf("recent attendance by teacher: %w", err)
	}
	return entries, nil
}
