package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Schema bootstrap is create-if-absent only; there is no migration layer.
// Each store carries its own DDL and never references another store's tables.

var publicSchema = []string{
	`CREATE TABLE IF NOT EXISTS public_users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		email TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT public_users_username_key UNIQUE (username),
		CONSTRAINT public_users_email_key UNIQUE (email)
	)`,
}

var studentSchema = []string{
	`CREATE TABLE IF NOT EXISTS students (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE,
		student_code TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		grade TEXT NOT NULL DEFAULT '',
		section TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		address TEXT NOT NULL DEFAULT '',
		guardian_name TEXT NOT NULL DEFAULT '',
		guardian_phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS student_marks (
		id TEXT PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		subject TEXT NOT NULL,
		exam_type TEXT NOT NULL,
		marks_obtained DOUBLE PRECISION NOT NULL,
		total_marks DOUBLE PRECISION NOT NULL,
		grade TEXT NOT NULL DEFAULT '',
		exam_date TIMESTAMPTZ NOT NULL,
		recorded_by BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS student_attendance (
		id TEXT PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		subject TEXT NOT NULL,
		recorded_by BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS student_assignments (
		id TEXT PRIMARY KEY,
		student_id BIGINT NOT NULL REFERENCES students(id),
		title TEXT NOT NULL,
		subject TEXT NOT NULL,
		assigned_date TIMESTAMPTZ NOT NULL,
		due_date TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		marks DOUBLE PRECISION,
		recorded_by BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_student_marks_student ON student_marks (student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_student_attendance_student ON student_attendance (student_id)`,
	`CREATE INDEX IF NOT EXISTS idx_student_assignments_student ON student_assignments (student_id)`,
}

var teacherSchema = []string{
	`CREATE TABLE IF NOT EXISTS teachers (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE,
		teacher_code TEXT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		subjects TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		qualification TEXT NOT NULL DEFAULT '',
		experience_years INT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS teacher_subjects (
		id TEXT PRIMARY KEY,
		teacher_id BIGINT NOT NULL REFERENCES teachers(id),
		subject_name TEXT NOT NULL,
		grade TEXT NOT NULL DEFAULT '',
		section TEXT NOT NULL DEFAULT ''
	)`,
}

var authoritySchema = []string{
	`CREATE TABLE IF NOT EXISTS authorities (
		id BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL UNIQUE,
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		position TEXT NOT NULL DEFAULT 'Staff',
		phone TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS school_notices (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		priority TEXT NOT NULL,
		target_audience TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		expires_at TIMESTAMPTZ
	)`,
	`CREATE TABLE IF NOT EXISTS fee_structure (
		id TEXT PRIMARY KEY,
		grade TEXT NOT NULL,
		fee_type TEXT NOT NULL,
		amount NUMERIC(12,2) NOT NULL,
		academic_year TEXT NOT NULL,
		active BOOLEAN NOT NULL DEFAULT TRUE,
		created_by BIGINT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Bootstrap creates every table in every store if absent.
func Bootstrap(ctx context.Context, stores *Stores) error {
	plan := []struct {
		name string
		db   *sqlx.DB
		ddl  []string
	}{
		{"public", stores.Public, publicSchema},
		{"student", stores.Student, studentSchema},
		{"teacher", stores.Teacher, teacherSchema},
		{"authority", stores.Authority, authoritySchema},
	}

	for _, entry := range plan {
		for _, stmt := range entry.ddl {
			if _, err := entry.db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("bootstrap %s store: %w", entry.name, err)
			}
		}
	}

	return nil
}
