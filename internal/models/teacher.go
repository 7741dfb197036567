package models

import "time"

// Teacher is the teacher-store profile row, linked to a PublicUser by
// UserID (weak reference, no enforcement).
type Teacher struct {
	ID              int64     `db:"id" json:"id"`
	UserID          int64     `db:"user_id" json:"user_id"`
	TeacherCode     string    `db:"teacher_code" json:"teacher_code"`
	FirstName       string    `db:"first_name" json:"first_name"`
	LastName        string    `db:"last_name" json:"last_name"`
	Subjects        string    `db:"subjects" json:"subjects"`
	Phone           string    `db:"phone" json:"phone"`
	Qualification   string    `db:"qualification" json:"qualification"`
	ExperienceYears int       `db:"experience_years" json:"experience_years"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

// TeacherSubject assigns a subject/grade/section to a teacher, enforced
// within the teacher store only.
type TeacherSubject struct {
	ID          string `db:"id" json:"id"`
	TeacherID   int64  `db:"teacher_id" json:"teacher_id"`
	SubjectName string `db:"subject_name" json:"subject_name"`
	Grade       string `db:"grade" json:"grade"`
	Section     string `db:"section" json:"section"`
}

// TeacherProfilePatch updates the owner-editable fields of a teacher
// profile.
type TeacherProfilePatch struct {
	Subjects        string `json:"subjects"`
	Phone           string `json:"phone" validate:"required"`
	Qualification   string `json:"qualification"`
	ExperienceYears int    `json:"experience_years" validate:"gte=0"`
}

// TeacherSubjectRequest adds a subject assignment for a teacher.
type TeacherSubjectRequest struct {
	SubjectName string `json:"subject_name" validate:"required"`
	Grade       string `json:"grade" validate:"required"`
	Section     string `json:"section"`
}
