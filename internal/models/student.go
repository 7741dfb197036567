package models

import "time"

// Student is the student-store profile row, linked to a PublicUser by
// UserID (weak reference, no enforcement).
type Student struct {
	ID            int64     `db:"id" json:"id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	StudentCode   string    `db:"student_code" json:"student_code"`
	FirstName     string    `db:"first_name" json:"first_name"`
	LastName      string    `db:"last_name" json:"last_name"`
	Grade         string    `db:"grade" json:"grade"`
	Section       string    `db:"section" json:"section"`
	Phone         string    `db:"phone" json:"phone"`
	Address       string    `db:"address" json:"address"`
	GuardianName  string    `db:"guardian_name" json:"guardian_name"`
	GuardianPhone string    `db:"guardian_phone" json:"guardian_phone"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// StudentProfilePatch updates the owner-editable fields of a student
// profile.
type StudentProfilePatch struct {
	Grade         string `json:"grade" validate:"required"`
	Section       string `json:"section" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address"`
	GuardianName  string `json:"guardian_name"`
	GuardianPhone string `json:"guardian_phone"`
}
