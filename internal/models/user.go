package models

import "time"

// Role identifies which of the three role-partitioned stores owns a user's
// profile. It is set at signup and never changes afterwards.
type Role string

const (
	RoleStudent   Role = "student"
	RoleTeacher   Role = "teacher"
	RoleAuthority Role = "authority"
)

// Valid reports whether the role is one of the three supported tags.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAuthority:
		return true
	default:
		return false
	}
}

// PublicUser is the credential record in the public store: the single source
// of truth for login identity. Role profiles in the other stores point back
// at it by id with no foreign key.
type PublicUser struct {
	ID           int64     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	Active       bool      `db:"active" json:"active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserFilter captures filtering criteria for listing credentials.
type UserFilter struct {
	Role   *Role
	Active *bool
	Search string
}
