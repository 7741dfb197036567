package models

import "time"

// Authority is the authority-store profile row, linked to a PublicUser by
// UserID (weak reference, no enforcement). Authorities carry no display
// code in the legacy data model.
type Authority struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	FirstName string    `db:"first_name" json:"first_name"`
	LastName  string    `db:"last_name" json:"last_name"`
	Position  string    `db:"position" json:"position"`
	Phone     string    `db:"phone" json:"phone"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuthorityProfilePatch updates the owner-editable fields of an authority
// profile.
type AuthorityProfilePatch struct {
	Position string `json:"position" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
}
