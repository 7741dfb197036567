package models

import "time"

// FeeEntry is an append-only fee schedule row in the authority store.
// Superseding a fee means inserting a new active row, never editing the
// old one.
type FeeEntry struct {
	ID           string    `db:"id" json:"id"`
	Grade        string    `db:"grade" json:"grade"`
	FeeType      string    `db:"fee_type" json:"fee_type"`
	Amount       float64   `db:"amount" json:"amount"`
	AcademicYear string    `db:"academic_year" json:"academic_year"`
	Active       bool      `db:"active" json:"active"`
	CreatedBy    int64     `db:"created_by" json:"created_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CreateFeeRequest is the authority-submitted fee payload.
type CreateFeeRequest struct {
	Grade        string  `json:"grade" validate:"required"`
	FeeType      string  `json:"fee_type" validate:"required"`
	Amount       float64 `json:"amount" validate:"gt=0"`
	AcademicYear string  `json:"academic_year" validate:"required"`
}
