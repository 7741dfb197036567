package models

import "fmt"

// Profile is the role-agnostic view of a role profile returned by the
// identity layer. LocalID is meaningful only within the owning store; UserID
// is the weak reference back to the credential in the public store.
type Profile struct {
	LocalID     int64  `json:"local_id"`
	UserID      int64  `json:"user_id"`
	Role        Role   `json:"role"`
	DisplayCode string `json:"display_code,omitempty"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Phone       string `json:"phone"`
}

// ProfileFields carries the initial values written when a profile is
// created. Everything beyond the name is filled with placeholders and
// completed later by the profile owner.
type ProfileFields struct {
	FirstName string
	LastName  string
	Phone     string
}

// DisplayCode derives a human-readable profile code from a credential id.
// It is computed once at profile creation and never recomputed.
func DisplayCode(role Role, userID int64) string {
	switch role {
	case RoleStudent:
		return fmt.Sprintf("STU%04d", userID)
	case RoleTeacher:
		return fmt.Sprintf("TCH%04d", userID)
	default:
		// Authority profiles carry no display code.
		return ""
	}
}
