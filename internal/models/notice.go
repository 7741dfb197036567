package models

import "time"

// NoticeAudience defines who can see a notice.
type NoticeAudience string

const (
	AudienceAll      NoticeAudience = "all"
	AudienceStudents NoticeAudience = "students"
	AudienceTeachers NoticeAudience = "teachers"
)

// NoticePriority defines ordering for notices.
type NoticePriority string

const (
	PriorityHigh   NoticePriority = "high"
	PriorityMedium NoticePriority = "medium"
	PriorityLow    NoticePriority = "low"
)

// Notice is a broadcast message owned by the authority store. Notices are
// toggled active/inactive, never hard-deleted. CreatedBy is a weak
// reference to an authority credential id.
type Notice struct {
	ID             string         `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Content        string         `db:"content" json:"content"`
	Priority       NoticePriority `db:"priority" json:"priority"`
	TargetAudience NoticeAudience `db:"target_audience" json:"target_audience"`
	Active         bool           `db:"active" json:"active"`
	CreatedBy      int64          `db:"created_by" json:"created_by"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	ExpiresAt      *time.Time     `db:"expires_at" json:"expires_at,omitempty"`
}

// CreateNoticeRequest is the authority-submitted notice payload.
type CreateNoticeRequest struct {
	Title          string         `json:"title" validate:"required"`
	Content        string         `json:"content" validate:"required"`
	Priority       NoticePriority `json:"priority" validate:"required,oneof=high medium low"`
	TargetAudience NoticeAudience `json:"target_audience" validate:"required,oneof=all students teachers"`
	ExpiresAt      *string        `json:"expires_at,omitempty"`
}

// AudienceForRole maps a viewer role to the audiences it may read.
func AudienceForRole(role Role) []NoticeAudience {
	switch role {
	case RoleStudent:
		return []NoticeAudience{AudienceAll, AudienceStudents}
	case RoleTeacher:
		return []NoticeAudience{AudienceAll, AudienceTeachers}
	default:
		return []NoticeAudience{AudienceAll, AudienceStudents, AudienceTeachers}
	}
}
