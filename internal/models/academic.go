package models

import "time"

// ExamType classifies a marks entry.
type ExamType string

const (
	ExamMidterm ExamType = "midterm"
	ExamFinal   ExamType = "final"
	ExamQuiz    ExamType = "quiz"
)

// AttendanceStatus is the recorded daily status.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Valid reports whether the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

// AssignmentStatus tracks an assignment's lifecycle.
type AssignmentStatus string

const (
	AssignmentSubmitted AssignmentStatus = "submitted"
	AssignmentPending   AssignmentStatus = "pending"
	AssignmentOverdue   AssignmentStatus = "overdue"
)

// Mark is an append-only marks entry. StudentID is enforced inside the
// student store; RecordedBy is a weak reference to a teacher credential id
// in the public store. Duplicate entries for the same student/subject/date
// are allowed; presentation decides which wins.
type Mark struct {
	ID            string    `db:"id" json:"id"`
	StudentID     int64     `db:"student_id" json:"student_id"`
	Subject       string    `db:"subject" json:"subject"`
	ExamType      ExamType  `db:"exam_type" json:"exam_type"`
	MarksObtained float64   `db:"marks_obtained" json:"marks_obtained"`
	TotalMarks    float64   `db:"total_marks" json:"total_marks"`
	Grade         string    `db:"grade" json:"grade"`
	ExamDate      time.Time `db:"exam_date" json:"exam_date"`
	RecordedBy    int64     `db:"recorded_by" json:"recorded_by"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// Attendance is an append-only attendance entry.
type Attendance struct {
	ID         string           `db:"id" json:"id"`
	StudentID  int64            `db:"student_id" json:"student_id"`
	Date       time.Time        `db:"date" json:"date"`
	Status     AttendanceStatus `db:"status" json:"status"`
	Subject    string           `db:"subject" json:"subject"`
	RecordedBy int64            `db:"recorded_by" json:"recorded_by"`
	CreatedAt  time.Time        `db:"created_at" json:"created_at"`
}

// Assignment is an append-only assignment entry.
type Assignment struct {
	ID           string           `db:"id" json:"id"`
	StudentID    int64            `db:"student_id" json:"student_id"`
	Title        string           `db:"title" json:"title"`
	Subject      string           `db:"subject" json:"subject"`
	AssignedDate time.Time        `db:"assigned_date" json:"assigned_date"`
	DueDate      time.Time        `db:"due_date" json:"due_date"`
	Status       AssignmentStatus `db:"status" json:"status"`
	Marks        *float64         `db:"marks" json:"marks,omitempty"`
	RecordedBy   int64            `db:"recorded_by" json:"recorded_by"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

// RecordMarksRequest is the teacher-submitted marks payload.
type RecordMarksRequest struct {
	StudentID     int64    `json:"student_id" validate:"required,gt=0"`
	Subject       string   `json:"subject" validate:"required"`
	ExamType      ExamType `json:"exam_type" validate:"required,oneof=midterm final quiz"`
	MarksObtained float64  `json:"marks_obtained" validate:"gte=0"`
	TotalMarks    float64  `json:"total_marks" validate:"gt=0"`
	Grade         string   `json:"grade"`
	ExamDate      string   `json:"exam_date" validate:"required"`
}

// RecordAttendanceRequest is the teacher-submitted attendance payload.
type RecordAttendanceRequest struct {
	StudentID int64            `json:"student_id" validate:"required,gt=0"`
	Date      string           `json:"date" validate:"required"`
	Status    AttendanceStatus `json:"status" validate:"required,oneof=present absent late"`
	Subject   string           `json:"subject" validate:"required"`
}

// RecordAssignmentRequest is the teacher-submitted assignment payload.
type RecordAssignmentRequest struct {
	StudentID    int64            `json:"student_id" validate:"required,gt=0"`
	Title        string           `json:"title" validate:"required"`
	Subject      string           `json:"subject" validate:"required"`
	AssignedDate string           `json:"assigned_date" validate:"required"`
	DueDate      string           `json:"due_date" validate:"required"`
	Status       AssignmentStatus `json:"status" validate:"required,oneof=submitted pending overdue"`
	Marks        *float64         `json:"marks,omitempty"`
}
