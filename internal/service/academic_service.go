package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type academicRepository interface {
	CreateMark(ctx context.Context, mark *models.Mark) error
	CreateAttendance(ctx context.Context, attendance *models.Attendance) error
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	ListMarksForStudent(ctx context.Context, studentID int64) ([]models.Mark, error)
	ListAttendanceForStudent(ctx context.Context, studentID int64) ([]models.Attendance, error)
	ListAssignmentsForStudent(ctx context.Context, studentID int64) ([]models.Assignment, error)
	RecentMarksByTeacher(ctx context.Context, teacherUserID int64, limit int) ([]models.Mark, error)
	RecentAttendanceByTeacher(ctx context.Context, teacherUserID int64, limit int) ([]models.Attendance, error)
}

type studentLookup interface {
	GetByLocalID(ctx context.Context, localID int64) (*models.Student, error)
}

// AcademicService appends and reads the per-student academic record logs.
// Records carry the recording teacher's credential id as a weak cross-store
// reference; the student id is enforced within the student store.
type AcademicService struct {
	records   academicRepository
	students  studentLookup
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAcademicService constructs the service.
func NewAcademicService(records academicRepository, students studentLookup, validate *validator.Validate, logger *zap.Logger) *AcademicService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AcademicService{records: records, students: students, validator: validate, logger: logger}
}

// RecordMarks appends a marks entry on behalf of a teacher. Duplicate
// entries for the same student/subject/date are accepted.
func (s *AcademicService) RecordMarks(ctx context.Context, actor models.SessionClaims, req models.RecordMarksRequest) (*models.Mark, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid marks payload")
	}
	examDate, err := parseDate(req.ExamDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "exam_date must be YYYY-MM-DD")
	}
	if err := s.ensureStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	mark := &models.Mark{
		StudentID:     req.StudentID,
		Subject:       req.Subject,
		ExamType:      req.ExamType,
		MarksObtained: req.MarksObtained,
		TotalMarks:    req.TotalMarks,
		Grade:         req.Grade,
		ExamDate:      examDate,
		RecordedBy:    actor.UserID,
	}
	if err := s.records.CreateMark(ctx, mark); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store write failed")
	}
	return mark, nil
}

// RecordAttendance appends an attendance entry on behalf of a teacher.
func (s *AcademicService) RecordAttendance(ctx context.Context, actor models.SessionClaims, req models.RecordAttendanceRequest) (*models.Attendance, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid attendance payload")
	}
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must be YYYY-MM-DD")
	}
	if err := s.ensureStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	attendance := &models.Attendance{
		StudentID:  req.StudentID,
		Date:       date,
		Status:     req.Status,
		Subject:    req.Subject,
		RecordedBy: actor.UserID,
	}
	if err := s.records.CreateAttendance(ctx, attendance); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store write failed")
	}
	return attendance, nil
}

// RecordAssignment appends an assignment entry on behalf of a teacher.
func (s *AcademicService) RecordAssignment(ctx context.Context, actor models.SessionClaims, req models.RecordAssignmentRequest) (*models.Assignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assignment payload")
	}
	assignedDate, err := parseDate(req.AssignedDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "assigned_date must be YYYY-MM-DD")
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "due_date must be YYYY-MM-DD")
	}
	if err := s.ensureStudent(ctx, req.StudentID); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		StudentID:    req.StudentID,
		Title:        req.Title,
		Subject:      req.Subject,
		AssignedDate: assignedDate,
		DueDate:      dueDate,
		Status:       req.Status,
		Marks:        req.Marks,
		RecordedBy:   actor.UserID,
	}
	if err := s.records.CreateAssignment(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store write failed")
	}
	return assignment, nil
}

// MarksForStudent lists marks for a student local id, newest first.
func (s *AcademicService) MarksForStudent(ctx context.Context, studentID int64) ([]models.Mark, error) {
	marks, err := s.records.ListMarksForStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store read failed")
	}
	return marks, nil
}

// AttendanceForStudent lists attendance entries, newest first.
func (s *AcademicService) AttendanceForStudent(ctx context.Context, studentID int64) ([]models.Attendance, error) {
	entries, err := s.records.ListAttendanceForStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store read failed")
	}
	return entries, nil
}

// AssignmentsForStudent lists assignment entries, newest first.
func (s *AcademicService) AssignmentsForStudent(ctx context.Context, studentID int64) ([]models.Assignment, error) {
	assignments, err := s.records.ListAssignmentsForStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store read failed")
	}
	return assignments, nil
}

// RecentByTeacher returns the teacher dashboard recents.
func (s *AcademicService) RecentByTeacher(ctx context.Context, teacherUserID int64, limit int) ([]models.Mark, []models.Attendance, error) {
	if limit <= 0 {
		limit = 10
	}
	marks, err := s.records.RecentMarksByTeacher(ctx, teacherUserID, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store read failed")
	}
	attendance, err := s.records.RecentAttendanceByTeacher(ctx, teacherUserID, limit)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store read failed")
	}
	return marks, attendance, nil
}

// ensureStudent verifies the in-store relationship target exists before an
// append.
func (s *AcademicService) ensureStudent(ctx context.Context, studentID int64) error {
	if _, err := s.students.GetByLocalID(ctx, studentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "student store read failed")
	}
	return nil
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}
