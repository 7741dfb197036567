package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type studentDirectory interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	ListAll(ctx context.Context) ([]models.Student, error)
	Count(ctx context.Context) (int, error)
}

type teacherDirectory interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	ListAll(ctx context.Context) ([]models.Teacher, error)
	Count(ctx context.Context) (int, error)
}

type authorityDirectory interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Authority, error)
	ListAll(ctx context.Context) ([]models.Authority, error)
}

// StudentDashboard aggregates everything the student landing page shows.
type StudentDashboard struct {
	Student     *models.Student     `json:"student"`
	Marks       []models.Mark       `json:"marks"`
	Attendance  []models.Attendance `json:"attendance"`
	Assignments []models.Assignment `json:"assignments"`
	Notices     []models.Notice     `json:"notices"`
}

// TeacherDashboard aggregates the teacher landing page.
type TeacherDashboard struct {
	Teacher          *models.Teacher     `json:"teacher"`
	Students         []models.Student    `json:"students"`
	RecentMarks      []models.Mark       `json:"recent_marks"`
	RecentAttendance []models.Attendance `json:"recent_attendance"`
	Notices          []models.Notice     `json:"notices"`
}

// AuthorityDashboard aggregates the authority landing page.
type AuthorityDashboard struct {
	Authority     *models.Authority `json:"authority"`
	TotalStudents int               `json:"total_students"`
	TotalTeachers int               `json:"total_teachers"`
	ActiveNotices int               `json:"active_notices"`
	RecentNotices []models.Notice   `json:"recent_notices"`
}

// DashboardService assembles the role landing pages. Each dashboard first
// resolves the caller's profile through the identity layer, then issues the
// remaining reads; any cross-store join is two lookups stitched here.
type DashboardService struct {
	identity    *IdentityService
	students    studentDirectory
	teachers    teacherDirectory
	authorities authorityDirectory
	academics   *AcademicService
	notices     *NoticeService
	logger      *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(identity *IdentityService, students studentDirectory, teachers teacherDirectory, authorities authorityDirectory, academics *AcademicService, notices *NoticeService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		identity:    identity,
		students:    students,
		teachers:    teachers,
		authorities: authorities,
		academics:   academics,
		notices:     notices,
		logger:      logger,
	}
}

// ForStudent builds the student dashboard for the session owner.
func (s *DashboardService) ForStudent(ctx context.Context, claims models.SessionClaims) (*StudentDashboard, error) {
	if _, err := s.identity.ResolveProfile(ctx, claims.UserID, models.RoleStudent); err != nil {
		return nil, err
	}
	student, err := s.students.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, wrapStoreErr(err, "student")
	}

	marks, err := s.academics.MarksForStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	attendance, err := s.academics.AttendanceForStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.academics.AssignmentsForStudent(ctx, student.ID)
	if err != nil {
		return nil, err
	}
	notices, err := s.notices.Board(ctx, models.RoleStudent, 10)
	if err != nil {
		return nil, err
	}

	return &StudentDashboard{
		Student:     student,
		Marks:       marks,
		Attendance:  attendance,
		Assignments: assignments,
		Notices:     notices,
	}, nil
}

// ForTeacher builds the teacher dashboard for the session owner.
func (s *DashboardService) ForTeacher(ctx context.Context, claims models.SessionClaims) (*TeacherDashboard, error) {
	if _, err := s.identity.ResolveProfile(ctx, claims.UserID, models.RoleTeacher); err != nil {
		return nil, err
	}
	teacher, err := s.teachers.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, wrapStoreErr(err, "teacher")
	}

	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "student")
	}
	recentMarks, recentAttendance, err := s.academics.RecentByTeacher(ctx, claims.UserID, 10)
	if err != nil {
		return nil, err
	}
	notices, err := s.notices.Board(ctx, models.RoleTeacher, 10)
	if err != nil {
		return nil, err
	}

	return &TeacherDashboard{
		Teacher:          teacher,
		Students:         students,
		RecentMarks:      recentMarks,
		RecentAttendance: recentAttendance,
		Notices:          notices,
	}, nil
}

// ForAuthority builds the authority dashboard for the session owner.
func (s *DashboardService) ForAuthority(ctx context.Context, claims models.SessionClaims) (*AuthorityDashboard, error) {
	if _, err := s.identity.ResolveProfile(ctx, claims.UserID, models.RoleAuthority); err != nil {
		return nil, err
	}
	authority, err := s.authorities.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, wrapStoreErr(err, "authority")
	}

	totalStudents, err := s.students.Count(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "student")
	}
	totalTeachers, err := s.teachers.Count(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "teacher")
	}
	activeNotices, err := s.notices.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	recentNotices, err := s.notices.RecentByCreator(ctx, claims.UserID, 5)
	if err != nil {
		return nil, err
	}

	return &AuthorityDashboard{
		Authority:     authority,
		TotalStudents: totalStudents,
		TotalTeachers: totalTeachers,
		ActiveNotices: activeNotices,
		RecentNotices: recentNotices,
	}, nil
}

// Roster lists every student profile, for the staff-facing student pages.
func (s *DashboardService) Roster(ctx context.Context) ([]models.Student, error) {
	students, err := s.students.ListAll(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "student")
	}
	return students, nil
}

// TeacherRoster lists every teacher profile.
func (s *DashboardService) TeacherRoster(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "teacher")
	}
	return teachers, nil
}

// StaffDirectory lists every authority profile.
func (s *DashboardService) StaffDirectory(ctx context.Context) ([]models.Authority, error) {
	authorities, err := s.authorities.ListAll(ctx)
	if err != nil {
		return nil, wrapStoreErr(err, "authority")
	}
	return authorities, nil
}

func wrapStoreErr(err error, store string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.ErrProfileNotFound
	}
	return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, store+" store read failed")
}
