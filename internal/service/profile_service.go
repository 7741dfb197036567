package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type studentProfiles interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	UpdateFields(ctx context.Context, localID int64, patch models.StudentProfilePatch) error
}

type teacherProfiles interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error)
	UpdateFields(ctx context.Context, localID int64, patch models.TeacherProfilePatch) error
	AddSubject(ctx context.Context, subject *models.TeacherSubject) error
	ListSubjects(ctx context.Context, teacherID int64) ([]models.TeacherSubject, error)
}

type authorityProfiles interface {
	GetByUserID(ctx context.Context, userID int64) (*models.Authority, error)
	UpdateFields(ctx context.Context, localID int64, patch models.AuthorityProfilePatch) error
}

// ProfileService serves the self-profile pages. Every call resolves the
// session owner's credential id through the identity layer first, so a
// broken credential-profile link surfaces here as well.
type ProfileService struct {
	identity    *IdentityService
	students    studentProfiles
	teachers    teacherProfiles
	authorities authorityProfiles
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewProfileService constructs the service.
func NewProfileService(identity *IdentityService, students studentProfiles, teachers teacherProfiles, authorities authorityProfiles, validate *validator.Validate, logger *zap.Logger) *ProfileService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		identity:    identity,
		students:    students,
		teachers:    teachers,
		authorities: authorities,
		validate:    validate,
		logger:      logger,
	}
}

// StudentSelf returns the session owner's student profile.
func (s *ProfileService) StudentSelf(ctx context.Context, claims models.SessionClaims) (*models.Student, error) {
	if _, err := s.identity.ResolveProfile(ctx, claims.UserID, models.RoleStudent); err != nil {
		return nil, err
	}
	student, err := s.students.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, wrapStoreErr(err, "student")
	}
	return student, nil
}

// UpdateStudentSelf applies the owner-editable fields and returns the
// updated profile.
func (s *ProfileService) UpdateStudentSelf(ctx context.Context, claims models.SessionClaims, patch models.StudentProfilePatch) (*models.Student, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	student, err := s.StudentSelf(ctx, claims)
	if err != nil {
		return nil, err
	}
	if err := s.students.UpdateFields(ctx, student.ID, patch); err != nil {
		return nil, wrapStoreErr(err, "student")
	}
	s.logger.Info("student profile updated", zap.Int64("user_id", claims.UserID))
	return s.students.GetByUserID(ctx, claims.UserID)
}

// TeacherSelf returns the session owner's teacher profile along with
// subject assignments.
func (s *ProfileService) TeacherSelf(ctx context.Context, claims models.SessionClaims) (*models.Teacher, []models.TeacherSubject, error) {
	if _, err := s.identity.ResolveProfile(ctx, claims.UserID, models.RoleTeacher); err != nil {
		return nil, nil, err
	}
	teacher, err := s.teachers.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, nil, wrapStoreErr(err, "teacher")
	}
	subjects, err := s.teachers.ListSubjects(ctx, teacher.ID)
	if err != nil {
		return nil, nil, wrapStoreErr(err, "teacher")
	}
	return teacher, subjects, nil
}

// UpdateTeacherSelf applies the owner-editable fields and returns the
// updated profile.
func (s *ProfileService) UpdateTeacherSelf(ctx context.Context, claims models.SessionClaims, patch models.TeacherProfilePatch) (*models.Teacher, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	teacher, _, err := s.TeacherSelf(ctx, claims)
	if err != nil {
		return nil, err
	}
	if err := s.teachers.UpdateFields(ctx, teacher.ID, patch); err != nil {
		return nil, wrapStoreErr(err, "teacher")
	}
	s.logger.Info("teacher profile updated", zap.Int64("user_id", claims.UserID))
	return s.teachers.GetByUserID(ctx, claims.UserID)
}

// AddTeacherSubject records a subject assignment for the session owner.
func (s *ProfileService) AddTeacherSubject(ctx context.Context, claims models.SessionClaims, req models.TeacherSubjectRequest) (*models.TeacherSubject, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	teacher, _, err := s.TeacherSelf(ctx, claims)
	if err != nil {
		return nil, err
	}
	subject := &models.TeacherSubject{
		ID:          uuid.NewString(),
		TeacherID:   teacher.ID,
		SubjectName: req.SubjectName,
		Grade:       req.Grade,
		Section:     req.Section,
	}
	if err := s.teachers.AddSubject(ctx, subject); err != nil {
		return nil, wrapStoreErr(err, "teacher")
	}
	return subject, nil
}

// AuthoritySelf returns the session owner's authority profile.
func (s *ProfileService) AuthoritySelf(ctx context.Context, claims models.SessionClaims) (*models.Authority, error) {
	if _, err := s.identity.ResolveProfile(ctx, claims.UserID, models.RoleAuthority); err != nil {
		return nil, err
	}
	authority, err := s.authorities.GetByUserID(ctx, claims.UserID)
	if err != nil {
		return nil, wrapStoreErr(err, "authority")
	}
	return authority, nil
}

// UpdateAuthoritySelf applies the owner-editable fields and returns the
// updated profile.
func (s *ProfileService) UpdateAuthoritySelf(ctx context.Context, claims models.SessionClaims, patch models.AuthorityProfilePatch) (*models.Authority, error) {
	if err := s.validate.Struct(patch); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	authority, err := s.AuthoritySelf(ctx, claims)
	if err != nil {
		return nil, err
	}
	if err := s.authorities.UpdateFields(ctx, authority.ID, patch); err != nil {
		return nil, wrapStoreErr(err, "authority")
	}
	s.logger.Info("authority profile updated", zap.Int64("user_id", claims.UserID))
	return s.authorities.GetByUserID(ctx, claims.UserID)
}
