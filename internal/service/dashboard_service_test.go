package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type fakeStudentDirectory struct {
	students map[int64]models.Student
}

func (f *fakeStudentDirectory) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, s := range f.students {
		if s.UserID == userID {
			student := s
			return &student, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudentDirectory) ListAll(_ context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(f.students))
	for _, s := range f.students {
		out = append(out, s)
	}
	return out, nil
}

func (f *fakeStudentDirectory) Count(_ context.Context) (int, error) {
	return len(f.students), nil
}

type fakeTeacherDirectory struct {
	teachers map[int64]models.Teacher
}

func (f *fakeTeacherDirectory) GetByUserID(_ context.Context, userID int64) (*models.Teacher, error) {
	for _, tc := range f.teachers {
		if tc.UserID == userID {
			teacher := tc
			return &teacher, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeTeacherDirectory) ListAll(_ context.Context) ([]models.Teacher, error) {
	out := make([]models.Teacher, 0, len(f.teachers))
	for _, tc := range f.teachers {
		out = append(out, tc)
	}
	return out, nil
}

func (f *fakeTeacherDirectory) Count(_ context.Context) (int, error) {
	return len(f.teachers), nil
}

type fakeAuthorityDirectory struct {
	authorities map[int64]models.Authority
}

func (f *fakeAuthorityDirectory) GetByUserID(_ context.Context, userID int64) (*models.Authority, error) {
	for _, a := range f.authorities {
		if a.UserID == userID {
			authority := a
			return &authority, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeAuthorityDirectory) ListAll(_ context.Context) ([]models.Authority, error) {
	out := make([]models.Authority, 0, len(f.authorities))
	for _, a := range f.authorities {
		out = append(out, a)
	}
	return out, nil
}

type dashboardFixture struct {
	creds       *fakeCredentialRepo
	studentRepo *fakeProfileStore
	svc         *DashboardService
}

func newDashboardFixture(t *testing.T) *dashboardFixture {
	t.Helper()

	creds := newFakeCredentialRepo()
	studentStore := newFakeProfileStore(models.RoleStudent)
	teacherStore := newFakeProfileStore(models.RoleTeacher)
	authorityStore := newFakeProfileStore(models.RoleAuthority)
	identity := NewIdentityService(creds, []RoleProfileStore{studentStore, teacherStore, authorityStore}, nil, nil, nil, time.Second)

	students := &fakeStudentDirectory{students: map[int64]models.Student{
		1: {ID: 1, UserID: 7, StudentCode: "STU0007", FirstName: "Alice"},
	}}
	teachers := &fakeTeacherDirectory{teachers: map[int64]models.Teacher{
		1: {ID: 1, UserID: 4, TeacherCode: "TCH0004", FirstName: "Ben"},
	}}
	authorities := &fakeAuthorityDirectory{authorities: map[int64]models.Authority{
		1: {ID: 1, UserID: 2, FirstName: "Cara", Position: "Principal"},
	}}

	academics := NewAcademicService(&fakeAcademicRepo{}, &fakeStudentLookup{students: students.students}, nil, nil)
	notices := newTestNotices(&fakeNoticeRepo{notices: []models.Notice{
		{ID: "n1", Title: "Everyone", TargetAudience: models.AudienceAll, Active: true, CreatedBy: 2},
	}})

	svc := NewDashboardService(identity, students, teachers, authorities, academics, notices, nil)
	return &dashboardFixture{creds: creds, studentRepo: studentStore, svc: svc}
}

func linkProfile(t *testing.T, store *fakeProfileStore, userID int64) {
	t.Helper()
	_, err := store.CreateProfile(context.Background(), userID, models.ProfileFields{FirstName: "x"})
	require.NoError(t, err)
}

func TestStudentDashboardAggregates(t *testing.T) {
	fx := newDashboardFixture(t)
	linkProfile(t, fx.studentRepo, 7)

	dash, err := fx.svc.ForStudent(context.Background(), models.SessionClaims{UserID: 7, Role: models.RoleStudent})
	require.NoError(t, err)
	assert.Equal(t, "STU0007", dash.Student.StudentCode)
	require.Len(t, dash.Notices, 1)
	assert.Equal(t, "Everyone", dash.Notices[0].Title)
	assert.Empty(t, dash.Marks)
}

func TestStudentDashboardOrphanedCredential(t *testing.T) {
	fx := newDashboardFixture(t)

	// Credential exists but the student store holds no profile for it.
	credential := &models.PublicUser{Username: "ghost", Email: "g@example.com", Role: models.RoleStudent, Active: true}
	credential.ID = 7
	fx.creds.users[7] = *credential

	_, err := fx.svc.ForStudent(context.Background(), models.SessionClaims{UserID: 7, Role: models.RoleStudent})
	assert.ErrorIs(t, err, appErrors.ErrProfileNotFound)
}
