package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type fakeAcademicRepo struct {
	marks       []models.Mark
	attendance  []models.Attendance
	assignments []models.Assignment
}

func (f *fakeAcademicRepo) CreateMark(_ context.Context, mark *models.Mark) error {
	f.marks = append(f.marks, *mark)
	return nil
}

func (f *fakeAcademicRepo) CreateAttendance(_ context.Context, attendance *models.Attendance) error {
	f.attendance = append(f.attendance, *attendance)
	return nil
}

func (f *fakeAcademicRepo) CreateAssignment(_ context.Context, assignment *models.Assignment) error {
	f.assignments = append(f.assignments, *assignment)
	return nil
}

func (f *fakeAcademicRepo) ListMarksForStudent(_ context.Context, studentID int64) ([]models.Mark, error) {
	var out []models.Mark
	for _, m := range f.marks {
		if m.StudentID == studentID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAcademicRepo) ListAttendanceForStudent(_ context.Context, studentID int64) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range f.attendance {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAcademicRepo) ListAssignmentsForStudent(_ context.Context, studentID int64) ([]models.Assignment, error) {
	var out []models.Assignment
	for _, a := range f.assignments {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAcademicRepo) RecentMarksByTeacher(_ context.Context, teacherUserID int64, limit int) ([]models.Mark, error) {
	var out []models.Mark
	for _, m := range f.marks {
		if m.RecordedBy == teacherUserID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeAcademicRepo) RecentAttendanceByTeacher(_ context.Context, teacherUserID int64, limit int) ([]models.Attendance, error) {
	var out []models.Attendance
	for _, a := range f.attendance {
		if a.RecordedBy == teacherUserID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeStudentLookup struct {
	students map[int64]models.Student
}

func (f *fakeStudentLookup) GetByLocalID(_ context.Context, localID int64) (*models.Student, error) {
	student, ok := f.students[localID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &student, nil
}

func newTestAcademics(repo *fakeAcademicRepo) *AcademicService {
	lookup := &fakeStudentLookup{students: map[int64]models.Student{
		1: {ID: 1, UserID: 7, StudentCode: "STU0007", FirstName: "Alice"},
	}}
	return NewAcademicService(repo, lookup, nil, nil)
}

func teacherClaims(id int64) models.SessionClaims {
	return models.SessionClaims{UserID: id, Username: "teach", Role: models.RoleTeacher}
}

func TestRecordMarksStampsTeacher(t *testing.T) {
	repo := &fakeAcademicRepo{}
	svc := newTestAcademics(repo)

	mark, err := svc.RecordMarks(context.Background(), teacherClaims(4), models.RecordMarksRequest{
		StudentID:     1,
		Subject:       "Mathematics",
		ExamType:      models.ExamMidterm,
		MarksObtained: 87,
		TotalMarks:    100,
		Grade:         "A",
		ExamDate:      "2026-03-10",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), mark.RecordedBy)
	assert.Equal(t, int64(1), mark.StudentID)
	require.Len(t, repo.marks, 1)
}

func TestRecordMarksUnknownStudent(t *testing.T) {
	repo := &fakeAcademicRepo{}
	svc := newTestAcademics(repo)

	_, err := svc.RecordMarks(context.Background(), teacherClaims(4), models.RecordMarksRequest{
		StudentID:     99,
		Subject:       "Mathematics",
		ExamType:      models.ExamFinal,
		MarksObtained: 50,
		TotalMarks:    100,
		ExamDate:      "2026-03-10",
	})
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
	assert.Empty(t, repo.marks)
}

func TestRecordMarksBadDate(t *testing.T) {
	repo := &fakeAcademicRepo{}
	svc := newTestAcademics(repo)

	_, err := svc.RecordMarks(context.Background(), teacherClaims(4), models.RecordMarksRequest{
		StudentID:     1,
		Subject:       "Mathematics",
		ExamType:      models.ExamQuiz,
		MarksObtained: 10,
		TotalMarks:    20,
		ExamDate:      "10/03/2026",
	})
	require.Error(t, err)
	assert.Empty(t, repo.marks)
}

func TestRecordMarksAllowsDuplicates(t *testing.T) {
	repo := &fakeAcademicRepo{}
	svc := newTestAcademics(repo)

	req := models.RecordMarksRequest{
		StudentID:     1,
		Subject:       "Physics",
		ExamType:      models.ExamQuiz,
		MarksObtained: 8,
		TotalMarks:    10,
		ExamDate:      "2026-03-10",
	}
	_, err := svc.RecordMarks(context.Background(), teacherClaims(4), req)
	require.NoError(t, err)
	_, err = svc.RecordMarks(context.Background(), teacherClaims(4), req)
	require.NoError(t, err)
	assert.Len(t, repo.marks, 2)
}

func TestRecordAttendance(t *testing.T) {
	repo := &fakeAcademicRepo{}
	svc := newTestAcademics(repo)

	entry, err := svc.RecordAttendance(context.Background(), teacherClaims(4), models.RecordAttendanceRequest{
		StudentID: 1,
		Date:      "2026-03-10",
		Status:    models.AttendanceLate,
		Subject:   "History",
	})
	require.NoError(t, err)
	assert.Equal(t, models.AttendanceLate, entry.Status)
	assert.Equal(t, int64(4), entry.RecordedBy)
}

func TestRecordAssignmentKeepsOptionalMarks(t *testing.T) {
	repo := &fakeAcademicRepo{}
	svc := newTestAcademics(repo)

	marks := 9.5
	assignment, err := svc.RecordAssignment(context.Background(), teacherClaims(4), models.RecordAssignmentRequest{
		StudentID:    1,
		Title:        "Essay",
		Subject:      "English",
		AssignedDate: "2026-03-01",
		DueDate:      "2026-03-15",
		Status:       models.AssignmentSubmitted,
		Marks:        &marks,
	})
	require.NoError(t, err)
	require.NotNil(t, assignment.Marks)
	assert.Equal(t, 9.5, *assignment.Marks)
}

func TestRecentByTeacher(t *testing.T) {
	repo := &fakeAcademicRepo{}
	svc := newTestAcademics(repo)

	_, err := svc.RecordMarks(context.Background(), teacherClaims(4), models.RecordMarksRequest{
		StudentID: 1, Subject: "Math", ExamType: models.ExamQuiz, MarksObtained: 5, TotalMarks: 10, ExamDate: "2026-03-10",
	})
	require.NoError(t, err)
	_, err = svc.RecordAttendance(context.Background(), teacherClaims(4), models.RecordAttendanceRequest{
		StudentID: 1, Date: "2026-03-10", Status: models.AttendancePresent, Subject: "Math",
	})
	require.NoError(t, err)

	marks, attendance, err := svc.RecentByTeacher(context.Background(), 4, 10)
	require.NoError(t, err)
	assert.Len(t, marks, 1)
	assert.Len(t, attendance, 1)
}
