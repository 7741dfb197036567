package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

func TestAcademicRepositoryCreateMarkAssignsID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	mock.ExpectExec("INSERT INTO student_marks").
		WillReturnResult(sqlmock.NewResult(0, 1))

	mark := &models.Mark{
		StudentID:     1,
		Subject:       "Mathematics",
		ExamType:      models.ExamMidterm,
		MarksObtained: 87,
		TotalMarks:    100,
		Grade:         "A",
		ExamDate:      time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		RecordedBy:    4,
	}
	require.NoError(t, repo.CreateMark(context.Background(), mark))
	assert.NotEmpty(t, mark.ID)
	assert.False(t, mark.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRepositoryCreateDuplicateMarksAllowed(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	mock.ExpectExec("INSERT INTO student_marks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO student_marks").WillReturnResult(sqlmock.NewResult(0, 1))

	entry := models.Mark{
		StudentID: 1,
		Subject:   "Physics",
		ExamType:  models.ExamQuiz,
		ExamDate:  time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	first := entry
	second := entry
	require.NoError(t, repo.CreateMark(context.Background(), &first))
	require.NoError(t, repo.CreateMark(context.Background(), &second))
	assert.NotEqual(t, first.ID, second.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRepositoryListMarksForStudent(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "subject", "exam_type", "marks_obtained", "total_marks", "grade", "exam_date", "recorded_by", "created_at"}).
		AddRow("m2", int64(1), "Physics", "final", 90.0, 100.0, "A", now, int64(4), now).
		AddRow("m1", int64(1), "Physics", "midterm", 78.0, 100.0, "B", now, int64(4), now.Add(-time.Hour))
	mock.ExpectQuery("SELECT id, student_id, subject, exam_type").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	marks, err := repo.ListMarksForStudent(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, marks, 2)
	assert.Equal(t, "m2", marks[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAcademicRepositoryRecentAttendanceByTeacher(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewAcademicRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "date", "status", "subject", "recorded_by", "created_at"}).
		AddRow("a1", int64(2), now, "present", "History", int64(4), now)
	mock.ExpectQuery("SELECT id, student_id, date, status, subject, recorded_by, created_at FROM student_attendance WHERE recorded_by").
		WithArgs(int64(4), 5).
		WillReturnRows(rows)

	entries, err := repo.RecentAttendanceByTeacher(context.Background(), 4, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.AttendancePresent, entries[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
