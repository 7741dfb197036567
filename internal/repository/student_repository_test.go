package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
)

func studentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "user_id", "student_code", "first_name", "last_name",
		"grade", "section", "phone", "address", "guardian_name", "guardian_phone", "created_at",
	})
}

func TestStudentRepositoryCreateProfile(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO students").
		WithArgs(int64(7), "STU0007", "Alice", "Smith", "555-0100").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	profile, err := repo.CreateProfile(context.Background(), 7, models.ProfileFields{
		FirstName: "Alice",
		LastName:  "Smith",
		Phone:     "555-0100",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), profile.LocalID)
	assert.Equal(t, int64(7), profile.UserID)
	assert.Equal(t, "STU0007", profile.DisplayCode)
	assert.Equal(t, models.RoleStudent, profile.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByCredentialID(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	now := time.Now()
	mock.ExpectQuery("SELECT id, user_id, student_code").
		WithArgs(int64(7)).
		WillReturnRows(studentRows().AddRow(int64(1), int64(7), "STU0007", "Alice", "Smith", "10", "A", "555-0100", "", "", "", now))

	profile, err := repo.FindByCredentialID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "STU0007", profile.DisplayCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryFindByCredentialIDMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT id, user_id, student_code").
		WithArgs(int64(42)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByCredentialID(context.Background(), 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryUpdateFields(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET").
		WithArgs(int64(1), "10", "B", "555-0101", "12 Elm St", "Pat Smith", "555-0102").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateFields(context.Background(), 1, models.StudentProfilePatch{
		Grade:         "10",
		Section:       "B",
		Phone:         "555-0101",
		Address:       "12 Elm St",
		GuardianName:  "Pat Smith",
		GuardianPhone: "555-0102",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateFieldsMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectExec("UPDATE students SET").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateFields(context.Background(), 99, models.StudentProfilePatch{Grade: "10", Section: "A", Phone: "x"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestStudentRepositoryListCredentialIDs(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("SELECT user_id FROM students").
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(int64(3)).AddRow(int64(9)))

	ids, err := repo.ListCredentialIDs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 9}, ids)
}
