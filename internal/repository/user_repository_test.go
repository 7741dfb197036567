package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestUserRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	mock.ExpectQuery("INSERT INTO public_users").
		WithArgs("alice", "alice@example.com", "hashed", models.RoleStudent, true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	user := &models.PublicUser{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed",
		Role:         models.RoleStudent,
		Active:       true,
	}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.Equal(t, int64(7), user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateDuplicateUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO public_users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "public_users_username_key"})

	err := repo.Create(context.Background(), &models.PublicUser{Username: "alice"})
	assert.ErrorIs(t, err, appErrors.ErrDuplicateUsername)
}

func TestUserRepositoryCreateDuplicateEmail(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("INSERT INTO public_users").
		WillReturnError(&pq.Error{Code: "23505", Constraint: "public_users_email_key"})

	err := repo.Create(context.Background(), &models.PublicUser{Username: "alice"})
	assert.ErrorIs(t, err, appErrors.ErrDuplicateEmail)
}

func TestUserRepositoryFindByUsername(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "active", "created_at"}).
		AddRow(int64(3), "bob", "bob@example.com", "hashed", "teacher", true, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, username, email, password_hash, role, active, created_at FROM public_users WHERE username = $1 LIMIT 1")).
		WithArgs("bob").
		WillReturnRows(rows)

	user, err := repo.FindByUsername(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryFindByUsernameMissing(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT id, username").
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUserRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("DELETE FROM public_users").
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), int64(9)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()
	repo := NewUserRepository(db)

	role := models.RoleStudent
	active := true
	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "username", "email", "password_hash", "role", "active", "created_at"}).
		AddRow(int64(1), "alice", "alice@example.com", "hashed", "student", true, now)
	mock.ExpectQuery("SELECT id, username, email, password_hash, role, active, created_at FROM public_users WHERE 1=1 AND role = \\$1 AND active = \\$2").
		WithArgs(role, active).
		WillReturnRows(rows)

	users, err := repo.List(context.Background(), models.UserFilter{Role: &role, Active: &active})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "alice", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}
