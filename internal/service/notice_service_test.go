package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type fakeNoticeRepo struct {
	notices       []models.Notice
	lastAudiences []models.NoticeAudience
	lastLimit     int
}

func (f *fakeNoticeRepo) Create(_ context.Context, notice *models.Notice) error {
	if notice.ID == "" {
		notice.ID = uuid.NewString()
	}
	if notice.CreatedAt.IsZero() {
		notice.CreatedAt = time.Now()
	}
	f.notices = append(f.notices, *notice)
	return nil
}

func (f *fakeNoticeRepo) GetByID(_ context.Context, id string) (*models.Notice, error) {
	for i := range f.notices {
		if f.notices[i].ID == id {
			return &f.notices[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeNoticeRepo) Toggle(_ context.Context, id string) error {
	for i := range f.notices {
		if f.notices[i].ID == id {
			f.notices[i].Active = !f.notices[i].Active
			return nil
		}
	}
	return sql.ErrNoRows
}

func (f *fakeNoticeRepo) ListAll(_ context.Context) ([]models.Notice, error) {
	return f.notices, nil
}

func (f *fakeNoticeRepo) ListForAudience(_ context.Context, audiences []models.NoticeAudience, limit int) ([]models.Notice, error) {
	f.lastAudiences = audiences
	f.lastLimit = limit
	allowed := make(map[models.NoticeAudience]struct{}, len(audiences))
	for _, a := range audiences {
		allowed[a] = struct{}{}
	}
	var out []models.Notice
	for _, n := range f.notices {
		if !n.Active {
			continue
		}
		if n.ExpiresAt != nil && !n.ExpiresAt.After(time.Now()) {
			continue
		}
		if _, ok := allowed[n.TargetAudience]; !ok {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *fakeNoticeRepo) CountActive(_ context.Context) (int, error) {
	n := 0
	for _, notice := range f.notices {
		if notice.Active {
			n++
		}
	}
	return n, nil
}

func (f *fakeNoticeRepo) ListByCreator(_ context.Context, createdBy int64, limit int) ([]models.Notice, error) {
	var out []models.Notice
	for _, n := range f.notices {
		if n.CreatedBy == createdBy {
			out = append(out, n)
		}
	}
	return out, nil
}

func newTestNotices(repo noticeRepository) *NoticeService {
	return NewNoticeService(repo, nil, time.Minute, nil, nil, nil)
}

func authorityClaims(id int64) models.SessionClaims {
	return models.SessionClaims{UserID: id, Username: "admin", Role: models.RoleAuthority}
}

func TestNoticeCreateStartsActive(t *testing.T) {
	repo := &fakeNoticeRepo{}
	svc := newTestNotices(repo)

	expiry := "2027-01-15"
	notice, err := svc.Create(context.Background(), authorityClaims(5), models.CreateNoticeRequest{
		Title:          "Sports day",
		Content:        "Annual sports day on the 20th.",
		Priority:       models.PriorityMedium,
		TargetAudience: models.AudienceAll,
		ExpiresAt:      &expiry,
	})
	require.NoError(t, err)
	assert.True(t, notice.Active)
	assert.Equal(t, int64(5), notice.CreatedBy)
	require.NotNil(t, notice.ExpiresAt)
	assert.Equal(t, 2027, notice.ExpiresAt.Year())
}

func TestNoticeCreateRejectsBadExpiry(t *testing.T) {
	repo := &fakeNoticeRepo{}
	svc := newTestNotices(repo)

	expiry := "next week"
	_, err := svc.Create(context.Background(), authorityClaims(5), models.CreateNoticeRequest{
		Title:          "Sports day",
		Content:        "Annual sports day.",
		Priority:       models.PriorityLow,
		TargetAudience: models.AudienceAll,
		ExpiresAt:      &expiry,
	})
	require.Error(t, err)
	assert.Empty(t, repo.notices)
}

func TestNoticeBoardScopesAudienceByRole(t *testing.T) {
	repo := &fakeNoticeRepo{notices: []models.Notice{
		{ID: "n1", Title: "Everyone", TargetAudience: models.AudienceAll, Active: true},
		{ID: "n2", Title: "Students only", TargetAudience: models.AudienceStudents, Active: true},
		{ID: "n3", Title: "Teachers only", TargetAudience: models.AudienceTeachers, Active: true},
	}}
	svc := newTestNotices(repo)

	board, err := svc.Board(context.Background(), models.RoleStudent, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, []models.NoticeAudience{models.AudienceAll, models.AudienceStudents}, repo.lastAudiences)

	board, err = svc.Board(context.Background(), models.RoleTeacher, 10)
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, []models.NoticeAudience{models.AudienceAll, models.AudienceTeachers}, repo.lastAudiences)
}

func TestNoticeBoardSkipsInactiveAndExpired(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	future := time.Now().Add(time.Hour)
	repo := &fakeNoticeRepo{notices: []models.Notice{
		{ID: "n1", Title: "Live", TargetAudience: models.AudienceAll, Active: true, ExpiresAt: &future},
		{ID: "n2", Title: "Expired", TargetAudience: models.AudienceAll, Active: true, ExpiresAt: &past},
		{ID: "n3", Title: "Disabled", TargetAudience: models.AudienceAll, Active: false},
	}}
	svc := newTestNotices(repo)

	board, err := svc.Board(context.Background(), models.RoleStudent, 10)
	require.NoError(t, err)
	require.Len(t, board, 1)
	assert.Equal(t, "Live", board[0].Title)
}

func TestNoticeToggleMissing(t *testing.T) {
	svc := newTestNotices(&fakeNoticeRepo{})

	err := svc.Toggle(context.Background(), "ghost")
	require.Error(t, err)
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestNoticeToggleFlipsActive(t *testing.T) {
	repo := &fakeNoticeRepo{notices: []models.Notice{
		{ID: "n1", Title: "Holiday", TargetAudience: models.AudienceAll, Active: true},
	}}
	svc := newTestNotices(repo)

	require.NoError(t, svc.Toggle(context.Background(), "n1"))
	assert.False(t, repo.notices[0].Active)

	require.NoError(t, svc.Toggle(context.Background(), "n1"))
	assert.True(t, repo.notices[0].Active)
}
