package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type noticeRepository interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id string) (*models.Notice, error)
	Toggle(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]models.Notice, error)
	ListForAudience(ctx context.Context, audiences []models.NoticeAudience, limit int) ([]models.Notice, error)
	CountActive(ctx context.Context) (int, error)
	ListByCreator(ctx context.Context, createdBy int64, limit int) ([]models.Notice, error)
}

// NoticeService manages the broadcast notice board in the authority store.
// Audience and expiry filtering happen at read time; the registry itself
// stores everything. Board reads go through a redis cache keyed by viewer
// role, invalidated on every write.
type NoticeService struct {
	repo      noticeRepository
	cache     *redis.Client
	cacheTTL  time.Duration
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
}

// NewNoticeService constructs the service. The cache client and metrics
// may be nil.
func NewNoticeService(repo noticeRepository, cache *redis.Client, cacheTTL time.Duration, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService) *NoticeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &NoticeService{repo: repo, cache: cache, cacheTTL: cacheTTL, validator: validate, logger: logger, metrics: metrics}
}

// Create publishes a new notice by the acting authority.
func (s *NoticeService) Create(ctx context.Context, actor models.SessionClaims, req models.CreateNoticeRequest) (*models.Notice, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid notice payload")
	}

	var expiresAt *time.Time
	if req.ExpiresAt != nil && *req.ExpiresAt != "" {
		parsed, err := parseDate(*req.ExpiresAt)
		if err != nil {
			return nil, appErrors.Clone(appErrors.ErrValidation, "expires_at must be YYYY-MM-DD")
		}
		expiresAt = &parsed
	}

	notice := &models.Notice{
		Title:          req.Title,
		Content:        req.Content,
		Priority:       req.Priority,
		TargetAudience: req.TargetAudience,
		Active:         true,
		CreatedBy:      actor.UserID,
		ExpiresAt:      expiresAt,
	}
	if err := s.repo.Create(ctx, notice); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store write failed")
	}

	s.invalidateBoard(ctx)
	return notice, nil
}

// Toggle flips a notice's active flag.
func (s *NoticeService) Toggle(ctx context.Context, id string) error {
	if err := s.repo.Toggle(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "notice not found")
		}
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store write failed")
	}

	s.invalidateBoard(ctx)
	return nil
}

// ListAll returns every notice for the authority management screen.
func (s *NoticeService) ListAll(ctx context.Context) ([]models.Notice, error) {
	notices, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store read failed")
	}
	return notices, nil
}

// Board returns the active, unexpired notices visible to the viewer role,
// read through the cache.
func (s *NoticeService) Board(ctx context.Context, viewer models.Role, limit int) ([]models.Notice, error) {
	if limit <= 0 {
		limit = 10
	}

	key := fmt.Sprintf("notices:board:%s:%d", viewer, limit)
	if cached, ok := s.boardFromCache(ctx, key); ok {
		return cached, nil
	}

	notices, err := s.repo.ListForAudience(ctx, models.AudienceForRole(viewer), limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store read failed")
	}

	s.boardToCache(ctx, key, notices)
	return notices, nil
}

// RecentByCreator returns an authority's own latest notices.
func (s *NoticeService) RecentByCreator(ctx context.Context, createdBy int64, limit int) ([]models.Notice, error) {
	if limit <= 0 {
		limit = 5
	}
	notices, err := s.repo.ListByCreator(ctx, createdBy, limit)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store read failed")
	}
	return notices, nil
}

// CountActive returns the number of active notices for dashboards.
func (s *NoticeService) CountActive(ctx context.Context) (int, error) {
	n, err := s.repo.CountActive(ctx)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store read failed")
	}
	return n, nil
}

func (s *NoticeService) boardFromCache(ctx context.Context, key string) ([]models.Notice, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.logger.Warn("notice cache read failed", zap.Error(err))
		}
		s.observeCache(false)
		return nil, false
	}
	var notices []models.Notice
	if err := json.Unmarshal(raw, &notices); err != nil {
		s.observeCache(false)
		return nil, false
	}
	s.observeCache(true)
	return notices, true
}

func (s *NoticeService) boardToCache(ctx context.Context, key string, notices []models.Notice) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(notices)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("notice cache write failed", zap.Error(err))
	}
}

// invalidateBoard drops every cached board view after a write. Cache
// failures degrade to stale-until-TTL, never to an error.
func (s *NoticeService) invalidateBoard(ctx context.Context) {
	if s.cache == nil {
		return
	}
	iter := s.cache.Scan(ctx, 0, "notices:board:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("notice cache invalidation failed", zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		s.logger.Warn("notice cache scan failed", zap.Error(err))
	}
}

func (s *NoticeService) observeCache(hit bool) {
	if s.metrics != nil {
		s.metrics.ObserveCacheLookup(hit)
	}
}
