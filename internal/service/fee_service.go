package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

type feeRepository interface {
	Create(ctx context.Context, fee *models.FeeEntry) error
	ListActive(ctx context.Context) ([]models.FeeEntry, error)
	ListAll(ctx context.Context) ([]models.FeeEntry, error)
}

// FeeService manages the append-only fee schedule.
type FeeService struct {
	repo      feeRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFeeService constructs the service.
func NewFeeService(repo feeRepository, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FeeService{repo: repo, validator: validate, logger: logger}
}

// Create appends a fee entry. Superseding an old fee means appending a new
// active row; nothing is edited in place.
func (s *FeeService) Create(ctx context.Context, actor models.SessionClaims, req models.CreateFeeRequest) (*models.FeeEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid fee payload")
	}

	fee := &models.FeeEntry{
		Grade:        req.Grade,
		FeeType:      req.FeeType,
		Amount:       req.Amount,
		AcademicYear: req.AcademicYear,
		Active:       true,
		CreatedBy:    actor.UserID,
	}
	if err := s.repo.Create(ctx, fee); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store write failed")
	}
	return fee, nil
}

// ListActive returns the current fee schedule.
func (s *FeeService) ListActive(ctx context.Context) ([]models.FeeEntry, error) {
	fees, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store read failed")
	}
	return fees, nil
}

// ListAll returns the full fee history newest first.
func (s *FeeService) ListAll(ctx context.Context) ([]models.FeeEntry, error) {
	fees, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "authority store read failed")
	}
	return fees, nil
}
