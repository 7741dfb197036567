package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	appErrors "github.com/Sarojsin/school-management-system-by-group/pkg/errors"
)

// credentialRepository is the slice of the public store the identity layer
// needs.
type credentialRepository interface {
	Create(ctx context.Context, user *models.PublicUser) error
	FindByUsername(ctx context.Context, username string) (*models.PublicUser, error)
	FindByID(ctx context.Context, id int64) (*models.PublicUser, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.UserFilter) ([]models.PublicUser, error)
}

// RoleProfileStore is the capability each role-partitioned store exposes to
// the identity layer. Registration and resolution dispatch through this
// interface instead of branching on the role tag.
type RoleProfileStore interface {
	Role() models.Role
	CreateProfile(ctx context.Context, userID int64, fields models.ProfileFields) (*models.Profile, error)
	FindByCredentialID(ctx context.Context, userID int64) (*models.Profile, error)
	FindByLocalID(ctx context.Context, localID int64) (*models.Profile, error)
	DeleteByCredentialID(ctx context.Context, userID int64) error
	ListCredentialIDs(ctx context.Context) ([]int64, error)
}

// Registration is the result of a successful two-store registration.
type Registration struct {
	Credential *models.PublicUser `json:"credential"`
	Profile    *models.Profile    `json:"profile"`
}

// IdentityService links credentials in the public store to role profiles in
// the role stores. It is the only component that touches two physical
// stores in one logical operation, and it does so without any cross-store
// transaction: registration is two sequential writes with a compensation
// step, and every resolution is a second lookup keyed by the stored
// credential id.
type IdentityService struct {
	creds     credentialRepository
	stores    map[models.Role]RoleProfileStore
	validator *validator.Validate
	logger    *zap.Logger
	metrics   *MetricsService
	opTimeout time.Duration
}

// NewIdentityService wires the credential repository and the role profile
// stores into one linker. Metrics may be nil.
func NewIdentityService(creds credentialRepository, profileStores []RoleProfileStore, validate *validator.Validate, logger *zap.Logger, metrics *MetricsService, opTimeout time.Duration) *IdentityService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if opTimeout <= 0 {
		opTimeout = 5 * time.Second
	}
	stores := make(map[models.Role]RoleProfileStore, len(profileStores))
	for _, store := range profileStores {
		stores[store.Role()] = store
	}
	return &IdentityService{
		creds:     creds,
		stores:    stores,
		validator: validate,
		logger:    logger,
		metrics:   metrics,
		opTimeout: opTimeout,
	}
}

// RegisterUser creates the credential and its role profile across two
// physical stores. The protocol:
//
//  1. Create the credential. A duplicate username/email aborts here with
//     zero rows written anywhere.
//  2. Create the role profile, storing the new credential id as a weak
//     reference and deriving the display code from it.
//  3. If the profile write fails, best-effort delete the credential. The
//     delete runs on a fresh context so a cancelled request cannot skip
//     it. If the delete itself fails the credential is left orphaned:
//     login-capable but profile-less. That state is logged distinctly and
//     counted; it is repaired or reported via FindOrphans, never retried
//     here.
func (s *IdentityService) RegisterUser(ctx context.Context, req models.SignupRequest) (*Registration, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}
	store, ok := s.stores[req.Role]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	credential := &models.PublicUser{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         req.Role,
		Active:       true,
	}

	credCtx, cancelCred := context.WithTimeout(ctx, s.opTimeout)
	defer cancelCred()
	if err := s.creds.Create(credCtx, credential); err != nil {
		var appErr *appErrors.Error
		if errors.As(err, &appErr) {
			s.observeRegistration(req.Role, "duplicate")
			return nil, err
		}
		s.observeRegistration(req.Role, "error")
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "credential store write failed")
	}

	profileCtx, cancelProfile := context.WithTimeout(ctx, s.opTimeout)
	defer cancelProfile()
	fields := models.ProfileFields{FirstName: req.FirstName, LastName: req.LastName, Phone: req.Phone}
	profile, err := store.CreateProfile(profileCtx, credential.ID, fields)
	if err != nil {
		s.compensate(credential, err)
		s.observeRegistration(req.Role, "error")
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "profile store write failed")
	}

	s.observeRegistration(req.Role, "success")
	return &Registration{Credential: credential, Profile: profile}, nil
}

// compensate tries to undo a committed credential after the profile write
// failed. Best effort only: there is no cross-store rollback, so a failed
// delete leaves a documented orphan.
func (s *IdentityService) compensate(credential *models.PublicUser, cause error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.opTimeout)
	defer cancel()

	if err := s.creds.Delete(ctx, credential.ID); err != nil {
		s.logger.Error("orphaned credential: profile write failed and compensation failed",
			zap.Int64("credential_id", credential.ID),
			zap.String("role", string(credential.Role)),
			zap.NamedError("profile_error", cause),
			zap.Error(err),
		)
		s.incOrphan()
		return
	}

	s.logger.Warn("registration rolled back: profile write failed, credential deleted",
		zap.Int64("credential_id", credential.ID),
		zap.String("role", string(credential.Role)),
		zap.Error(cause),
	)
}

// ResolveProfile maps a credential id to its role profile. Every
// authenticated role-scoped request goes through here. A missing profile
// for an existing credential is an orphan (or a role mismatch) and is
// surfaced as a distinct not-found error rather than an auth failure.
func (s *IdentityService) ResolveProfile(ctx context.Context, credentialID int64, role models.Role) (*models.Profile, error) {
	store, ok := s.stores[role]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown role")
	}

	opCtx, cancel := context.WithTimeout(ctx, s.opTimeout)
	defer cancel()
	profile, err := store.FindByCredentialID(opCtx, credentialID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "profile store read failed")
	}

	// Distinguish a dangling credential from a stale session id before
	// reporting the miss.
	credCtx, cancelCred := context.WithTimeout(ctx, s.opTimeout)
	defer cancelCred()
	if _, credErr := s.creds.FindByID(credCtx, credentialID); credErr == nil {
		s.logger.Warn("orphaned credential detected during profile resolution",
			zap.Int64("credential_id", credentialID),
			zap.String("role", string(role)),
		)
		s.incOrphan()
	}

	return nil, appErrors.ErrProfileNotFound
}

// FindOrphans reports active credentials whose role store holds no profile
// for them. It is a read-only reconciliation pass: two independent store
// scans joined in application code, since no query can span the stores.
func (s *IdentityService) FindOrphans(ctx context.Context) ([]models.PublicUser, error) {
	active := true
	users, err := s.creds.List(ctx, models.UserFilter{Active: &active})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "credential store read failed")
	}

	linked := make(map[models.Role]map[int64]struct{}, len(s.stores))
	for role, store := range s.stores {
		ids, err := store.ListCredentialIDs(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "profile store read failed")
		}
		set := make(map[int64]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		linked[role] = set
	}

	var orphans []models.PublicUser
	for _, user := range users {
		set, ok := linked[user.Role]
		if !ok {
			continue
		}
		if _, linked := set[user.ID]; !linked {
			orphans = append(orphans, user)
		}
	}
	return orphans, nil
}

// ProfileStore exposes the store registered for a role, for handlers that
// need the role-specific repositories behind the capability.
func (s *IdentityService) ProfileStore(role models.Role) (RoleProfileStore, bool) {
	store, ok := s.stores[role]
	return store, ok
}

func (s *IdentityService) observeRegistration(role models.Role, outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveRegistration(string(role), outcome)
	}
}

func (s *IdentityService) incOrphan() {
	if s.metrics != nil {
		s.metrics.IncOrphanedCredential()
	}
}
