package usecase

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iho/tradejournal/internal/domain"
	"github.com/iho/tradejournal/internal/infrastructure/metrics"
)

// UserUseCase handles registration and authentication.
type UserUseCase struct {
	userRepo  UserRepository
	auditRepo AuditRepository
	idGen     IDGenerator
	metrics   *metrics.Metrics
}

// NewUserUseCase creates a new UserUseCase. auditRepo and metrics may
// be nil to disable the audit trail and instrumentation.
func NewUserUseCase(userRepo UserRepository, auditRepo AuditRepository, idGen IDGenerator, metrics *metrics.Metrics) *UserUseCase {
	return &UserUseCase{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		idGen:     idGen,
		metrics:   metrics,
	}
}

// RegisterInput represents input for registering a user.
type RegisterInput struct {
	Email    string
	Name     string
	Password string
}

// Register creates a new user with a hashed password.
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: string(hashed),
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Never hand the hash back to callers.
	out := *user
	out.HashedPassword = ""

	uc.audit(ctx, domain.AuditActionUserRegister, user.ID, domain.AuditStatusSuccess, &out)
	return &out, nil
}

// AuthenticateInput represents authentication input.
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies user credentials.
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		uc.countAuth("failure", "unknown_email")
		return nil, domain.ErrUnauthorized
	}

	if !user.Active {
		uc.countAuth("failure", "inactive")
		uc.audit(ctx, domain.AuditActionUserLogin, user.ID, domain.AuditStatusFailure, nil)
		return nil, domain.ErrUserInactive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(input.Password)); err != nil {
		uc.countAuth("failure", "bad_password")
		uc.audit(ctx, domain.AuditActionUserLogin, user.ID, domain.AuditStatusFailure, nil)
		return nil, domain.ErrUnauthorized
	}

	user.HashedPassword = ""

	uc.countAuth("success", "")
	uc.audit(ctx, domain.AuditActionUserLogin, user.ID, domain.AuditStatusSuccess, nil)
	return user, nil
}

// GetUser retrieves a user by ID.
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// audit records an authentication event. Auth flows run outside any
// transaction, so failures only drop the trail entry, never the login.
func (uc *UserUseCase) audit(ctx context.Context, action domain.AuditAction, userID string, status domain.AuditStatus, state *domain.User) {
	if uc.auditRepo == nil {
		return
	}

	entry := &domain.AuditLog{
		UserID:       userID,
		Action:       string(action),
		ResourceType: domain.AggregateTypeUser,
		ResourceID:   userID,
		Status:       string(status),
		CreatedAt:    time.Now().UTC(),
	}
	if state != nil {
		entry.AfterState = domain.MarshalState(state)
	}

	if err := uc.auditRepo.Create(ctx, entry); err != nil {
		return
	}

	if uc.metrics != nil {
		uc.metrics.AuditLogsCreated.WithLabelValues(string(action), string(status)).Inc()
	}
}

func (uc *UserUseCase) countAuth(status, reason string) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.AuthAttempts.WithLabelValues(status).Inc()
	if reason != "" {
		uc.metrics.AuthFailures.WithLabelValues(reason).Inc()
	}
}
