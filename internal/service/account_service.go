package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/repository"
	apperrors "github.com/spec-kit/account-service/pkg/util"
)

// AccountService coordinates registration, login and user CRUD flows.
type AccountService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	cache      *UserCache
	bcryptCost int
}

// AccountDependencies encapsulates collaborator requirements.
type AccountDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Cache      *UserCache
}

// NewAccountService builds the service from immutable configuration.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth),
		dispatcher: deps.Dispatcher,
		cache:      deps.Cache,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a self-service account with the default role and issues a
// token for it.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (*domain.User, string, time.Time, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", time.Time{}, apperrors.NewDuplicateEmail(email)
	} else if err != pgx.ErrNoRows {
		return nil, "", time.Time{}, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.DefaultRole,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", time.Time{}, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Name:  user.Name,
		Email: user.Email,
	})

	token, exp, err := s.tokenMgr.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Login verifies credentials and issues a token embedding the stored role.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewInvalidCredentials()
	}

	token, exp, err := s.tokenMgr.Generate(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Get fetches a single user, serving repeat reads from cache.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.User, error) {
	if user, ok := s.cache.Get(ctx, id); ok {
		return user, nil
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	s.cache.Set(ctx, user)
	return user, nil
}

// List returns all users.
func (s *AccountService) List(ctx context.Context) ([]*domain.User, error) {
	return s.users.List(ctx)
}

// Create adds an account with an explicit role, for admin use.
func (s *AccountService) Create(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(role)})
	}
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail(email)
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserCreated, user.ID, events.UserCreatedPayload{
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	})
	return user, nil
}

// UserUpdate carries optional fields for Update. Nil fields are untouched.
type UserUpdate struct {
	Name     *string
	Email    *string
	Password *string
	Role     *domain.Role
}

// Update applies the given changes. A changed role takes effect on the next
// issued token; outstanding tokens keep their original claims until expiry.
func (s *AccountService) Update(ctx context.Context, id string, upd UserUpdate) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}

	var fields []string
	if upd.Name != nil {
		user.Name = *upd.Name
		fields = append(fields, "name")
	}
	if upd.Email != nil {
		user.Email = *upd.Email
		fields = append(fields, "email")
	}
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		fields = append(fields, "password")
	}
	if upd.Role != nil {
		if !upd.Role.Valid() {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(*upd.Role)})
		}
		user.Role = *upd.Role
		fields = append(fields, "role")
	}
	if len(fields) == 0 {
		return user, nil
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, user.ID)

	s.publish(ctx, events.EventUserUpdated, user.ID, events.UserUpdatedPayload{Fields: fields})
	return user, nil
}

// Delete removes an account.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)

	s.publish(ctx, events.EventUserDeleted, id, events.UserDeletedPayload{Email: user.Email})
	return nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AccountService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
