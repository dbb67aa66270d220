package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"foodlocker/internal/domain"
	"foodlocker/internal/errors"
)

type UserRepository interface {
	FindByUserID(ctx context.Context, userID string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) error
	UpdatePhone(ctx context.Context, userID, phone string, updatedAt time.Time) error
	UpdateProfile(ctx context.Context, userID string, fields map[string]any, updatedAt time.Time) error
}

type ManagerRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.StoreManager, error)
	FindByID(ctx context.Context, id string) (*domain.StoreManager, error)
}

// CredentialVerifier is the capability boundary for store-manager secrets.
// The stored format is not assumed here; swapping in a hashed scheme means
// swapping this implementation.
type CredentialVerifier interface {
	Verify(stored, presented string) bool
}

// PlaintextVerifier matches the deployed manager collection, which holds
// plain shared secrets.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

type AccountService struct {
	users    UserRepository
	managers ManagerRepository
	verifier CredentialVerifier
	logger   *zap.Logger
}

func NewAccountService(users UserRepository, managers ManagerRepository, verifier CredentialVerifier, logger *zap.Logger) *AccountService {
	return &AccountService{
		users:    users,
		managers: managers,
		verifier: verifier,
		logger:   logger,
	}
}

type RegisterUserInput struct {
	UserID       string
	Name         string
	Email        string
	Phone        *string
	Newsletter   bool
	AuthProvider string
}

// RegisterUser creates the user, or when the userId already exists, updates
// the phone field if one was sent and returns the stored record.
func (s *AccountService) RegisterUser(ctx context.Context, input RegisterUserInput) (*domain.User, error) {
	if input.UserID == "" {
		return nil, errors.NewValidationError("validation failed", errors.ValidationDetail{
			Field:   "userId",
			Message: "userId is required",
		})
	}

	existing, err := s.users.FindByUserID(ctx, input.UserID)
	if err == nil {
		if input.Phone != nil {
			if err := s.users.UpdatePhone(ctx, input.UserID, *input.Phone, time.Now().UTC()); err != nil {
				return nil, errors.NewInternalError("updating user phone", err)
			}
			return s.users.FindByUserID(ctx, input.UserID)
		}
		return existing, nil
	}
	if _, ok := errors.IsNotFoundError(err); !ok {
		return nil, errors.NewInternalError("looking up user", err)
	}

	now := time.Now().UTC()
	authProvider := input.AuthProvider
	if authProvider == "" {
		authProvider = "email"
	}

	user := &domain.User{
		ID:           uuid.New().String(),
		UserID:       input.UserID,
		Name:         input.Name,
		Email:        input.Email,
		Newsletter:   input.Newsletter,
		AuthProvider: authProvider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, errors.NewInternalError("persisting user", err)
	}

	s.logger.Info("user registered",
		zap.String("userId", user.UserID),
		zap.String("authProvider", user.AuthProvider),
	)

	return user, nil
}

func (s *AccountService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.users.FindByUserID(ctx, userID)
}

func (s *AccountService) UpdateUser(ctx context.Context, userID string, fields map[string]any) (*domain.User, error) {
	if err := s.users.UpdateProfile(ctx, userID, fields, time.Now().UTC()); err != nil {
		return nil, errors.NewInternalError("updating user", err)
	}
	return s.users.FindByUserID(ctx, userID)
}

// Login verifies a store manager's shared secret and returns the scope
// descriptor. Unknown usernames and wrong passwords produce the same
// UnauthorizedError so responses cannot be used to enumerate accounts.
func (s *AccountService) Login(ctx context.Context, username, password string) (*domain.StoreManager, error) {
	manager, err := s.managers.FindByUsername(ctx, username)
	if err != nil {
		if _, ok := errors.IsNotFoundError(err); ok {
			return nil, errors.NewUnauthorizedError("invalid username or password")
		}
		return nil, errors.NewInternalError("looking up store manager", err)
	}

	if !s.verifier.Verify(manager.Password, password) {
		return nil, errors.NewUnauthorizedError("invalid username or password")
	}

	s.logger.Info("store manager logged in",
		zap.String("managerId", manager.ID),
		zap.Bool("isAdmin", manager.IsAdmin),
	)

	return manager, nil
}

func (s *AccountService) GetManager(ctx context.Context, id string) (*domain.StoreManager, error) {
	return s.managers.FindByID(ctx, id)
}
