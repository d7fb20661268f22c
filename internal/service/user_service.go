package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/service/auth"
	"github.com/tasknest/tasknest/internal/store"
)

// UserService provides account operations for the web API.
type UserService interface {
	// Register creates a new account. Returns ErrEmailTaken if the email is
	// already registered.
	Register(ctx context.Context, email, name, password string) (*domain.User, error)

	// Authenticate verifies an email/password pair. Returns
	// ErrInvalidCredentials on unknown email or wrong password; the two cases
	// are indistinguishable to the caller.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)

	// GetUser retrieves a user by their ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// DeleteUser removes the account. The user's tasks, active and trashed,
	// cascade at the database level.
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore store.UserStore
	verifier  auth.PasswordVerifier
	logger    *slog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	verifier auth.PasswordVerifier,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		userStore: userStore,
		verifier:  verifier,
		logger:    logger.With("component", "user_service"),
	}
}

var _ UserService = (*UserServiceImpl)(nil)

// Register creates a new user account.
func (s *UserServiceImpl) Register(ctx context.Context, email, name, password string) (*domain.User, error) {
	user, err := domain.NewUser(email, name, password)
	if err != nil {
		s.logger.Debug("user registration rejected",
			"error", err)
		return nil, NewValidationError(err.Error())
	}

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
			return nil, ErrEmailTaken
		}
		s.logger.Error("failed to save user",
			"error", err)
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info("user registered",
		"user_id", user.ID)
	return user, nil
}

// Authenticate verifies credentials against the stored bcrypt hash.
func (s *UserServiceImpl) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			s.logger.Debug("login attempt for unknown email")
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to load user for authentication",
			"error", err)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		s.logger.Debug("login attempt with wrong password",
			"user_id", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("user authenticated",
		"user_id", user.ID)
	return user, nil
}

// GetUser retrieves a user by their ID.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("failed to retrieve user",
			"error", err,
			"user_id", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the account and all of its tasks.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	if err := s.userStore.Delete(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("failed to delete user",
			"error", err,
			"user_id", userID)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user account deleted",
		"user_id", userID)
	return nil
}
