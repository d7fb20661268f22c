package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/platform/logger"
	"github.com/tasknest/tasknest/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db         store.DBTX
	logger     *slog.Logger
	bcryptCost int
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the
// UserStore interface. It accepts a database connection or transaction and a
// bcrypt cost factor for password hashing. If the provided cost is outside
// the valid bcrypt range, bcrypt.DefaultCost is used.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger, bcryptCost int) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &PostgresUserStore{
		db:         db,
		logger:     logger.With(slog.String("component", "user_store")),
		bcryptCost: bcryptCost,
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx implements store.UserStore.WithTx
func (s *PostgresUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return &PostgresUserStore{
		db:         tx,
		logger:     s.logger,
		bcryptCost: s.bcryptCost,
	}
}

// Create implements store.UserStore.Create
// It hashes the user's plaintext password with bcrypt before persisting and
// clears the plaintext field afterwards. Returns store.ErrEmailExists if a
// user with the same email is already registered.
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		log.Warn("user validation failed during create",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), s.bcryptCost)
	if err != nil {
		log.Error("failed to hash password",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = string(hashed)
	user.Password = ""

	query := `
		INSERT INTO users (id, email, name, hashed_password, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Name,
		user.HashedPassword,
		user.EmailVerified,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("attempted to create user with duplicate email",
				slog.String("user_id", user.ID.String()))
			return store.ErrEmailExists
		}

		log.Error("failed to create user",
			slog.String("error", err.Error()),
			slog.String("user_id", user.ID.String()))
		return MapError(err)
	}

	log.Info("user created successfully", slog.String("user_id", user.ID.String()))
	return nil
}

// GetByID implements store.UserStore.GetByID
// Returns store.ErrUserNotFound if no user exists with the given ID.
func (s *PostgresUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, name, hashed_password, email_verified, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found", slog.String("user_id", id.String()))
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by ID",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return nil, MapError(err)
	}

	return user, nil
}

// GetByEmail implements store.UserStore.GetByEmail
// The lookup is case-insensitive: emails are stored lowercased and the input
// is lowercased before comparison.
func (s *PostgresUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, email, name, hashed_password, email_verified, created_at, updated_at
		FROM users
		WHERE email = LOWER($1)
	`

	user, err := scanUser(s.db.QueryRowContext(ctx, query, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("user not found by email")
			return nil, store.ErrUserNotFound
		}
		log.Error("failed to get user by email", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return user, nil
}

// Delete implements store.UserStore.Delete
// The tasks table declares ON DELETE CASCADE on user_id, so all of the
// user's tasks, active and trashed, are removed in the same statement.
func (s *PostgresUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `DELETE FROM users WHERE id = $1`
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete user",
			slog.String("error", err.Error()),
			slog.String("user_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "user"); err != nil {
		return err
	}

	log.Info("user deleted", slog.String("user_id", id.String()))
	return nil
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.HashedPassword,
		&user.EmailVerified,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
