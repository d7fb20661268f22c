package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user, hashing the plaintext password before storage.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Delete removes a user. Task rows cascade at the database level.
	// Returns an error wrapping ErrNotFound if the user does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the given transaction.
	WithTx(tx *sql.Tx) UserStore
}
