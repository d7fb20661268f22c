package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasknest/tasknest/internal/domain"
	"github.com/tasknest/tasknest/internal/service/auth"
	"github.com/tasknest/tasknest/internal/store"
	"golang.org/x/crypto/bcrypt"
)

// fakeUserStore is an in-memory UserStore. Create hashes with the minimum
// bcrypt cost to keep the tests fast.
type fakeUserStore struct {
	byID    map[uuid.UUID]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byID:    make(map[uuid.UUID]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
}

var _ store.UserStore = (*fakeUserStore)(nil)

func (f *fakeUserStore) Create(ctx context.Context, user *domain.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return store.ErrEmailExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.MinCost)
	if err != nil {
		return err
	}
	user.HashedPassword = string(hashed)
	user.Password = ""

	clone := *user
	f.byID[user.ID] = &clone
	f.byEmail[user.Email] = &clone
	return nil
}

func (f *fakeUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, ok := f.byID[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, ok := f.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	user, ok := f.byID[id]
	if !ok {
		return store.ErrUserNotFound
	}
	delete(f.byID, id)
	delete(f.byEmail, user.Email)
	return nil
}

func (f *fakeUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return f
}

func TestUserServiceRegister(t *testing.T) {
	t.Parallel()

	t.Run("registers and lowercases email", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newFakeUserStore(), auth.NewBcryptVerifier(), nil)

		user, err := svc.Register(context.Background(), "Ada@Example.COM", "Ada", "a-long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Empty(t, user.Password)
		assert.NotEmpty(t, user.HashedPassword)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newFakeUserStore(), auth.NewBcryptVerifier(), nil)

		_, err := svc.Register(context.Background(), "dup@example.com", "First", "a-long-enough-password")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "dup@example.com", "Second", "a-long-enough-password")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("short password rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newFakeUserStore(), auth.NewBcryptVerifier(), nil)

		_, err := svc.Register(context.Background(), "ada@example.com", "Ada", "short")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("invalid email rejected", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newFakeUserStore(), auth.NewBcryptVerifier(), nil)

		_, err := svc.Register(context.Background(), "not-an-email", "Ada", "a-long-enough-password")
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestUserServiceAuthenticate(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, auth.NewBcryptVerifier(), nil)

	registered, err := svc.Register(context.Background(), "ada@example.com", "Ada", "a-long-enough-password")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		t.Parallel()
		user, err := svc.Authenticate(context.Background(), "ada@example.com", "a-long-enough-password")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(context.Background(), "ada@example.com", "wrong-password-entirely")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Authenticate(context.Background(), "nobody@example.com", "a-long-enough-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserServiceDelete(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	svc := NewUserService(users, auth.NewBcryptVerifier(), nil)

	user, err := svc.Register(context.Background(), "gone@example.com", "Gone", "a-long-enough-password")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(context.Background(), user.ID))

	_, err = svc.GetUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.DeleteUser(context.Background(), user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
