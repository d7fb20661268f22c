package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrEmptyEmail          = errors.New("email cannot be empty")
	ErrPasswordTooShort    = errors.New("password must be at least 12 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

// User represents a registered user of the task service.
// A user owns zero or more tasks; deleting a user cascades to their tasks
// at the database level.
type User struct {
	ID             uuid.UUID `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name,omitempty"`
	EmailVerified  bool      `json:"email_verified"`
	Password       string    `json:"-"` // Plaintext, held only during registration
	HashedPassword string    `json:"-"` // Never expose the hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email, name and password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: the caller is responsible for hashing the password before storing
// the user; this function only carries the plaintext.
func NewUser(email, name, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Email:     strings.ToLower(strings.TrimSpace(email)),
		Name:      strings.TrimSpace(name),
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if u.Password != "" {
		if len(u.Password) < 12 {
			return ErrPasswordTooShort
		}
		// bcrypt's practical input limit
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// Users loaded from the store carry only the hash.
		return ErrEmptyPassword
	}

	return nil
}

// validEmailFormat performs a basic structural check: one '@' with a dotted
// domain after it. Request-level validation uses the validator package's
// "email" tag; this is a last line of defense for programmatic construction.
func validEmailFormat(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	domain := email[at+1:]
	dot := strings.Index(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
