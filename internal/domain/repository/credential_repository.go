// Package repository defines the persistence contracts the use case layer
// depends on, keeping it independent of the concrete storage driver.
package repository

import (
	"context"
	"errors"

	"authgate/internal/domain/entity"
)

// ErrUserNotFound is returned by lookups when no matching user exists.
var ErrUserNotFound = errors.New("user not found")

// CredentialRepository stores user identity records. Uniqueness of username
// and email is enforced by the store itself: Create must fail atomically on a
// collision, regardless of any pre-check the caller performed.
type CredentialRepository interface {
	// FindByUsername retrieves a user by username, or ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByUsernameOrEmail retrieves a user matching either the username or
	// the email, or ErrUserNotFound when neither is taken.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)

	// Create persists a new user. A unique-constraint violation on username
	// or email surfaces as domainerrors.ErrDuplicateCredential.
	Create(ctx context.Context, user *entity.User) error
}
