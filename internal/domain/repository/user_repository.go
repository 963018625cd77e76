// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"credo/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
// Uniqueness of username and email is enforced by the store; callers treat
// any pre-existence check as best effort and must handle a constraint
// violation surfacing from Create.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsernameOrEmail retrieves a user matching either identifier.
	// Either argument may be empty; an empty argument matches nothing.
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error)

	// FindByEmail retrieves a single user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByVerificationTokenHash retrieves the user holding the given
	// verification token hash. Expiry is not checked here; that is the
	// caller's concern.
	FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// FindByPasswordResetTokenHash retrieves the user holding the given
	// password reset token hash.
	FindByPasswordResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error
}
