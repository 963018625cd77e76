// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"credo/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	FullName string
}

// LoginInput defines the data required for a user to log in.
// Either Username or Email identifies the account; Password is mandatory.
type LoginInput struct {
	Username string
	Email    string
	Password string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's stripped view.
// Warning is set when the account was created but the verification email
// could not be sent; the registration itself still succeeded.
type RegisterOutput struct {
	User    *entity.PublicUser
	Warning string
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.PublicUser
}

// RefreshOutput returns the rotated token pair.
type RefreshOutput struct {
	AccessToken  string
	RefreshToken string
}

// CredentialUsecase defines the interface for credential and session
// issuance operations. This is the contract that the delivery layer
// (e.g., API handlers) will depend on.
type CredentialUsecase interface {
	// Register creates an unverified account and attempts to send the
	// verification email. Mail failure surfaces as a warning, not an error.
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login verifies the password and issues a fresh token pair, replacing
	// any previously stored refresh token.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// VerifyEmail consumes an unhashed verification token. Expired,
	// malformed and already-consumed tokens are indistinguishable.
	VerifyEmail(ctx context.Context, token string) error

	// ResendVerificationEmail issues a new verification token for an
	// unverified account. Unknown and already-verified addresses succeed
	// silently so the endpoint does not enumerate accounts.
	ResendVerificationEmail(ctx context.Context, email string) error

	// RefreshTokens validates a refresh token against its stored hash and
	// rotates the pair; the prior refresh token becomes invalid.
	RefreshTokens(ctx context.Context, refreshToken string) (*RefreshOutput, error)

	// Logout revokes the stored refresh token, ending the session.
	Logout(ctx context.Context, userID uuid.UUID) error

	// ForgotPassword issues a password reset token and emails the reset
	// link. Unknown addresses succeed silently.
	ForgotPassword(ctx context.Context, email string) error

	// ResetPassword consumes an unhashed reset token, replaces the password
	// and revokes the stored refresh token.
	ResetPassword(ctx context.Context, token, newPassword string) error

	// CurrentUser returns the stripped view of the authenticated account.
	CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)
}
