// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core entity of the system, representing an account and the
// credential material attached to it. Token and password fields hold hashes
// only; plaintext secrets never reach this struct.
type User struct {
	ID           uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Username     string    // Unique login handle, stored lowercase and trimmed.
	Email        string    // Unique contact email, stored lowercase and trimmed.
	FullName     string    // The user's display name.
	PasswordHash string    // bcrypt hash of the password. Never empty once the account exists.

	EmailVerified           bool       // Whether the email address has been confirmed.
	VerificationTokenHash   *string    // SHA-256 hash of the outstanding verification token, nil when none.
	VerificationTokenExpiry *time.Time // Expiry of the outstanding verification token.

	PasswordResetTokenHash   *string    // SHA-256 hash of the outstanding password reset token, nil when none.
	PasswordResetTokenExpiry *time.Time // Expiry of the outstanding password reset token.

	RefreshTokenHash *string // SHA-256 hash of the latest issued refresh token. At most one is valid per user.

	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification to this account.
}

// ClearVerificationToken removes the stored verification token material.
// Called once the email is confirmed so the token cannot be replayed.
func (u *User) ClearVerificationToken() {
	u.VerificationTokenHash = nil
	u.VerificationTokenExpiry = nil
}

// ClearPasswordResetToken removes the stored password reset token material.
func (u *User) ClearPasswordResetToken() {
	u.PasswordResetTokenHash = nil
	u.PasswordResetTokenExpiry = nil
}

// PublicUser is the stripped view of a User that is safe to return to
// callers: no password hash, no token hashes or expiries.
type PublicUser struct {
	ID            uuid.UUID `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	FullName      string    `json:"fullName"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Public maps the user to its stripped view.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		FullName:      u.FullName,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
