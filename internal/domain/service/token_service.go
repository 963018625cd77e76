package service

import (
	"time"

	"credo/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token type claim values. Every issuer and every consumer of the Type
// claim compares against these.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Claims defines the custom claims carried by the JWT tokens.
type Claims struct {
	UserID uuid.UUID
	Type   string // TokenTypeAccess or TokenTypeRefresh
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateTokenPair creates a new access token and refresh token for a given user.
	// The two tokens are signed with distinct secrets so that compromise of
	// one class does not compromise the other.
	GenerateTokenPair(userID uuid.UUID) (*entity.TokenPair, error)

	// ValidateToken checks the validity of a token string of either class
	// and returns its claims. Expired and malformed tokens are
	// indistinguishable to the caller.
	ValidateToken(tokenString string) (*Claims, error)

	// IssueTemporaryToken creates a single-use token for email verification
	// or password reset: a cryptographically random plaintext, its SHA-256
	// hash, and a fixed expiry window.
	IssueTemporaryToken() (*entity.TemporaryToken, error)

	// HashToken returns the hex-encoded SHA-256 digest of a token string,
	// the form in which refresh and temporary tokens are persisted.
	HashToken(token string) string

	// RefreshTokenDuration returns the configured lifetime of refresh tokens.
	RefreshTokenDuration() time.Duration
}
