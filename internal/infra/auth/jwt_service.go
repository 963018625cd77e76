// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"credo/config"
	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	defaultAccessTTL    = 15 * time.Minute
	defaultRefreshTTL   = 7 * 24 * time.Hour
	defaultTemporaryTTL = 20 * time.Minute

	// temporaryTokenBytes is the entropy of verification/reset tokens.
	temporaryTokenBytes = 20
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	accessSecret  string        // Secret key for signing access tokens.
	refreshSecret string        // Secret key for signing refresh tokens.
	accessTTL     time.Duration // Time-to-live for access tokens.
	refreshTTL    time.Duration // Time-to-live for refresh tokens.
	temporaryTTL  time.Duration // Time-to-live for verification/reset tokens.
}

// NewJWTService is the constructor for jwtService.
// Access and refresh tokens use distinct secrets so that compromise of one
// signing key does not compromise the other class.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	svc := &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     defaultAccessTTL,
		refreshTTL:    defaultRefreshTTL,
		temporaryTTL:  defaultTemporaryTTL,
	}

	if cfg.Auth != nil {
		if cfg.Auth.AccessTokenTTL > 0 {
			svc.accessTTL = cfg.Auth.AccessTokenTTL
		}
		if cfg.Auth.RefreshTokenTTL > 0 {
			svc.refreshTTL = cfg.Auth.RefreshTokenTTL
		}
		if cfg.Auth.TemporaryTokenTTL > 0 {
			svc.temporaryTTL = cfg.Auth.TemporaryTokenTTL
		}
	}

	return svc, nil
}

// GenerateTokenPair creates a new access token and refresh token for a given user.
func (s *jwtService) GenerateTokenPair(userID uuid.UUID) (*entity.TokenPair, error) {
	accessToken, err := s.generateToken(userID, s.accessTTL, s.accessSecret, service.TokenTypeAccess)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.generateToken(userID, s.refreshTTL, s.refreshSecret, service.TokenTypeRefresh)
	if err != nil {
		return nil, err
	}

	return &entity.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// ValidateToken checks the validity of a token string of either class.
// The token type claim is read unverified first to select the secret; the
// signature and expiry are then verified against that secret.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	unverified, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token structure")
	}

	mapClaims, ok := unverified.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("unexpected token claims format")
	}

	tokenType, _ := mapClaims["type"].(string)
	var secret string
	switch tokenType {
	case service.TokenTypeAccess:
		secret = s.accessSecret
	case service.TokenTypeRefresh:
		secret = s.refreshSecret
	default:
		return nil, errors.Errorf("unknown token type: %q", tokenType)
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		// Expired and malformed collapse into one outcome.
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "token validation failed")
	}

	verifiedClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "unexpected token claims format")
	}

	subject, _ := verifiedClaims["sub"].(string)
	userID, err := uuid.Parse(subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "invalid subject claim")
	}

	return &service.Claims{
		UserID: userID,
		Type:   tokenType,
	}, nil
}

// IssueTemporaryToken creates a single-use verification/reset token.
// Only the hashed form may be persisted; the plaintext is embedded in the
// outbound link and then discarded.
func (s *jwtService) IssueTemporaryToken() (*entity.TemporaryToken, error) {
	buf := make([]byte, temporaryTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "entropy source failed")
	}

	unhashed := hex.EncodeToString(buf)

	return &entity.TemporaryToken{
		Unhashed:  unhashed,
		Hashed:    s.HashToken(unhashed),
		ExpiresAt: time.Now().Add(s.temporaryTTL),
	}, nil
}

// HashToken returns the hex-encoded SHA-256 digest of a token string.
func (s *jwtService) HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))

	return hex.EncodeToString(digest[:])
}

// RefreshTokenDuration returns the configured duration for refresh tokens.
func (s *jwtService) RefreshTokenDuration() time.Duration {
	return s.refreshTTL
}

// generateToken is a private helper to create a JWT with specific claims.
func (s *jwtService) generateToken(userID uuid.UUID, ttl time.Duration, secret, tokenType string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  userID.String(),     // Subject (who the token is for)
		"iat":  now.Unix(),          // Issued At
		"exp":  now.Add(ttl).Unix(), // Expiration Time
		"type": tokenType,           // Type of token (access or refresh)
		"jti":  uuid.New().String(), // Unique token id so two tokens issued in the same second differ
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrTokenGenerationFailed, "failed to sign token")
	}

	return signed, nil
}
