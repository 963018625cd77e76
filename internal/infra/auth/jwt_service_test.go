package auth

import (
	"testing"
	"time"

	"credo/config"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(t *testing.T) *jwtService {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	concrete, ok := svc.(*jwtService)
	require.True(t, ok)

	return concrete
}

func TestNewJWTService_RequiresSecrets(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "only-access"

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidateTokenPair(t *testing.T) {
	svc := newTestJWTService(t)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(userID)
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	accessClaims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, accessClaims.UserID)
	assert.Equal(t, service.TokenTypeAccess, accessClaims.Type)

	refreshClaims, err := svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, service.TokenTypeRefresh, refreshClaims.Type)
}

func TestJWTService_ValidateToken_Malformed(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.ValidateToken("not-a-jwt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse token structure")
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	svc := newTestJWTService(t)

	otherCfg := &config.Config{}
	otherCfg.SecretKey.Access = "a-different-access-secret"
	otherCfg.SecretKey.Refresh = "a-different-refresh-secret"
	other, err := NewJWTService(otherCfg)
	require.NoError(t, err)

	pair, err := other.GenerateTokenPair(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_ValidateToken_Expired(t *testing.T) {
	svc := newTestJWTService(t)
	svc.accessTTL = -time.Minute

	pair, err := svc.GenerateTokenPair(uuid.New())
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
	// Expired and tampered tokens are indistinguishable to the caller.
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestJWTService_IssueTemporaryToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.IssueTemporaryToken()
	require.NoError(t, err)
	require.NotNil(t, token)

	// 20 random bytes, hex encoded
	assert.Len(t, token.Unhashed, 40)
	assert.Equal(t, svc.HashToken(token.Unhashed), token.Hashed)
	assert.NotEqual(t, token.Unhashed, token.Hashed)
	assert.True(t, token.ExpiresAt.After(time.Now()))

	// Two issued tokens never collide
	second, err := svc.IssueTemporaryToken()
	require.NoError(t, err)
	assert.NotEqual(t, token.Unhashed, second.Unhashed)
}

func TestJWTService_HashToken_Deterministic(t *testing.T) {
	svc := newTestJWTService(t)

	first := svc.HashToken("some-token")
	second := svc.HashToken("some-token")
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, svc.HashToken("another-token"))
}

func TestJWTService_RefreshTokenDuration(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret-for-tests"
	cfg.SecretKey.Refresh = "refresh-secret-for-tests"
	cfg.Auth = &config.AuthConfig{RefreshTokenTTL: 48 * time.Hour}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, svc.RefreshTokenDuration())
}
