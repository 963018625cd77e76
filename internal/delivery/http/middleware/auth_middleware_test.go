package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"credo/internal/domain/service"
	mockSvc "credo/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func nextRecorder(called *bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		*called = true

		return c.NoContent(http.StatusOK)
	}
}

func TestAuthMiddleware_AccessTokenFromCookie(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	userID := uuid.New()
	tokenSvc.EXPECT().ValidateToken("valid-access-token").
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeAccess}, nil)

	c, rec := newAuthTestContext(t)
	c.Request().AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "valid-access-token"})

	called := false
	err := m.Authenticate(nextRecorder(&called))(c)
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, c.Get("userID"))
}

func TestAuthMiddleware_AccessTokenFromBearerHeader(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	userID := uuid.New()
	tokenSvc.EXPECT().ValidateToken("header-access-token").
		Return(&service.Claims{UserID: userID, Type: service.TokenTypeAccess}, nil)

	c, _ := newAuthTestContext(t)
	c.Request().Header.Set("Authorization", "Bearer header-access-token")

	called := false
	err := m.Authenticate(nextRecorder(&called))(c)
	require.NoError(t, err)
	assert.True(t, called)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().ValidateToken("valid-refresh-token").
		Return(&service.Claims{UserID: uuid.New(), Type: service.TokenTypeRefresh}, nil)

	c, rec := newAuthTestContext(t)
	c.Request().AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "valid-refresh-token"})

	called := false
	err := m.Authenticate(nextRecorder(&called))(c)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, c.Get("userID"))
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	tokenSvc.EXPECT().ValidateToken("garbage").
		Return(nil, errors.New("token validation failed"))

	c, rec := newAuthTestContext(t)
	c.Request().AddCookie(&http.Cookie{Name: accessTokenCookie, Value: "garbage"})

	called := false
	err := m.Authenticate(nextRecorder(&called))(c)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	tokenSvc := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokenSvc)

	c, rec := newAuthTestContext(t)

	called := false
	err := m.Authenticate(nextRecorder(&called))(c)
	require.NoError(t, err)
	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
