package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"credo/internal/delivery/http/validator"
	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	mockUsecase "credo/internal/mocks/usecase"
	"credo/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}

	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestCredentialHandler_Login_SetsCookies(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Username: "alice", Password: "Password123!"}).
		Return(&usecase.LoginOutput{
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			User:         &entity.PublicUser{ID: uuid.New(), Username: "alice"},
		}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"Password123!"}`)

	err := h.Login(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	var names []string
	for _, cookie := range cookies {
		names = append(names, cookie.Name)
		assert.True(t, cookie.HttpOnly, "cookie %s must be httpOnly", cookie.Name)
		assert.True(t, cookie.Secure, "cookie %s must be secure", cookie.Name)
		assert.Equal(t, http.SameSiteNoneMode, cookie.SameSite)
	}
	assert.Contains(t, names, accessTokenCookie)
	assert.Contains(t, names, refreshTokenCookie)

	assert.Contains(t, rec.Body.String(), "access-token")
}

func TestCredentialHandler_Login_MissingPasswordFailsValidation(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"username":"alice"}`)

	err := h.Login(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestCredentialHandler_Login_DomainErrorRendered(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	uc.EXPECT().
		Login(mock.Anything, mock.AnythingOfType("*usecase.LoginInput")).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"))

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"username":"alice","password":"WrongPassword1!"}`)

	err := h.Login(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "INVALID_CREDENTIALS")
	assert.Contains(t, rec.Body.String(), "request_id")
}

func TestCredentialHandler_Register_SurfacesWarning(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	uc.EXPECT().
		Register(mock.Anything, mock.AnythingOfType("*usecase.RegisterInput")).
		Return(&usecase.RegisterOutput{
			User:    &entity.PublicUser{ID: uuid.New(), Username: "alice"},
			Warning: "verification email could not be sent; request a new one via the resend endpoint",
		}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"username":"alice","email":"alice@example.com","password":"Password123!"}`)

	err := h.Register(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "warning")
}

func TestCredentialHandler_VerifyEmail(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	uc.EXPECT().VerifyEmail(mock.Anything, "the-token").Return(nil)

	c, rec := newTestContext(t, http.MethodGet, "/auth/verify-email/the-token", "")
	c.SetParamNames("token")
	c.SetParamValues("the-token")

	err := h.VerifyEmail(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "isEmailVerified")
}

func TestCredentialHandler_RefreshTokens_FromCookie(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	uc.EXPECT().
		RefreshTokens(mock.Anything, "cookie-refresh-token").
		Return(&usecase.RefreshOutput{
			AccessToken:  "new-access",
			RefreshToken: "new-refresh",
		}, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh", "")
	c.Request().AddCookie(&http.Cookie{Name: refreshTokenCookie, Value: "cookie-refresh-token"})

	err := h.RefreshTokens(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "new-access")
}

func TestCredentialHandler_RefreshTokens_MissingToken(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refresh", "")

	err := h.RefreshTokens(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCredentialHandler_Logout_ClearsCookies(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	userID := uuid.New()
	uc.EXPECT().Logout(mock.Anything, userID).Return(nil)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	c.Set("userID", userID)

	err := h.Logout(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		assert.Equal(t, -1, cookie.MaxAge, "cookie %s must be expired", cookie.Name)
		assert.Empty(t, cookie.Value)
	}
}

func TestCredentialHandler_CurrentUser_MissingIdentity(t *testing.T) {
	uc := mockUsecase.NewMockCredentialUsecase(t)
	h := NewCredentialHandler(uc, nil)

	c, rec := newTestContext(t, http.MethodGet, "/user/profile", "")

	err := h.CurrentUser(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
