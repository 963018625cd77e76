// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"credo/internal/delivery/http/response"
	"credo/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	accessTokenCookie  = "accessToken"
	refreshTokenCookie = "refreshToken"
)

// registerRequest is the registration payload.
type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullName" validate:"max=128"`
}

// loginRequest accepts either username or email as the identifier.
type loginRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=32"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type emailRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required"`
}

// CredentialHandler holds dependencies for credential and session handlers.
type CredentialHandler struct {
	uc     usecase.CredentialUsecase
	logger *slog.Logger
}

// NewCredentialHandler is the constructor for CredentialHandler, injected by Fx.
func NewCredentialHandler(uc usecase.CredentialUsecase, logger *slog.Logger) *CredentialHandler {
	return &CredentialHandler{
		uc:     uc,
		logger: logger,
	}
}

// Register handles the account registration request.
func (h *CredentialHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if output.Warning != "" {
		return response.SuccessWithWarning(c, http.StatusCreated, output.User, output.Warning)
	}

	return response.Success(c, http.StatusCreated, output.User)
}

// Login handles the login request and sets the token cookies.
func (h *CredentialHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	setTokenCookie(c, accessTokenCookie, output.AccessToken)
	setTokenCookie(c, refreshTokenCookie, output.RefreshToken)

	return response.Success(c, http.StatusOK, map[string]any{
		"user":         output.User,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	})
}

// VerifyEmail consumes the verification token from the link.
func (h *CredentialHandler) VerifyEmail(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return response.BadRequest(c, "TOKEN_INVALID", "Verification token is missing")
	}

	if err := h.uc.VerifyEmail(c.Request().Context(), token); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"isEmailVerified": true})
}

// ResendVerificationEmail issues a fresh verification email.
func (h *CredentialHandler) ResendVerificationEmail(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ResendVerificationEmail(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "If the account exists and is unverified, a new email has been sent"})
}

// RefreshTokens rotates the token pair. The refresh token is read from the
// cookie first, then from the request body.
func (h *CredentialHandler) RefreshTokens(c echo.Context) error {
	refreshToken := ""
	if cookie, err := c.Cookie(refreshTokenCookie); err == nil {
		refreshToken = cookie.Value
	}
	if refreshToken == "" {
		var req refreshRequest
		if err := c.Bind(&req); err == nil {
			refreshToken = req.RefreshToken
		}
	}
	if refreshToken == "" {
		return response.Unauthorized(c, "TOKEN_INVALID", "Refresh token is missing")
	}

	output, err := h.uc.RefreshTokens(c.Request().Context(), refreshToken)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	setTokenCookie(c, accessTokenCookie, output.AccessToken)
	setTokenCookie(c, refreshTokenCookie, output.RefreshToken)

	return response.Success(c, http.StatusOK, map[string]string{
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
	})
}

// Logout revokes the stored refresh token and clears the cookies.
func (h *CredentialHandler) Logout(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	if err := h.uc.Logout(c.Request().Context(), userID); err != nil {
		return response.HandleAppError(c, err)
	}

	clearTokenCookie(c, accessTokenCookie)
	clearTokenCookie(c, refreshTokenCookie)

	return response.Success(c, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// ForgotPassword sends the password reset email.
func (h *CredentialHandler) ForgotPassword(c echo.Context) error {
	var req emailRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "If the account exists, a reset email has been sent"})
}

// ResetPassword consumes the reset token and replaces the password.
func (h *CredentialHandler) ResetPassword(c echo.Context) error {
	token := c.Param("token")
	if token == "" {
		return response.BadRequest(c, "TOKEN_INVALID", "Reset token is missing")
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.uc.ResetPassword(c.Request().Context(), token, req.NewPassword); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password reset successfully"})
}

// CurrentUser returns the authenticated account's profile.
func (h *CredentialHandler) CurrentUser(c echo.Context) error {
	userID, ok := c.Get("userID").(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_INVALID", "Invalid user ID in token")
	}

	user, err := h.uc.CurrentUser(c.Request().Context(), userID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func setTokenCookie(c echo.Context, name, value string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearTokenCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
