// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"credo/internal/delivery/http/middleware"
	"credo/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CredentialHandler *handler.CredentialHandler
	AuthMiddleware    *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	credentialHandler *handler.CredentialHandler
	authMiddleware    *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		credentialHandler: params.CredentialHandler,
		authMiddleware:    params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.credentialHandler.Register)
		authGroup.POST("/login", r.credentialHandler.Login)
		authGroup.GET("/verify-email/:token", r.credentialHandler.VerifyEmail)
		authGroup.POST("/resend-verification", r.credentialHandler.ResendVerificationEmail)
		authGroup.POST("/refresh", r.credentialHandler.RefreshTokens)
		authGroup.POST("/forgot-password", r.credentialHandler.ForgotPassword)
		authGroup.POST("/reset-password/:token", r.credentialHandler.ResetPassword)
		authGroup.POST("/logout", r.credentialHandler.Logout, r.authMiddleware.Authenticate)
	}

	// User routes that require authentication
	userGroup := e.Group("/user")
	userGroup.Use(r.authMiddleware.Authenticate) // Apply JWT authentication middleware
	{
		userGroup.GET("/profile", r.credentialHandler.CurrentUser)
	}
}
