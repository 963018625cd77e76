package impl

import (
	"io"
	"log/slog"
	"time"

	"credo/config"
	"credo/internal/domain/entity"
	"credo/internal/domain/service"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{
		Auth: &config.AuthConfig{
			BcryptCost:        12,
			AccessTokenTTL:    15 * time.Minute,
			RefreshTokenTTL:   7 * 24 * time.Hour,
			TemporaryTokenTTL: 20 * time.Minute,
		},
		Mail: &config.MailConfig{
			PublicBaseURL: "https://credo.example.com",
		},
	}

	return cfg
}

func futureExpiry() *time.Time {
	t := time.Now().Add(20 * time.Minute)

	return &t
}

func pastExpiry() *time.Time {
	t := time.Now().Add(-time.Minute)

	return &t
}

func strPtr(s string) *string {
	return &s
}

func claimsFor(userID uuid.UUID, tokenType string) *service.Claims {
	return &service.Claims{
		UserID: userID,
		Type:   tokenType,
	}
}

func newTemporaryToken() *entity.TemporaryToken {
	return &entity.TemporaryToken{
		Unhashed:  "plaintext-temporary-token",
		Hashed:    "hashed-temporary-token",
		ExpiresAt: time.Now().Add(20 * time.Minute),
	}
}
