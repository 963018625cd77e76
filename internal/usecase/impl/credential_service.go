// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"credo/config"
	deliverycontext "credo/internal/delivery/context"
	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/repository"
	"credo/internal/domain/service"
	"credo/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// mailWarning is surfaced to the caller when registration succeeded but the
// verification email could not be delivered.
const mailWarning = "verification email could not be sent; request a new one via the resend endpoint"

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	mailService  service.MailService
	baseURL      string
	logger       *slog.Logger
}

// CredentialServiceParams holds dependencies for credentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	MailService  service.MailService
	Config       *config.Config
	Logger       *slog.Logger
}

// NewCredentialService is the constructor for credentialService. It receives all dependencies as interfaces.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	baseURL := ""
	if params.Config != nil && params.Config.Mail != nil {
		baseURL = strings.TrimRight(params.Config.Mail.PublicBaseURL, "/")
	}

	return &credentialService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		mailService:  params.MailService,
		baseURL:      baseURL,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register orchestrates the complete registration process: duplicate check,
// password hashing, account creation and the verification email.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	username := normalizeIdentifier(input.Username)
	email := normalizeIdentifier(input.Email)
	fullName := strings.TrimSpace(input.FullName)

	// Validation proper belongs to the delivery layer; essential fields are
	// re-checked here so the service never writes a half-formed record.
	if username == "" || email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "username, email and password are required")
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		srv.log(ctx).Warn("Password validation failed during registration", slog.String("email", email))

		return nil, domainerrors.ErrPasswordStrength.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash password during registration")
	}

	verification, err := srv.tokenService.IssueTemporaryToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue verification token")
	}

	newUser := &entity.User{
		Username:                username,
		Email:                   email,
		FullName:                fullName,
		PasswordHash:            hashedPassword,
		EmailVerified:           false,
		VerificationTokenHash:   &verification.Hashed,
		VerificationTokenExpiry: &verification.ExpiresAt,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// Best-effort pre-check. The unique indexes on username and email
		// remain the source of truth; a concurrent insert surfaces from
		// Create as ErrUserAlreadyExists.
		_, findErr := userRepo.FindByUsernameOrEmail(ctx, username, email)
		if findErr == nil {
			return errors.Wrap(domainerrors.ErrUserAlreadyExists, "duplicate registration")
		}
		if !errors.Is(findErr, repository.ErrUserNotFound) {
			return errors.Wrap(findErr, "failed to check for existing user")
		}

		return userRepo.Create(ctx, newUser)
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	output := &usecase.RegisterOutput{User: newUser.Public()}

	// The account is durably persisted at this point; a mail failure must
	// not unwind it, so it is downgraded to a warning.
	link := srv.verificationLink(verification.Unhashed)
	if mailErr := srv.mailService.SendVerificationEmail(ctx, email, username, link); mailErr != nil {
		srv.log(ctx).Warn("Failed to send verification email",
			slog.String("email", email), slog.Any("error", mailErr))
		output.Warning = mailWarning
	}

	srv.log(ctx).Debug("Registration completed", slog.Any("userID", newUser.ID))

	return output, nil
}

// Login verifies the password and issues a fresh token pair. The stored
// refresh token hash is overwritten, invalidating the previous session.
func (srv *credentialService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	username := normalizeIdentifier(input.Username)
	email := normalizeIdentifier(input.Email)

	if (username == "" && email == "") || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "an identifier and password are required")
	}

	user, err := srv.userRepo.FindByUsernameOrEmail(ctx, username, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Unknown identifier and wrong password are indistinguishable.
			return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
		}

		return nil, errors.Wrap(err, "failed to look up user for login")
	}

	// bcrypt comparison is CPU-bound; no transaction is held across it.
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	pair, err := srv.tokenService.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	// Last write wins: concurrent logins race harmlessly and the most
	// recently stored hash is the only valid refresh token.
	if err := srv.storeRefreshToken(ctx, user, pair.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to persist refresh token during login")
	}

	srv.log(ctx).Debug("User logged in", slog.Any("userID", user.ID))

	return &usecase.LoginOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         user.Public(),
	}, nil
}

// VerifyEmail consumes an unhashed verification token.
func (srv *credentialService) VerifyEmail(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "verification token is required")
	}

	tokenHash := srv.tokenService.HashToken(token)

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByVerificationTokenHash(ctx, tokenHash)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrTokenInvalid, "verification token not recognized")
			}

			return errors.Wrap(findErr, "failed to look up verification token")
		}

		if expired(user.VerificationTokenExpiry) {
			return errors.Wrap(domainerrors.ErrTokenInvalid, "verification token expired")
		}

		// Single use: the hash is cleared in the same write that flips the flag.
		user.EmailVerified = true
		user.ClearVerificationToken()

		return userRepo.Update(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Email verification failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute email verification transaction")
	}

	srv.log(ctx).Info("Email verified")

	return nil
}

// ResendVerificationEmail issues a new verification token for an unverified
// account. Unknown and already-verified addresses succeed silently.
func (srv *credentialService) ResendVerificationEmail(ctx context.Context, email string) error {
	email = normalizeIdentifier(email)
	if email == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "email is required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Verification resend requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to look up user for verification resend")
	}

	if user.EmailVerified {
		return nil
	}

	verification, err := srv.tokenService.IssueTemporaryToken()
	if err != nil {
		return errors.Wrap(err, "failed to issue verification token")
	}

	user.VerificationTokenHash = &verification.Hashed
	user.VerificationTokenExpiry = &verification.ExpiresAt

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store verification token")
	}

	link := srv.verificationLink(verification.Unhashed)
	if err := srv.mailService.SendVerificationEmail(ctx, user.Email, user.Username, link); err != nil {
		srv.log(ctx).Warn("Failed to resend verification email", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrMailDeliveryFailed, "failed to send verification email")
	}

	return nil
}

// RefreshTokens validates a refresh token against its stored hash and
// rotates the pair.
func (srv *credentialService) RefreshTokens(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	if refreshToken == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "refresh token is required")
	}

	claims, err := srv.tokenService.ValidateToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "refresh token rejected")
	}
	if claims.Type != service.TokenTypeRefresh {
		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "not a refresh token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "refresh token subject unknown")
		}

		return nil, errors.Wrap(err, "failed to load user for token refresh")
	}

	// The signature alone is not enough: the hash comparison is what makes
	// rotation revoke superseded tokens.
	tokenHash := srv.tokenService.HashToken(refreshToken)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != tokenHash {
		srv.log(ctx).Warn("Stale refresh token presented", slog.Any("userID", user.ID))

		return nil, errors.Wrap(domainerrors.ErrTokenInvalid, "refresh token superseded or revoked")
	}

	pair, err := srv.tokenService.GenerateTokenPair(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	if err := srv.storeRefreshToken(ctx, user, pair.RefreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to persist rotated refresh token")
	}

	srv.log(ctx).Debug("Token pair rotated", slog.Any("userID", user.ID))

	return &usecase.RefreshOutput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, nil
}

// Logout revokes the stored refresh token, ending the session.
func (srv *credentialService) Logout(ctx context.Context, userID uuid.UUID) error {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "logout failed")
		}

		return errors.Wrap(err, "failed to load user for logout")
	}

	user.RefreshTokenHash = nil

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to clear refresh token")
	}

	srv.log(ctx).Info("User logged out", slog.Any("userID", userID))

	return nil
}

// ForgotPassword issues a reset token and emails the reset link. Unknown
// addresses succeed silently so the endpoint does not enumerate accounts.
func (srv *credentialService) ForgotPassword(ctx context.Context, email string) error {
	email = normalizeIdentifier(email)
	if email == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "email is required")
	}

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Debug("Password reset requested for unknown email")

			return nil
		}

		return errors.Wrap(err, "failed to look up user for password reset")
	}

	reset, err := srv.tokenService.IssueTemporaryToken()
	if err != nil {
		return errors.Wrap(err, "failed to issue reset token")
	}

	user.PasswordResetTokenHash = &reset.Hashed
	user.PasswordResetTokenExpiry = &reset.ExpiresAt

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	link := srv.resetLink(reset.Unhashed)
	if err := srv.mailService.SendPasswordResetEmail(ctx, user.Email, user.Username, link); err != nil {
		srv.log(ctx).Warn("Failed to send password reset email", slog.Any("userID", user.ID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrMailDeliveryFailed, "failed to send password reset email")
	}

	return nil
}

// ResetPassword consumes an unhashed reset token, replaces the password and
// revokes the stored refresh token.
func (srv *credentialService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if strings.TrimSpace(token) == "" || newPassword == "" {
		return errors.Wrap(domainerrors.ErrValidationFailed, "token and new password are required")
	}

	if err := srv.hasher.ValidatePasswordStrength(newPassword); err != nil {
		return domainerrors.ErrPasswordStrength.WrapMessage(err.Error())
	}

	hashedPassword, err := srv.hasher.Hash(newPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, "failed to hash new password")
	}

	tokenHash := srv.tokenService.HashToken(token)

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, findErr := userRepo.FindByPasswordResetTokenHash(ctx, tokenHash)
		if findErr != nil {
			if errors.Is(findErr, repository.ErrUserNotFound) {
				return errors.Wrap(domainerrors.ErrTokenInvalid, "reset token not recognized")
			}

			return errors.Wrap(findErr, "failed to look up reset token")
		}

		if expired(user.PasswordResetTokenExpiry) {
			return errors.Wrap(domainerrors.ErrTokenInvalid, "reset token expired")
		}

		user.PasswordHash = hashedPassword
		user.ClearPasswordResetToken()
		// A password change ends the current session.
		user.RefreshTokenHash = nil

		return userRepo.Update(ctx, user)
	})
	if err != nil {
		srv.log(ctx).Warn("Password reset failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to execute password reset transaction")
	}

	srv.log(ctx).Info("Password reset completed")

	return nil
}

// CurrentUser returns the stripped view of the authenticated account.
func (srv *credentialService) CurrentUser(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "current user lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load current user")
	}

	return user.Public(), nil
}

// storeRefreshToken hashes and persists the refresh token on the user record,
// overwriting any prior hash.
func (srv *credentialService) storeRefreshToken(ctx context.Context, user *entity.User, refreshToken string) error {
	tokenHash := srv.tokenService.HashToken(refreshToken)
	user.RefreshTokenHash = &tokenHash

	return srv.userRepo.Update(ctx, user)
}

func (srv *credentialService) verificationLink(token string) string {
	return srv.baseURL + "/auth/verify-email/" + token
}

func (srv *credentialService) resetLink(token string) string {
	return srv.baseURL + "/auth/reset-password/" + token
}

// normalizeIdentifier lowercases and trims a username or email so that
// lookups and uniqueness behave case-insensitively.
func normalizeIdentifier(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// expired reports whether a token expiry is absent or in the past.
func expired(expiry *time.Time) bool {
	return expiry == nil || expiry.Before(time.Now())
}
