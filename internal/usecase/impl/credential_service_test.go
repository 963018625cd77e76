package impl

import (
	"context"
	"testing"

	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/repository"
	"credo/internal/domain/service"
	mockRepo "credo/internal/mocks/repository"
	mockSvc "credo/internal/mocks/service"
	"credo/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// credentialServiceFixtures holds all test dependencies for credential service tests.
type credentialServiceFixtures struct {
	service      usecase.CredentialUsecase
	txManager    *mockRepo.MockTransactionManager
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	mailService  *mockSvc.MockMailService
}

func createTestCredentialService(t *testing.T) credentialServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	mailService := mockSvc.NewMockMailService(t)

	service := NewCredentialService(CredentialServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		MailService:  mailService,
		Config:       newTestConfig(),
		Logger:       newDiscardLogger(),
	})

	return credentialServiceFixtures{
		service:      service,
		txManager:    txManager,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		mailService:  mailService,
	}
}

func TestCredentialService_Register_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "Alice",
		Email:    "Alice@Example.com",
		Password: "Password123!",
		FullName: "Alice Example",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.tokenService.EXPECT().IssueTemporaryToken().Return(newTemporaryToken(), nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByUsernameOrEmail(ctx, "alice", "alice@example.com").
				Return(nil, repository.ErrUserNotFound)

			mockUserRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, user *entity.User) {
					user.ID = uuid.New()
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	fx.mailService.EXPECT().
		SendVerificationEmail(ctx, "alice@example.com", "alice",
			"https://credo.example.com/auth/verify-email/plaintext-temporary-token").
		Return(nil)

	output, err := fx.service.Register(ctx, input)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Empty(t, output.Warning)
	assert.Equal(t, "alice", output.User.Username)
	assert.Equal(t, "alice@example.com", output.User.Email)
	assert.False(t, output.User.EmailVerified)
}

func TestCredentialService_Register_Duplicate(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.tokenService.EXPECT().IssueTemporaryToken().Return(newTemporaryToken(), nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByUsernameOrEmail(ctx, "alice", "alice@example.com").
				Return(&entity.User{ID: uuid.New()}, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrUserAlreadyExists, "duplicate registration"))

	output, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestCredentialService_Register_MailFailureIsWarning(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "Password123!",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(nil)
	fx.hasher.EXPECT().Hash(input.Password).Return("hashed_password", nil)
	fx.tokenService.EXPECT().IssueTemporaryToken().Return(newTemporaryToken(), nil)

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Return(nil)

	fx.mailService.EXPECT().
		SendVerificationEmail(ctx, "alice@example.com", "alice", mock.AnythingOfType("string")).
		Return(errors.New("smtp unreachable"))

	output, err := fx.service.Register(ctx, input)

	// The account was persisted; the mail failure must not surface as an error.
	require.NoError(t, err)
	require.NotNil(t, output)
	assert.NotEmpty(t, output.Warning)
}

func TestCredentialService_Register_WeakPassword(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	input := &usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "weak",
	}

	fx.hasher.EXPECT().ValidatePasswordStrength(input.Password).Return(errors.New("password must be at least 8 characters long"))

	output, err := fx.service.Register(ctx, input)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))
}

func TestCredentialService_Register_MissingFields(t *testing.T) {
	fx := createTestCredentialService(t)

	output, err := fx.service.Register(context.Background(), &usecase.RegisterInput{
		Username: "alice",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCredentialService_Login_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:           userID,
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: "stored_hash",
	}

	fx.userRepo.EXPECT().
		FindByUsernameOrEmail(ctx, "alice", "").
		Return(user, nil)
	fx.hasher.EXPECT().Check("Password123!", "stored_hash").Return(true)
	fx.tokenService.EXPECT().GenerateTokenPair(userID).Return(&entity.TokenPair{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}, nil)
	fx.tokenService.EXPECT().HashToken("refresh-token").Return("refresh-token-hash")
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			require.NotNil(t, updated.RefreshTokenHash)
			assert.Equal(t, "refresh-token-hash", *updated.RefreshTokenHash)
		}).
		Return(nil)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "alice",
		Password: "Password123!",
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "access-token", output.AccessToken)
	assert.Equal(t, "refresh-token", output.RefreshToken)
	assert.Equal(t, "alice", output.User.Username)
}

func TestCredentialService_Login_WrongPassword(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: "stored_hash",
	}

	fx.userRepo.EXPECT().
		FindByUsernameOrEmail(ctx, "", "alice@example.com").
		Return(user, nil)
	fx.hasher.EXPECT().Check("wrong", "stored_hash").Return(false)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Email:    "alice@example.com",
		Password: "wrong",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestCredentialService_Login_UnknownIdentifierSameError(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByUsernameOrEmail(ctx, "ghost", "").
		Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.Login(ctx, &usecase.LoginInput{
		Username: "ghost",
		Password: "whatever",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	// An unknown identifier must be indistinguishable from a wrong password.
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))
}

func TestCredentialService_Login_MissingIdentifier(t *testing.T) {
	fx := createTestCredentialService(t)

	output, err := fx.service.Login(context.Background(), &usecase.LoginInput{
		Password: "Password123!",
	})

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestCredentialService_VerifyEmail_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:                      uuid.New(),
		Username:                "alice",
		EmailVerified:           false,
		VerificationTokenHash:   strPtr("token-hash"),
		VerificationTokenExpiry: futureExpiry(),
	}

	fx.tokenService.EXPECT().HashToken("plaintext-token").Return("token-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByVerificationTokenHash(ctx, "token-hash").
				Return(user, nil)

			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, updated *entity.User) {
					assert.True(t, updated.EmailVerified)
					assert.Nil(t, updated.VerificationTokenHash)
					assert.Nil(t, updated.VerificationTokenExpiry)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.VerifyEmail(ctx, "plaintext-token")

	require.NoError(t, err)
}

func TestCredentialService_VerifyEmail_Expired(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:                      uuid.New(),
		VerificationTokenHash:   strPtr("token-hash"),
		VerificationTokenExpiry: pastExpiry(),
	}

	fx.tokenService.EXPECT().HashToken("plaintext-token").Return("token-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByVerificationTokenHash(ctx, "token-hash").
				Return(user, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrTokenInvalid, "verification token expired"))

	err := fx.service.VerifyEmail(ctx, "plaintext-token")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestCredentialService_VerifyEmail_UnknownToken(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()

	fx.tokenService.EXPECT().HashToken("bogus").Return("bogus-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByVerificationTokenHash(ctx, "bogus-hash").
				Return(nil, repository.ErrUserNotFound)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrTokenInvalid, "verification token not recognized"))

	err := fx.service.VerifyEmail(ctx, "bogus")

	assert.Error(t, err)
	// Unknown and consumed tokens produce the same failure.
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestCredentialService_ResendVerificationEmail_UnknownEmailIsSilent(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	err := fx.service.ResendVerificationEmail(ctx, "ghost@example.com")

	require.NoError(t, err)
}

func TestCredentialService_ResendVerificationEmail_AlreadyVerifiedIsSilent(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.User{ID: uuid.New(), EmailVerified: true}, nil)

	err := fx.service.ResendVerificationEmail(ctx, "alice@example.com")

	require.NoError(t, err)
}

func TestCredentialService_ResendVerificationEmail_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(user, nil)
	fx.tokenService.EXPECT().IssueTemporaryToken().Return(newTemporaryToken(), nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			require.NotNil(t, updated.VerificationTokenHash)
			assert.Equal(t, "hashed-temporary-token", *updated.VerificationTokenHash)
		}).
		Return(nil)
	fx.mailService.EXPECT().
		SendVerificationEmail(ctx, "alice@example.com", "alice",
			"https://credo.example.com/auth/verify-email/plaintext-temporary-token").
		Return(nil)

	err := fx.service.ResendVerificationEmail(ctx, "alice@example.com")

	require.NoError(t, err)
}

func TestCredentialService_RefreshTokens_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:               userID,
		Username:         "alice",
		RefreshTokenHash: strPtr("old-refresh-hash"),
	}

	fx.tokenService.EXPECT().ValidateToken("old-refresh-token").Return(claimsFor(userID, service.TokenTypeRefresh), nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.tokenService.EXPECT().HashToken("old-refresh-token").Return("old-refresh-hash")
	fx.tokenService.EXPECT().GenerateTokenPair(userID).Return(&entity.TokenPair{
		AccessToken:  "new-access-token",
		RefreshToken: "new-refresh-token",
	}, nil)
	fx.tokenService.EXPECT().HashToken("new-refresh-token").Return("new-refresh-hash")
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			require.NotNil(t, updated.RefreshTokenHash)
			assert.Equal(t, "new-refresh-hash", *updated.RefreshTokenHash)
		}).
		Return(nil)

	output, err := fx.service.RefreshTokens(ctx, "old-refresh-token")

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "new-access-token", output.AccessToken)
	assert.Equal(t, "new-refresh-token", output.RefreshToken)
}

func TestCredentialService_RefreshTokens_StaleHashRejected(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:               userID,
		RefreshTokenHash: strPtr("current-refresh-hash"),
	}

	fx.tokenService.EXPECT().ValidateToken("superseded-token").Return(claimsFor(userID, service.TokenTypeRefresh), nil)
	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.tokenService.EXPECT().HashToken("superseded-token").Return("superseded-hash")

	output, err := fx.service.RefreshTokens(ctx, "superseded-token")

	assert.Error(t, err)
	assert.Nil(t, output)
	// A valid signature is not enough once the token has been rotated out.
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestCredentialService_RefreshTokens_AccessTokenRejected(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.tokenService.EXPECT().ValidateToken("access-token").Return(claimsFor(userID, service.TokenTypeAccess), nil)

	output, err := fx.service.RefreshTokens(ctx, "access-token")

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestCredentialService_RefreshTokens_InvalidToken(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()

	fx.tokenService.EXPECT().ValidateToken("garbage").Return(nil, errors.New("failed to parse token structure"))

	output, err := fx.service.RefreshTokens(ctx, "garbage")

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestCredentialService_Logout_ClearsRefreshToken(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:               userID,
		RefreshTokenHash: strPtr("refresh-hash"),
	}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			assert.Nil(t, updated.RefreshTokenHash)
		}).
		Return(nil)

	err := fx.service.Logout(ctx, userID)

	require.NoError(t, err)
}

func TestCredentialService_ForgotPassword_UnknownEmailIsSilent(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()

	fx.userRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound)

	err := fx.service.ForgotPassword(ctx, "ghost@example.com")

	require.NoError(t, err)
}

func TestCredentialService_ForgotPassword_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:       uuid.New(),
		Username: "alice",
		Email:    "alice@example.com",
	}

	fx.userRepo.EXPECT().FindByEmail(ctx, "alice@example.com").Return(user, nil)
	fx.tokenService.EXPECT().IssueTemporaryToken().Return(newTemporaryToken(), nil)
	fx.userRepo.EXPECT().
		Update(ctx, mock.AnythingOfType("*entity.User")).
		Run(func(ctx context.Context, updated *entity.User) {
			require.NotNil(t, updated.PasswordResetTokenHash)
			assert.Equal(t, "hashed-temporary-token", *updated.PasswordResetTokenHash)
		}).
		Return(nil)
	fx.mailService.EXPECT().
		SendPasswordResetEmail(ctx, "alice@example.com", "alice",
			"https://credo.example.com/auth/reset-password/plaintext-temporary-token").
		Return(nil)

	err := fx.service.ForgotPassword(ctx, "alice@example.com")

	require.NoError(t, err)
}

func TestCredentialService_ResetPassword_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:                       uuid.New(),
		PasswordHash:             "old_hash",
		PasswordResetTokenHash:   strPtr("reset-hash"),
		PasswordResetTokenExpiry: futureExpiry(),
		RefreshTokenHash:         strPtr("refresh-hash"),
	}

	fx.hasher.EXPECT().ValidatePasswordStrength("NewPassword123!").Return(nil)
	fx.hasher.EXPECT().Hash("NewPassword123!").Return("new_hash", nil)
	fx.tokenService.EXPECT().HashToken("plaintext-reset-token").Return("reset-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByPasswordResetTokenHash(ctx, "reset-hash").
				Return(user, nil)

			mockUserRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.User")).
				Run(func(ctx context.Context, updated *entity.User) {
					assert.Equal(t, "new_hash", updated.PasswordHash)
					assert.Nil(t, updated.PasswordResetTokenHash)
					assert.Nil(t, updated.PasswordResetTokenExpiry)
					// A password change ends the active session.
					assert.Nil(t, updated.RefreshTokenHash)
				}).
				Return(nil)

			_ = fn(mockFactory)
		}).
		Return(nil)

	err := fx.service.ResetPassword(ctx, "plaintext-reset-token", "NewPassword123!")

	require.NoError(t, err)
}

func TestCredentialService_ResetPassword_ExpiredToken(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	user := &entity.User{
		ID:                       uuid.New(),
		PasswordResetTokenHash:   strPtr("reset-hash"),
		PasswordResetTokenExpiry: pastExpiry(),
	}

	fx.hasher.EXPECT().ValidatePasswordStrength("NewPassword123!").Return(nil)
	fx.hasher.EXPECT().Hash("NewPassword123!").Return("new_hash", nil)
	fx.tokenService.EXPECT().HashToken("stale-token").Return("reset-hash")

	fx.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		Run(func(ctx context.Context, fn func(repository.RepositoryFactory) error) {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockUserRepo := mockRepo.NewMockUserRepository(t)

			mockFactory.EXPECT().UserRepo().Return(mockUserRepo)

			mockUserRepo.EXPECT().
				FindByPasswordResetTokenHash(ctx, "reset-hash").
				Return(user, nil)

			_ = fn(mockFactory)
		}).
		Return(errors.Wrap(domainerrors.ErrTokenInvalid, "reset token expired"))

	err := fx.service.ResetPassword(ctx, "stale-token", "NewPassword123!")

	assert.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrTokenInvalid))
}

func TestCredentialService_CurrentUser_Success(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	userID := uuid.New()
	user := &entity.User{
		ID:            userID,
		Username:      "alice",
		Email:         "alice@example.com",
		PasswordHash:  "stored_hash",
		EmailVerified: true,
	}

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(user, nil)

	output, err := fx.service.CurrentUser(ctx, userID)

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, "alice", output.Username)
	assert.True(t, output.EmailVerified)
}

func TestCredentialService_CurrentUser_NotFound(t *testing.T) {
	fx := createTestCredentialService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

	output, err := fx.service.CurrentUser(ctx, userID)

	assert.Error(t, err)
	assert.Nil(t, output)
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}
