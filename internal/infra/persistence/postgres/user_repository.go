// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"credo/internal/domain/entity"
	domainerrors "credo/internal/domain/errors"
	"credo/internal/domain/repository"
	"credo/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// userRepository implements the domain.UserRepository interface using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
// It returns the repository as a domain.UserRepository interface, adhering to dependency inversion.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

// FindByID retrieves a single user by their unique ID.
func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

// FindByUsernameOrEmail retrieves a user matching either identifier.
// An empty argument matches nothing, so callers may pass just one.
func (repo *userRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*entity.User, error) {
	if username == "" && email == "" {
		return nil, repository.ErrUserNotFound
	}

	query := repo.db.WithContext(ctx)
	switch {
	case username == "":
		query = query.Where("email = ?", email)
	case email == "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("username = ? OR email = ?", username, email)
	}

	var userM model.UserModel
	if err := query.First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by username or email")
	}

	return toUserDomain(&userM), nil
}

// FindByEmail retrieves a single user by their email address.
func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("email = ?", email).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	return toUserDomain(&userM), nil
}

// FindByVerificationTokenHash retrieves the user holding the given verification token hash.
func (repo *userRepository) FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("verification_token_hash = ?", tokenHash).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by verification token hash")
	}

	return toUserDomain(&userM), nil
}

// FindByPasswordResetTokenHash retrieves the user holding the given password reset token hash.
func (repo *userRepository) FindByPasswordResetTokenHash(ctx context.Context, tokenHash string) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).
		Where("password_reset_token_hash = ?", tokenHash).
		First(&userM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, errors.Wrap(err, "failed to find user by password reset token hash")
	}

	return toUserDomain(&userM), nil
}

// Create persists a new user entity to the database.
// Unique-constraint violations map to the domain's duplicate-user error so
// the race between pre-check and insert stays invisible to callers.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Create(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserCreationFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	// Update the user entity with the generated ID and timestamps
	user.ID = userM.ID
	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// Update modifies an existing user entity in the database.
func (repo *userRepository) Update(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Save(userM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("username or email already exists")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrUserUpdateFailed.WrapMessage("missing required user information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update user")
	}

	user.UpdatedAt = userM.UpdatedAt

	return nil
}

// --- Mapper Functions ---
// These helpers convert between domain entities and persistence models.

// toUserDomain converts a GORM UserModel to a domain User entity.
func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:                       data.ID,
		Username:                 data.Username,
		Email:                    data.Email,
		FullName:                 data.FullName,
		PasswordHash:             data.PasswordHash,
		EmailVerified:            data.EmailVerified,
		VerificationTokenHash:    data.VerificationTokenHash,
		VerificationTokenExpiry:  data.VerificationTokenExpiry,
		PasswordResetTokenHash:   data.PasswordResetTokenHash,
		PasswordResetTokenExpiry: data.PasswordResetTokenExpiry,
		RefreshTokenHash:         data.RefreshTokenHash,
		CreatedAt:                data.CreatedAt,
		UpdatedAt:                data.UpdatedAt,
	}
}

// fromUserDomain converts a domain User entity to a GORM UserModel for persistence.
func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:                       data.ID,
		Username:                 data.Username,
		Email:                    data.Email,
		FullName:                 data.FullName,
		PasswordHash:             data.PasswordHash,
		EmailVerified:            data.EmailVerified,
		VerificationTokenHash:    data.VerificationTokenHash,
		VerificationTokenExpiry:  data.VerificationTokenExpiry,
		PasswordResetTokenHash:   data.PasswordResetTokenHash,
		PasswordResetTokenExpiry: data.PasswordResetTokenExpiry,
		RefreshTokenHash:         data.RefreshTokenHash,
		CreatedAt:                data.CreatedAt,
		UpdatedAt:                data.UpdatedAt,
	}
}
