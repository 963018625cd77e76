// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strings"
	"unicode"

	"credo/config"
	"credo/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultMinPasswordLength = 8
	// bcrypt ignores everything past 72 bytes, so longer inputs are rejected
	// instead of being silently truncated.
	defaultMaxPasswordLength = 72
)

// forbiddenWords are substrings that disqualify a password regardless of its
// character classes.
var forbiddenWords = []string{"password", "admin", "qwerty", "123456"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher is the constructor for bcryptHasher.
// Cost and strength policy come from configuration; sensible defaults apply
// when the sections are absent.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	policy := config.PasswordStrengthConfig{
		MinLength:        defaultMinPasswordLength,
		MaxLength:        defaultMaxPasswordLength,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
		RequireSpecial:   true,
	}
	if cfg != nil && cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
		if policy.MinLength == 0 {
			policy.MinLength = defaultMinPasswordLength
		}
		if policy.MaxLength == 0 {
			policy.MaxLength = defaultMaxPasswordLength
		}
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost and the
// default strength policy. Mainly useful in tests where a low cost keeps
// hashing fast.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	hasher, _ := NewBcryptHasher(nil).(*bcryptHasher)
	hasher.cost = cost

	return hasher
}

// Hash validates the password against the strength policy and generates a
// salted bcrypt hash. bcrypt handles salt generation itself.
func (h *bcryptHasher) Hash(password string) (string, error) {
	if err := h.ValidatePasswordStrength(password); err != nil {
		return "", err
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate bcrypt hash")
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
// Malformed hashes are reported as a mismatch, never as an error.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength checks the password against the configured policy.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	if len(password) < h.policy.MinLength {
		return errors.Errorf("password must be at least %d characters long", h.policy.MinLength)
	}
	if h.policy.MaxLength > 0 && len(password) > h.policy.MaxLength {
		return errors.Errorf("password must be at most %d characters long", h.policy.MaxLength)
	}
	if h.policy.RequireLowercase && !h.hasLowercase(password) {
		return errors.New("password must contain at least one lowercase letter")
	}
	if h.policy.RequireUppercase && !h.hasUppercase(password) {
		return errors.New("password must contain at least one uppercase letter")
	}
	if h.policy.RequireNumbers && !h.hasNumber(password) {
		return errors.New("password must contain at least one number")
	}
	if h.policy.RequireSpecial && !h.hasSpecial(password) {
		return errors.New("password must contain at least one special character")
	}
	if h.containsForbiddenWord(password) {
		return errors.New("password contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsUpper)
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.ContainsFunc(s, unicode.IsLower)
}

func (h *bcryptHasher) hasNumber(s string) bool {
	return strings.ContainsFunc(s, unicode.IsDigit)
}

func (h *bcryptHasher) hasSpecial(s string) bool {
	return strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	})
}

func (h *bcryptHasher) containsForbiddenWord(password string) bool {
	lowered := strings.ToLower(password)
	for _, word := range forbiddenWords {
		if strings.Contains(lowered, word) {
			return true
		}
	}

	return false
}
