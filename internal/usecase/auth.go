package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	domainErrors "github.com/ecomarket/ecomarket/internal/domain/errors"
	"github.com/ecomarket/ecomarket/internal/domain/model"
	"github.com/ecomarket/ecomarket/internal/domain/repository"
	pkgAuth "github.com/ecomarket/ecomarket/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new user and returns it together with an auth token.
func (u *AuthUseCase) Register(ctx context.Context, user *model.User, password string) (*model.User, string, error) {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	if user.Email == "" || !strings.Contains(user.Email, "@") || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if user.Role == "" {
		user.Role = model.RoleBuyer
	}
	if !model.ValidRole(user.Role) {
		return nil, "", fmt.Errorf("%w: unknown role %q", domainErrors.ErrValidation, user.Role)
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = hash

	created, err := u.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(created.ID)
	if err != nil {
		return nil, "", err
	}

	return created, token, nil
}

// Authenticate validates credentials and returns the user with an auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.IssueToken(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts user ID from provided token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// GetByID fetches user by identifier.
func (u *AuthUseCase) GetByID(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// UpdatePaymentDetails stores how a seller receives payments. Orders placed
// before the change keep their snapshots.
func (u *AuthUseCase) UpdatePaymentDetails(ctx context.Context, userID int64, details *model.PaymentDetails) error {
	if details == nil || (details.UPI == nil && details.Bank == nil) {
		return fmt.Errorf("%w: payment details required", domainErrors.ErrValidation)
	}
	if details.UPI != nil && strings.TrimSpace(details.UPI.UPIID) == "" {
		return fmt.Errorf("%w: empty UPI id", domainErrors.ErrValidation)
	}
	return u.users.UpdatePaymentDetails(ctx, userID, details)
}
