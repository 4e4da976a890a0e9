// Package service implements the application's business logic on top of the
// repository layer.
package service

import (
	"context"
	"time"

	"pagecraft/internal/auth"
	"pagecraft/internal/middleware"
	"pagecraft/internal/models"
	"pagecraft/internal/observability"
	"pagecraft/internal/repository"
	"pagecraft/internal/validation"
)

// AuthService handles registration, login and identity resolution.
type AuthService struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
}

// NewAuthService returns a new AuthService.
func NewAuthService(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// Register validates the input, checks both identifiers in one query, and
// creates the account with a hashed password. The plaintext is never stored.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(input.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	taken, err := s.users.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("Username or email already registered")
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Username:       input.Username,
		Email:          input.Email,
		HashedPassword: hash,
		FullName:       input.FullName,
		IsActive:       true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		// Concurrent registration of the same identifiers lands here
		return nil, err
	}

	observability.RegistrationsTotal.Inc()
	middleware.Logger.InfoContext(ctx, "user registered", "username", user.Username)
	return user, nil
}

// TokenPair is the successful login payload.
type TokenPair struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Login authenticates a username/password pair and issues a bearer token.
// An unknown username, a deactivated account and a wrong password all
// produce the same error so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (*TokenPair, *models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, err
	}
	if user == nil || !user.IsActive || !s.hasher.Verify(password, user.HashedPassword) {
		observability.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, nil, models.NewUnauthorizedError("Invalid credentials")
	}

	token, expiresAt, err := s.tokens.Issue(user.Username)
	if err != nil {
		return nil, nil, models.NewInternalError(err)
	}

	// Stamped only after everything else succeeded
	if err := s.users.StampLastLogin(ctx, user.ID, time.Now().UTC()); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to stamp last login", "error", err.Error())
	}

	observability.LoginsTotal.WithLabelValues("success").Inc()
	return &TokenPair{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, user, nil
}

// ResolveIdentity maps a bearer token to its active account. Expired and
// malformed tokens are logged with their true cause but surface identically.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	username, err := s.tokens.Verify(token)
	if err != nil {
		middleware.Logger.DebugContext(ctx, "token rejected", "reason", err.Error())
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		// Valid token for an account that no longer exists or was deactivated
		return nil, models.NewUnauthorizedError("Invalid credentials")
	}
	return user, nil
}
