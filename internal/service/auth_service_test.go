package service

import (
	"context"
	"testing"

	"pagecraft/internal/models"
	"pagecraft/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "pw123",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEqual(t, "pw123", user.HashedPassword)
	assert.True(t, user.IsActive)
	assert.Nil(t, user.LastLogin)

	pair, logged, err := svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.Equal(t, "bearer", pair.TokenType)
	assert.Equal(t, user.ID, logged.ID)

	// Successful login stamps last_login
	stored, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"short username", RegisterInput{Username: "ab", Email: "a@example.com", Password: "pw123"}},
		{"bad email", RegisterInput{Username: "alice", Email: "not-an-email", Password: "pw123"}},
		{"short password", RegisterInput{Username: "alice", Email: "a@example.com", Password: "pw"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestRegisterDuplicateIdentifiers(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw123"})
	require.NoError(t, err)

	tests := []struct {
		name  string
		input RegisterInput
	}{
		{"same username", RegisterInput{Username: "alice", Email: "new@example.com", Password: "pw123"}},
		{"same email", RegisterInput{Username: "newuser", Email: "alice@example.com", Password: "pw123"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.input)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "CONFLICT", appErr.Code)
			assert.Equal(t, "Username or email already registered", appErr.Message)
		})
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw123"})
	require.NoError(t, err)

	// Deactivate a second account to cover the inactive case
	inactive, err := svc.Register(ctx, RegisterInput{Username: "bob", Email: "bob@example.com", Password: "pw123"})
	require.NoError(t, err)
	inactive.IsActive = false
	require.NoError(t, repository.NewUserRepository(db).Update(ctx, inactive))

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown username", "ghost", "pw123"},
		{"wrong password", "alice", "wrong"},
		{"inactive account", "bob", "pw123"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.Login(ctx, tt.username, tt.password)
			var appErr *models.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "UNAUTHORIZED", appErr.Code)
			assert.Equal(t, "Invalid credentials", appErr.Message)
		})
	}

	// Failed logins never stamp last_login
	stored, err := repository.NewUserRepository(db).GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.LastLogin)
}

func TestResolveIdentity(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw123"})
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	user, err := svc.ResolveIdentity(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = svc.ResolveIdentity(ctx, "garbage.token.here")
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}

func TestResolveIdentityRejectsDeactivatedAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(t, db)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "alice@example.com", Password: "pw123"})
	require.NoError(t, err)

	pair, _, err := svc.Login(ctx, "alice", "pw123")
	require.NoError(t, err)

	// Token stays live but the account behind it goes away
	user.IsActive = false
	users := repository.NewUserRepository(db)
	require.NoError(t, users.Update(ctx, user))

	_, err = svc.ResolveIdentity(ctx, pair.AccessToken)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "UNAUTHORIZED", appErr.Code)
}
