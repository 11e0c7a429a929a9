package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func registerTestUser(t *testing.T, svc *Service) *AuthResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), RegisterRequest{
		FullName: "Ana Smith",
		Email:    "ana@example.com",
		Username: "ana",
		Password: "secret123",
	})
	require.NoError(t, err)
	return resp
}

func TestRegister(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testSecret)

	resp := registerTestUser(t, svc)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "LIB000001", resp.User.MemberID)

	claims, err := ValidateAccessToken(testSecret, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterRequest{
			FullName: "Other", Email: "ana@example.com", Username: "other", Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(context.Background(), RegisterRequest{
			FullName: "Other", Email: "other@example.com", Username: "ana", Password: "secret123",
		})
		assert.ErrorIs(t, err, ErrUsernameExists)
	})
}

func TestLogin(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testSecret)
	registerTestUser(t, svc)
	ctx := context.Background()

	t.Run("by username", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Username: "ana", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("by email", func(t *testing.T) {
		resp, err := svc.Login(ctx, LoginRequest{Username: "ana@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
	})

	// Wrong password and unknown user must be indistinguishable.
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "ana", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Login(ctx, LoginRequest{Username: "ghost", Password: "secret123"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestRefreshAndLogout(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testSecret)
	resp := registerTestUser(t, svc)
	ctx := context.Background()

	refreshed, err := svc.RefreshAccessToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	require.NoError(t, svc.Logout(ctx, resp.RefreshToken))

	_, err = svc.RefreshAccessToken(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
}

func TestProfile(t *testing.T) {
	svc := NewService(NewMemoryRepository(), testSecret)
	resp := registerTestUser(t, svc)
	ctx := context.Background()

	profile, err := svc.GetProfile(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Smith", profile.FullName)
	assert.Equal(t, "LIB000001", profile.MemberID)
	assert.NotEmpty(t, profile.MembershipDate)

	updated, err := svc.UpdateProfile(ctx, resp.User.ID, UpdateProfileRequest{
		FullName: "Ana Jones",
		Email:    "ana.jones@example.com",
		Phone:    "555-0101",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana Jones", updated.FullName)
	assert.Equal(t, "555-0101", updated.Phone)

	_, err = svc.GetProfile(ctx, 99)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
