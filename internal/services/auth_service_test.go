// internal/services/auth_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

func newAuthService(t *testing.T) (*AuthService, *TokenBlacklist) {
	db := newTestDB(t)
	cfg := newTestConfig(t)
	blacklist := NewTokenBlacklist(cfg)
	return NewAuthService(db, blacklist, cfg), blacklist
}

func TestAuthServiceJoin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.Join(&JoinRequest{
		Username: "hyeonwoo",
		Email:    "hyeonwoo@example.com",
		Password: "Password1!",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, user.Roles)
	assert.NotEqual(t, "Password1!", user.PasswordHash)
	assert.NoError(t, user.CheckPassword("Password1!"))
}

func TestAuthServiceJoinDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	req := &JoinRequest{Username: "hyeonwoo", Email: "dup@example.com", Password: "Password1!"}
	_, err := svc.Join(req)
	require.NoError(t, err)

	_, err = svc.Join(req)
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestAuthServiceJoinAdmin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, err := svc.JoinAdmin(&JoinRequest{
		Username: "manager",
		Email:    "manager@example.com",
		Password: "Password1!",
	})
	require.NoError(t, err)
	assert.True(t, user.HasRole(models.RoleAdmin))
	assert.True(t, user.HasRole(models.RoleUser))
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Join(&JoinRequest{Username: "hyeonwoo", Email: "login@example.com", Password: "Password1!"})
	require.NoError(t, err)

	user, pair, err := svc.Login(&LoginRequest{Email: "login@example.com", Password: "Password1!"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := utils.ValidateJWT(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, user.Roles, claims.Roles)
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Join(&JoinRequest{Username: "hyeonwoo", Email: "login@example.com", Password: "Password1!"})
	require.NoError(t, err)

	// Wrong password and unknown email fail the same way
	_, _, err = svc.Login(&LoginRequest{Email: "login@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = svc.Login(&LoginRequest{Email: "nobody@example.com", Password: "Password1!"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthServiceLogoutClearsRefreshToken(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Join(&JoinRequest{Username: "hyeonwoo", Email: "logout@example.com", Password: "Password1!"})
	require.NoError(t, err)

	user, pair, err := svc.Login(&LoginRequest{Email: "logout@example.com", Password: "Password1!"})
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), pair.AccessToken, claims))

	reloaded, err := svc.FindUserByID(user.ID)
	require.NoError(t, err)
	assert.Nil(t, reloaded.RefreshToken)

	// The old refresh token no longer rotates
	_, _, err = svc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuthServiceRefreshRotation(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Join(&JoinRequest{Username: "hyeonwoo", Email: "refresh@example.com", Password: "Password1!"})
	require.NoError(t, err)

	_, first, err := svc.Login(&LoginRequest{Email: "refresh@example.com", Password: "Password1!"})
	require.NoError(t, err)

	_, second, err := svc.Refresh(first.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, second.AccessToken)

	// Garbage is rejected
	_, _, err = svc.Refresh("not-a-token")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestTokenBlacklistNoopWithoutRedis(t *testing.T) {
	cfg := newTestConfig(t)
	blacklist := NewTokenBlacklist(cfg)

	// Without Redis the blacklist degrades to allow-everything
	require.NoError(t, blacklist.Ban(context.Background(), "some-token", 0))
	banned, err := blacklist.IsBanned(context.Background(), "some-token")
	require.NoError(t, err)
	assert.False(t, banned)
}
