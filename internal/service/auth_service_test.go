package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/repository"
	"github.com/bidyaloy/shikkha-api/internal/store"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func newAuthService(t *testing.T) (*AuthService, *store.Store) {
	t.Helper()
	s := store.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	require.NoError(t, err)
	_, err = s.CreateStaffUser(store.StaffInput{
		Name:         "Rahim Uddin",
		Email:        "rahim@school.edu.bd",
		PasswordHash: string(hash),
		RoleLabel:    "teacher",
	})
	require.NoError(t, err)

	svc := NewAuthService(s, repository.NewSessionRepository(nil, zap.NewNop()), nil, zap.NewNop(), AuthConfig{
		Secret:             "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
	})
	return svc, s
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Email: "rahim@school.edu.bd", Password: "password"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, models.RoleTeacher, resp.User.Role)
	assert.Empty(t, resp.User.PasswordHash)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.UID, claims.UID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestAuthServiceLoginBadCredentials(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "rahim@school.edu.bd", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "nobody@school.edu.bd", Password: "password"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidCredentials))

	_, err = svc.Login(ctx, models.LoginRequest{Email: "not-an-email", Password: ""})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAuthServiceRefreshRotatesToken(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{Email: "rahim@school.edu.bd", Password: "password"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The used token is revoked.
	_, err = svc.RefreshToken(ctx, models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
}

func TestAuthServiceLogout(t *testing.T) {
	svc, _ := newAuthService(t)
	ctx := context.Background()

	login, err := svc.Login(ctx, models.LoginRequest{Email: "rahim@school.edu.bd", Password: "password"})
	require.NoError(t, err)

	err = svc.Logout(ctx, login.RefreshToken, "someone-else")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))

	require.NoError(t, svc.Logout(ctx, login.RefreshToken, login.User.UID))
	_, err = svc.RefreshToken(ctx, models.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.Error(t, err)
}

func TestAuthServiceValidateTokenRejectsGarbage(t *testing.T) {
	svc, _ := newAuthService(t)
	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrUnauthorized))
}
