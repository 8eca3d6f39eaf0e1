package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/store"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func TestStaffServiceCreateNewUser(t *testing.T) {
	s := store.New()
	svc := NewStaffService(s, nil, zap.NewNop())

	user, err := svc.CreateNewUser(context.Background(), CreateStaffRequest{
		Name:     "Rahim Uddin",
		Email:    "rahim@school.edu.bd",
		Password: "secret123",
		Role:     "teacher",
		Details:  "Mathematics",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, user.Role)
	assert.Empty(t, user.PasswordHash)

	stored, ok := s.UserByEmail("rahim@school.edu.bd")
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))
}

func TestStaffServiceCreateNewUserValidation(t *testing.T) {
	svc := NewStaffService(store.New(), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateNewUser(ctx, CreateStaffRequest{Name: "X", Email: "bad-email", Password: "secret123", Role: "teacher"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.CreateNewUser(ctx, CreateStaffRequest{Name: "X", Email: "x@school.edu.bd", Password: "short", Role: "teacher"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestStaffServiceDuplicateEmailSurfaces(t *testing.T) {
	svc := NewStaffService(store.New(), nil, zap.NewNop())
	ctx := context.Background()

	_, err := svc.CreateNewUser(ctx, CreateStaffRequest{Name: "A", Email: "dup@school.edu.bd", Password: "secret123", Role: "teacher"})
	require.NoError(t, err)

	_, err = svc.CreateNewUser(ctx, CreateStaffRequest{Name: "B", Email: "dup@school.edu.bd", Password: "secret123", Role: "librarian"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateEmail))
}
