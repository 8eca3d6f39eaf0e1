package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/bidyaloy/shikkha-api/internal/models"
	"github.com/bidyaloy/shikkha-api/internal/store"
)

func TestDemoLoadsIntoStore(t *testing.T) {
	snap, err := Demo()
	require.NoError(t, err)

	s := store.New()
	s.Load(snap)

	assert.Len(t, s.Users(), 5)
	assert.Len(t, s.Students(models.StudentFilter{}), 4)
	assert.Len(t, s.Teachers(), 2)
	assert.Len(t, s.Books(), 3)
	assert.True(t, s.ExamManagementEnabled())

	admin, ok := s.UserByEmail("admin@school.edu.bd")
	require.True(t, ok)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("password")))
}

func TestDemoBooksStartFullyAvailable(t *testing.T) {
	snap, err := Demo()
	require.NoError(t, err)
	for _, b := range snap.Library.Books {
		assert.Equal(t, b.TotalQuantity, b.AvailableQuantity)
	}
}
