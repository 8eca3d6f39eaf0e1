package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

func newSessionRepo(t *testing.T) (*SessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewSessionRepository(client, zap.NewNop()), mr
}

func TestSessionRepositorySaveGetDelete(t *testing.T) {
	repo, _ := newSessionRepo(t)
	ctx := context.Background()

	session := models.Session{
		ID:        "sess-1",
		UID:       "user-1",
		Role:      models.RoleAdmin,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, repo.Save(ctx, "refresh-token-1", session))

	got, err := repo.Get(ctx, "refresh-token-1")
	require.NoError(t, err)
	assert.Equal(t, session.UID, got.UID)
	assert.Equal(t, session.Role, got.Role)

	require.NoError(t, repo.Delete(ctx, "refresh-token-1"))
	_, err = repo.Get(ctx, "refresh-token-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
}

func TestSessionRepositoryExpiry(t *testing.T) {
	repo, mr := newSessionRepo(t)
	ctx := context.Background()

	session := models.Session{ID: "sess-1", UID: "user-1", ExpiresAt: time.Now().Add(time.Minute)}
	require.NoError(t, repo.Save(ctx, "short-lived", session))

	mr.FastForward(2 * time.Minute)
	_, err := repo.Get(ctx, "short-lived")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
}

func TestSessionRepositoryRejectsExpiredSession(t *testing.T) {
	repo, _ := newSessionRepo(t)
	err := repo.Save(context.Background(), "stale", models.Session{ID: "sess-1", ExpiresAt: time.Now().Add(-time.Minute)})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestSessionRepositoryDeleteForUser(t *testing.T) {
	repo, _ := newSessionRepo(t)
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)

	require.NoError(t, repo.Save(ctx, "tok-a", models.Session{ID: "s1", UID: "user-1", ExpiresAt: expiry}))
	require.NoError(t, repo.Save(ctx, "tok-b", models.Session{ID: "s2", UID: "user-1", ExpiresAt: expiry}))
	require.NoError(t, repo.Save(ctx, "tok-c", models.Session{ID: "s3", UID: "user-2", ExpiresAt: expiry}))

	require.NoError(t, repo.DeleteForUser(ctx, "user-1"))

	_, err := repo.Get(ctx, "tok-a")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
	_, err = repo.Get(ctx, "tok-b")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
	_, err = repo.Get(ctx, "tok-c")
	assert.NoError(t, err)
}

func TestSessionRepositoryFallbackWithoutRedis(t *testing.T) {
	repo := NewSessionRepository(nil, zap.NewNop())
	ctx := context.Background()

	session := models.Session{ID: "sess-1", UID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Save(ctx, "tok", session))

	got, err := repo.Get(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UID)

	require.NoError(t, repo.DeleteForUser(ctx, "user-1"))
	_, err = repo.Get(ctx, "tok")
	assert.True(t, appErrors.Is(err, appErrors.ErrSessionExpired))
}
