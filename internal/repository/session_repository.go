package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bidyaloy/shikkha-api/internal/models"
	appErrors "github.com/bidyaloy/shikkha-api/pkg/errors"
)

const sessionKeyPrefix = "session:"

// SessionRepository stores refresh-token sessions in Redis. When no Redis
// client is configured it falls back to an in-process map so logins keep
// working on a single node.
type SessionRepository struct {
	client *redis.Client
	logger *zap.Logger

	mu       sync.Mutex
	fallback map[string]models.Session
}

// NewSessionRepository constructs a session repository. client may be nil.
func NewSessionRepository(client *redis.Client, logger *zap.Logger) *SessionRepository {
	return &SessionRepository{
		client:   client,
		logger:   logger,
		fallback: make(map[string]models.Session),
	}
}

func sessionKey(token string) string {
	return sessionKeyPrefix + token
}

// Save stores a session keyed by its refresh token until the session expires.
func (r *SessionRepository) Save(ctx context.Context, refreshToken string, session models.Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "session already expired")
	}

	if r.client == nil {
		r.mu.Lock()
		r.fallback[refreshToken] = session
		r.mu.Unlock()
		return nil
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session %s: %w", session.ID, err)
	}
	if err := r.client.Set(ctx, sessionKey(refreshToken), payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Get looks up the session behind a refresh token. Expired or unknown tokens
// come back as ErrSessionExpired.
func (r *SessionRepository) Get(ctx context.Context, refreshToken string) (models.Session, error) {
	if r.client == nil {
		r.mu.Lock()
		session, ok := r.fallback[refreshToken]
		r.mu.Unlock()
		if !ok || time.Now().After(session.ExpiresAt) {
			return models.Session{}, appErrors.ErrSessionExpired
		}
		return session, nil
	}

	raw, err := r.client.Get(ctx, sessionKey(refreshToken)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return models.Session{}, appErrors.ErrSessionExpired
		}
		return models.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return models.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return session, nil
}

// Delete revokes one refresh token. Deleting an unknown token is not an
// error.
func (r *SessionRepository) Delete(ctx context.Context, refreshToken string) error {
	if r.client == nil {
		r.mu.Lock()
		delete(r.fallback, refreshToken)
		r.mu.Unlock()
		return nil
	}
	if err := r.client.Del(ctx, sessionKey(refreshToken)).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}

// DeleteForUser revokes every session belonging to a user, scanning the
// session keyspace.
func (r *SessionRepository) DeleteForUser(ctx context.Context, uid string) error {
	if r.client == nil {
		r.mu.Lock()
		for token, session := range r.fallback {
			if session.UID == uid {
				delete(r.fallback, token)
			}
		}
		r.mu.Unlock()
		return nil
	}

	iter := r.client.Scan(ctx, 0, sessionKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		raw, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return fmt.Errorf("redis get %s: %w", key, err)
		}
		var session models.Session
		if err := json.Unmarshal(raw, &session); err != nil {
			r.logger.Warn("dropping undecodable session", zap.String("key", key), zap.Error(err))
			continue
		}
		if session.UID != uid {
			continue
		}
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", key, err)
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan sessions: %w", err)
	}
	return nil
}
