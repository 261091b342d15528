package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound is returned when a session token is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

const sessionKeyPrefix = "session:"

// SessionStore keeps opaque session tokens in Redis. It is the
// stateful counterpart to JWT bearer tokens: a token maps to a user
// id and expires after the configured TTL.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a store over the shared Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

// Create issues a fresh opaque token for the user.
func (s *SessionStore) Create(ctx context.Context, userID string) (string, error) {
	if s.client == nil {
		return "", errors.New("session store not configured")
	}
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKeyPrefix+token, userID, s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

// Resolve returns the user id behind a token and refreshes its TTL.
func (s *SessionStore) Resolve(ctx context.Context, token string) (string, error) {
	if s.client == nil {
		return "", ErrSessionNotFound
	}
	userID, err := s.client.Get(ctx, sessionKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", err
	}
	_ = s.client.Expire(ctx, sessionKeyPrefix+token, s.ttl).Err()
	return userID, nil
}

// Revoke deletes the token.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if s.client == nil {
		return nil
	}
	return s.client.Del(ctx, sessionKeyPrefix+token).Err()
}
