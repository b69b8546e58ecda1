package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"glimra/models"

	"github.com/go-redis/redis/v8"
)

// SessionStore keeps wizard sessions in Redis as JSON with a TTL, so an
// abandoned wizard expires on its own.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, sess *models.WizardSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal wizard session: %w", err)
	}
	if err := s.client.Set(ctx, sess.SessionID, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store wizard session: %w", err)
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) (*models.WizardSession, error) {
	data, err := s.client.Get(ctx, sessionID).Result()
	if err != nil {
		return nil, NewSessionError("wizard session not found or expired")
	}
	var sess models.WizardSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to parse wizard session: %w", err)
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionID).Err()
}

// FlagStore guards operations that must not run concurrently for the same
// logical resource (booking submission, payment initiation).
type FlagStore interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// RedisFlagStore implements FlagStore with SET NX.
type RedisFlagStore struct {
	Client *redis.Client
}

func (f *RedisFlagStore) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return f.Client.SetNX(ctx, key, "1", ttl).Result()
}

func (f *RedisFlagStore) Release(ctx context.Context, key string) error {
	return f.Client.Del(ctx, key).Err()
}
