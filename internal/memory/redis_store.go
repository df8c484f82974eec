package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hearthd/hearth-intent/internal/nlp"
)

// RedisStore implements Store on Redis with a session TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	clock  nlp.Clock
}

// NewRedisStore connects to Redis and verifies the connection. Sessions
// expire ttl after their last write.
func NewRedisStore(redisURL string, ttl time.Duration, clock nlp.Clock) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client, ttl: ttl, clock: clock}, nil
}

func (r *RedisStore) sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// LoadSession loads a session from Redis, returning a fresh empty session
// when none exists.
func (r *RedisStore) LoadSession(ctx context.Context, sessionID string) (*SessionData, error) {
	data, err := r.client.Get(ctx, r.sessionKey(sessionID)).Result()
	if err == redis.Nil {
		now := r.clock.Now()
		return &SessionData{
			SessionID: sessionID,
			Messages:  []Message{},
			Metadata: Metadata{
				StartedAt:    now,
				LastActivity: now,
			},
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session from Redis: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to parse session data: %w", err)
	}
	return &session, nil
}

// SaveMessage appends a message and refreshes the session TTL.
func (r *RedisStore) SaveMessage(ctx context.Context, sessionID string, msg Message) error {
	session, err := r.LoadSession(ctx, sessionID)
	if err != nil {
		return err
	}

	session.Messages = append(session.Messages, msg)
	session.Metadata.LastActivity = r.clock.Now()
	session.Metadata.MessageCount = len(session.Messages)
	if session.Metadata.MessageCount == 1 {
		session.Metadata.StartedAt = msg.Timestamp
	}

	return r.saveSession(ctx, session)
}

// SetPending parks a clarification round on the session.
func (r *RedisStore) SetPending(ctx context.Context, sessionID string, pending *PendingClarification) error {
	session, err := r.LoadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	session.Pending = pending
	session.Metadata.LastActivity = r.clock.Now()
	return r.saveSession(ctx, session)
}

// TakePending returns and clears the parked clarification.
func (r *RedisStore) TakePending(ctx context.Context, sessionID string) (*PendingClarification, error) {
	session, err := r.LoadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	pending := session.Pending
	if pending == nil {
		return nil, nil
	}
	session.Pending = nil
	if err := r.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *RedisStore) saveSession(ctx context.Context, session *SessionData) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.client.Set(ctx, r.sessionKey(session.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session to Redis: %w", err)
	}
	return nil
}

// ClearSession removes a session from Redis.
func (r *RedisStore) ClearSession(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection is alive.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the Redis connection.
func (r *RedisStore) Close() error {
	return r.client.Close()
}
