package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"

	"github.com/redis/go-redis/v9"
)

// GlobalSessionCache is nil when Redis is not configured; callers
// treat that as cache-disabled and go straight to Mongo.
var GlobalSessionCache *SessionCache

type SessionCache struct {
	client *redis.Client
}

// NewSessionCache creates and initializes a new session cache
func NewSessionCache(redisURL string) (*SessionCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &SessionCache{client: client}, nil
}

// SetSession caches an individual session with a TTL matching its
// expiry.
func (sc *SessionCache) SetSession(session *model.Session) error {
	if session == nil {
		return fmt.Errorf("cannot cache nil session")
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session has already expired")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %v", err)
	}

	key := fmt.Sprintf("session:%s", session.SessionID)
	if err := sc.client.Set(context.Background(), key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache session: %v", err)
	}
	return nil
}

// GetSession returns a cached session, or nil on a miss.
func (sc *SessionCache) GetSession(sessionID string) (*model.Session, error) {
	key := fmt.Sprintf("session:%s", sessionID)
	data, err := sc.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session cache: %v", err)
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached session: %v", err)
	}
	return &session, nil
}

// DeleteSession evicts a single session from the cache.
func (sc *SessionCache) DeleteSession(sessionID string) error {
	key := fmt.Sprintf("session:%s", sessionID)
	return sc.client.Del(context.Background(), key).Err()
}

// CacheUserSessions stores the active-session list for a user.
func (sc *SessionCache) CacheUserSessions(userID string, sessions []*model.Session, ttl time.Duration) error {
	data, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %v", err)
	}

	key := fmt.Sprintf("user_sessions:%s", userID)
	return sc.client.Set(context.Background(), key, data, ttl).Err()
}

// GetUserSessions returns the cached active-session list, or nil on a
// miss.
func (sc *SessionCache) GetUserSessions(userID string) ([]*model.Session, error) {
	key := fmt.Sprintf("user_sessions:%s", userID)
	data, err := sc.client.Get(context.Background(), key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read user sessions cache: %v", err)
	}

	var sessions []*model.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached sessions: %v", err)
	}
	return sessions, nil
}

// InvalidateUserSessions drops the cached session list after any
// session mutation.
func (sc *SessionCache) InvalidateUserSessions(userID string) error {
	key := fmt.Sprintf("user_sessions:%s", userID)
	return sc.client.Del(context.Background(), key).Err()
}

// Close closes the Redis connection
func (sc *SessionCache) Close() error {
	return sc.client.Close()
}
