package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"meal-planner-api/internal/grocery"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "grocery:session:"

// RedisStore persists sessions in Redis with the configured TTL, for
// deployments where more than one API instance serves the same sessions.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore wraps an existing Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Create stores the list under a fresh session id.
func (s *RedisStore) Create(ctx context.Context, list grocery.List) (string, error) {
	data, err := json.Marshal(list)
	if err != nil {
		return "", fmt.Errorf("failed to marshal grocery list: %w", err)
	}

	sessionID := uuid.New().String()
	if err := s.client.Set(ctx, redisKey(sessionID), data, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save grocery list to redis: %w", err)
	}
	return sessionID, nil
}

// Get returns the list stored under sessionID. Expiry is handled by Redis
// itself via the key TTL.
func (s *RedisStore) Get(ctx context.Context, sessionID string) (grocery.List, error) {
	data, err := s.client.Get(ctx, redisKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get grocery list from redis: %w", err)
	}

	var list grocery.List
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal grocery list: %w", err)
	}
	return list, nil
}

// Delete removes the session, reporting ErrNotFound when the key is already
// gone.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	removed, err := s.client.Del(ctx, redisKey(sessionID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete grocery list from redis: %w", err)
	}
	if removed == 0 {
		return ErrNotFound
	}
	return nil
}
