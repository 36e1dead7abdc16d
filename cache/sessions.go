package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/core/access"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/db"
	"github.com/taller2-grupo5-rostov-1c2022/songs-server-sub000/model"

	"github.com/go-redis/redis/v8"
)

// sessionKey builds the Redis key of a live session.
func sessionKey(id string) string {
	return fmt.Sprintf("live:%s", id)
}

// PutSession stores a live session with the store's TTL. The TTL is the whole
// lifecycle contract: a key that expired is a stream that ended.
func PutSession(ctx context.Context, session *model.LiveSession, ttlSeconds int) error {
	if db.RedisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal live session: %w", err)
	}

	return db.RedisClient.Set(ctx, sessionKey(session.ID), data,
		time.Duration(ttlSeconds)*time.Second).Err()
}

// GetSession fetches a live session. Missing or expired keys surface as
// access.ErrNotFound.
func GetSession(ctx context.Context, id string) (*model.LiveSession, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	data, err := db.RedisClient.Get(ctx, sessionKey(id)).Bytes()
	if err == redis.Nil {
		return nil, access.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get live session: %w", err)
	}

	var session model.LiveSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal live session: %w", err)
	}
	return &session, nil
}

// DeleteSession removes a live session (stream ended by its artist).
func DeleteSession(ctx context.Context, id string) error {
	if db.RedisClient == nil {
		return fmt.Errorf("redis client not initialized")
	}

	n, err := db.RedisClient.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete live session: %w", err)
	}
	if n == 0 {
		return access.ErrNotFound
	}
	return nil
}

// ListSessions returns every active live session.
func ListSessions(ctx context.Context) ([]model.LiveSession, error) {
	if db.RedisClient == nil {
		return nil, fmt.Errorf("redis client not initialized")
	}

	sessions := []model.LiveSession{}
	iter := db.RedisClient.Scan(ctx, 0, sessionKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		data, err := db.RedisClient.Get(ctx, iter.Val()).Bytes()
		if err == redis.Nil {
			continue // expired between SCAN and GET
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get live session: %w", err)
		}

		var session model.LiveSession
		if err := json.Unmarshal(data, &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal live session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan live sessions: %w", err)
	}
	return sessions, nil
}
