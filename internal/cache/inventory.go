package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	userKeyPrefix = "user:%d"
	csrfKeyPrefix = "csrf:%s"
)

const (
	// UserTTL bounds staleness of cached user records. The home feed is
	// never cached; it is recomputed per request.
	UserTTL = 5 * time.Minute
	// CSRFTTL matches the session lifetime.
	CSRFTTL = 7 * 24 * time.Hour
)

func UserKey(userID uint) string {
	return fmt.Sprintf(userKeyPrefix, userID)
}

func CSRFKey(sessionID string) string {
	return fmt.Sprintf(csrfKeyPrefix, sessionID)
}

// Aside implements the cache-aside pattern: on a hit, dest is populated
// from the cached JSON; on a miss, load runs and its result is cached.
// Without a Redis client it degrades to calling load directly.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	if raw, err := client.Get(ctx, key).Bytes(); err == nil {
		if unmarshalErr := json.Unmarshal(raw, dest); unmarshalErr == nil {
			return nil
		}
		// Corrupt entry: drop it and fall through to the loader.
		client.Del(ctx, key)
	}

	if err := load(); err != nil {
		return err
	}

	if raw, err := json.Marshal(dest); err == nil {
		client.Set(ctx, key, raw, ttl)
	}
	return nil
}

// Invalidate removes a single key if Redis is active.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser removes the cached record for a user.
func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

// StoreCSRFToken persists a session's anti-forgery token on the given
// client. Returns false when Redis is unavailable and the caller should
// rely on the double-submit cookie fallback.
func StoreCSRFToken(ctx context.Context, rdb *redis.Client, sessionID, token string) bool {
	if rdb == nil {
		return false
	}
	return rdb.Set(ctx, CSRFKey(sessionID), token, CSRFTTL).Err() == nil
}

// LookupCSRFToken fetches a session's anti-forgery token.
// ok is false when Redis is unavailable or the token is absent.
func LookupCSRFToken(ctx context.Context, rdb *redis.Client, sessionID string) (token string, ok bool) {
	if rdb == nil {
		return "", false
	}
	val, err := rdb.Get(ctx, CSRFKey(sessionID)).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

// DropCSRFToken removes a session's anti-forgery token at logout.
func DropCSRFToken(ctx context.Context, rdb *redis.Client, sessionID string) {
	if rdb != nil {
		rdb.Del(ctx, CSRFKey(sessionID))
	}
}
