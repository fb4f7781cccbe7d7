package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "storefront:session"

// RedisTokenStore persists the session token in Redis so it survives
// process restarts and can be shared by replicas of the same storefront.
type RedisTokenStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisTokenStore connects to Redis and verifies the connection.
// scope distinguishes independent storefront instances sharing one Redis;
// a non-positive ttl falls back to 24h so stale tokens cannot pile up.
func NewRedisTokenStore(redisURL, scope string, ttl time.Duration) (*RedisTokenStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if scope == "" {
		scope = "default"
	}

	return &RedisTokenStore{
		client: client,
		key:    fmt.Sprintf("%s:%s", redisKeyPrefix, scope),
		ttl:    ttl,
	}, nil
}

// Load returns the stored session, or a zero session when absent
func (r *RedisTokenStore) Load(ctx context.Context) (Session, error) {
	result, err := r.client.HGetAll(ctx, r.key).Result()
	if err != nil {
		return Session{}, fmt.Errorf("failed to load session: %w", err)
	}
	if len(result) == 0 {
		return Session{}, nil
	}

	return Session{
		Token:    result["token"],
		UserName: result["user_name"],
		Email:    result["email"],
	}, nil
}

// Save stores the session as a hash and refreshes its TTL
func (r *RedisTokenStore) Save(ctx context.Context, s Session) error {
	pipe := r.client.Pipeline()
	pipe.HSet(ctx, r.key, map[string]interface{}{
		"token":     s.Token,
		"user_name": s.UserName,
		"email":     s.Email,
		"saved_at":  time.Now().Unix(),
	})
	pipe.Expire(ctx, r.key, r.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Clear removes the stored session
func (r *RedisTokenStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// Close releases the Redis connection
func (r *RedisTokenStore) Close() error {
	return r.client.Close()
}
