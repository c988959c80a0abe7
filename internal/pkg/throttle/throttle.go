package throttle

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// LoginThrottle limits repeated failed logins from one client
type LoginThrottle interface {
	// Locked reports whether key is locked out and for how long
	Locked(ctx context.Context, key string) (bool, time.Duration)
	// RecordFailure counts a failed attempt and locks key once the limit is hit
	RecordFailure(ctx context.Context, key string)
	// Reset clears counters and locks after a successful login
	Reset(ctx context.Context, key string)
}

// Config controls the lockout policy
type Config struct {
	MaxAttempts int
	Window      time.Duration
	Lockout     time.Duration
}

// NewRedisClient parses url, connects and pings within timeout
func NewRedisClient(url string, timeout time.Duration) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// RedisThrottle keeps attempt counters and lock markers in Redis. Redis
// errors are logged and treated as "not locked" so an outage never blocks
// sign-in.
type RedisThrottle struct {
	client *redis.Client
	config Config
	logger zerolog.Logger
}

// NewRedisThrottle creates a throttle backed by client
func NewRedisThrottle(client *redis.Client, config Config, logger zerolog.Logger) *RedisThrottle {
	return &RedisThrottle{
		client: client,
		config: config,
		logger: logger,
	}
}

func attemptKey(key string) string { return "login_throttle:attempts:" + key }
func lockKey(key string) string    { return "login_throttle:lock:" + key }

// Locked implements LoginThrottle
func (t *RedisThrottle) Locked(ctx context.Context, key string) (bool, time.Duration) {
	ttl, err := t.client.TTL(ctx, lockKey(key)).Result()
	if err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("Login throttle lookup failed, allowing attempt")
		return false, 0
	}
	// -2 means no key, -1 means no expiry
	if ttl == -2 {
		return false, 0
	}
	if ttl < 0 {
		ttl = t.config.Lockout
	}
	return true, ttl
}

// RecordFailure implements LoginThrottle
func (t *RedisThrottle) RecordFailure(ctx context.Context, key string) {
	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, attemptKey(key))
	pipe.ExpireNX(ctx, attemptKey(key), t.config.Window)
	if _, err := pipe.Exec(ctx); err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("Failed to record login failure")
		return
	}

	if incr.Val() < int64(t.config.MaxAttempts) {
		return
	}

	if err := t.client.Set(ctx, lockKey(key), "locked", t.config.Lockout).Err(); err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("Failed to lock client after repeated failures")
		return
	}
	t.logger.Warn().Str("key", key).Int64("attempts", incr.Val()).Dur("lockout", t.config.Lockout).Msg("Client locked out after repeated login failures")
}

// Reset implements LoginThrottle
func (t *RedisThrottle) Reset(ctx context.Context, key string) {
	if err := t.client.Del(ctx, attemptKey(key), lockKey(key)).Err(); err != nil {
		t.logger.Warn().Err(err).Str("key", key).Msg("Failed to reset login throttle")
	}
}

// Noop never locks anyone out. It is used when no Redis URL is configured.
type Noop struct{}

// Locked implements LoginThrottle
func (Noop) Locked(context.Context, string) (bool, time.Duration) { return false, 0 }

// RecordFailure implements LoginThrottle
func (Noop) RecordFailure(context.Context, string) {}

// Reset implements LoginThrottle
func (Noop) Reset(context.Context, string) {}
