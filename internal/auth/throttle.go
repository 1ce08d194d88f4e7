package auth

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter bounds login attempts per email within a window.
type LoginLimiter interface {
	// Reserve counts one attempt and reports whether it is within the limit.
	Reserve(ctx context.Context, email string) (bool, error)
	// Reset clears the count after a successful login.
	Reset(ctx context.Context, email string) error
}

const loginKeyPrefix = "portal:login:attempts:"

// reserveScript increments the counter and starts the window on the first
// attempt in one step, so concurrent attempts cannot overrun the limit.
var reserveScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// RedisLoginLimiter keeps a fixed-window counter per email in Redis.
type RedisLoginLimiter struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewRedisLoginLimiter builds a limiter. maxAttempts <= 0 disables limiting.
func NewRedisLoginLimiter(client *redis.Client, maxAttempts int, window time.Duration) *RedisLoginLimiter {
	return &RedisLoginLimiter{client: client, maxAttempts: maxAttempts, window: window}
}

// Reserve permits at most maxAttempts attempts per window until Reset.
func (l *RedisLoginLimiter) Reserve(ctx context.Context, email string) (bool, error) {
	if l.maxAttempts <= 0 {
		return true, nil
	}
	count, err := reserveScript.Run(ctx, l.client, []string{loginKey(email)}, l.window.Milliseconds()).Int()
	if err != nil {
		return true, err
	}
	return count <= l.maxAttempts, nil
}

// Reset clears the counter after a successful login.
func (l *RedisLoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, loginKey(email)).Err()
}

// NoopLoginLimiter never throttles. Used when Redis is not configured.
type NoopLoginLimiter struct{}

func (NoopLoginLimiter) Reserve(context.Context, string) (bool, error) { return true, nil }
func (NoopLoginLimiter) Reset(context.Context, string) error           { return nil }

func loginKey(email string) string {
	return loginKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
