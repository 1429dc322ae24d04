package ratelimit

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "login_attempts:"

// LoginLimiter throttles repeated login attempts per email with a fixed
// window counter in Redis, shared across service instances. It fails open:
// when Redis is unreachable logins proceed rather than locking everyone out.
type LoginLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger *zap.Logger
}

// NewLoginLimiter builds a limiter. A nil client disables throttling.
func NewLoginLimiter(client *redis.Client, limit int, window time.Duration, logger *zap.Logger) *LoginLimiter {
	return &LoginLimiter{client: client, limit: limit, window: window, logger: logger}
}

// Allow records an attempt for the email and reports whether it is still
// under the per-window limit.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.client == nil || l.limit <= 0 {
		return true
	}

	key := keyPrefix + strings.ToLower(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.logger.Warn("login limiter unavailable", zap.Error(err))
		return true
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			l.logger.Warn("login limiter expire failed", zap.Error(err))
		}
	}
	return count <= int64(l.limit)
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}
	if err := l.client.Del(ctx, keyPrefix+strings.ToLower(email)).Err(); err != nil {
		l.logger.Warn("login limiter reset failed", zap.Error(err))
	}
}
