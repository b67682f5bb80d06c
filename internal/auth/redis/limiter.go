package redis

import (
	"context"
	"time"

	"github.com/frahmantamala/hr-management/internal"
	"github.com/frahmantamala/hr-management/internal/auth"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "login_attempts:"

// LoginLimiter counts failed logins per email in a fixed window.
type LoginLimiter struct {
	client      goredis.UniversalClient
	maxAttempts int64
	window      time.Duration
}

func NewLoginLimiter(client goredis.UniversalClient, maxAttempts int, window time.Duration) auth.LoginLimiter {
	if maxAttempts <= 0 {
		return auth.NoopLimiter{}
	}
	return &LoginLimiter{client: client, maxAttempts: int64(maxAttempts), window: window}
}

func (l *LoginLimiter) Allow(ctx context.Context, email string) error {
	n, err := l.client.Get(ctx, keyPrefix+email).Int64()
	if err != nil {
		// goredis.Nil means no failures yet; any other error fails open
		return nil
	}
	if n >= l.maxAttempts {
		return internal.ErrTooManyAttempts
	}
	return nil
}

func (l *LoginLimiter) Fail(ctx context.Context, email string) error {
	key := keyPrefix + email
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.client.Expire(ctx, key, l.window).Err()
	}
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.client.Del(ctx, keyPrefix+email).Err()
}
