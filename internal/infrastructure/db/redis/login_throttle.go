package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// acquireScript counts one attempt and starts the window on the first one.
// KEYS[1] = counter key, ARGV[1] = window in milliseconds.
var acquireScript = redis.NewScript(`
local n = redis.call('INCR', KEYS[1])
if n == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return n
`)

// LoginThrottle counts login attempts per email in Redis.
// Key format: login:fail:<normalized_email>
//
// Every attempt is counted before the password is checked, so concurrent
// requests cannot all slip under the limit. The window starts at the first
// attempt and is not extended by later ones; a successful login clears it.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int64
	window      time.Duration
}

// NewLoginThrottle creates a LoginThrottle. Non-positive limits fall back to
// 5 attempts per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginThrottle{client: client, maxAttempts: int64(maxAttempts), window: window}
}

// Acquire counts one login attempt for email and reports whether it is
// within the limit.
func (t *LoginThrottle) Acquire(ctx context.Context, email string) (bool, error) {
	n, err := acquireScript.Run(ctx, t.client, []string{t.key(email)}, t.window.Milliseconds()).Int64()
	if err != nil {
		return false, fmt.Errorf("throttle acquire: %w", err)
	}
	return n <= t.maxAttempts, nil
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := t.client.Del(ctx, t.key(email)).Err(); err != nil {
		return fmt.Errorf("throttle reset: %w", err)
	}
	return nil
}

func (t *LoginThrottle) key(email string) string {
	return "login:fail:" + email
}
