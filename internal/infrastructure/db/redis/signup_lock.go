package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blogql/blog-api/internal/core/domain"
)

const signupLockTTL = 10 * time.Second

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock re-acquired by another signup is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// SignupLock serialises signups for the same email across instances.
// Key format: signup:<email>
type SignupLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSignupLock(client *redis.Client) *SignupLock {
	return &SignupLock{client: client, ttl: signupLockTTL}
}

// Acquire takes the lock for email. A lock already held means another signup
// for the same address is in flight, which is reported as domain.ErrUserExists.
func (l *SignupLock) Acquire(ctx context.Context, email string) (func(), error) {
	token, err := randomToken()
	if err != nil {
		return nil, err
	}

	key := l.key(email)
	ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("signup lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("signup lock: %w", domain.ErrUserExists)
	}

	release := func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultOpTimeout)
		defer cancel()
		_ = releaseScript.Run(ctx, l.client, []string{key}, token).Err()
	}
	return release, nil
}

func (l *SignupLock) key(email string) string {
	return "signup:" + email
}

func randomToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("signup lock token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
