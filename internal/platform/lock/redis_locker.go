package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	keyPrefix            = "savings:account-lock:"
	defaultRetryInterval = 50 * time.Millisecond
)

// ErrLockLost is returned on release when the lock expired and was taken by another holder.
var ErrLockLost = errors.New("account lock expired before release")

// releaseScript deletes the key only while it still holds our token.
const releaseScript = `if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0`

// RedisLocker serializes commands per account across replicas with SET NX PX.
type RedisLocker struct {
	client        redis.Cmdable
	ttl           time.Duration
	retryInterval time.Duration
	newToken      func() string
}

// NewRedisLocker creates a locker whose locks expire after ttl if never released.
func NewRedisLocker(client redis.Cmdable, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:        client,
		ttl:           ttl,
		retryInterval: defaultRetryInterval,
		newToken:      uuid.NewString,
	}
}

// Lock implements services.AccountLocker.
func (l *RedisLocker) Lock(ctx context.Context, accountID string) (func(context.Context) error, error) {
	key := keyPrefix + accountID
	token := l.newToken()
	for {
		acquired, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock for account %s: %w", accountID, err)
		}
		if acquired {
			return func(ctx context.Context) error {
				return l.release(ctx, key, token)
			}, nil
		}

		timer := time.NewTimer(l.retryInterval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("waiting for lock on account %s: %w", accountID, ctx.Err())
		case <-timer.C:
		}
	}
}

func (l *RedisLocker) release(ctx context.Context, key, token string) error {
	deleted, err := l.client.Eval(ctx, releaseScript, []string{key}, token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", key, err)
	}
	if deleted == 0 {
		return ErrLockLost
	}
	return nil
}
