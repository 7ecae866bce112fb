// Package redis implements the assignment lock shared by every service instance.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "fooddelivery:assign:"

// Deletes the key only if it still holds our token.
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

var ErrLockLost = errors.New("assignment lock expired before release")

// AssignmentLocker is a SET NX lock with a TTL. The TTL bounds how long a crashed
// holder can block an order.
type AssignmentLocker struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewAssignmentLocker creates a locker. ttl must exceed the longest assignment attempt.
func NewAssignmentLocker(client *goredis.Client, ttl time.Duration) *AssignmentLocker {
	return &AssignmentLocker{client: client, ttl: ttl}
}

// TryLock acquires key without waiting and reports false when another instance holds it.
// The returned release func fails with ErrLockLost if the TTL expired first.
func (l *AssignmentLocker) TryLock(ctx context.Context, key string) (func(context.Context) error, bool, error) {
	fullKey := keyPrefix + key
	token := kernel.NewUUID().String()

	acquired, err := l.client.SetNX(ctx, fullKey, token, l.ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("redis setnx failed: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		deleted, unlockErr := unlockScript.Run(ctx, l.client, []string{fullKey}, token).Int()
		if unlockErr != nil {
			return fmt.Errorf("redis unlock failed: %w", unlockErr)
		}
		if deleted == 0 {
			return ErrLockLost
		}
		return nil
	}
	return unlock, true, nil
}
