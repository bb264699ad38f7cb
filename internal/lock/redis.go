package lock

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

var ErrNotAcquired = errors.New("lock not acquired")

var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

var extendScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0
`)

// RedisLocker is a single-key mutual exclusion lock shared by every process
// pointing at the same Redis.
type RedisLocker struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedisLocker(rdb *redis.Client, key string, ttl time.Duration) *RedisLocker {
	if ttl < 3*time.Millisecond {
		ttl = time.Minute
	}
	return &RedisLocker{rdb: rdb, key: key, ttl: ttl}
}

// Acquire takes the lock or returns ErrNotAcquired. While held, the key's
// TTL is extended every ttl/3. The returned context is cancelled when an
// extension fails, because another process may own the key from then on.
// release stops extending and deletes the key only if this caller still
// owns it.
func (l *RedisLocker) Acquire(ctx context.Context) (context.Context, func(), error) {
	token := uuid.NewString()

	ok, err := l.rdb.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, ErrNotAcquired
	}

	held, cancel := context.WithCancel(ctx)
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		l.keepAlive(held, cancel, token)
	}()

	var once sync.Once
	release := func() {
		once.Do(func() {
			cancel()
			<-stopped

			ctx, done := context.WithTimeout(context.Background(), 2*time.Second)
			defer done()
			_ = releaseScript.Run(ctx, l.rdb, []string{l.key}, token).Err()
		})
	}
	return held, release, nil
}

func (l *RedisLocker) keepAlive(ctx context.Context, lost context.CancelFunc, token string) {
	ticker := time.NewTicker(l.ttl / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			owned, err := l.extend(ctx, token)
			if err != nil || !owned {
				lost()
				return
			}
		}
	}
}

// extend resets the TTL if token still owns the key.
func (l *RedisLocker) extend(ctx context.Context, token string) (bool, error) {
	n, err := extendScript.Run(ctx, l.rdb, []string{l.key}, token, l.ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// NewClient parses a redis:// URL.
func NewClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opts), nil
}
