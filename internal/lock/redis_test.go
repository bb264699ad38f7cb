package lock

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

const testKey = "reminders:scan"

func newTestLocker(t *testing.T, ttl time.Duration) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisLocker(rdb, testKey, ttl), mr
}

func TestAcquireIsExclusive(t *testing.T) {
	l, _ := newTestLocker(t, time.Minute)
	ctx := context.Background()

	_, release, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if _, _, err := l.Acquire(ctx); err != ErrNotAcquired {
		t.Fatalf("expected ErrNotAcquired, got %v", err)
	}

	release()

	held, release, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("re-acquire after release: %v", err)
	}
	release()

	if held.Err() == nil {
		t.Fatal("held context still live after release")
	}
}

func TestReleaseKeepsForeignLock(t *testing.T) {
	l, mr := newTestLocker(t, time.Minute)
	ctx := context.Background()

	_, release, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	// Lock expired and was taken by another process.
	mr.FastForward(2 * time.Minute)
	if err := mr.Set(testKey, "other"); err != nil {
		t.Fatalf("set: %v", err)
	}

	release()

	got, err := mr.Get(testKey)
	if err != nil || got != "other" {
		t.Fatalf("foreign lock removed: %q %v", got, err)
	}
}

func TestLockExpires(t *testing.T) {
	l, mr := newTestLocker(t, time.Minute)
	ctx := context.Background()

	_, first, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer first()

	mr.FastForward(2 * time.Minute)

	_, second, err := l.Acquire(ctx)
	if err != nil {
		t.Fatalf("expected expired lock to be free, got %v", err)
	}
	second()
}

func TestHeldLockIsExtended(t *testing.T) {
	l, mr := newTestLocker(t, 300*time.Millisecond)

	held, release, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	// Most of the TTL is gone; only an extension brings it back.
	mr.FastForward(250 * time.Millisecond)

	deadline := time.Now().Add(2 * time.Second)
	for mr.TTL(testKey) <= 100*time.Millisecond {
		if time.Now().After(deadline) {
			t.Fatalf("lock not extended, ttl=%v", mr.TTL(testKey))
		}
		time.Sleep(10 * time.Millisecond)
	}

	if held.Err() != nil {
		t.Fatalf("held context cancelled while lock owned: %v", held.Err())
	}
}

func TestLostLockCancelsHolder(t *testing.T) {
	l, mr := newTestLocker(t, 300*time.Millisecond)

	held, release, err := l.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer release()

	if err := mr.Set(testKey, "other"); err != nil {
		t.Fatalf("set: %v", err)
	}

	select {
	case <-held.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("holder not told the lock was lost")
	}

	release()
	if got, _ := mr.Get(testKey); got != "other" {
		t.Fatalf("foreign lock removed: %q", got)
	}
}
