package lock

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker_MutualExclusion(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(ctx, "tenant-1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, l.locks, "released keys are forgotten")
}

func TestLocalLocker_IndependentKeys(t *testing.T) {
	l := NewLocalLocker()
	ctx := context.Background()

	unlockA, err := l.Lock(ctx, "a")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := l.Lock(ctx, "b")
	require.NoError(t, err)
	unlockB()
}

func TestLocalLocker_ContextTimeout(t *testing.T) {
	l := NewLocalLocker()

	unlock, err := l.Lock(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "a")
	assert.True(t, errors.Is(err, ErrNotAcquired))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "a")
	require.NoError(t, err)
	again()
}

// fakeRedis implements RedisClient with an in-memory key space.
type fakeRedis struct {
	mu    sync.Mutex
	keys  map[string]string
	evals int
	err   error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{keys: map[string]string{}}
}

func (f *fakeRedis) SetNX(_ context.Context, key string, value interface{}, _ time.Duration) *redis.BoolCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return redis.NewBoolResult(false, f.err)
	}
	if _, ok := f.keys[key]; ok {
		return redis.NewBoolResult(false, nil)
	}
	f.keys[key] = value.(string)
	return redis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Eval(_ context.Context, _ string, keys []string, args ...interface{}) *redis.Cmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evals++
	if f.keys[keys[0]] == args[0].(string) {
		delete(f.keys, keys[0])
		return redis.NewCmdResult(int64(1), nil)
	}
	return redis.NewCmdResult(int64(0), nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	client := newFakeRedis()
	l := NewRedisLocker(client, time.Second)

	unlock, err := l.Lock(context.Background(), "tenant-1")
	require.NoError(t, err)
	assert.Contains(t, client.keys, "tenant-lock:tenant-1")

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "tenant-1")
	assert.True(t, errors.Is(err, ErrNotAcquired))

	unlock()
	assert.NotContains(t, client.keys, "tenant-lock:tenant-1")
	assert.Equal(t, 1, client.evals)
}

func TestRedisLocker_ReleaseKeepsForeignToken(t *testing.T) {
	client := newFakeRedis()
	l := NewRedisLocker(client, time.Second)

	unlock, err := l.Lock(context.Background(), "tenant-1")
	require.NoError(t, err)

	// Simulate expiry and takeover by another holder.
	client.keys["tenant-lock:tenant-1"] = "someone-else"
	unlock()

	assert.Equal(t, "someone-else", client.keys["tenant-lock:tenant-1"])
}

func TestRedisLocker_WaitsForHolder(t *testing.T) {
	client := newFakeRedis()
	l := NewRedisLocker(client, time.Second)

	unlock, err := l.Lock(context.Background(), "tenant-1")
	require.NoError(t, err)
	go func() {
		time.Sleep(40 * time.Millisecond)
		unlock()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	second, err := l.Lock(ctx, "tenant-1")
	require.NoError(t, err)
	second()
}

func TestRedisLocker_ClientError(t *testing.T) {
	client := newFakeRedis()
	client.err = errors.New("connection refused")
	l := NewRedisLocker(client, time.Second)

	_, err := l.Lock(context.Background(), "tenant-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}
