package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChaitanyaDhiman/ResumeForge/config"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)}
}

func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return client, cleanup
}

// storeCases runs the same behavioural checks against every Store implementation.
func storeCases(t *testing.T) map[string]func(t *testing.T) (Store, func()) {
	t.Helper()
	return map[string]func(t *testing.T) (Store, func()){
		"memory": func(t *testing.T) (Store, func()) {
			return NewMemoryStore(), func() {}
		},
		"redis": func(t *testing.T) (Store, func()) {
			rdb, cleanup := setupTestRedis(t)
			return NewRedisStore(rdb), cleanup
		},
	}
}

func TestLimiter_AllowsUpToMaxThenRejects(t *testing.T) {
	for name, newStore := range storeCases(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := newStore(t)
			defer cleanup()

			clock := newClock()
			limiter := NewLimiter(store)
			limiter.SetClock(clock.Now)
			cfg := Config{MaxRequests: 5, Window: time.Minute}
			ctx := context.Background()

			for i := 1; i <= 5; i++ {
				res, err := limiter.Check(ctx, "1.2.3.4", cfg)
				require.NoError(t, err)
				assert.True(t, res.Allowed, "request %d", i)
				assert.Equal(t, 5-i, res.Remaining)
				assert.Equal(t, 5, res.Limit)
			}

			res, err := limiter.Check(ctx, "1.2.3.4", cfg)
			require.NoError(t, err)
			assert.False(t, res.Allowed)
			assert.Equal(t, 0, res.Remaining)
			assert.True(t, res.ResetAt.Equal(clock.Now().Add(time.Minute)))
		})
	}
}

func TestLimiter_WindowResets(t *testing.T) {
	for name, newStore := range storeCases(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := newStore(t)
			defer cleanup()

			clock := newClock()
			limiter := NewLimiter(store)
			limiter.SetClock(clock.Now)
			cfg := Config{MaxRequests: 2, Window: time.Minute}
			ctx := context.Background()

			for i := 0; i < 3; i++ {
				_, err := limiter.Check(ctx, "k", cfg)
				require.NoError(t, err)
			}

			// exactly at reset time the old window still applies
			clock.Advance(time.Minute)
			res, err := limiter.Check(ctx, "k", cfg)
			require.NoError(t, err)
			assert.False(t, res.Allowed)

			clock.Advance(time.Millisecond)
			res, err = limiter.Check(ctx, "k", cfg)
			require.NoError(t, err)
			assert.True(t, res.Allowed)
			assert.Equal(t, 1, res.Remaining)
			assert.True(t, res.ResetAt.Equal(clock.Now().Add(time.Minute)))
		})
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	for name, newStore := range storeCases(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := newStore(t)
			defer cleanup()

			limiter := NewLimiter(store)
			cfg := Config{MaxRequests: 1, Window: time.Minute}
			ctx := context.Background()

			res, err := limiter.Check(ctx, "a@x.com", cfg)
			require.NoError(t, err)
			assert.True(t, res.Allowed)

			res, err = limiter.Check(ctx, "a@x.com", cfg)
			require.NoError(t, err)
			assert.False(t, res.Allowed)

			res, err = limiter.Check(ctx, "b@x.com", cfg)
			require.NoError(t, err)
			assert.True(t, res.Allowed)
		})
	}
}

func TestLimiter_ConcurrentCallsNeverExceedMax(t *testing.T) {
	for name, newStore := range storeCases(t) {
		t.Run(name, func(t *testing.T) {
			store, cleanup := newStore(t)
			defer cleanup()

			limiter := NewLimiter(store)
			cfg := Config{MaxRequests: 10, Window: time.Minute}
			ctx := context.Background()

			var wg sync.WaitGroup
			var mu sync.Mutex
			allowed := 0
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					res, err := limiter.Check(ctx, "burst", cfg)
					if err != nil {
						return
					}
					if res.Allowed {
						mu.Lock()
						allowed++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 10, allowed)
		})
	}
}

func TestLimiter_NonPositiveMaxRejects(t *testing.T) {
	limiter := NewLimiter(NewMemoryStore())

	res, err := limiter.Check(context.Background(), "k", Config{MaxRequests: 0, Window: time.Minute})
	require.NoError(t, err)
	assert.False(t, res.Allowed)
	assert.Equal(t, 0, res.Remaining)
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := NewMemoryStore()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ctx := context.Background()

	_, _ = store.Hit(ctx, "short", Config{MaxRequests: 5, Window: time.Minute}, now)
	_, _ = store.Hit(ctx, "long", Config{MaxRequests: 5, Window: time.Hour}, now)
	require.Equal(t, 2, store.Len())

	assert.Equal(t, 0, store.Sweep(now.Add(time.Minute)))
	assert.Equal(t, 1, store.Sweep(now.Add(2*time.Minute)))
	assert.Equal(t, 1, store.Len())

	// a swept key starts a fresh window
	res, err := store.Hit(ctx, "short", Config{MaxRequests: 5, Window: time.Minute}, now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 4, res.Remaining)
}

func TestRedisStore_KeyExpires(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	store := NewRedisStore(rdb)
	_, err = store.Hit(context.Background(), "ip", Config{MaxRequests: 5, Window: time.Minute}, time.Now())
	require.NoError(t, err)
	assert.True(t, mr.Exists(redisKeyPrefix+"ip"))

	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists(redisKeyPrefix+"ip"))
}

func TestPresetsFromConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p := PresetsFromConfig(nil)
		assert.Equal(t, Config{MaxRequests: 5, Window: time.Minute}, p.Register)
		assert.Equal(t, Config{MaxRequests: 10, Window: time.Minute}, p.Optimize)
		assert.Equal(t, Config{MaxRequests: 5, Window: 10 * time.Minute}, p.ResendOTP)
		assert.Equal(t, Config{MaxRequests: 20, Window: time.Minute}, p.General)
	})

	t.Run("override", func(t *testing.T) {
		p := PresetsFromConfig(&config.RateLimitConfig{
			Optimize: config.RateLimitPresetConfig{MaxRequests: 3},
			General:  config.RateLimitPresetConfig{Window: 30 * time.Second},
		})
		assert.Equal(t, Config{MaxRequests: 3, Window: time.Minute}, p.Optimize)
		assert.Equal(t, Config{MaxRequests: 20, Window: 30 * time.Second}, p.General)
		assert.Equal(t, DefaultPresets().Register, p.Register)
	})
}

func ExampleLimiter_Check() {
	limiter := NewLimiter(NewMemoryStore())
	cfg := Config{MaxRequests: 2, Window: time.Minute}
	for i := 0; i < 3; i++ {
		res, _ := limiter.Check(context.Background(), "client", cfg)
		fmt.Println(res.Allowed, res.Remaining)
	}
	// Output:
	// true 1
	// true 0
	// false 0
}
