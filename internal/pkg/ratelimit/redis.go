package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const redisKeyPrefix = "ratelimit:"

// 与 MemoryStore 相同的固定窗口算法，在 Redis 内原子执行。
// 时间由调用方传入（毫秒），key 的 TTL 只用于回收。
var hitScript = redis.NewScript(`
local max = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local count = tonumber(redis.call('HGET', KEYS[1], 'count') or '0')
local reset = tonumber(redis.call('HGET', KEYS[1], 'reset') or '0')
if count == 0 or reset < now then
  reset = now + window
  redis.call('HSET', KEYS[1], 'count', 1, 'reset', reset)
  redis.call('PEXPIRE', KEYS[1], window)
  return {1, 1, reset}
end
if count < max then
  count = redis.call('HINCRBY', KEYS[1], 'count', 1)
  return {1, count, reset}
end
return {0, count, reset}
`)

// RedisStore 多实例共享窗口
type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func (s *RedisStore) Hit(ctx context.Context, key string, cfg Config, now time.Time) (Result, error) {
	vals, err := hitScript.Run(ctx, s.rdb, []string{redisKeyPrefix + key},
		cfg.MaxRequests, cfg.Window.Milliseconds(), now.UnixMilli()).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("rate limit script: %w", err)
	}
	if len(vals) != 3 {
		return Result{}, fmt.Errorf("rate limit script: unexpected reply %v", vals)
	}

	allowed, _ := vals[0].(int64)
	count, _ := vals[1].(int64)
	reset, _ := vals[2].(int64)

	res := Result{
		Allowed: allowed == 1,
		Limit:   cfg.MaxRequests,
		ResetAt: time.UnixMilli(reset),
	}
	if res.Allowed {
		res.Remaining = cfg.MaxRequests - int(count)
	}
	return res, nil
}
