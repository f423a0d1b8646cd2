package ratelimit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Lua script for an atomic sliding-window check. A GET → check → ZADD
// sequence from Go would race between instances; the script prunes, counts,
// and records in one round trip.
const slidingWindowLuaScript = `
local key = KEYS[1]
local windowStart = tonumber(ARGV[1])
local now = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])
local member = ARGV[5]

redis.call("ZREMRANGEBYSCORE", key, "-inf", windowStart)

local count = redis.call("ZCARD", key)
if count >= limit then
    return 0
end

redis.call("ZADD", key, now, member)
redis.call("EXPIRE", key, ttl)
return 1
`

// RedisLimiter is a sliding-window limiter shared across instances. Each
// client maps to a sorted set of admission timestamps; the set expires one
// window after its last admission.
type RedisLimiter struct {
	redis  *redis.Client
	window time.Duration
	limit  int
	script *redis.Script
	now    func() time.Time
}

// NewRedisLimiter creates a Redis-backed limiter with a pre-compiled
// admission script. Zero window/limit fall back to the defaults.
func NewRedisLimiter(client *redis.Client, window time.Duration, limit int) *RedisLimiter {
	if window <= 0 {
		window = DefaultWindow
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &RedisLimiter{
		redis:  client,
		window: window,
		limit:  limit,
		script: redis.NewScript(slidingWindowLuaScript),
		now:    time.Now,
	}
}

// Admit runs the sliding-window script for the client. On a Redis error the
// limiter fails open: blocking every legitimate visitor because Redis
// blipped is worse than letting a burst through.
func (l *RedisLimiter) Admit(ctx context.Context, clientID string) (bool, error) {
	now := l.now()
	key := "ratelimit:contact:" + clientID

	result, err := l.script.Run(ctx, l.redis,
		[]string{key},
		now.Add(-l.window).UnixNano(),
		now.UnixNano(),
		l.limit,
		int(l.window.Seconds()),
		uuid.NewString(),
	).Int64()
	if err != nil {
		log.Printf("[ratelimit] redis admission check failed for %s, failing open: %v", clientID, err)
		return true, nil
	}

	return result == 1, nil
}
