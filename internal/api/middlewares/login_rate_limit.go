package middlewares

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// INCR and the expiry run in one script so a counter never outlives its
// window. A key found without a TTL gets one on its next hit.
const fixedWindowLua = `
-- KEYS[1] = counter key
-- ARGV[1] = window (ms)
-- Returns: {count, ttl_ms}
local n = redis.call('INCR', KEYS[1])
local ttl = redis.call('PTTL', KEYS[1])
if ttl < 0 then
  redis.call('PEXPIRE', KEYS[1], ARGV[1])
  ttl = tonumber(ARGV[1])
end
return {n, ttl}
`

// RedisFixedWindow counts attempts per key in a fixed window. It backs the
// login limiter, where a coarse counter is all that is needed.
type RedisFixedWindow struct {
	rdb    redis.Scripter
	max    int
	window time.Duration
	script *redis.Script
}

func NewRedisFixedWindow(rdb redis.Scripter, max int, window time.Duration) *RedisFixedWindow {
	return &RedisFixedWindow{rdb: rdb, max: max, window: window, script: redis.NewScript(fixedWindowLua)}
}

func (fw *RedisFixedWindow) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := fw.script.Run(ctx, fw.rdb, []string{key}, fw.window.Milliseconds()).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	if len(res) != 2 {
		return Decision{}, errors.New("fixed window: unexpected script reply")
	}
	n := res[0]
	d := Decision{
		Allowed:   n <= int64(fw.max),
		Policy:    "fixed-window",
		Limit:     fw.max,
		Remaining: fw.max - int(n),
	}
	if !d.Allowed {
		d.RetryAfter = fw.window
		if ttl := time.Duration(res[1]) * time.Millisecond; ttl > 0 {
			d.RetryAfter = ttl
		}
	}
	return d, nil
}
