package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/5w1tchy/wordlist-api/internal/api/apperr"
)

// --------- Key helpers ---------

type KeyFunc func(r *http.Request) string

// PerIPKey keys on the client address as resolved by tp.
func PerIPKey(prefix string, tp TrustedProxies) KeyFunc {
	return func(r *http.Request) string {
		ip := tp.ClientIP(r)
		if ip == "" {
			ip = "unknown"
		}
		return prefix + ":" + ip
	}
}

// PerOperatorKey keys on the authenticated operator and falls back to the
// client IP when the request is anonymous.
func PerOperatorKey(prefix string, tp TrustedProxies) KeyFunc {
	byIP := PerIPKey(prefix, tp)
	return func(r *http.Request) string {
		if id, ok := OperatorIDFrom(r.Context()); ok {
			return prefix + ":op:" + id
		}
		return byIP(r)
	}
}

// --------- Limiter ---------

type Decision struct {
	Allowed    bool
	Policy     string
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

// Limiter decides whether the request under key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// RateLimit enforces l. A limiter error fails open: rate limiting guards
// capacity, it is not an auth boundary.
func RateLimit(l Limiter, keyFn KeyFunc, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)
			d, err := l.Allow(r.Context(), key)
			if err != nil {
				log.Warn("rate limiter error, allowing request", zap.String("key", key), zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Policy", d.Policy)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(d.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(max(0, d.Remaining)))

			if !d.Allowed {
				sec := int64((d.RetryAfter + time.Second - 1) / time.Second)
				if sec < 1 {
					sec = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(sec, 10))
				log.Info("rate limited",
					zap.String("policy", d.Policy),
					zap.String("key", key),
					zap.Int64("retry_after_s", sec))
				apperr.Write(w, r, apperr.Problem{
					Status:    http.StatusTooManyRequests,
					Title:     "Too Many Requests",
					Retryable: true,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// --------- Token Bucket (Redis + Lua) ---------

const tokenBucketLua = `
-- KEYS[1] = bucket key (hash with fields: tokens, ts)
-- ARGV[1] = rate per second (float)
-- ARGV[2] = capacity (int)
-- Returns: {allowed (1/0), remaining_tokens (int), retry_after_ms (int)}
local key   = KEYS[1]
local rate  = tonumber(ARGV[1])
local cap   = tonumber(ARGV[2])

local t = redis.call('TIME')
local now_ms = (tonumber(t[1]) * 1000) + math.floor(tonumber(t[2]) / 1000)

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts     = tonumber(data[2])

if tokens == nil then
  tokens = cap
  ts = now_ms
end

local delta_ms = now_ms - ts
if delta_ms > 0 then
  tokens = math.min(cap, tokens + (delta_ms / 1000.0) * rate)
end

local allowed = 0
local retry_after_ms = 0

if tokens >= 1.0 then
  tokens = tokens - 1.0
  allowed = 1
else
  retry_after_ms = math.ceil((1.0 - tokens) * 1000.0 / rate)
end

redis.call('HSET', key, 'tokens', tokens, 'ts', now_ms)
redis.call('PEXPIRE', key, math.ceil((cap / rate) * 1000.0))

return {allowed, math.floor(tokens), retry_after_ms}
`

type RedisTokenBucket struct {
	rdb      redis.Scripter
	ratePerS float64
	burst    int
	script   *redis.Script
}

func NewRedisTokenBucket(rdb redis.Scripter, ratePerSecond float64, burst int) *RedisTokenBucket {
	return &RedisTokenBucket{
		rdb:      rdb,
		ratePerS: ratePerSecond,
		burst:    burst,
		script:   redis.NewScript(tokenBucketLua),
	}
}

func (tb *RedisTokenBucket) Allow(ctx context.Context, key string) (Decision, error) {
	res, err := tb.script.Run(ctx, tb.rdb, []string{key},
		strconv.FormatFloat(tb.ratePerS, 'f', -1, 64),
		strconv.Itoa(tb.burst),
	).Int64Slice()
	if err != nil {
		return Decision{}, err
	}
	if len(res) != 3 {
		return Decision{}, errors.New("token bucket: unexpected script reply")
	}
	return Decision{
		Allowed:    res[0] == 1,
		Policy:     "token-bucket",
		Limit:      tb.burst,
		Remaining:  int(res[1]),
		RetryAfter: time.Duration(res[2]) * time.Millisecond,
	}, nil
}

// --------- Sliding Window (Redis ZSET) ---------

type RedisSlidingWindow struct {
	rdb    redis.Cmdable
	limit  int
	window time.Duration
	now    func() time.Time
}

func NewRedisSlidingWindow(rdb redis.Cmdable, limit int, window time.Duration) *RedisSlidingWindow {
	return &RedisSlidingWindow{rdb: rdb, limit: limit, window: window, now: time.Now}
}

func (sw *RedisSlidingWindow) Allow(ctx context.Context, key string) (Decision, error) {
	now := sw.now()
	nowMS := now.UnixMilli()
	windowMS := sw.window.Milliseconds()

	pipe := sw.rdb.TxPipeline()
	member := strconv.FormatInt(now.UnixNano(), 36)
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(nowMS), Member: member})
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(nowMS-windowMS, 10))
	countCmd := pipe.ZCard(ctx, key)
	oldestCmd := pipe.ZRangeWithScores(ctx, key, 0, 0)
	pipe.PExpire(ctx, key, sw.window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(countCmd.Val())
	d := Decision{
		Allowed:   count <= sw.limit,
		Policy:    "sliding-window",
		Limit:     sw.limit,
		Remaining: sw.limit - count,
	}
	if !d.Allowed {
		d.RetryAfter = time.Second
		if oldest := oldestCmd.Val(); len(oldest) == 1 {
			if ms := int64(oldest[0].Score) + windowMS - nowMS; ms > 1000 {
				d.RetryAfter = time.Duration(ms) * time.Millisecond
			}
		}
	}
	return d, nil
}

// --------- Local fallback (x/time/rate) ---------

// LocalTokenBucket is the single-instance limiter used when Redis is not
// configured. Idle keys are swept so the map does not grow without bound.
type LocalTokenBucket struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	idle     time.Duration
	buckets  map[string]*localBucket
	lastScan time.Time
	now      func() time.Time
}

type localBucket struct {
	lim  *rate.Limiter
	seen time.Time
}

func NewLocalTokenBucket(ratePerSecond float64, burst int) *LocalTokenBucket {
	return &LocalTokenBucket{
		limit:   rate.Limit(ratePerSecond),
		burst:   burst,
		idle:    10 * time.Minute,
		buckets: make(map[string]*localBucket),
		now:     time.Now,
	}
}

// NewLocalWindow approximates a limit-per-window policy with a bucket that
// refills limit tokens per window.
func NewLocalWindow(limit int, window time.Duration) *LocalTokenBucket {
	return NewLocalTokenBucket(float64(limit)/window.Seconds(), limit)
}

func (l *LocalTokenBucket) Allow(_ context.Context, key string) (Decision, error) {
	now := l.now()

	l.mu.Lock()
	if now.Sub(l.lastScan) > l.idle {
		for k, b := range l.buckets {
			if now.Sub(b.seen) > l.idle {
				delete(l.buckets, k)
			}
		}
		l.lastScan = now
	}
	b, ok := l.buckets[key]
	if !ok {
		b = &localBucket{lim: rate.NewLimiter(l.limit, l.burst)}
		l.buckets[key] = b
	}
	b.seen = now
	l.mu.Unlock()

	res := b.lim.ReserveN(now, 1)
	d := Decision{Policy: "local-token-bucket", Limit: l.burst}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		d.RetryAfter = delay
		return d, nil
	}
	d.Allowed = true
	d.Remaining = int(b.lim.TokensAt(now))
	return d, nil
}
