package validate

import (
	"context"
	"errors"
	"fmt"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/wordlist-api/internal/config"
)

// Env validates the service configuration. Fail-fast on bad config.
func Env(c config.Config) error {
	if c.DatabaseURL == "" {
		return errors.New("DATABASE_URL not set")
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if len(secret) < 32 {
		return errors.New("AUTH_JWT_SECRET must be at least 32 characters")
	}
	if _, err := envDuration("AUTH_ACCESS_TTL", "15m"); err != nil {
		return fmt.Errorf("AUTH_ACCESS_TTL: %w", err)
	}

	// Argon2 lower bounds (only enforce if explicitly set)
	if err := envMinUint("ARGON2_MEMORY", 65536); err != nil { // >= 64MiB
		return fmt.Errorf("ARGON2_MEMORY: %w", err)
	}
	if err := envMinUint("ARGON2_ITER", 2); err != nil {
		return fmt.Errorf("ARGON2_ITER: %w", err)
	}
	if err := envMinUint("ARGON2_PAR", 1); err != nil {
		return fmt.Errorf("ARGON2_PAR: %w", err)
	}

	if c.Gen.MaxCandidates <= 0 {
		return errors.New("GEN_MAX_CANDIDATES must be > 0")
	}
	if c.Gen.MaxKeywords <= 0 {
		return errors.New("GEN_MAX_KEYWORDS must be > 0")
	}
	if c.Gen.MaxFieldLen <= 0 {
		return errors.New("GEN_MAX_FIELD_LEN must be > 0")
	}
	if c.MaxBodyBytes <= 0 {
		return errors.New("MAX_BODY_SIZE must be > 0")
	}
	if (c.TLSCert == "") != (c.TLSKey == "") {
		return errors.New("TLS_CERT and TLS_KEY must be set together")
	}
	if c.RateLimit.PerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return errors.New("RATE_PER_SECOND and RATE_BURST must be > 0")
	}
	if c.RateLimit.WindowLimit <= 0 || c.RateLimit.Window <= 0 {
		return errors.New("RATE_WINDOW_LIMIT and RATE_WINDOW must be > 0")
	}
	if c.RateLimit.LoginMax <= 0 || c.RateLimit.LoginWindow <= 0 {
		return errors.New("LOGIN_MAX_ATTEMPTS and LOGIN_WINDOW must be > 0")
	}
	if c.RateLimit.GenPerMinute <= 0 {
		return errors.New("GEN_PER_MINUTE must be > 0")
	}
	for _, p := range c.TrustedProxies {
		if _, err := netip.ParsePrefix(p); err == nil {
			continue
		}
		if _, err := netip.ParseAddr(p); err != nil {
			return fmt.Errorf("TRUSTED_PROXIES: %q is not an address or CIDR", p)
		}
	}
	if _, _, err := ParseClock(c.Retention.At); err != nil {
		return fmt.Errorf("RUNS_RETENTION_AT: %w", err)
	}
	if _, err := time.LoadLocation(c.Retention.TZ); err != nil {
		return fmt.Errorf("RUNS_RETENTION_TZ: %w", err)
	}
	return nil
}

// HardeningWarnings returns non-fatal warnings you may want to log on startup.
func HardeningWarnings(c config.Config) []string {
	var warns []string

	if d, _ := envDuration("AUTH_ACCESS_TTL", "15m"); d > time.Hour {
		warns = append(warns, fmt.Sprintf("AUTH_ACCESS_TTL=%s is > 1h; consider shorter access tokens", d))
	}
	if c.Gen.MaxCandidates > 20_000_000 {
		warns = append(warns, fmt.Sprintf("GEN_MAX_CANDIDATES=%d allows very large responses", c.Gen.MaxCandidates))
	}
	if !c.Redis.Enabled() {
		warns = append(warns, "no Redis configured; rate limits are per process")
	}

	if c.Production() {
		if os.Getenv("ARGON2_MEMORY") == "" || os.Getenv("ARGON2_ITER") == "" {
			warns = append(warns, "ARGON2_* not explicitly set; using code defaults. Set strong values in production")
		}
		if strings.HasPrefix(c.Redis.URL, "redis://") {
			warns = append(warns, "REDIS_URL uses redis:// (no TLS). Prefer rediss:// for TLS")
		}
		if c.Redis.URL == "" && c.Redis.Addr != "" && (c.Redis.User == "" || c.Redis.Password == "") {
			warns = append(warns, "REDIS_ADDR provided without REDIS_USER/REDIS_PASSWORD; require auth in production")
		}
		if c.TLSCert == "" {
			warns = append(warns, "TLS_CERT not set; serving plain HTTP")
		}
	}

	return warns
}

// PingRedis checks connectivity with a short timeout.
func PingRedis(rdb *redis.Client, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	_, err := rdb.Ping(ctx).Result()
	return err
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (int, int, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, fmt.Errorf("want HH:MM, got %q", s)
	}
	return t.Hour(), t.Minute(), nil
}

// --- helpers ---

func envDuration(key, def string) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		s = def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid duration %q", s)
	}
	return d, nil
}

func envMinUint(key string, min uint64) error {
	v := os.Getenv(key)
	if v == "" {
		return nil // unset -> code defaults apply elsewhere
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fmt.Errorf("not a number: %v", err)
	}
	if n < min {
		return fmt.Errorf("must be >= %d", min)
	}
	return nil
}
