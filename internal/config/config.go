// Package config gathers the service settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	AppEnv   string
	LogLevel string

	TLSCert string
	TLSKey  string

	DatabaseURL string
	Redis       Redis

	MaxBodyBytes int64
	CORSOrigins  []string

	// TrustedProxies are addresses or CIDRs of reverse proxies whose
	// X-Forwarded-For is believed. Empty means keys use the socket peer.
	TrustedProxies []string

	Gen       Generation
	RateLimit RateLimit
	Retention Retention
}

type Redis struct {
	URL      string // redis:// or rediss://, wins over the split fields
	Addr     string
	User     string
	Password string
}

// Enabled reports whether any Redis endpoint is configured.
func (r Redis) Enabled() bool { return r.URL != "" || r.Addr != "" }

// Generation bounds what one request may ask of the generator.
type Generation struct {
	MaxCandidates int
	MaxKeywords   int
	MaxFieldLen   int
}

type RateLimit struct {
	PerSecond    float64
	Burst        int
	WindowLimit  int
	Window       time.Duration
	LoginMax     int
	LoginWindow  time.Duration
	GenPerMinute int
}

type Retention struct {
	Days int
	At   string // HH:MM
	TZ   string
}

// Load reads .env files (missing files are ignored) and then the process
// environment. Values that fail to parse fall back to defaults; validate.Env
// is the place that rejects them.
func Load(envFiles ...string) Config {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		_ = godotenv.Load(f)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = os.Getenv("UPSTASH_REDIS_URL")
	}

	return Config{
		Addr:        envStr("ADDR", ":3000"),
		AppEnv:      envStr("APP_ENV", "development"),
		LogLevel:    envStr("LOG_LEVEL", "info"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: Redis{
			URL:      redisURL,
			Addr:     os.Getenv("REDIS_ADDR"),
			User:     os.Getenv("REDIS_USER"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		MaxBodyBytes:   int64(EnvInt("MAX_BODY_SIZE", 64*1024)),
		CORSOrigins:    envList("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://127.0.0.1:5173"),
		TrustedProxies: envList("TRUSTED_PROXIES", ""),
		Gen: Generation{
			MaxCandidates: EnvInt("GEN_MAX_CANDIDATES", 2_000_000),
			MaxKeywords:   EnvInt("GEN_MAX_KEYWORDS", 16),
			MaxFieldLen:   EnvInt("GEN_MAX_FIELD_LEN", 64),
		},
		RateLimit: RateLimit{
			PerSecond:    envFloat("RATE_PER_SECOND", 5),
			Burst:        EnvInt("RATE_BURST", 20),
			WindowLimit:  EnvInt("RATE_WINDOW_LIMIT", 3000),
			Window:       EnvDuration("RATE_WINDOW", "60m"),
			LoginMax:     EnvInt("LOGIN_MAX_ATTEMPTS", 10),
			LoginWindow:  EnvDuration("LOGIN_WINDOW", "5m"),
			GenPerMinute: EnvInt("GEN_PER_MINUTE", 30),
		},
		Retention: Retention{
			Days: EnvInt("RUNS_RETENTION_DAYS", 30),
			At:   envStr("RUNS_RETENTION_AT", "03:00"),
			TZ:   envStr("RUNS_RETENTION_TZ", "UTC"),
		},
	}
}

// Production reports whether APP_ENV names a production deployment.
func (c Config) Production() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// --- helpers ---

func envStr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func EnvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func envFloat(k string, def float64) float64 {
	if v := os.Getenv(k); v != "" {
		if f, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			return f
		}
	}
	return def
}

func EnvDuration(k, def string) time.Duration {
	s := def
	if v := os.Getenv(k); v != "" {
		s = v
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		d, _ = time.ParseDuration(def)
	}
	return d
}

func envList(k, def string) []string {
	raw := envStr(k, def)
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
