package redisconnect

import (
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/5w1tchy/wordlist-api/internal/config"
)

// Options turns the Redis settings into client options. A URL wins over the
// split fields; rediss:// URLs and split-field configs always use TLS.
func Options(c config.Redis) (*redis.Options, error) {
	if c.URL != "" {
		opt, err := redis.ParseURL(c.URL) // e.g. rediss://default:<token>@host:port
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		if opt.TLSConfig != nil {
			opt.TLSConfig.MinVersion = tls.VersionTLS12
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = time.Second
		opt.WriteTimeout = time.Second
		return opt, nil
	}
	if c.Addr == "" {
		return nil, errors.New("missing Redis config: set REDIS_URL or REDIS_ADDR")
	}
	return &redis.Options{
		Addr:         c.Addr,
		Username:     c.User,
		Password:     c.Password,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  500 * time.Millisecond,
		WriteTimeout: 500 * time.Millisecond,
		TLSConfig:    &tls.Config{MinVersion: tls.VersionTLS12},
	}, nil
}

func Connect(c config.Redis) (*redis.Client, error) {
	opt, err := Options(c)
	if err != nil {
		return nil, err
	}
	return redis.NewClient(opt), nil
}
