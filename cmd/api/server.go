package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/5w1tchy/wordlist-api/internal/api/handlers/candidates"
	"github.com/5w1tchy/wordlist-api/internal/api/handlers/runs"
	mw "github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	"github.com/5w1tchy/wordlist-api/internal/api/router"
	"github.com/5w1tchy/wordlist-api/internal/auth"
	"github.com/5w1tchy/wordlist-api/internal/config"
	"github.com/5w1tchy/wordlist-api/internal/generator"
	"github.com/5w1tchy/wordlist-api/internal/logging"
	"github.com/5w1tchy/wordlist-api/internal/maintenance"
	"github.com/5w1tchy/wordlist-api/internal/metrics"
	"github.com/5w1tchy/wordlist-api/internal/repository/redisconnect"
	"github.com/5w1tchy/wordlist-api/internal/repository/sqlconnect"
	"github.com/5w1tchy/wordlist-api/internal/runlog"
	jwtutil "github.com/5w1tchy/wordlist-api/internal/security/jwt"
	"github.com/5w1tchy/wordlist-api/internal/security/password"
	"github.com/5w1tchy/wordlist-api/internal/store/operators"
	storeruns "github.com/5w1tchy/wordlist-api/internal/store/runs"
	"github.com/5w1tchy/wordlist-api/internal/validate"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "wordlist-api:", err)
		os.Exit(1)
	}
}

type limiters struct {
	tb, sw, gen, login mw.Limiter
}

func run() error {
	cfg := config.Load(".env", "../../.env")

	log, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if err := validate.Env(cfg); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	for _, w := range validate.HardeningWarnings(cfg) {
		log.Warn(w)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlconnect.ConnectDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	log.Info("connected to postgres")

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		if rdb, err = redisconnect.Connect(cfg.Redis); err != nil {
			return err
		}
		defer rdb.Close()
		if err := validate.PingRedis(rdb, 3*time.Second); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		log.Info("connected to redis")
	}
	lim := buildLimiters(cfg.RateLimit, rdb)
	proxies, err := mw.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		return fmt.Errorf("TRUSTED_PROXIES: %w", err)
	}

	opStore := operators.New(db)
	runStore := storeruns.New(db)

	queue := runlog.Start(runStore, log.Named("runlog"), 1024, 2)
	queue.OnDrop(metrics.RunAuditDropped)

	gen := generator.New(generator.WithMaxCandidates(cfg.Gen.MaxCandidates))
	signer := jwtutil.NewSigner(jwtutil.LoadConfig())
	hasher := password.NewHasher(password.LoadParamsFromEnv())

	api := router.Router(router.Deps{
		Log:          log,
		Signer:       signer,
		States:       opStore,
		Candidates:   candidates.NewHandler(gen, cfg.Gen, queue, log),
		Runs:         runs.NewHandler(runStore, log),
		Auth:         auth.New(opStore, hasher, signer, log),
		GenLimiter:   lim.gen,
		LoginLimiter: lim.login,
		Proxies:      proxies,
		Health: func(ctx context.Context) error {
			if err := db.PingContext(ctx); err != nil {
				return err
			}
			if rdb != nil {
				return rdb.Ping(ctx).Err()
			}
			return nil
		},
	})

	secureMux := router.ApplyMiddleware(api,
		mw.RequestID,
		mw.Recovery(log),
		mw.AccessLog(log.Named("http")),
		mw.CORS(cfg.CORSOrigins, log),
		mw.ResponseTimeMiddleware,
		mw.SecurityHeaders(validate.ParseBool(os.Getenv("STRICT_SECURITY"))),
		mw.HPP(mw.DefaultHPPOptions()),
		mw.BodySizeLimit(cfg.MaxBodyBytes),
		mw.RateLimit(lim.tb, mw.PerIPKey("tb", proxies), log),
		mw.RateLimit(lim.sw, mw.PerIPKey("sw", proxies), log),
		mw.Compression,
	)

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           secureMux,
		TLSConfig:         &tls.Config{MinVersion: tls.VersionTLS12},
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      2 * time.Minute, // large exports
		IdleTimeout:       2 * time.Minute,
		ErrorLog:          zap.NewStdLog(log.Named("http.server")),
	}

	hour, minute, _ := validate.ParseClock(cfg.Retention.At)
	loc, _ := time.LoadLocation(cfg.Retention.TZ)
	retention := &maintenance.RunsRetention{
		Store:    runStore,
		Log:      log.Named("retention"),
		Keep:     time.Duration(cfg.Retention.Days) * 24 * time.Hour,
		Hour:     hour,
		Minute:   minute,
		Location: loc,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLSCert != ""))
		var err error
		if cfg.TLSCert != "" {
			err = server.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error { return retention.Run(gctx) })
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		err := server.Shutdown(shutdownCtx)
		queue.Shutdown()
		return err
	})
	return g.Wait()
}

// buildLimiters uses Redis when available so limits hold across replicas,
// and per-process buckets otherwise.
func buildLimiters(rl config.RateLimit, rdb *redis.Client) limiters {
	if rdb == nil {
		return limiters{
			tb:    mw.NewLocalTokenBucket(rl.PerSecond, rl.Burst),
			sw:    mw.NewLocalWindow(rl.WindowLimit, rl.Window),
			gen:   mw.NewLocalWindow(rl.GenPerMinute, time.Minute),
			login: mw.NewLocalWindow(rl.LoginMax, rl.LoginWindow),
		}
	}
	return limiters{
		tb:    mw.NewRedisTokenBucket(rdb, rl.PerSecond, rl.Burst),
		sw:    mw.NewRedisSlidingWindow(rdb, rl.WindowLimit, rl.Window),
		gen:   mw.NewRedisSlidingWindow(rdb, rl.GenPerMinute, time.Minute),
		login: mw.NewRedisFixedWindow(rdb, rl.LoginMax, rl.LoginWindow),
	}
}
