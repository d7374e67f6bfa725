package router

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/handlers/candidates"
	"github.com/5w1tchy/wordlist-api/internal/api/handlers/runs"
	"github.com/5w1tchy/wordlist-api/internal/api/httpx"
	mw "github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	"github.com/5w1tchy/wordlist-api/internal/auth"
	jwtutil "github.com/5w1tchy/wordlist-api/internal/security/jwt"
	"github.com/5w1tchy/wordlist-api/internal/store/operators"
)

type Deps struct {
	Log    *zap.Logger
	Signer *jwtutil.Signer
	States mw.TokenStates

	Candidates *candidates.Handler
	Runs       *runs.Handler
	Auth       *auth.Handler

	// GenLimiter throttles generation per operator; LoginLimiter throttles
	// login attempts per IP. Either may be nil.
	GenLimiter   mw.Limiter
	LoginLimiter mw.Limiter

	// Proxies decides whose forwarding headers count when keying per IP.
	Proxies mw.TrustedProxies

	// Health reports dependency readiness for /healthz.
	Health func(ctx context.Context) error
}

// ApplyMiddleware wraps h so that the first middleware listed runs first.
func ApplyMiddleware(h http.Handler, mws ...func(http.Handler) http.Handler) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

func Router(d Deps) http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, h http.Handler, mws ...func(http.Handler) http.Handler) {
		mux.Handle(pattern, mw.Instrument(pattern, ApplyMiddleware(h, mws...)))
	}

	authn := mw.RequireAuth(d.Signer, d.States)
	limit := func(l mw.Limiter, key mw.KeyFunc) func(http.Handler) http.Handler {
		if l == nil {
			return func(h http.Handler) http.Handler { return h }
		}
		return mw.RateLimit(l, key, d.Log)
	}
	genLimit := limit(d.GenLimiter, mw.PerOperatorKey("rl:gen", d.Proxies))

	// Ops
	handle("GET /healthz", healthz(d.Health))
	handle("GET /metrics", promhttp.Handler())

	// Auth
	handle("POST /v1/auth/login", http.HandlerFunc(d.Auth.Login), limit(d.LoginLimiter, mw.PerIPKey("rl:login", d.Proxies)))
	handle("GET /v1/auth/me", http.HandlerFunc(d.Auth.Me), authn)
	handle("POST /v1/auth/logout-all", http.HandlerFunc(d.Auth.LogoutAll), authn)

	// Generation
	handle("POST /v1/candidates", http.HandlerFunc(d.Candidates.List), authn, genLimit)
	handle("POST /v1/candidates/export", http.HandlerFunc(d.Candidates.Export), authn, genLimit)
	handle("POST /v1/strength", http.HandlerFunc(d.Candidates.Strength), authn)

	// Admin
	handle("GET /v1/runs", http.HandlerFunc(d.Runs.List), authn, mw.RequireRole(operators.RoleAdmin))

	return mux
}

func healthz(check func(ctx context.Context) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if check != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := check(ctx); err != nil {
				httpx.ErrorJSON(w, http.StatusServiceUnavailable, "unavailable")
				return
			}
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}
