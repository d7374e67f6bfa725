package router_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/handlers/candidates"
	"github.com/5w1tchy/wordlist-api/internal/api/handlers/runs"
	mw "github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	"github.com/5w1tchy/wordlist-api/internal/api/router"
	"github.com/5w1tchy/wordlist-api/internal/auth"
	"github.com/5w1tchy/wordlist-api/internal/config"
	"github.com/5w1tchy/wordlist-api/internal/generator"
	jwtutil "github.com/5w1tchy/wordlist-api/internal/security/jwt"
	"github.com/5w1tchy/wordlist-api/internal/security/password"
	"github.com/5w1tchy/wordlist-api/internal/store/operators"
	storeruns "github.com/5w1tchy/wordlist-api/internal/store/runs"
)

type states map[string]string // id -> role

func (s states) TokenState(_ context.Context, id string) (int, string, bool, error) {
	role, ok := s[id]
	if !ok {
		return 0, "", false, errors.New("not found")
	}
	return 1, role, false, nil
}

type noRuns struct{}

func (noRuns) List(context.Context, storeruns.Filter) ([]storeruns.Run, int, error) {
	return []storeruns.Run{}, 0, nil
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) (mw.Decision, error) {
	return mw.Decision{Policy: "test", RetryAfter: time.Second}, nil
}

func setup(t *testing.T, health func(context.Context) error) (http.Handler, *jwtutil.Signer) {
	t.Helper()
	log := zap.NewNop()
	signer := jwtutil.NewSigner(jwtutil.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		AccessTTL: time.Minute,
		Issuer:    "wordlist-api",
	})
	gen := generator.New(generator.WithClock(generator.FixedClock(2024)))
	h := router.Router(router.Deps{
		Log:          log,
		Signer:       signer,
		States:       states{"op-1": operators.RoleOperator, "admin-1": operators.RoleAdmin},
		Candidates:   candidates.NewHandler(gen, config.Generation{MaxKeywords: 16, MaxFieldLen: 64}, nil, log),
		Runs:         runs.NewHandler(noRuns{}, log),
		Auth:         auth.New(nil, password.NewHasher(password.Params{}), signer, log),
		LoginLimiter: denyAll{},
		Health:       health,
	})
	return h, signer
}

func do(t *testing.T, h http.Handler, method, target, token string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func token(t *testing.T, s *jwtutil.Signer, id string) string {
	t.Helper()
	tok, _, err := s.SignAccess(id, "", 1)
	require.NoError(t, err)
	return tok
}

func TestRouter_Ops(t *testing.T) {
	h, _ := setup(t, nil)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/healthz", "", nil).Code)

	rr := do(t, h, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "wordlist_http_requests_total")

	h, _ = setup(t, func(context.Context) error { return errors.New("db down") })
	assert.Equal(t, http.StatusServiceUnavailable, do(t, h, http.MethodGet, "/healthz", "", nil).Code)
}

func TestRouter_CandidatesRequireAuth(t *testing.T) {
	h, signer := setup(t, nil)
	body := []byte(`{"first_name":"rex","options":{}}`)

	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/v1/candidates", "", body).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/candidates", token(t, signer, "op-1"), body).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/v1/strength", token(t, signer, "op-1"), []byte(`{"password":"x"}`)).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodGet, "/v1/candidates", token(t, signer, "op-1"), nil).Code)
}

func TestRouter_RunsAdminOnly(t *testing.T) {
	h, signer := setup(t, nil)
	assert.Equal(t, http.StatusForbidden, do(t, h, http.MethodGet, "/v1/runs", token(t, signer, "op-1"), nil).Code)
	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/v1/runs", token(t, signer, "admin-1"), nil).Code)
}

func TestRouter_LoginIsRateLimited(t *testing.T) {
	h, _ := setup(t, nil)
	rr := do(t, h, http.MethodPost, "/v1/auth/login", "", []byte(`{"email":"a@b.c","password":"x"}`))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
	assert.Equal(t, "1", rr.Header().Get("Retry-After"))
}

func TestApplyMiddleware_Order(t *testing.T) {
	var order []string
	tag := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	h := router.ApplyMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}), tag("a"), tag("b"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, []string{"a", "b"}, order)
}
