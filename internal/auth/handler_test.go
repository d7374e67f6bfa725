package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	"github.com/5w1tchy/wordlist-api/internal/auth"
	jwtutil "github.com/5w1tchy/wordlist-api/internal/security/jwt"
	"github.com/5w1tchy/wordlist-api/internal/security/password"
	"github.com/5w1tchy/wordlist-api/internal/store/operators"
)

var cheap = password.Params{Memory: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

type memStore struct {
	byID     map[string]operators.Operator
	rehashed map[string]string
	revoked  []string
}

func (m *memStore) FindByEmail(_ context.Context, email string) (operators.Operator, error) {
	for _, op := range m.byID {
		if op.Email == strings.ToLower(email) {
			return op, nil
		}
	}
	return operators.Operator{}, operators.ErrNotFound
}

func (m *memStore) FindByID(_ context.Context, id string) (operators.Operator, error) {
	op, ok := m.byID[id]
	if !ok {
		return operators.Operator{}, operators.ErrNotFound
	}
	return op, nil
}

func (m *memStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.rehashed[id] = hash
	return nil
}

func (m *memStore) RevokeTokens(_ context.Context, id string) error {
	m.revoked = append(m.revoked, id)
	return nil
}

func setup(t *testing.T, hashParams password.Params) (*auth.Handler, *memStore, *jwtutil.Signer) {
	t.Helper()
	phc, err := password.NewHasher(hashParams).Hash("correct horse battery")
	require.NoError(t, err)
	sto := &memStore{
		byID: map[string]operators.Operator{
			"op-1": {ID: "op-1", Email: "ops@example.com", PasswordHash: phc, Role: operators.RoleAdmin, TokenVersion: 3},
			"op-2": {ID: "op-2", Email: "gone@example.com", PasswordHash: phc, Role: operators.RoleOperator, Disabled: true},
		},
		rehashed: map[string]string{},
	}
	signer := jwtutil.NewSigner(jwtutil.Config{
		Secret:    []byte("0123456789abcdef0123456789abcdef"),
		AccessTTL: 15 * time.Minute,
		Issuer:    "wordlist-api",
	})
	return auth.New(sto, password.NewHasher(cheap), signer, zap.NewNop()), sto, signer
}

func login(h *auth.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Login(rr, req)
	return rr
}

func TestLogin(t *testing.T) {
	h, sto, signer := setup(t, cheap)

	rr := login(h, `{"email":"OPS@example.com","password":"correct horse battery"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp auth.TokenResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, 900, resp.ExpiresIn)

	claims, err := signer.ParseAccess(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "op-1", claims.Subject)
	assert.Equal(t, 3, claims.TokenVersion)
	assert.Equal(t, operators.RoleAdmin, claims.Role)
	assert.Empty(t, sto.rehashed)
}

func TestLogin_RehashesWeakerHash(t *testing.T) {
	weaker := cheap
	weaker.Memory = 4 * 1024
	h, sto, _ := setup(t, weaker)

	rr := login(h, `{"email":"ops@example.com","password":"correct horse battery"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, sto.rehashed["op-1"], "m=8192")
}

func TestLogin_Rejects(t *testing.T) {
	h, _, _ := setup(t, cheap)
	for name, tc := range map[string]struct {
		body string
		code int
	}{
		"wrong password": {`{"email":"ops@example.com","password":"nope"}`, http.StatusUnauthorized},
		"unknown email":  {`{"email":"who@example.com","password":"correct horse battery"}`, http.StatusUnauthorized},
		"disabled":       {`{"email":"gone@example.com","password":"correct horse battery"}`, http.StatusUnauthorized},
		"missing fields": {`{"email":""}`, http.StatusBadRequest},
		"bad json":       {`{`, http.StatusBadRequest},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.code, login(h, tc.body).Code)
		})
	}
}

func withOperator(r *http.Request, id string) *http.Request {
	return r.WithContext(middlewares.WithPrincipal(r.Context(), middlewares.Principal{OperatorID: id, Role: operators.RoleOperator}))
}

func TestMe(t *testing.T) {
	h, _, _ := setup(t, cheap)

	rr := httptest.NewRecorder()
	h.Me(rr, withOperator(httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil), "op-1"))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"ops@example.com"`)
	assert.NotContains(t, rr.Body.String(), "argon2id", "hash must never leave the server")

	rr = httptest.NewRecorder()
	h.Me(rr, httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestLogoutAll(t *testing.T) {
	h, sto, _ := setup(t, cheap)
	rr := httptest.NewRecorder()
	h.LogoutAll(rr, withOperator(httptest.NewRequest(http.MethodPost, "/v1/auth/logout-all", nil), "op-1"))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, []string{"op-1"}, sto.revoked)
}
