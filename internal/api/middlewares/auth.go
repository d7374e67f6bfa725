package middlewares

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/5w1tchy/wordlist-api/internal/api/apperr"
	jwtutil "github.com/5w1tchy/wordlist-api/internal/security/jwt"
)

// TokenStates reports the live revocation state of an operator.
type TokenStates interface {
	TokenState(ctx context.Context, operatorID string) (version int, role string, disabled bool, err error)
}

// RequireAuth verifies the Bearer JWT, checks token_version and the disabled
// flag against the store, then injects the Principal. The role comes from the
// store, so a demotion takes effect without waiting for the token to expire.
func RequireAuth(signer *jwtutil.Signer, states TokenStates) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" {
				unauthorized(w, r, "missing Authorization header")
				return
			}
			tokenStr, err := bearer(raw)
			if err != nil {
				unauthorized(w, r, "invalid Authorization header")
				return
			}
			claims, err := signer.ParseAccess(tokenStr)
			if err != nil {
				unauthorized(w, r, "invalid token")
				return
			}

			ver, role, disabled, err := states.TokenState(r.Context(), claims.Subject)
			if err != nil {
				unauthorized(w, r, "operator not found")
				return
			}
			if disabled || claims.TokenVersion != ver {
				unauthorized(w, r, "token revoked")
				return
			}

			ctx := WithPrincipal(r.Context(), Principal{OperatorID: claims.Subject, Role: role})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="wordlist-api"`)
	apperr.WriteStatus(w, r, http.StatusUnauthorized, "Unauthorized", detail)
}

func bearer(h string) (string, error) {
	if len(h) < len("Bearer ") || !strings.EqualFold(h[:len("Bearer ")], "Bearer ") {
		return "", errors.New("no bearer")
	}
	tok := strings.TrimSpace(h[len("Bearer "):])
	if tok == "" {
		return "", errors.New("empty bearer")
	}
	return tok, nil
}
