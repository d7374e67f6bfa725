package middlewares

import (
	"net/http"

	"github.com/5w1tchy/wordlist-api/internal/api/apperr"
)

// RequireRole must sit behind RequireAuth.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := PrincipalFrom(r.Context())
			if !ok {
				unauthorized(w, r, "authentication required")
				return
			}
			if p.Role != role {
				apperr.WriteStatus(w, r, http.StatusForbidden, "Forbidden", "requires role "+role)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
