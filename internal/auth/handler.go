// Package auth serves operator login and session endpoints.
package auth

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/5w1tchy/wordlist-api/internal/api/apperr"
	"github.com/5w1tchy/wordlist-api/internal/api/httpx"
	"github.com/5w1tchy/wordlist-api/internal/api/middlewares"
	jwtutil "github.com/5w1tchy/wordlist-api/internal/security/jwt"
	"github.com/5w1tchy/wordlist-api/internal/security/password"
	"github.com/5w1tchy/wordlist-api/internal/store/operators"
)

type Handler struct {
	Store  OperatorStore
	Hasher *password.Hasher
	Signer *jwtutil.Signer
	Log    *zap.Logger
}

func New(store OperatorStore, hasher *password.Hasher, signer *jwtutil.Signer, log *zap.Logger) *Handler {
	return &Handler{Store: store, Hasher: hasher, Signer: signer, Log: log}
}

// Login handles POST /v1/auth/login. Unknown email, wrong password and a
// disabled account all get the same 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.ErrorCode(w, http.StatusBadRequest, "bad_request", "Invalid JSON")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		httpx.ErrorCode(w, http.StatusBadRequest, "invalid_input", "Email and password are required")
		return
	}

	op, err := h.Store.FindByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, operators.ErrNotFound) {
			h.Log.Error("login lookup failed", zap.Error(err))
			httpx.ErrorCode(w, http.StatusInternalServerError, "lookup_failed", "Login failed")
			return
		}
		invalidCredentials(w)
		return
	}
	ok, needsRehash, err := h.Hasher.Verify(req.Password, op.PasswordHash)
	if err != nil || !ok || op.Disabled {
		invalidCredentials(w)
		return
	}
	if needsRehash {
		if phc, err := h.Hasher.Hash(req.Password); err == nil {
			if err := h.Store.UpdatePasswordHash(r.Context(), op.ID, phc); err != nil {
				h.Log.Warn("password rehash not saved", zap.String("operator_id", op.ID), zap.Error(err))
			}
		}
	}

	access, _, err := h.Signer.SignAccess(op.ID, op.Role, op.TokenVersion)
	if err != nil {
		h.Log.Error("sign access token", zap.Error(err))
		httpx.ErrorCode(w, http.StatusInternalServerError, "jwt_error", "Failed to sign access token")
		return
	}
	httpx.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: access,
		TokenType:   "Bearer",
		ExpiresIn:   int(h.Signer.TTL().Seconds()),
	})
}

// Me handles GET /v1/auth/me.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middlewares.OperatorIDFrom(r.Context())
	if !ok {
		httpx.ErrorCode(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}
	op, err := h.Store.FindByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, operators.ErrNotFound) {
			httpx.ErrorCode(w, http.StatusNotFound, "not_found", "Operator not found")
			return
		}
		apperr.HandleError(w, r, err, "Failed to load operator")
		return
	}
	httpx.OK(w, op)
}

// LogoutAll handles POST /v1/auth/logout-all by bumping token_version, which
// invalidates every access token issued so far.
func (h *Handler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	id, ok := middlewares.OperatorIDFrom(r.Context())
	if !ok {
		httpx.ErrorCode(w, http.StatusUnauthorized, "unauthorized", "Unauthorized")
		return
	}
	if err := h.Store.RevokeTokens(r.Context(), id); err != nil {
		apperr.HandleError(w, r, err, "Failed to revoke tokens")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func invalidCredentials(w http.ResponseWriter) {
	httpx.ErrorCode(w, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password")
}
