package auth

import (
	"context"

	"github.com/5w1tchy/wordlist-api/internal/store/operators"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// OperatorStore is the slice of the operators store the handlers need.
type OperatorStore interface {
	FindByEmail(ctx context.Context, email string) (operators.Operator, error)
	FindByID(ctx context.Context, id string) (operators.Operator, error)
	UpdatePasswordHash(ctx context.Context, id, hash string) error
	RevokeTokens(ctx context.Context, id string) error
}
