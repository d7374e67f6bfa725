package jwtutil

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims identify an operator. TokenVersion is compared with the
// stored value so bumping it revokes every outstanding token.
type AccessClaims struct {
	TokenVersion int    `json:"tv"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

func NewAccessClaims(operatorID, role, jti, issuer string, tokenVersion int, now time.Time, ttl time.Duration) AccessClaims {
	return AccessClaims{
		TokenVersion: tokenVersion,
		Role:         role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   operatorID,
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
}
