// Package auth issues and validates the signed session tokens that replace
// a server-side session store: the token itself carries the account email.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/api-sage/invest-account-service/internal/commons"
)

type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

type TokenManager struct {
	secret   []byte
	validity time.Duration
}

func NewTokenManager(secret []byte, validity time.Duration) *TokenManager {
	return &TokenManager{secret: secret, validity: validity}
}

func (m *TokenManager) Generate(email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		Email: email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// EmailFromToken validates the signature and expiry and returns the email
// claim. Every failure mode maps to commons.ErrInvalidToken so callers never
// leak parser detail to clients.
func (m *TokenManager) EmailFromToken(raw string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid || claims.Email == "" {
		return "", commons.ErrInvalidToken
	}

	return claims.Email, nil
}
