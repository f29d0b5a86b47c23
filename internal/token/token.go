// Package token issues and verifies the signed bearer tokens that carry
// a user's identity between requests. Tokens are stateless: nothing is
// persisted, verification is signature plus expiry.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is how long an issued token stays valid
const TokenLifetime = time.Hour

// ErrInvalidToken covers bad signatures, malformed tokens, and expiry
var ErrInvalidToken = errors.New("invalid or expired token")

// Service signs and verifies identity tokens with a shared HMAC secret
type Service struct {
	secret []byte
}

// NewService creates a token service with the given signing secret
func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Sign issues a token for userID, valid for TokenLifetime
func (s *Service) Sign(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": userID,
		"iat":    now.Unix(),
		"exp":    now.Add(TokenLifetime).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded user id
func (s *Service) Verify(tokenString string) (string, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	userID, ok := claims["userId"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}

	return userID, nil
}
