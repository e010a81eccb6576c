// Package auth issues and validates the session credentials handed to a
// client at sign-in: bcrypt password hashes at rest, HS256 JWTs on the wire.
package auth

import (
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

const tokenLifetime = 24 * time.Hour

// TokenService signs and verifies the JWT session tokens. The "sub" claim
// carries the user id; nothing else about the session is server-side state,
// so sign-out is simply the client dropping its token.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a TokenService with the given HMAC secret.
func NewTokenService(secret string) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("jwt secret must be at least 16 characters")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// NewTokenServiceFromEnv reads the secret from JWT_SECRET.
func NewTokenServiceFromEnv() (*TokenService, error) {
	return NewTokenService(os.Getenv("JWT_SECRET"))
}

// Generate creates a signed session token for the user.
func (s *TokenService) Generate(userId string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userId,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenLifetime)),
		Issuer:    "melodymatch",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign session token")
	}
	return signed, nil
}

// Validate parses a session token and returns the user id it was issued to.
// Expired, malformed or wrongly signed tokens all fail.
func (s *TokenService) Validate(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", errors.Wrap(err, "parse session token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("session token has no subject")
	}
	return claims.Subject, nil
}
