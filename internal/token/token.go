package token

import (
	"errors"
	"strconv"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

// TTL is the lifetime of an issued token.
const TTL = 7 * 24 * time.Hour

var (
	ErrEmptySecret  = errors.New("token secret is empty")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Issue signs a bearer token whose subject is the user ID.
func Issue(secret string, userID uint64) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(secret))
}

// Parse validates a bearer token and returns the user ID it was issued for.
func Parse(secret, tokenStr string) (uint64, error) {
	if secret == "" {
		return 0, ErrEmptySecret
	}

	var claims jwt.RegisteredClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}

	return userID, nil
}
