// Package jwthelper issues and verifies the bearer tokens used by the API.
package jwthelper

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dainadb/improplan/internal/domain"
)

const tokenLifetime = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

type UserClaims struct {
	jwt.RegisteredClaims

	UserID uint     `json:"uid"`
	Email  string   `json:"email"`
	Roles  []string `json:"roles"`
}

// GenerateToken signs a token carrying the user's identity and roles.
func GenerateToken(signingKey string, user domain.User) (string, error) {
	roles := make([]string, 0, len(user.Roles))
	for _, role := range user.Roles {
		roles = append(roles, string(role))
	}

	claims := UserClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Roles:  roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(signingKey))
	if err != nil {
		return "", fmt.Errorf("token.SignedString -> %w", err)
	}

	return signed, nil
}

// ParseToken verifies the signature and expiry and returns the claims.
func ParseToken(signingKey, tokenString string) (*UserClaims, error) {
	claims := &UserClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: unexpected signing method %v", ErrInvalidToken, t.Header["alg"])
		}

		return []byte(signingKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("jwt.ParseWithClaims -> %w", err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
