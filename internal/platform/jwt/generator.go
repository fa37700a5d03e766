package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Subject is the identity a token is issued for.
type Subject struct {
	UserID   uint
	Username string
	IsStaff  bool
	IsAdmin  bool
}

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given user.
	GenerateToken(s Subject) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed HS256 token carrying the capability claims.
func (g *generator) GenerateToken(s Subject) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      s.UserID,
		"exp":      now.Add(g.expiration).Unix(),
		"iat":      now.Unix(),
		"username": s.Username,
		"staff":    s.IsStaff,
		"admin":    s.IsAdmin,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
