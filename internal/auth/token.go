package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the JWT claims issued at login
type Claims struct {
	StaffID string `json:"staff_id"`
	Role    Role   `json:"role"`
	jwt.RegisteredClaims
}

// TokenConfig holds token signing settings
type TokenConfig struct {
	Secret   string
	TokenTTL time.Duration
}

// TokenService issues and validates bearer tokens
type TokenService struct {
	config *TokenConfig
}

// NewTokenService creates a token service. The signing secret is mandatory.
func NewTokenService(config *TokenConfig) (*TokenService, error) {
	if strings.TrimSpace(config.Secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	if config.TokenTTL <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", config.TokenTTL)
	}

	return &TokenService{config: config}, nil
}

// Generate signs a token for the given staff identity
func (s *TokenService) Generate(staffID string, role Role) (string, error) {
	now := time.Now()

	claims := &Claims{
		StaffID: staffID,
		Role:    role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token, returning its claims
func (s *TokenService) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token is empty")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if !claims.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q in token", claims.Role)
	}

	return claims, nil
}

// Identity returns the identity the claims assert
func (c *Claims) Identity() Identity {
	return Identity{
		StaffID: c.StaffID,
		Role:    c.Role,
	}
}
