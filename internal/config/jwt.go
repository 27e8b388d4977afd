package config

import (
	"fmt"
	"os"
	"strconv"
)

// JWTConfig holds the signing settings for API bearer tokens. Token auth is
// optional; the server only protects routes when JWT_SECRET is present.
type JWTConfig struct {
	Secret          string
	ExpirationHours int
}

const defaultTokenLifetimeHours = 24

// NewJWTConfig builds token settings from JWT_SECRET (required) and
// JWT_EXPIRATION_HOURS (optional, defaults to one day).
func NewJWTConfig() (*JWTConfig, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required but not set")
	}

	hours := defaultTokenLifetimeHours
	if raw := os.Getenv("JWT_EXPIRATION_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %v", err)
		}
		hours = parsed
	}
	if hours < 1 {
		return nil, fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", hours)
	}

	return &JWTConfig{Secret: secret, ExpirationHours: hours}, nil
}
