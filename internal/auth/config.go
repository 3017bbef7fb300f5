package auth

import (
	"fmt"
	"time"

	"crm-backend/internal/config"
)

const defaultIssuer = "crm-backend"

// AuthConfig holds all authentication configuration for the application
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret" json:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl" json:"token_ttl"`
	Issuer     string        `yaml:"issuer" json:"issuer"`
	BcryptCost int           `yaml:"bcrypt_cost" json:"bcrypt_cost"`
}

// NewAuthConfig derives the auth configuration from the application configuration
func NewAuthConfig(cfg *config.Config) *AuthConfig {
	return &AuthConfig{
		JWTSecret:  cfg.JWTSecret,
		TokenTTL:   cfg.JWTTTL(),
		Issuer:     defaultIssuer,
		BcryptCost: cfg.BcryptCost,
	}
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}

	if c.TokenTTL <= 0 {
		return fmt.Errorf("token TTL must be positive")
	}

	return nil
}
