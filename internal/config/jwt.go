package config

import (
	"errors"
	"fmt"
	"time"
)

// Token defaults
const (
	DefaultTokenIssuer = "quote-agent"
	DefaultTokenTTL    = "12h" // one estimator shift
	minSecretLength    = 16
	minTokenTTL        = time.Minute
)

// ErrTokenSecretMissing is returned when tokens are requested without JWT_SECRET
var ErrTokenSecretMissing = errors.New("JWT_SECRET is required to sign estimator tokens")

// JWTConfig holds the signing settings for estimator tokens
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// TokensEnabled reports whether a signing secret is configured
func (c *Config) TokensEnabled() bool {
	return c.TokenSecret != ""
}

// JWT derives token settings from the merged configuration
func (c *Config) JWT() (*JWTConfig, error) {
	if c.TokenSecret == "" {
		return nil, ErrTokenSecretMissing
	}
	if len(c.TokenSecret) < minSecretLength {
		return nil, fmt.Errorf("JWT_SECRET must be at least %d characters, got %d", minSecretLength, len(c.TokenSecret))
	}

	ttl, err := c.tokenTTL()
	if err != nil {
		return nil, err
	}
	issuer := c.TokenIssuer
	if issuer == "" {
		issuer = DefaultTokenIssuer
	}
	return &JWTConfig{Secret: c.TokenSecret, TTL: ttl, Issuer: issuer}, nil
}

func (c *Config) tokenTTL() (time.Duration, error) {
	raw := c.TokenTTL
	if raw == "" {
		raw = DefaultTokenTTL
	}
	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid 'token_ttl' %q: %w", raw, err)
	}
	if ttl < minTokenTTL {
		return 0, fmt.Errorf("config error: 'token_ttl' must be at least %s, got %s", minTokenTTL, ttl)
	}
	return ttl, nil
}
