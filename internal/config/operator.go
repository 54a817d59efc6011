package config

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/crypto/bcrypt"
)

// OperatorConfig holds the credentials an estimator uses to obtain an API token.
// The password is stored only as a bcrypt hash.
type OperatorConfig struct {
	Username     string
	PasswordHash string
	BcryptCost   int
}

// DefaultOperatorUsername is used when OPERATOR_USERNAME is unset
const DefaultOperatorUsername = "estimator"

// NewOperatorConfig reads OPERATOR_USERNAME, OPERATOR_PASSWORD_HASH and BCRYPT_COST (default 12).
// A missing hash is allowed; Verify then rejects every login.
func NewOperatorConfig() (*OperatorConfig, error) {
	costStr := os.Getenv("BCRYPT_COST")
	if costStr == "" {
		costStr = "12"
	}
	cost, err := strconv.Atoi(costStr)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %v", err)
	}
	if cost < bcrypt.MinCost || cost > 14 {
		return nil, fmt.Errorf("bcrypt cost out of range: %d (must be %d-14)", cost, bcrypt.MinCost)
	}

	username := os.Getenv("OPERATOR_USERNAME")
	if username == "" {
		username = DefaultOperatorUsername
	}

	return &OperatorConfig{
		Username:     username,
		PasswordHash: os.Getenv("OPERATOR_PASSWORD_HASH"),
		BcryptCost:   cost,
	}, nil
}

// HashPassword hashes a password with the configured cost
func (c *OperatorConfig) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// Verify checks operator credentials
func (c *OperatorConfig) Verify(username, password string) bool {
	if c.PasswordHash == "" || username != c.Username {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}
