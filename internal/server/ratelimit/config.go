package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule limits one route. Pattern uses path.Match syntax, so "/quotes/*/feedback"
// covers every quote id.
type Rule struct {
	Method  string
	Pattern string
	// Limit is requests per Window; 0 means unlimited
	Limit  int
	Window time.Duration
	// Burst defaults to Limit
	Burst int
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// LoadConfig reads RATE_LIMIT_* environment variables
func LoadConfig() *Config {
	if !envBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:           DefaultRules(envInt("RATE_LIMIT_QUOTES_PER_MINUTE", 60)),
	}
}

// DefaultRules returns the per-route limits. Quote creation prices every task
// against the supplier, and token issuance runs bcrypt, so both are tighter
// than reads.
func DefaultRules(quotesPerMinute int) []Rule {
	return []Rule{
		{Method: "GET", Pattern: "/health", Limit: 0},
		{Method: "POST", Pattern: "/quotes", Limit: quotesPerMinute, Window: time.Minute, Burst: 10},
		{Method: "POST", Pattern: "/quotes/*/feedback", Limit: 120, Window: time.Minute, Burst: 20},
		{Method: "POST", Pattern: "/auth/token", Limit: 10, Window: time.Minute, Burst: 5},
		{Method: "GET", Pattern: "/quotes/search", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func envInt(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return fallback
}

// parseIPList parses a comma-separated list of IP addresses into a set
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
