package ratelimit

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newTestLimiter(t *testing.T, cfg *Config) (*Limiter, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)}
	l := NewLimiter(cfg)
	l.now = clock.now
	t.Cleanup(l.Stop)
	return l, clock
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true,
		Rules:   []Rule{{Method: "POST", Pattern: "/quotes", Limit: 60, Window: time.Minute, Burst: 3}},
	})

	for i := 0; i < 3; i++ {
		allowed, info := l.Allow("10.0.0.1", "/quotes", "POST")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 60, info.Limit)
		assert.Equal(t, 2-i, info.Remaining)
	}

	allowed, info := l.Allow("10.0.0.1", "/quotes", "POST")
	assert.False(t, allowed)
	assert.Equal(t, time.Second, info.RetryAfter)
}

func TestLimiter_Refill(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{
		Enabled: true,
		Rules:   []Rule{{Method: "POST", Pattern: "/quotes", Limit: 60, Window: time.Minute, Burst: 1}},
	})

	allowed, _ := l.Allow("c", "/quotes", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("c", "/quotes", "POST")
	require.False(t, allowed)

	clock.advance(time.Second)
	allowed, _ = l.Allow("c", "/quotes", "POST")
	assert.True(t, allowed)
}

func TestLimiter_ClientsAndRoutesAreIndependent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
	})

	allowed, _ := l.Allow("a", "/quotes", "GET")
	require.True(t, allowed)
	allowed, _ = l.Allow("a", "/quotes", "GET")
	assert.False(t, allowed)

	allowed, _ = l.Allow("b", "/quotes", "GET")
	assert.True(t, allowed, "other client")
	allowed, _ = l.Allow("a", "/feedback/stats", "GET")
	assert.True(t, allowed, "other route")
}

func TestLimiter_PatternSharesBucketAcrossIDs(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true,
		Rules:   []Rule{{Method: "POST", Pattern: "/quotes/*/feedback", Limit: 1, Window: time.Minute}},
	})

	allowed, _ := l.Allow("a", "/quotes/one/feedback", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("a", "/quotes/two/feedback", "POST")
	assert.False(t, allowed)
}

func TestLimiter_ListsAndDisabled(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"trusted": true},
		Blacklist:     map[string]bool{"banned": true},
	})

	for i := 0; i < 5; i++ {
		allowed, _ := l.Allow("trusted", "/quotes", "GET")
		assert.True(t, allowed)
	}
	allowed, _ := l.Allow("banned", "/quotes", "GET")
	assert.False(t, allowed)

	disabled, _ := newTestLimiter(t, &Config{Enabled: false})
	for i := 0; i < 5; i++ {
		allowed, _ := disabled.Allow("x", "/quotes", "POST")
		assert.True(t, allowed)
	}
}

func TestLimiter_HealthIsUnlimited(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Rules:         DefaultRules(60),
	})

	for i := 0; i < 10; i++ {
		allowed, info := l.Allow("a", "/health", "GET")
		assert.True(t, allowed)
		assert.Zero(t, info.Limit)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	l, clock := newTestLimiter(t, &Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})

	l.Allow("old", "/quotes", "GET")
	clock.advance(2 * time.Hour)
	l.Allow("new", "/quotes", "GET")
	require.Equal(t, 2, l.Len())

	l.cleanup(clock.now().Add(-time.Hour))
	assert.Equal(t, 1, l.Len())
}

func TestLimiter_Concurrent(t *testing.T) {
	l, _ := newTestLimiter(t, &Config{
		Enabled: true,
		Rules:   []Rule{{Method: "POST", Pattern: "/quotes", Limit: 50, Window: time.Hour}},
	})

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := l.Allow("a", "/quotes", "POST"); ok {
				mu.Lock()
				allowedCount++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, allowedCount)
}

func TestMatchRule(t *testing.T) {
	rules := DefaultRules(30)

	tests := []struct {
		path, method string
		want         string
	}{
		{"/quotes", "POST", "/quotes"},
		{"/quotes/abc/feedback", "POST", "/quotes/*/feedback"},
		{"/quotes/search", "GET", "/quotes/search"},
		{"/auth/token", "POST", "/auth/token"},
		{"/quotes", "GET", ""},
		{"/quotes/abc/extra/feedback", "POST", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rule := MatchRule(tt.path, tt.method, rules)
			if tt.want == "" {
				assert.Nil(t, rule)
				return
			}
			require.NotNil(t, rule)
			assert.Equal(t, tt.want, rule.Pattern)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_QUOTES_PER_MINUTE", "7")
	t.Setenv("RATE_LIMIT_WHITELIST", " 10.0.0.1 , ,10.0.0.2")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.Equal(t, time.Minute, cfg.DefaultWindow)
	assert.Equal(t, map[string]bool{"10.0.0.1": true, "10.0.0.2": true}, cfg.Whitelist)
	rule := MatchRule("/quotes", "POST", cfg.Rules)
	require.NotNil(t, rule)
	assert.Equal(t, 7, rule.Limit)
}

func TestLoadConfig_Disabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	assert.False(t, LoadConfig().Enabled)
}
