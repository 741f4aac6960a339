package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_REPORT_LIMIT", "3")
	t.Setenv("RATE_LIMIT_RENDER_LIMIT", "not-a-number")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
	t.Setenv("RATE_LIMIT_BLACKLIST", "")

	rl := RateLimitFromEnv()
	assert.True(t, rl.Enabled)
	assert.Equal(t, 42, rl.DefaultLimit)
	assert.Equal(t, 30*time.Second, rl.DefaultWindow)
	assert.Equal(t, 3, rl.ReportLimit)
	assert.Equal(t, DefaultRateLimit().RenderLimit, rl.RenderLimit, "unparseable values keep the default")
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, rl.Whitelist)
	assert.Nil(t, rl.Blacklist)

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, RateLimitFromEnv().Enabled)
}

func TestLoad_CarriesRateLimit(t *testing.T) {
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_REPORT_LIMIT", "5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.ReportLimit)
}
