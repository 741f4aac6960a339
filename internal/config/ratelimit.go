package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// RateLimit holds the request limiter settings. They are read from the
// RATE_LIMIT_* variables only; the JSON file does not carry them.
type RateLimit struct {
	Enabled         bool
	DefaultLimit    int // requests per DefaultWindow on routes without their own budget
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	ReportLimit     int // per hour, shared by the report and stream routes
	RenderLimit     int // per minute
	Whitelist       []string
	Blacklist       []string
}

// DefaultRateLimit returns the limiter settings used when nothing is set.
func DefaultRateLimit() RateLimit {
	return RateLimit{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		ReportLimit:     10,
		RenderLimit:     60,
	}
}

// RateLimitFromEnv overlays RATE_LIMIT_* variables on DefaultRateLimit.
// Values that do not parse are ignored.
func RateLimitFromEnv() RateLimit {
	rl := DefaultRateLimit()
	if v, err := strconv.ParseBool(os.Getenv("RATE_LIMIT_ENABLED")); err == nil {
		rl.Enabled = v
	}
	envInt("RATE_LIMIT_DEFAULT_LIMIT", &rl.DefaultLimit)
	envInt("RATE_LIMIT_REPORT_LIMIT", &rl.ReportLimit)
	envInt("RATE_LIMIT_RENDER_LIMIT", &rl.RenderLimit)
	envDuration("RATE_LIMIT_DEFAULT_WINDOW", &rl.DefaultWindow)
	envDuration("RATE_LIMIT_CLEANUP_INTERVAL", &rl.CleanupInterval)
	rl.Whitelist = splitList(os.Getenv("RATE_LIMIT_WHITELIST"))
	rl.Blacklist = splitList(os.Getenv("RATE_LIMIT_BLACKLIST"))
	return rl
}

func envInt(key string, dst *int) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		*dst = v
	}
}

func envDuration(key string, dst *time.Duration) {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil && v > 0 {
		*dst = v
	}
}

// splitList splits a comma-separated value into trimmed, non-empty entries.
func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
