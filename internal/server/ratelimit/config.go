package ratelimit

import (
	"time"

	"github.com/jonathan/leadership-report/internal/config"
)

// EndpointConfig is the budget for one route. Path matches by prefix when it
// ends in a slash.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int // requests per Window
	Window time.Duration
	Burst  int // defaults to Limit if 0
}

// FromSettings turns the application's rate limit settings into a limiter
// configuration.
func FromSettings(rl config.RateLimit) *Config {
	if !rl.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    rl.DefaultLimit,
		DefaultWindow:   rl.DefaultWindow,
		CleanupInterval: rl.CleanupInterval,
		Whitelist:       ipSet(rl.Whitelist),
		Blacklist:       ipSet(rl.Blacklist),
		EndpointConfigs: EndpointConfigs(rl),
	}
}

// EndpointConfigs returns the per-route budgets. Full report generation,
// which calls the model, gets the tightest one.
func EndpointConfigs(rl config.RateLimit) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/report", Method: "POST", Limit: rl.ReportLimit, Window: time.Hour, Burst: 3},
		{Path: "/api/report/stream", Method: "POST", Limit: rl.ReportLimit, Window: time.Hour, Burst: 3},
		{Path: "/api/report/render", Method: "POST", Limit: rl.RenderLimit, Window: time.Minute, Burst: 10},
		{Path: "/api/reports/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
	}
}

func ipSet(ips []string) map[string]bool {
	set := make(map[string]bool, len(ips))
	for _, ip := range ips {
		set[ip] = true
	}
	return set
}
