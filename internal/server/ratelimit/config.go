package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig overrides the default limit for requests whose path starts with
// Path. An empty Method matches any method; Burst falls back to Limit.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// LoadConfig reads the RATE_LIMIT_* environment. Unset or unparsable values keep
// their defaults; RATE_LIMIT_ENABLED=false yields a disabled config.
func LoadConfig() *Config {
	return configFromEnv(os.LookupEnv)
}

func configFromEnv(lookup func(string) (string, bool)) *Config {
	env := envSource(lookup)

	cfg := &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
	env.boolVar(&cfg.Enabled, "RATE_LIMIT_ENABLED")
	if !cfg.Enabled {
		return &Config{}
	}
	env.intVar(&cfg.DefaultLimit, "RATE_LIMIT_DEFAULT_LIMIT")
	env.durationVar(&cfg.DefaultWindow, "RATE_LIMIT_DEFAULT_WINDOW")
	env.durationVar(&cfg.CleanupInterval, "RATE_LIMIT_CLEANUP_INTERVAL")
	cfg.Whitelist = ipSet(env.get("RATE_LIMIT_WHITELIST"))
	cfg.Blacklist = ipSet(env.get("RATE_LIMIT_BLACKLIST"))
	cfg.EndpointConfigs = DefaultEndpointConfigs()
	return cfg
}

// DefaultEndpointConfigs lists the per-route limits. Routes not listed use the
// default limit and /health is never limited.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/api/signup", Method: "POST", Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/api/profile", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/api/recommendations", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/api/profile/", Method: "GET", Limit: 300, Window: time.Minute, Burst: 50},
	}
}

type envSource func(string) (string, bool)

func (e envSource) get(key string) string {
	v, _ := e(key)
	return strings.TrimSpace(v)
}

func (e envSource) intVar(dst *int, key string) {
	if n, err := strconv.Atoi(e.get(key)); err == nil {
		*dst = n
	}
}

func (e envSource) boolVar(dst *bool, key string) {
	if b, err := strconv.ParseBool(e.get(key)); err == nil {
		*dst = b
	}
}

func (e envSource) durationVar(dst *time.Duration, key string) {
	if d, err := time.ParseDuration(e.get(key)); err == nil {
		*dst = d
	}
}

// ipSet splits a comma separated address list, dropping blanks.
func ipSet(list string) map[string]bool {
	set := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
