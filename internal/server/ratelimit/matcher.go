package ratelimit

import (
	"strings"
)

// unlimited is returned for endpoints that are never throttled.
var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// An exact path wins over a prefix ("/api/profile/" matches "/api/profile/{id}"), and among
// prefixes the longest wins. An empty Method matches every method.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && (method == "GET" || method == "HEAD") {
		u := unlimited
		return &u
	}

	for i := range configs {
		c := &configs[i]
		if c.Path == path && methodMatches(c.Method, method) {
			return c
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if !strings.HasSuffix(c.Path, "/") || !methodMatches(c.Method, method) {
			continue
		}
		if strings.HasPrefix(path, c.Path) && (best == nil || len(c.Path) > len(best.Path)) {
			best = c
		}
	}
	return best
}

func methodMatches(want, got string) bool {
	return want == "" || strings.EqualFold(want, got)
}
