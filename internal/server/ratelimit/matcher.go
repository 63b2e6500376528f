package ratelimit

import "strings"

// MatchEndpoint finds the endpoint config governing a request. An exact
// path match wins over a prefix match; prefix matching applies only to
// configured paths ending in "/", so "/sessions/" covers the per-id
// routes. The health endpoint is never limited. Returns nil when no config
// applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == "/health" && method == "GET" {
		return &EndpointConfig{}
	}

	var prefix *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method {
			continue
		}
		if c.Path == path {
			return c
		}
		if prefix == nil && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			prefix = c
		}
	}
	return prefix
}
