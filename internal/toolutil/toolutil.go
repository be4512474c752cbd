// Package toolutil provides shared helper functions for go_jobagent MCP tools.
package toolutil

import (
	"context"
	"strings"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
)

// NormPlatform normalises a platform field: empty string → "all".
func NormPlatform(platform string) string {
	p := strings.ToLower(strings.TrimSpace(platform))
	if p == "" {
		return "all"
	}
	return p
}

// ClampLimit bounds n to [lo, hi]; zero and negative values become def.
func ClampLimit(n, lo, hi, def int) int {
	if n <= 0 {
		return def
	}
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// CacheLoadJSON tries to load a cached value of type T from the engine cache.
// Returns the decoded value and true on hit; zero value and false on miss or decode error.
func CacheLoadJSON[T any](ctx context.Context, key string) (T, bool) {
	return engine.CacheLoadJSON[T](ctx, key)
}

// CacheStoreJSON marshals v and stores it in the engine cache.
func CacheStoreJSON[T any](ctx context.Context, key string, v T) {
	engine.CacheStoreJSON(ctx, key, v)
}
