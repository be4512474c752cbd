package toolutil

import (
	"context"
	"testing"
	"time"

	"github.com/anatolykoptev/go_jobagent/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestNormPlatform(t *testing.T) {
	assert.Equal(t, "all", NormPlatform(""))
	assert.Equal(t, "all", NormPlatform("  "))
	assert.Equal(t, "adzuna", NormPlatform(" Adzuna "))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 15, ClampLimit(0, 1, 50, 15))
	assert.Equal(t, 15, ClampLimit(-3, 1, 50, 15))
	assert.Equal(t, 50, ClampLimit(200, 1, 50, 15))
	assert.Equal(t, 7, ClampLimit(7, 1, 50, 15))
}

func TestCacheJSONRoundtrip(t *testing.T) {
	engine.InitCache("", time.Minute, 10, time.Minute)
	ctx := context.Background()

	type payload struct {
		Query string `json:"query"`
		Count int    `json:"count"`
	}

	key := engine.CacheKey("toolutil_test", "python")
	_, ok := CacheLoadJSON[payload](ctx, key)
	assert.False(t, ok, "unexpected hit on empty cache")

	CacheStoreJSON(ctx, key, payload{Query: "python", Count: 3})
	got, ok := CacheLoadJSON[payload](ctx, key)
	assert.True(t, ok)
	assert.Equal(t, payload{Query: "python", Count: 3}, got)
}
