package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLimiterReusesPerKey(t *testing.T) {
	l := NewKeyedLimiterWithDefaults()

	a := l.GetLimiter("flights")
	b := l.GetLimiter("flights")
	c := l.GetLimiter("buses")

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 20, a.Burst())
}

func TestAllowExhaustsBurst(t *testing.T) {
	l := NewKeyedLimiter(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 2})

	assert.True(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.1"))
	assert.False(t, l.Allow("10.0.0.1"))
	assert.True(t, l.Allow("10.0.0.2"), "keys must not share buckets")
}

func TestSetLimitOverridesDefaults(t *testing.T) {
	l := NewKeyedLimiterWithDefaults()
	l.SetLimit("trains", 1, 1)

	assert.Equal(t, 1, l.GetLimiter("trains").Burst())
}

func TestWaitHonorsContext(t *testing.T) {
	l := NewKeyedLimiter(RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1})
	require.NoError(t, l.Wait(context.Background(), "flights"))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.Error(t, l.Wait(ctx, "flights"))
}
