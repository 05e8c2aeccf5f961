package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixedWindowLimiter_BlocksAfterLimit(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 2, time.Minute)
	require.NoError(t, err)
	defer limiter.Close()

	ctx := context.Background()
	first, err := limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	second, err := limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.Allow(ctx, "ip-1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 2, third.Limit)

	other, err := limiter.Allow(ctx, "ip-2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "keys have separate budgets")
}

func TestFixedWindowLimiter_NewWindowResets(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "", 1, time.Minute)
	require.NoError(t, err)
	defer limiter.Close()

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	ctx := context.Background()
	d, err := limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, now.Add(time.Minute), d.ResetAt)

	d, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, d.Allowed)

	now = now.Add(time.Minute)
	d, err = limiter.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestFixedWindowLimiter_FailsClosed(t *testing.T) {
	redis := miniredis.RunT(t)
	limiter, err := NewFixedWindowLimiter(redis.Addr(), "", "test:ratelimit", 1, time.Second)
	require.NoError(t, err)
	defer limiter.Close()

	redis.Close()
	d, err := limiter.Allow(context.Background(), "ip-1")
	assert.Error(t, err)
	assert.False(t, d.Allowed)
}

func TestNewFixedWindowLimiter_Validation(t *testing.T) {
	_, err := NewFixedWindowLimiter("", "", "p", 1, time.Second)
	assert.Error(t, err)

	_, err = NewFixedWindowLimiter("localhost:6379", "", "p", 0, time.Second)
	assert.Error(t, err)

	_, err = NewFixedWindowLimiter("localhost:6379", "", "p", 1, 0)
	assert.Error(t, err)
}
