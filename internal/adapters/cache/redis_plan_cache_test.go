package cache

import (
	"context"
	"relocation-planner-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisPlanCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisPlanCache(client), mr
}

func TestRedisPlanCachePutGet(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	plan := domain.NewPlan()
	plan.Record("A", "B", 13)
	plan.Unreplaced = []string{"D"}

	require.NoError(t, c.Put(ctx, "abc", plan, time.Minute))
	assert.True(t, mr.Exists("relocation:plan:abc"))
	assert.Equal(t, time.Minute, mr.TTL("relocation:plan:abc"))

	got, ok, err := c.Get(ctx, "abc")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, plan, got)
}

func TestRedisPlanCacheMissAndExpiry(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	_, ok, err := c.Get(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Put(ctx, "short", domain.NewPlan(), time.Second))
	mr.FastForward(2 * time.Second)

	_, ok, err = c.Get(ctx, "short")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisPlanCacheEmptyPlanRoundTrip(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestCache(t)

	require.NoError(t, c.Put(ctx, "empty", domain.NewPlan(), 0))
	got, ok, err := c.Get(ctx, "empty")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.NewPlan(), got)
}

func TestRedisPlanCacheErrors(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestCache(t)

	require.Error(t, c.Put(ctx, " ", domain.NewPlan(), 0))
	require.Error(t, c.Put(ctx, "k", nil, 0))

	mr.Set("relocation:plan:garbage", "not json")
	_, _, err := c.Get(ctx, "garbage")
	require.Error(t, err)

	unreachable := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	defer unreachable.Close()
	_, _, err = NewRedisPlanCache(unreachable).Get(ctx, "abc")
	require.Error(t, err)
}

func TestNewRedisPlanCacheFromURL(t *testing.T) {
	mr := miniredis.RunT(t)

	c, err := NewRedisPlanCacheFromURL(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	defer c.Close()

	_, err = NewRedisPlanCacheFromURL(context.Background(), "not-a-url")
	require.Error(t, err)
}
