package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"relocation-planner-service/internal/domain"
	"relocation-planner-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "relocation:plan:"

// cachedPlan is the JSON shape stored in Redis.
type cachedPlan struct {
	Pairs      []cachedPair `json:"pairs"`
	TotalCost  float64      `json:"total_cost"`
	Unreplaced []string     `json:"unreplaced"`
}

type cachedPair struct {
	Replaced    string `json:"replaced"`
	Replacement string `json:"replacement"`
}

// RedisPlanCache stores computed plans keyed by snapshot fingerprint.
type RedisPlanCache struct {
	Client *redis.Client
}

func NewRedisPlanCache(client *redis.Client) *RedisPlanCache {
	return &RedisPlanCache{Client: client}
}

// NewRedisPlanCacheFromURL parses a redis:// URL and verifies the connection.
func NewRedisPlanCacheFromURL(ctx context.Context, url string) (*RedisPlanCache, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("plan cache: parse redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("plan cache: ping redis: %w", err)
	}

	return &RedisPlanCache{Client: client}, nil
}

// Fetch a cached plan. A missing key is a miss, not an error.
func (c *RedisPlanCache) Get(ctx context.Context, key string) (_ *domain.Plan, _ bool, err error) {
	defer obs.Time(ctx, "plan.cache.Get")(&err)

	if c.Client == nil {
		return nil, false, errors.New("plan cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return nil, false, errors.New("get plan cache: key must not be empty")
	}

	b, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get plan cache key=%q: %w", key, err)
	}

	var cp cachedPlan
	if err := json.Unmarshal(b, &cp); err != nil {
		return nil, false, fmt.Errorf("get plan cache: decode key=%q: %w", key, err)
	}

	plan := domain.NewPlan()
	for _, p := range cp.Pairs {
		plan.Pairs = append(plan.Pairs, domain.RelocationPair{Replaced: p.Replaced, Replacement: p.Replacement})
	}
	plan.TotalCost = cp.TotalCost
	if cp.Unreplaced != nil {
		plan.Unreplaced = cp.Unreplaced
	}

	return plan, true, nil
}

// Store a plan under key. A zero ttl keeps it until evicted.
func (c *RedisPlanCache) Put(ctx context.Context, key string, plan *domain.Plan, ttl time.Duration) error {
	if c.Client == nil {
		return errors.New("plan cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert plan cache: key must not be empty")
	}

	if plan == nil {
		return errors.New("insert plan cache: plan is nil")
	}

	cp := cachedPlan{
		Pairs:      make([]cachedPair, 0, len(plan.Pairs)),
		TotalCost:  plan.TotalCost,
		Unreplaced: plan.Unreplaced,
	}
	for _, p := range plan.Pairs {
		cp.Pairs = append(cp.Pairs, cachedPair{Replaced: p.Replaced, Replacement: p.Replacement})
	}

	b, err := json.Marshal(cp)
	if err != nil {
		return fmt.Errorf("insert plan cache: encode: %w", err)
	}

	if err := c.Client.Set(ctx, keyPrefix+key, b, ttl).Err(); err != nil {
		return fmt.Errorf("insert plan cache key=%q: %w", key, err)
	}

	return nil
}

func (c *RedisPlanCache) Close() error {
	if c.Client == nil {
		return nil
	}
	return c.Client.Close()
}
