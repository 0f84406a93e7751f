package ports

import (
	"context"
	"relocation-planner-service/internal/domain"
	"time"
)

// Optional store for previously computed plans, keyed by a snapshot fingerprint.
type PlanCache interface {
	// Return the cached plan for key; ok is false on a miss.
	Get(ctx context.Context, key string) (plan *domain.Plan, ok bool, err error)
	// Store a plan under key for ttl (zero means no expiry).
	Put(ctx context.Context, key string, plan *domain.Plan, ttl time.Duration) error
}
