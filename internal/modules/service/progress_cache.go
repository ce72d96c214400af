package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProjectProgressSummary is the aggregate the dashboard header renders.
// It is computed from live phase rows and cached; nothing persists it, so
// there is no stored aggregate to go stale.
type ProjectProgressSummary struct {
	ProjectID       uuid.UUID `json:"project_id"`
	Progress        int       `json:"progress"`
	PhaseCount      int       `json:"phase_count"`
	CompletedPhases int       `json:"completed_phases"`
	ComputedAt      time.Time `json:"computed_at"`
}

// ProgressCache is a read-through cache for project progress summaries.
// Every phase or task mutation invalidates the owning project's entry.
// A nil Redis client disables caching rather than failing requests.
type ProgressCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewProgressCache(rdb *redis.Client, ttl time.Duration) *ProgressCache {
	return &ProgressCache{rdb: rdb, ttl: ttl}
}

func progressKey(projectID uuid.UUID) string {
	return fmt.Sprintf("progress:project:%s", projectID)
}

func (c *ProgressCache) Get(ctx context.Context, projectID uuid.UUID) (*ProjectProgressSummary, error) {
	if c == nil || c.rdb == nil {
		return nil, nil
	}
	raw, err := c.rdb.Get(ctx, progressKey(projectID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var s ProjectProgressSummary
	if err := sonic.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *ProgressCache) Set(ctx context.Context, s *ProjectProgressSummary) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	raw, err := sonic.Marshal(s)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, progressKey(s.ProjectID), raw, c.ttl).Err()
}

func (c *ProgressCache) Invalidate(ctx context.Context, projectID uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, progressKey(projectID)).Err()
}
