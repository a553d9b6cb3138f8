package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"main/model"
	"main/utils"

	"github.com/redis/go-redis/v9"
)

// GlobalDashboardCache is nil when Redis is not configured; the
// dashboard handler recomputes on every request in that case.
var GlobalDashboardCache *DashboardCache

// DashboardCache holds recently computed dashboard metrics per user.
// Metrics are cheap to recompute, so the TTL is short and every task
// mutation invalidates eagerly; a stale dashboard is never served for
// longer than the TTL.
type DashboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDashboardCache(redisURL string, ttl time.Duration) (*DashboardCache, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return &DashboardCache{client: client, ttl: ttl}, nil
}

func (dc *DashboardCache) key(userID string) string {
	return fmt.Sprintf("dashboard:%s", userID)
}

// Get returns the cached metrics for a user, or nil on a miss.
func (dc *DashboardCache) Get(ctx context.Context, userID string) (*model.DashboardMetrics, error) {
	data, err := dc.client.Get(ctx, dc.key(userID)).Bytes()
	if err == redis.Nil {
		utils.DashboardCacheTotal.WithLabelValues("miss").Inc()
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read dashboard cache: %v", err)
	}

	var metrics model.DashboardMetrics
	if err := json.Unmarshal(data, &metrics); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached metrics: %v", err)
	}

	utils.DashboardCacheTotal.WithLabelValues("hit").Inc()
	return &metrics, nil
}

// Set stores freshly computed metrics for a user.
func (dc *DashboardCache) Set(ctx context.Context, userID string, metrics *model.DashboardMetrics) error {
	data, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %v", err)
	}
	return dc.client.Set(ctx, dc.key(userID), data, dc.ttl).Err()
}

// Invalidate drops the cached metrics after any task mutation.
func (dc *DashboardCache) Invalidate(ctx context.Context, userID string) error {
	return dc.client.Del(ctx, dc.key(userID)).Err()
}

// Close closes the Redis connection
func (dc *DashboardCache) Close() error {
	return dc.client.Close()
}
