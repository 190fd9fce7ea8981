package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	incompleteCountKey = "visits:incomplete:count"
	incompleteTTL      = 30 * time.Second
)

// IncompleteFeedCache keeps the notification-bell count warm so the
// polled feed endpoint does not rescan recent visits on every request.
// Best-effort: any Redis failure falls through to a recompute.
type IncompleteFeedCache struct {
	rdb *redis.Client
}

func NewIncompleteFeedCache(addr string) *IncompleteFeedCache {
	return &IncompleteFeedCache{
		rdb: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (c *IncompleteFeedCache) GetCount(ctx context.Context) (int, bool) {
	val, err := c.rdb.Get(ctx, incompleteCountKey).Result()
	if err != nil {
		return 0, false
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *IncompleteFeedCache) SetCount(ctx context.Context, n int) {
	c.rdb.Set(ctx, incompleteCountKey, strconv.Itoa(n), incompleteTTL)
}

// Invalidate drops the cached count after any visit mutation.
func (c *IncompleteFeedCache) Invalidate(ctx context.Context) {
	c.rdb.Del(ctx, incompleteCountKey)
}
