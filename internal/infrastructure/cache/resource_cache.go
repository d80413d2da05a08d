package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/relief-directory/internal/domain/entity"
	"github.com/oksasatya/relief-directory/pkg/helpers"
)

const (
	keyPrefix     = "resources:verified:"
	generationKey = keyPrefix + "gen"
)

// ResourceListCache keeps the verified list per type filter in redis.
// Entries are namespaced by a generation counter; bumping the counter
// orphans every list written under an older generation, including writes
// that land after the bump.
type ResourceListCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewResourceListCache(rdb *redis.Client, ttl time.Duration) *ResourceListCache {
	return &ResourceListCache{rdb: rdb, ttl: ttl}
}

// Key maps a generation and filter to its redis key; nil means every type.
func Key(gen int64, typeFilter *entity.ResourceType) string {
	filter := entity.TypeFilterAll
	if typeFilter != nil {
		filter = string(*typeFilter)
	}
	return keyPrefix + strconv.FormatInt(gen, 10) + ":" + filter
}

// Generation returns the current generation, zero before the first bump.
func (c *ResourceListCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

func (c *ResourceListCache) Get(ctx context.Context, gen int64, typeFilter *entity.ResourceType) ([]entity.ResourceSummary, bool, error) {
	var out []entity.ResourceSummary
	found, err := helpers.RedisGetJSON(ctx, c.rdb, Key(gen, typeFilter), &out)
	if err != nil || !found {
		return nil, false, err
	}
	if out == nil {
		out = []entity.ResourceSummary{}
	}
	return out, true, nil
}

func (c *ResourceListCache) Set(ctx context.Context, gen int64, typeFilter *entity.ResourceType, items []entity.ResourceSummary) error {
	return helpers.RedisSetJSON(ctx, c.rdb, Key(gen, typeFilter), items, c.ttl)
}

// Invalidate bumps the generation. Lists under older generations expire by TTL.
func (c *ResourceListCache) Invalidate(ctx context.Context) error {
	return c.rdb.Incr(ctx, generationKey).Err()
}
