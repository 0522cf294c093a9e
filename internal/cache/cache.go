package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"quadix/internal/logging"
	"quadix/internal/object/model"
	"quadix/internal/util"
	"quadix/pkg/container/quadtree"
)

const keyPrefix = "query:"

// NewFromEnv builds the query cache from the configuration. When no address
// is configured the cache is disabled and nil is returned; a nil *Cache is
// safe to use and never hits.
func NewFromEnv(ctx context.Context, config *Config) (*Cache, error) {
	if config.Addr == "" {
		return nil, nil
	}
	logger := logging.FromContext(ctx)
	logger.Infof("connecting query cache at %s", config.Addr)

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("pinging query cache: %w", err)
	}

	return &Cache{rdb: rdb, config: config}, nil
}

// Cache is a read-through store of query results keyed by the index
// generation and the query region. A mutation bumps the generation, so stale
// entries become unreachable and expire by TTL.
type Cache struct {
	rdb    *redis.Client
	config *Config
}

func (c *Cache) Get(ctx context.Context, generation uint64, region quadtree.Rect) ([]model.Object, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, keyPrefix+util.HashQuery(generation, region)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.FromContext(ctx).Errorf("query cache get failed: %v", err)
		}
		return nil, false
	}

	var objects []model.Object
	if err := json.Unmarshal(data, &objects); err != nil {
		logging.FromContext(ctx).Errorf("query cache entry is not decodable: %v", err)
		return nil, false
	}
	return objects, true
}

func (c *Cache) Put(ctx context.Context, generation uint64, region quadtree.Rect, objects []model.Object) {
	if c == nil {
		return
	}
	buffer := util.GetBytesBuffer()
	defer util.PutBytesBuffer(buffer)
	defer buffer.Reset()
	if err := json.NewEncoder(buffer).Encode(objects); err != nil {
		logging.FromContext(ctx).Errorf("query cache encode failed: %v", err)
		return
	}

	key := keyPrefix + util.HashQuery(generation, region)
	if err := c.rdb.Set(ctx, key, buffer.Bytes(), c.config.TTL).Err(); err != nil {
		logging.FromContext(ctx).Errorf("query cache put failed: %v", err)
	}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
