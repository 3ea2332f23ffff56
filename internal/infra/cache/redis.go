package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const listKeySet = "product_list_keys"

// ProductCache is a read-through cache for public product listings.
// Every cached listing key is tracked in a set so admin catalog writes
// can drop them all at once.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New pings the server before returning; a dead Redis is a startup
// error, not a silent no-op.
func New(addr string, ttl time.Duration) (*ProductCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &ProductCache{client: client, ttl: ttl}, nil
}

func (c *ProductCache) Close() error {
	return c.client.Close()
}

// GetList unmarshals the cached listing into out. The bool reports a
// cache hit.
func (c *ProductCache) GetList(ctx context.Context, key string, out interface{}) (bool, error) {
	raw, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ProductCache) SetList(ctx context.Context, key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	pipe.Set(ctx, key, raw, c.ttl)
	pipe.SAdd(ctx, listKeySet, key)
	_, err = pipe.Exec(ctx)
	return err
}

// InvalidateLists drops every cached listing. Called after any admin
// product or inventory write.
func (c *ProductCache) InvalidateLists(ctx context.Context) error {
	keys, err := c.client.SMembers(ctx, listKeySet).Result()
	if err != nil {
		return err
	}

	pipe := c.client.Pipeline()
	if len(keys) > 0 {
		pipe.Del(ctx, keys...)
	}
	pipe.Del(ctx, listKeySet)
	_, err = pipe.Exec(ctx)
	return err
}
