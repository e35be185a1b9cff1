package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/postmessages/board-api/internal/pkg/metrics"
)

// Key namespaces. Entries carry no TTL: a value lives until an
// invalidation removes it, and while present it is byte-equivalent to
// what the document store would return for that exact query.
const (
	tagsKey     = "tags"
	queryPrefix = "query:"
	userPrefix  = "user:"
)

// QueryCache is the read-through query cache backed by Redis.
//
// Reads degrade to calling the loader directly when Redis is
// unreachable; the caller's request never fails on cache
// unavailability. Invalidation errors are logged and swallowed.
// Concurrent misses for the same key may each hit the store and
// redundantly populate the entry with equal values; that race is
// harmless because values are immutable snapshots.
type QueryCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewQueryCache creates a QueryCache wrapping the given Redis client.
func NewQueryCache(client *redis.Client, logger zerolog.Logger) *QueryCache {
	return &QueryCache{client: client, logger: logger}
}

// messageQueryKey derives the cache key for a filtered/paginated
// message query. Tags are sorted so identical queries share one slot
// regardless of argument order, and the list is JSON-encoded so the
// encoding stays unambiguous: tags are arbitrary strings, and a plain
// join would let ["a,b"] and ["a","b"] collide on one key.
func messageQueryKey(tags []string, skip, limit int64) string {
	sorted := append([]string(nil), tags...)
	sort.Strings(sorted)
	if sorted == nil {
		sorted = []string{}
	}
	filter, _ := json.Marshal(sorted)
	return fmt.Sprintf("%s%s:%d:%d", queryPrefix, filter, skip, limit)
}

func userKey(mail string) string {
	return userPrefix + mail
}

// GetMessages serves a message query through the cache.
func (c *QueryCache) GetMessages(ctx context.Context, tags []string, skip, limit int64, load func(context.Context) ([]byte, error)) ([]byte, error) {
	return c.getOrLoad(ctx, messageQueryKey(tags, skip, limit), load)
}

// GetTags serves the distinct-tag listing through its fixed key.
func (c *QueryCache) GetTags(ctx context.Context, load func(context.Context) ([]byte, error)) ([]byte, error) {
	return c.getOrLoad(ctx, tagsKey, load)
}

// GetUser serves a user lookup through the per-mail key.
func (c *QueryCache) GetUser(ctx context.Context, mail string, load func(context.Context) ([]byte, error)) ([]byte, error) {
	return c.getOrLoad(ctx, userKey(mail), load)
}

// getOrLoad implements the read-through protocol: hit returns the
// stored bytes with no store call, miss runs the loader and populates
// the entry, any Redis failure falls back to the loader alone.
func (c *QueryCache) getOrLoad(ctx context.Context, key string, load func(context.Context) ([]byte, error)) ([]byte, error) {
	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		metrics.CacheOpsTotal.WithLabelValues("hit").Inc()
		c.logger.Debug().Str("key", key).Msg("cache hit")
		return cached, nil
	}

	if !errors.Is(err, redis.Nil) {
		metrics.CacheOpsTotal.WithLabelValues("bypass").Inc()
		c.logger.Warn().Err(err).Str("key", key).Msg("cache unreachable, serving from store")
		return load(ctx)
	}

	metrics.CacheOpsTotal.WithLabelValues("miss").Inc()
	c.logger.Debug().Str("key", key).Msg("cache miss")

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.client.Set(ctx, key, value, 0).Err(); err != nil {
		c.logger.Warn().Err(err).Str("key", key).Msg("failed to populate cache")
	}
	return value, nil
}

// InvalidateMessages drops the tag-list key and sweeps every key in the
// message-query namespace. A new or deleted message can appear in (or
// vanish from) arbitrarily many filtered/paginated views, so the whole
// namespace goes rather than recomputing which views are affected.
// Deleting an absent key is a no-op, so overlapping sweeps race
// harmlessly.
func (c *QueryCache) InvalidateMessages(ctx context.Context) {
	metrics.CacheInvalidationsTotal.WithLabelValues("messages").Inc()

	if err := c.client.Del(ctx, tagsKey).Err(); err != nil {
		c.logger.Warn().Err(err).Msg("failed to invalidate tag list")
	}

	iter := c.client.Scan(ctx, 0, queryPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if err := c.client.Del(ctx, key).Err(); err != nil {
			c.logger.Warn().Err(err).Str("key", key).Msg("failed to invalidate query entry")
		} else {
			c.logger.Debug().Str("key", key).Msg("query entry invalidated")
		}
	}
	if err := iter.Err(); err != nil {
		c.logger.Warn().Err(err).Msg("cache invalidation sweep failed")
	}
}

// InvalidateUser drops the cache entry for one mail address.
func (c *QueryCache) InvalidateUser(ctx context.Context, mail string) {
	metrics.CacheInvalidationsTotal.WithLabelValues("user").Inc()

	if err := c.client.Del(ctx, userKey(mail)).Err(); err != nil {
		c.logger.Warn().Err(err).Str("mail", mail).Msg("failed to invalidate user entry")
	}
}
