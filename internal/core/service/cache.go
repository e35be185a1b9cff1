package service

import (
	"context"

	"github.com/postmessages/board-api/internal/core/domain"
)

// QueryCache abstracts the read-through query cache (Redis). Values are
// serialized result sets; an entry, while present, is byte-equivalent
// to what the store would return for that exact query. Implementations
// must degrade to calling the loader directly when the cache store is
// unreachable, and must treat invalidation of absent keys as a no-op.
type QueryCache interface {
	// GetMessages serves a filtered/paginated message query through the
	// cache. Two calls with the same tags, skip and limit share one
	// cache slot regardless of arrival order. On a miss the loader runs
	// the store query and its result populates the entry.
	GetMessages(ctx context.Context, tags []string, skip, limit int64, load func(context.Context) ([]byte, error)) ([]byte, error)
	// GetTags serves the distinct-tag listing through its fixed key.
	GetTags(ctx context.Context, load func(context.Context) ([]byte, error)) ([]byte, error)
	// GetUser serves a user lookup through the per-mail key.
	GetUser(ctx context.Context, mail string, load func(context.Context) ([]byte, error)) ([]byte, error)

	// InvalidateMessages drops the tag-list key and every outstanding
	// message-query key. Failures are logged and swallowed: a missed
	// invalidation is a staleness bug bounded by the next sweep, not a
	// correctness crash.
	InvalidateMessages(ctx context.Context)
	// InvalidateUser drops the cache entry for one mail address.
	InvalidateUser(ctx context.Context, mail string)
}

// Broadcaster pushes accepted messages to connected observers. Publish
// is fire-and-forget: it never blocks the write path and a delivery
// failure never fails the write.
type Broadcaster interface {
	Publish(m domain.Message)
}
