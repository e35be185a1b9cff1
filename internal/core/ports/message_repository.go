package ports

import (
	"context"

	"github.com/postmessages/board-api/internal/core/domain"
)

// ListMessagesFilter carries the query parameters for listing messages.
// Tags is an AND filter: every listed tag must be present on a matching
// message. Results are ordered by timestamp descending before Skip and
// Limit apply.
type ListMessagesFilter struct {
	Tags  []string // empty = no tag filter
	Skip  int64
	Limit int64
}

// MessageRepository defines persistence operations for messages.
type MessageRepository interface {
	List(ctx context.Context, filter ListMessagesFilter) ([]domain.Message, error)
	Create(ctx context.Context, m *domain.Message) error
	// DeleteByID removes a message. Returns domain.ErrMessageNotFound
	// when no document matched the id.
	DeleteByID(ctx context.Context, id string) error
	// DistinctTags returns the distinct tag strings across all messages.
	DistinctTags(ctx context.Context) ([]string, error)
	Count(ctx context.Context) (int64, error)
}
