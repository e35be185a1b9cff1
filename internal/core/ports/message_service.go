package ports

import (
	"context"

	"github.com/postmessages/board-api/internal/core/domain"
)

// ListMessagesInput carries the parameters for the list endpoint.
// Negative Skip and non-positive Limit collapse to the defaults
// (0 and 20) rather than erroring.
type ListMessagesInput struct {
	Tags  []string
	Skip  int64
	Limit int64
}

// MessageService defines use-case operations for the message board.
type MessageService interface {
	List(ctx context.Context, input ListMessagesInput) ([]domain.Message, error)
	// Create validates and persists a new message. AuthorMail is the
	// verified caller identity; any client-supplied author is ignored.
	Create(ctx context.Context, content string, tags []string, authorMail string) (*domain.Message, error)
	// Delete removes a message by id. Requires the MODERATOR role in
	// requesterRoles; fails with domain.ErrForbidden otherwise.
	Delete(ctx context.Context, id string, requesterRoles []domain.Role) error
	ListTags(ctx context.Context) ([]string, error)
}
