package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/postmessages/board-api/internal/core/domain"
	"github.com/postmessages/board-api/internal/core/ports"
	"github.com/postmessages/board-api/internal/pkg/metrics"
)

const (
	defaultSkip  = 0
	defaultLimit = 20
)

// MessageService implements message listing, creation, deletion and tag
// listing. Reads go through the query cache; every confirmed write
// invalidates the whole message-query namespace plus the tag-list key,
// and creations are pushed to the broadcaster after the store confirms.
type MessageService struct {
	repo        ports.MessageRepository
	cache       QueryCache
	broadcaster Broadcaster
	logger      zerolog.Logger
}

func NewMessageService(repo ports.MessageRepository, cache QueryCache, broadcaster Broadcaster, logger zerolog.Logger) *MessageService {
	return &MessageService{repo: repo, cache: cache, broadcaster: broadcaster, logger: logger}
}

// List returns messages matching the tag filter (every listed tag must
// be present), ordered by timestamp descending, with skip/limit applied
// after sorting. Negative skip and non-positive limit collapse to the
// defaults (0, 20).
func (s *MessageService) List(ctx context.Context, input ports.ListMessagesInput) ([]domain.Message, error) {
	if input.Skip < 0 {
		input.Skip = defaultSkip
	}
	if input.Limit <= 0 {
		input.Limit = defaultLimit
	}

	data, err := s.cache.GetMessages(ctx, input.Tags, input.Skip, input.Limit, func(ctx context.Context) ([]byte, error) {
		messages, err := s.repo.List(ctx, ports.ListMessagesFilter{
			Tags:  input.Tags,
			Skip:  input.Skip,
			Limit: input.Limit,
		})
		if err != nil {
			return nil, err
		}
		if messages == nil {
			messages = []domain.Message{}
		}
		return json.Marshal(messages)
	})
	if err != nil {
		return nil, err
	}

	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, fmt.Errorf("decode cached message query: %w", err)
	}
	return messages, nil
}

// Create validates and persists a new message, then invalidates the
// affected cache entries and broadcasts the accepted message. The
// timestamp is server-assigned and authorMail is the verified caller
// identity. Notification happens only after the store confirms the
// write; a broadcast failure never rolls it back.
func (s *MessageService) Create(ctx context.Context, content string, tags []string, authorMail string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrInvalidMessage
	}
	if tags == nil {
		tags = []string{}
	}

	message := &domain.Message{
		Content:    content,
		Tags:       tags,
		Timestamp:  time.Now().UTC(),
		AuthorMail: authorMail,
	}

	if err := s.repo.Create(ctx, message); err != nil {
		s.logger.Error().Err(err).Str("authormail", authorMail).Msg("failed to create message")
		return nil, err
	}

	// A new message can appear in arbitrarily many filtered/paginated
	// views, so the whole query namespace goes, not just matching keys.
	s.cache.InvalidateMessages(ctx)

	metrics.MessagesCreatedTotal.Inc()
	s.broadcaster.Publish(*message)

	s.logger.Info().Str("id", message.ID).Str("authormail", authorMail).Msg("message created")
	return message, nil
}

// Delete removes a message by id. Only moderators may delete; deletions
// trigger the same invalidation set as creations but are not broadcast.
func (s *MessageService) Delete(ctx context.Context, id string, requesterRoles []domain.Role) error {
	if !domain.HasRole(requesterRoles, domain.RoleModerator) {
		return domain.ErrForbidden
	}

	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.cache.InvalidateMessages(ctx)

	metrics.MessagesDeletedTotal.Inc()
	s.logger.Info().Str("id", id).Msg("message deleted")
	return nil
}

// ListTags returns the distinct tag strings across all messages,
// routed through the fixed tag-list cache key.
func (s *MessageService) ListTags(ctx context.Context) ([]string, error) {
	data, err := s.cache.GetTags(ctx, func(ctx context.Context) ([]byte, error) {
		tags, err := s.repo.DistinctTags(ctx)
		if err != nil {
			return nil, err
		}
		if tags == nil {
			tags = []string{}
		}
		return json.Marshal(tags)
	})
	if err != nil {
		return nil, err
	}

	var tags []string
	if err := json.Unmarshal(data, &tags); err != nil {
		return nil, fmt.Errorf("decode cached tag list: %w", err)
	}
	return tags, nil
}
