package ports

import (
	"context"

	"github.com/postmessages/board-api/internal/core/domain"
)

// UserRepository defines the interface for user persistence. Mail
// uniqueness is enforced at the store: Create fails with
// domain.ErrUserExists on a duplicate, it never overwrites.
type UserRepository interface {
	FindByMail(ctx context.Context, mail string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
