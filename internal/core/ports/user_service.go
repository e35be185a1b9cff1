package ports

import (
	"context"

	"github.com/postmessages/board-api/internal/core/domain"
)

// AuthService mints signed credentials for registered users.
type AuthService interface {
	// Login verifies mail+password and returns a signed bearer token.
	Login(ctx context.Context, mail, password string) (string, error)
}

// UserService defines account operations.
type UserService interface {
	Register(ctx context.Context, mail, username, password string, roles []domain.Role) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	GetByMail(ctx context.Context, mail string) (*domain.User, error)
}
