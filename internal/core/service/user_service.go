package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/postmessages/board-api/internal/core/domain"
	"github.com/postmessages/board-api/internal/core/ports"
)

// UserService implements account registration and lookups. Lookups by
// mail go through the per-mail cache key; registration invalidates
// only that user's own key.
type UserService struct {
	repo   ports.UserRepository
	cache  QueryCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache QueryCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// Register creates a new account with a salted password hash. Duplicate
// mail fails with domain.ErrUserExists, it never overwrites.
func (s *UserService) Register(ctx context.Context, mail, username, password string, roles []domain.Role) (*domain.User, error) {
	if mail == "" || username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []domain.Role{}
	}

	user := &domain.User{
		Mail:         mail,
		Username:     username,
		PasswordHash: string(hash),
		Roles:        roles,
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.cache.InvalidateUser(ctx, mail)

	s.logger.Info().Str("mail", mail).Msg("user registered")
	return created, nil
}

// List returns all registered users. Password material is stripped at
// serialization time via the domain struct tags.
func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.repo.FindAll(ctx)
}

// GetByMail returns a single user, routed through the per-mail cache
// key. Only the serialized public view is cached, never the hash.
func (s *UserService) GetByMail(ctx context.Context, mail string) (*domain.User, error) {
	data, err := s.cache.GetUser(ctx, mail, func(ctx context.Context) ([]byte, error) {
		user, err := s.repo.FindByMail(ctx, mail)
		if err != nil {
			return nil, err
		}
		return json.Marshal(user)
	})
	if err != nil {
		return nil, err
	}

	var user domain.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("decode cached user: %w", err)
	}
	return &user, nil
}
