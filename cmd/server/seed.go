package main

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/postmessages/board-api/internal/core/domain"
	"github.com/postmessages/board-api/internal/core/ports"
)

const (
	adminMail     = "admin@postmessages.it"
	adminPassword = "admin"
)

// seed provisions the default admin account and, on an empty board,
// a few sample messages.
func seed(ctx context.Context, users ports.UserRepository, messages ports.MessageRepository, log zerolog.Logger) error {
	if err := seedAdmin(ctx, users, log); err != nil {
		return err
	}
	return seedMessages(ctx, messages, log)
}

func seedAdmin(ctx context.Context, users ports.UserRepository, log zerolog.Logger) error {
	_, err := users.FindByMail(ctx, adminMail)
	if err == nil {
		log.Debug().Msg("admin user already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, &domain.User{
		Mail:         adminMail,
		Username:     "admin",
		PasswordHash: string(hash),
		Roles:        []domain.Role{domain.RoleAdmin, domain.RoleModerator},
		CreatedAt:    time.Now().UTC(),
	})
	if errors.Is(err, domain.ErrUserExists) {
		// Another replica seeded first.
		return nil
	}
	if err != nil {
		return err
	}

	log.Info().Str("mail", adminMail).Msg("admin user created")
	return nil
}

func seedMessages(ctx context.Context, messages ports.MessageRepository, log zerolog.Logger) error {
	count, err := messages.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	samples := []domain.Message{
		{Content: "Post 1", Tags: []string{"Tag1", "Tag2", "Tag3"}},
		{Content: "Post 2", Tags: []string{"Tag1", "Tag5"}},
		{Content: "Post 3", Tags: []string{"Tag6", "Tag10"}},
	}

	for i := range samples {
		samples[i].Timestamp = time.Now().UTC()
		samples[i].AuthorMail = adminMail
		if err := messages.Create(ctx, &samples[i]); err != nil {
			return err
		}
	}

	log.Info().Int("count", len(samples)).Msg("sample messages created")
	return nil
}
