package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/postmessages/board-api/internal/api"
	mongodb "github.com/postmessages/board-api/internal/infrastructure/db/mongo"
	redisdb "github.com/postmessages/board-api/internal/infrastructure/db/redis"
	"github.com/postmessages/board-api/internal/pkg/config"
	"github.com/postmessages/board-api/internal/ws"
	"github.com/postmessages/board-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET must be set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Bootstrap is strictly sequential: each stage short-circuits on
	// error before the next one starts.

	// 1. Document store.
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
		Timeout:  cfg.Mongo.Timeout,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, disconnectCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer disconnectCancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	// 2. Indexes and seed data.
	userRepo := mongodb.NewUserRepository(db)
	messageRepo := mongodb.NewMessageRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure user indexes")
	}
	if err := messageRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure message indexes")
	}
	if err := seed(ctx, userRepo, messageRepo, log); err != nil {
		log.Fatal().Err(err).Msg("failed to seed initial data")
	}

	// 3. Cache store. A failed ping is not fatal: the cache degrades to
	// passthrough and the client retries on later commands.
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Warn().Err(err).Msg("cache store unreachable, continuing in passthrough mode")
	} else {
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}
	defer func() { _ = rdb.Close() }()

	// 4. Broadcast hub.
	hub := ws.NewHub(log)
	go hub.Run(ctx)

	// 5. HTTP server.
	e := api.NewRouter(db, rdb, hub, cfg.JWTSecret, cfg.TokenTTL, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Msg("http server started")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
}
