package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// defaultTimeout bounds individual repository operations.
const defaultTimeout = 10 * time.Second

// Config carries the document store settings, as loaded from the
// MONGO_* environment variables.
type Config struct {
	URI      string
	Database string
	// Timeout bounds the initial dial and liveness ping. Repository
	// operations use their own per-call timeouts.
	Timeout time.Duration
}

// Connect dials the document store and proves liveness with a primary
// ping before any repository is built on top of it. The store is a
// hard dependency: callers abort bootstrap on error, unlike the cache
// store which degrades to passthrough.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("connect document store: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, nil, fmt.Errorf("ping document store: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}
