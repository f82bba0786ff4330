package db

import (
	"context"
	"fmt"
	"time"

	"notes/internal/config"
	"notes/internal/note"
	"notes/internal/store/boltstore"
	"notes/internal/store/mongostore"
	"notes/internal/store/pgstore"
)

const connectTimeout = 10 * time.Second

// Open connects the backend named by cfg.Store and prepares its schema.
func Open(ctx context.Context, cfg config.Config) (note.Store, error) {
	switch cfg.Store {
	case config.StoreMongo:
		ctx, cancel := context.WithTimeout(ctx, connectTimeout)
		defer cancel()
		s, err := mongostore.Connect(ctx, cfg.DatabaseURL, cfg.MongoDatabase, cfg.MongoCollection)
		if err != nil {
			return nil, err
		}
		return s, nil

	case config.StorePostgres:
		s, err := pgstore.Connect(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := s.AutoMigrateAndIndexes(); err != nil {
			_ = s.Close(ctx)
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return s, nil

	case config.StoreBolt:
		s, err := boltstore.Open(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}
