package main

import (
	"context"
	"fmt"
	"net/url"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"portfolio/internal/infrastructure/database"
	"portfolio/internal/infrastructure/kvdb"
	"portfolio/internal/infrastructure/memory"
	"portfolio/internal/ports/output"
)

// openStore opens the contact message backend named by dsn. The returned
// close func is always safe to call.
func openStore(ctx context.Context, dsn string, logger *zap.Logger) (output.ContactRepository, func(), error) {
	u, err := url.Parse(dsn)
	if err != nil {
		return nil, func() {}, fmt.Errorf("parse contact store: %w", err)
	}

	switch u.Scheme {
	case "memory":
		return memory.NewContactStore(), func() {}, nil

	case "kvdb":
		path := u.Host + u.Path
		db, err := bolt.Open(path, 0o600, nil)
		if err != nil {
			return nil, func() {}, fmt.Errorf("open kvdb %s: %w", path, err)
		}
		store, err := kvdb.NewContactStore(db)
		if err != nil {
			_ = db.Close()
			return nil, func() {}, err
		}
		logger.Info("contact store ready", zap.String("backend", "kvdb"), zap.String("path", path))
		return store, func() { _ = db.Close() }, nil

	case "postgres", "postgresql":
		if err := database.RunMigrations(dsn, logger); err != nil {
			return nil, func() {}, err
		}
		pool, err := database.NewPool(ctx, dsn, logger)
		if err != nil {
			return nil, func() {}, fmt.Errorf("connect postgres: %w", err)
		}
		return database.NewContactRepository(pool), pool.Close, nil
	}
	return nil, func() {}, fmt.Errorf("unknown contact store backend %q", u.Scheme)
}
