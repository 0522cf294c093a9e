package database

import (
	"context"
	"fmt"

	"quadix/internal/logging"

	bolt "go.etcd.io/bbolt"
)

type DB struct {
	DB *bolt.DB
}

// NewFromEnv opens the bolt file named in the configuration.
func NewFromEnv(ctx context.Context, config *Config) (*DB, error) {
	logger := logging.FromContext(ctx)
	logger.Infof("opening object store %s", config.FileName)

	db, err := bolt.Open(config.FileName, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("opening object store: %w", err)
	}

	return &DB{DB: db}, nil
}

func (db *DB) Close(ctx context.Context) error {
	logger := logging.FromContext(ctx)
	logger.Infof("closing object store")

	if err := db.DB.Close(); err != nil {
		return fmt.Errorf("error closing object store: %w", err)
	}

	return nil
}
