package setup

import (
	"context"
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"quadix/internal/cache"
	"quadix/internal/database"
	"quadix/internal/index"
	"quadix/internal/logging"
	"quadix/internal/seed"
	"quadix/internal/srvenv"
	"quadix/pkg/container/quadtree"
)

type DatabaseConfigProvider interface {
	DatabaseConfig() *database.Config
}

type IndexConfigProvider interface {
	IndexConfig() *index.Config
}

type CacheConfigProvider interface {
	CacheConfig() *cache.Config
}

type SeedConfigProvider interface {
	SeedConfig() *seed.Config
}

func Setup(ctx context.Context, config interface{}) (*srvenv.SrvEnv, error) {
	logger := logging.FromContext(ctx)
	var serverEnvOpts []srvenv.Option
	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	var db *database.DB
	if dbConfigProvider, ok := config.(DatabaseConfigProvider); ok {
		logger.Info("Configuring object store")
		dbFromEnv, err := database.NewFromEnv(ctx, dbConfigProvider.DatabaseConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to open object store: %v", err)
		}
		db = dbFromEnv
		serverEnvOpts = append(serverEnvOpts, srvenv.WithDatabase(db))
	}

	if cacheConfigProvider, ok := config.(CacheConfigProvider); ok {
		logger.Info("Configuring query cache")
		queryCache, err := cache.NewFromEnv(ctx, cacheConfigProvider.CacheConfig())
		if err != nil {
			return nil, fmt.Errorf("unable to connect to query cache: %v", err)
		}
		if queryCache != nil {
			serverEnvOpts = append(serverEnvOpts, srvenv.WithCache(queryCache))
		}
	}

	if indexConfigProvider, ok := config.(IndexConfigProvider); ok {
		logger.Info("Configuring spatial index")
		provideFn, err := ProvideIndexFor(indexConfigProvider.IndexConfig(), db)
		if err != nil {
			return nil, fmt.Errorf("unable to create index provide function: %v", err)
		}
		serverEnvOpts = append(serverEnvOpts, srvenv.WithIndex(provideFn))
	}

	return srvenv.New(serverEnvOpts...), nil
}

func ProvideIndexFor(cfg *index.Config, db *database.DB) (index.ProvideFn, error) {
	if db == nil {
		return nil, fmt.Errorf("index requires a configured object store")
	}
	return func(shutdownCh chan<- error) (index.Manager, error) {
		return index.New(
			db,
			shutdownCh,
			index.WithBounds(quadtree.NewRect(cfg.BoundsX, cfg.BoundsY, cfg.BoundsWidth, cfg.BoundsHeight)),
			index.WithMaxObjects(cfg.MaxObjects),
			index.WithMaxLevels(cfg.MaxLevels),
			index.WithStrictGeometry(cfg.StrictGeometry),
			index.WithMaxItemsStored(cfg.MaxItemsStored),
			index.WithMaxStorageTime(cfg.MaxStorageTime),
			index.WithRebuildDBTime(cfg.RebuildDBTime),
			index.WithDBFlushTime(cfg.DBFlushTime),
			index.WithDBFlushSize(cfg.DBFlushSize),
		)
	}, nil
}
