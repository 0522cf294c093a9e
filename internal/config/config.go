package quadix

import (
	"quadix/internal/cache"
	"quadix/internal/database"
	"quadix/internal/index"
	"quadix/internal/insert"
	"quadix/internal/query"
	"quadix/internal/seed"
	"quadix/internal/setup"
)

var (
	_ setup.DatabaseConfigProvider = (*Config)(nil)
	_ setup.IndexConfigProvider    = (*Config)(nil)
	_ setup.CacheConfigProvider    = (*Config)(nil)
	_ setup.SeedConfigProvider     = (*Config)(nil)
)

type Config struct {
	SrvAddr   string `envconfig:"QUADIX_ADDR" default:":8686"`
	DebugAddr string `envconfig:"QUADIX_DEBUG_ADDR" default:"0.0.0.0:8080"`
	Index     index.Config
	Insert    insert.Config
	Query     query.Config
	Database  database.Config
	Cache     cache.Config
	Seed      seed.Config
}

func (c Config) IndexConfig() *index.Config {
	return &c.Index
}

func (c Config) InsertConfig() *insert.Config {
	return &c.Insert
}

func (c Config) QueryConfig() *query.Config {
	return &c.Query
}

func (c Config) DatabaseConfig() *database.Config {
	return &c.Database
}

func (c Config) CacheConfig() *cache.Config {
	return &c.Cache
}

func (c Config) SeedConfig() *seed.Config {
	return &c.Seed
}
