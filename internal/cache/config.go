package cache

import (
	"time"
)

type Config struct {
	// Redis address; empty disables the query cache
	Addr     string `envconfig:"QUADIX_CACHE_ADDR"`
	Password string `envconfig:"QUADIX_CACHE_PASSWORD"`
	DB       int    `envconfig:"QUADIX_CACHE_DB" default:"0"`
	// Entry lifetime; stale generations rely on it to expire
	TTL time.Duration `envconfig:"QUADIX_CACHE_TTL" default:"30s"`
}
