package load

import (
	"time"

	"quadix/internal/httputil"
)

type Config struct {
	Target               string        `envconfig:"QUADIX_LOAD_TARGET" default:"http://127.0.0.1:8686"`
	Client               httputil.HTTPClientConfig
	MaxConcurrentRequest int           `envconfig:"QUADIX_LOAD_MAX_CONCURRENT_REQUEST" default:"64"`
	Interval             time.Duration `envconfig:"QUADIX_LOAD_INTERVAL" default:"1s"`
	RequestTimeout       time.Duration `envconfig:"QUADIX_LOAD_REQUEST_TIMEOUT" default:"10s"`
	ObjectsPerTick       int           `envconfig:"QUADIX_LOAD_OBJECTS_PER_TICK" default:"64"`
	QueriesPerTick       int           `envconfig:"QUADIX_LOAD_QUERIES_PER_TICK" default:"16"`
	// The generated geometry stays within this plane; match the server bounds
	BoundsWidth  float64 `envconfig:"QUADIX_LOAD_BOUNDS_WIDTH" default:"1000"`
	BoundsHeight float64 `envconfig:"QUADIX_LOAD_BOUNDS_HEIGHT" default:"1000"`
}
