package index

import (
	"time"
)

type Config struct {
	// Origin and size of the indexed plane
	BoundsX      float64 `envconfig:"QUADIX_BOUNDS_X" default:"0"`
	BoundsY      float64 `envconfig:"QUADIX_BOUNDS_Y" default:"0"`
	BoundsWidth  float64 `envconfig:"QUADIX_BOUNDS_WIDTH" default:"1000"`
	BoundsHeight float64 `envconfig:"QUADIX_BOUNDS_HEIGHT" default:"1000"`
	// Number of objects a tree node holds before it splits
	MaxObjects int `envconfig:"QUADIX_MAX_OBJECTS" default:"10"`
	// Subdivision depth cap of the tree
	MaxLevels int `envconfig:"QUADIX_MAX_LEVELS" default:"5"`
	// Reject malformed geometry instead of indexing it silently
	StrictGeometry bool `envconfig:"QUADIX_STRICT_GEOMETRY" default:"false"`
	// Maximum number of objects kept in the store; oldest beyond it are pruned
	MaxItemsStored int `envconfig:"QUADIX_MAX_ITEMS_STORED" default:"1000000"`
	// Maximum retention period for stored objects, 0 disables the check
	MaxStorageTime time.Duration `envconfig:"QUADIX_MAX_STORAGE_TIME" default:"0s"`
	// Timer for running the store pruning pass
	RebuildDBTime time.Duration `envconfig:"QUADIX_REBUILD_DB_TIME" default:"15s"`
	// Critical buffer size in dbTxExecutor at which data is flushed to disk
	DBFlushSize int `envconfig:"QUADIX_DB_FLUSH_SIZE" default:"10"`
	// Critical time of life in the dbTxExecutor buffer at which data is flushed to disk
	DBFlushTime time.Duration `envconfig:"QUADIX_DB_FLUSH_TIME" default:"5s"`
}
