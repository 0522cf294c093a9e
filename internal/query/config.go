package query

import (
	"time"
)

type Config struct {
	RequestTimeout time.Duration `envconfig:"QUADIX_QUERY_REQUEST_TIMEOUT" default:"60s"`
}
