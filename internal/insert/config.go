package insert

import (
	"time"
)

type Config struct {
	RequestTimeout time.Duration `envconfig:"QUADIX_INSERT_REQUEST_TIMEOUT" default:"60s"`
}
