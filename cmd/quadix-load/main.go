package main

import (
	"context"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"

	"quadix/internal/buildinfo"
	"quadix/internal/load"
	"quadix/internal/logging"
	"quadix/internal/shutdown"
	"quadix/pkg/container/quadtree"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx); err != nil {
		logger.Fatal(err)
	}

	defer done()
}

func run(ctx context.Context) error {
	var config load.Config
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("error loading environment variables: %w", err)
	}

	shutdownCh := make(chan error, 1)
	m, err := load.New(
		config.Target,
		shutdownCh,
		load.WithMaxConcurrentRequest(config.MaxConcurrentRequest),
		load.WithInterval(config.Interval),
		load.WithRequestTimeout(config.RequestTimeout),
		load.WithObjectsPerTick(config.ObjectsPerTick),
		load.WithQueriesPerTick(config.QueriesPerTick),
		load.WithBounds(quadtree.NewRect(0, 0, config.BoundsWidth, config.BoundsHeight)),
		load.WithClientConfig(config.Client),
	)
	if err != nil {
		return fmt.Errorf("load.New: %w", err)
	}
	if err := m.Run(ctx); err != nil {
		return fmt.Errorf("load.Run: %w", err)
	}

	return <-shutdownCh
}
