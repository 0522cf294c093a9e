package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"quadix/internal/buildinfo"
	quadix "quadix/internal/config"
	"quadix/internal/insert"
	"quadix/internal/inspect"
	"quadix/internal/logging"
	"quadix/internal/query"
	"quadix/internal/seed"
	"quadix/internal/server"
	"quadix/internal/setup"
	"quadix/internal/shutdown"
	"quadix/internal/stats"
)

func main() {
	_, _ = fmt.Fprint(os.Stdout, buildinfo.Graffiti)
	_, _ = fmt.Fprintf(
		os.Stdout,
		"%s: %s, %s\n",
		buildinfo.Info.Name(),
		buildinfo.Info.Time(),
		buildinfo.Info.Tag(),
	)

	ctx, done := shutdown.New()
	logger := logging.FromContext(ctx)
	if err := run(ctx, done); err != nil {
		logger.Fatal(err)
	}

	defer done()
}

func run(ctx context.Context, cancel func()) error {
	config := quadix.Config{}
	env, err := setup.Setup(ctx, &config)
	if err != nil {
		return fmt.Errorf("setup.Setup: %w", err)
	}

	shutdownCh := make(chan error, 2)
	idx, err := env.ProvideIndex()(shutdownCh)
	if err != nil {
		return fmt.Errorf("index provider function error: %w", err)
	}
	if err := idx.Run(ctx); err != nil {
		return fmt.Errorf("index.Run: %w", err)
	}

	if config.Seed.File != "" {
		if err := seed.Apply(ctx, config.Seed.File, idx); err != nil {
			return fmt.Errorf("seed.Apply: %w", err)
		}
	}

	if err := stats.RegisterViews(); err != nil {
		return fmt.Errorf("stats.RegisterViews: %w", err)
	}
	exporter, err := stats.NewExporter()
	if err != nil {
		return fmt.Errorf("stats.NewExporter: %w", err)
	}

	srv, err := server.New(config.SrvAddr)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()

	insertHandler, err := insert.NewHandler(&config.Insert, idx)
	if err != nil {
		return fmt.Errorf("insert.NewHandler: %w", err)
	}
	queryHandler, err := query.NewHandler(&config.Query, idx, env.Cache())
	if err != nil {
		return fmt.Errorf("query.NewHandler: %w", err)
	}

	mux.Handle("/objects", insertHandler)
	mux.Handle("/query", queryHandler)
	mux.Handle("/health", server.HandleHealth(ctx))
	mux.Handle("/metrics", exporter)
	mux.Handle("/debug/tree", inspect.NewHandler(idx))

	go func() {
		if err := srv.ServeHTTPHandler(ctx, mux); err != nil {
			cancel()
		}
	}()

	go func() {
		if err := http.ListenAndServe(config.DebugAddr, nil); err != nil {
			cancel()
		}
	}()

	return <-shutdownCh
}
