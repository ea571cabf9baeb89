package main

import (
	"context"
	"os"

	"github.com/desertthunder/ftsep/internal/ftseparator"
	"github.com/desertthunder/ftsep/internal/plugins"
	"github.com/desertthunder/ftsep/internal/shared"
)

func main() {
	logger := shared.NewLogger(nil)

	if err := shared.LoadEnv(); err != nil {
		logger.Warn("ignoring env file", "error", err)
	}

	feat, err := plugins.CompileFeatTokens(nil)
	if err != nil {
		logger.Fatalf("application error: %v", err)
	}

	registry := plugins.NewRegistry()
	if err := registry.Register(ftseparator.New(ftseparator.DefaultOptions(), feat, logger)); err != nil {
		logger.Fatalf("application error: %v", err)
	}

	runner := NewRunner(RunnerOpts{
		Registry: registry,
		Logger:   logger,
	})

	if err := runner.app().Run(context.Background(), os.Args); err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
