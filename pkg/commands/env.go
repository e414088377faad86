package commands

import (
	"context"
	"os"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/config"
	"tableflip.dev/grid/pkg/ctxlog"
	"tableflip.dev/grid/pkg/store"
)

// load reads the configuration and opens the store. The returned context
// carries the configured logger.
func load() (context.Context, *app.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger := ctxlog.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	p, err := store.Load(cfg)
	if err != nil {
		return nil, nil, err
	}
	return ctx, &app.Service{Persistence: p, Config: cfg}, nil
}
