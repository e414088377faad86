package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/grid/pkg/app"
	"tableflip.dev/grid/pkg/config"
)

type Info struct {
	Config  *config.Config
	Service *app.Service
	Out     io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv(config.EnvConfigPath); override != "" {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, config.EnvConfigPath, "env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = config.Load()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	_, _ = fmt.Fprintf(out, "Default size: %dx%d\n", n.Config.Rows, n.Config.Columns)
	_, _ = fmt.Fprintf(out, "Capabilities: %+v\n", n.Config.Capabilities)

	if n.Service == nil {
		return fmt.Errorf("failed to create service")
	}

	names, err := n.Service.Grids(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Grids:\n")
	for _, k := range names {
		_, _ = fmt.Fprintf(out, "  %s\n", k)
	}
	if len(names) == 0 {
		_, _ = fmt.Fprintf(out, "  %s\n", "no grids")
	}
	return nil
}
