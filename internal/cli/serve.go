package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsketch/pkg/server"
)

// serveCommand creates the serve command for the HTTP editor API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		listen  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graph editors over HTTP",
		Long: `Serve graph editors over HTTP.

Each client creates its own editor with POST /v1/editors and drives it with
pointer and key events or edit commands. Renders are cached with the
configured cache backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), listen, noCache)
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, listen string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if listen == "" {
		listen = cfg.Server.Listen
	}

	r, err := c.newRenderer(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize renderer: %w", err)
	}
	defer r.Cache.Close()

	srv := server.New(server.Options{
		Logger:   loggerFromContext(ctx),
		Renderer: r,
		Dwell:    cfg.Editor.Dwell.Duration,
		Weighted: cfg.Editor.Weighted,
		Directed: cfg.Editor.Directed,
	})
	printInfo("Serving on %s", StyleHighlight.Render(listen))
	return srv.ListenAndServe(ctx, listen)
}
