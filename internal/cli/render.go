package cli

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphsketch/pkg/config"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

// render draws s as an image through the cached renderer, showing a
// spinner while Graphviz runs.
func (c *CLI) render(ctx context.Context, cfg *config.Config, noCache bool, s *graph.Snapshot, format string) ([]byte, error) {
	r, err := c.newRenderer(ctx, cfg, noCache)
	if err != nil {
		return nil, fmt.Errorf("initialize renderer: %w", err)
	}
	defer r.Cache.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s...", format))
	spinner.Start()
	data, err := r.Render(ctx, s, format)
	if err != nil {
		spinner.StopWithError("Render failed")
		return nil, err
	}
	spinner.Stop()
	return data, nil
}
