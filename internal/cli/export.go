package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphsketch/pkg/errors"
	graphio "github.com/matzehuels/graphsketch/pkg/io"
	"github.com/matzehuels/graphsketch/pkg/render/nodelink"
)

// exportFormats lists everything export can write.
var exportFormats = append(slices.Clone(graphio.Formats), nodelink.Formats...)

// exportCommand creates the export command.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output  string
		format  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Convert a graph file to JSON, YAML, SVG, PNG or DOT",
		Long: `Convert a graph file to another format.

Text formats (json, yaml) are lossless and can be opened again with 'edit'.
Images (svg, png) are drawn with Graphviz at the stored node positions and
are cached; dot writes the Graphviz source.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], format, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.<format>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: "+strings.Join(exportFormats, ", ")+" (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the render cache")

	return cmd
}

// runExport loads input, converts it and writes the result.
func (c *CLI) runExport(ctx context.Context, input, format, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if format == "" {
		format = cfg.Render.Format
	}
	format, err = errors.ValidateFormat(format, exportFormats...)
	if err != nil {
		return err
	}

	s, err := readGraphFile(input)
	if err != nil {
		return err
	}

	prog := newProgress(loggerFromContext(ctx))
	var data []byte
	if slices.Contains(graphio.Formats, format) {
		data, err = graphio.Marshal(s, format)
	} else {
		data, err = c.render(ctx, cfg, noCache, s, format)
	}
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + "." + format
	}
	if err := os.WriteFile(outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}
	prog.done("Exported " + format)

	printSuccess("Export complete")
	printFile(outputPath)
	printStats(s.NodeCount(), s.EdgeCount(), s.Weighted(), s.Directed())
	if slices.Contains(graphio.Formats, format) {
		printNewline()
		printNextStep("Edit", appName+" edit "+outputPath)
	}
	return nil
}
