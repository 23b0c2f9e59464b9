package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	graphio "github.com/matzehuels/graphsketch/pkg/io"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check that a graph file is well formed",
		Long: `Check that a graph file decodes and describes a valid graph: unique ids,
no self-loops, no edges to missing nodes, no duplicate node pairs and only
finite weights. Prints the graph's fingerprint on success.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := readGraphFile(args[0])
			if err != nil {
				printError("%s is not a valid graph", args[0])
				return err
			}
			printSuccess("%s is valid", args[0])
			printStats(s.NodeCount(), s.EdgeCount(), s.Weighted(), s.Directed())
			printKeyValue("Next ids", fmt.Sprintf("node %d, edge %d", s.NextNodeID(), s.NextEdgeID()))
			printKeyValue("Fingerprint", graphio.Fingerprint(s))
			return nil
		},
	}
}
