package interact

import (
	graphio "github.com/matzehuels/graphsketch/pkg/io"
)

// Import decodes data in format and, if it is a valid graph, replaces the
// current one and clears the selection. On any error the controller is
// unchanged and the error (INVALID_FORMAT or INVALID_GRAPH) is returned
// for display.
func (c *Controller) Import(format string, data []byte) error {
	s, err := graphio.Unmarshal(data, format)
	if err != nil {
		c.logger.Warn("import rejected", "format", format, "err", err)
		return err
	}
	return c.Replace(s)
}

// Export encodes the current graph in format.
func (c *Controller) Export(format string) ([]byte, error) {
	return graphio.Marshal(c.Graph(), format)
}
