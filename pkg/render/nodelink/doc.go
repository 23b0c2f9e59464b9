// Package nodelink renders graph snapshots as node-link diagrams.
//
// [ToDOT] turns a snapshot into Graphviz DOT with every node pinned to its
// canvas position, so the export looks like the editor. [RenderSVG] and
// [RenderPNG] run Graphviz in process via [github.com/goccy/go-graphviz];
// [Renderer] adds a render cache keyed by [io.Fingerprint].
//
//	dot := nodelink.ToDOT(s, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [io.Fingerprint]: github.com/matzehuels/graphsketch/pkg/io.Fingerprint
package nodelink
