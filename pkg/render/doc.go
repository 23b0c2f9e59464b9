// Package render groups the graph renderers.
//
//   - [nodelink]: Graphviz export (DOT, SVG, PNG) with pinned positions
//   - [canvas]: character-grid rendering and hit-testing for the terminal
//     editor
//
// [nodelink]: github.com/matzehuels/graphsketch/pkg/render/nodelink
// [canvas]: github.com/matzehuels/graphsketch/pkg/render/canvas
package render
