// Package canvas draws an editor view onto a character grid and maps grid
// positions back to graph elements.
//
// One grid cell is one canvas unit, so terminal mouse coordinates can be
// fed to the controller unchanged. Nodes are drawn as their id, edges as
// line glyphs along a Bresenham path, directed edges end in an arrow and
// weighted edges carry their weight at the midpoint. Anti-parallel edges
// are shifted one cell to their right so both stay visible, like the
// curved pair in the SVG export.
package canvas
