// Package pkg provides the libraries behind graphsketch, an interactive
// graph editor.
//
// # Overview
//
// A user builds a graph by clicking: a click on empty space adds a node,
// clicking two nodes in turn connects them, pressing and holding a node
// drags it. The pkg directory is organized into four areas:
//
//  1. Model - immutable graph snapshots and the edit commands on them
//  2. Interaction - the click/drag state machine that turns pointer input into edits
//  3. Exchange - JSON/YAML documents, DOT/SVG/PNG export, the render cache
//  4. Hosting - configuration, sessions and the HTTP facade
//
// # Architecture
//
// The data flow for every user action:
//
//	pointer / key event
//	         ↓
//	    [interact] package (selection, dwell timer, two-click connect)
//	         ↓
//	    [edit] package (closed command set, validation)
//	         ↓
//	    [graph] package (new snapshot, adjacency index kept in sync)
//	         ↓
//	    [render/canvas] terminal view, [render/nodelink] images, [io] documents
//
// # Quick Start
//
// Drive a controller directly and export the result:
//
//	import (
//	    "github.com/matzehuels/graphsketch/pkg/graph"
//	    "github.com/matzehuels/graphsketch/pkg/interact"
//	    graphio "github.com/matzehuels/graphsketch/pkg/io"
//	)
//
//	c := interact.New()
//	defer c.Close()
//
//	c.PointerDown(graph.Point{X: 10, Y: 10}, interact.Canvas())  // node 0
//	c.PointerDown(graph.Point{X: 50, Y: 10}, interact.Canvas())  // node 1
//	c.PointerDown(graph.Point{X: 10, Y: 10}, interact.NodeTarget(0))
//	c.PointerUp(graph.Point{X: 10, Y: 10})                       // select 0
//	c.PointerDown(graph.Point{X: 50, Y: 10}, interact.NodeTarget(1))
//	c.PointerUp(graph.Point{X: 50, Y: 10})                       // edge 0→1
//
//	data, _ := c.Export(graphio.FormatJSON)
//
// # Main Packages
//
// ## Model
//
// [graph] - Persistent snapshots: nodes, edges, weighted/directed flags,
// id allocators and the ordered-pair adjacency index. Every operation
// returns a new snapshot; old ones stay valid.
//
// [edit] - The closed set of edit commands, Apply, and Parse for commands
// arriving by name over the wire. Rejected edits return the input snapshot
// unchanged.
//
// ## Interaction
//
// [interact] - The Idle / NodeSelected / Dragging / EdgeSelected state
// machine with an injectable clock, the weight editor and import/export
// entry points.
//
// ## Exchange
//
// [io] - JSON and YAML documents with full validation on import, plus a
// content fingerprint.
//
// [render/nodelink] - DOT generation at pinned positions and SVG/PNG
// rendering through Graphviz, cached by fingerprint.
//
// [render/canvas] - Character-grid drawing and hit-testing for the
// terminal editor.
//
// [cache] - File, Redis and null caches for rendered images.
//
// ## Hosting
//
// [config] - TOML configuration with environment overrides.
//
// [session] - In-memory registry of independent editors with expiry.
//
// [server] - chi router exposing sessions over HTTP.
//
// [errors] - Coded errors shared by every package.
//
// [observability] - Hooks for edits, cache traffic and HTTP requests.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/graph
// [edit]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/edit
// [interact]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/interact
// [io]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/render/nodelink
// [render/canvas]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/render/canvas
// [cache]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/config
// [session]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/session
// [server]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphsketch/pkg/observability
package pkg
