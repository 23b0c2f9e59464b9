// Package io reads and writes graph snapshots as text.
//
// # Format
//
// A snapshot is one object with the mode flags, the id allocators and two
// arrays:
//
//	{
//	  "nextNodeId": 2,
//	  "nextEdgeId": 1,
//	  "isWeighted": false,
//	  "isDirected": false,
//	  "nodes": [{"id": 0, "x": 10, "y": 10}, {"id": 1, "x": 50, "y": 50}],
//	  "edges": [{"id": 0, "u": 0, "v": 1, "w": 1}]
//	}
//
// Nodes and edges are written in ascending id order, so equal snapshots
// always encode to equal bytes. On input the order does not matter.
//
// Optional on input:
//   - nextNodeId / nextEdgeId: derived as one past the largest id when absent
//   - w: defaults to 1
//
// The same schema is accepted as YAML (see [FormatYAML]).
//
// # Validation
//
// Decoding is all or nothing. Any edge with a missing endpoint, a self-loop,
// a repeated ordered pair, a repeated id, an allocator that does not exceed
// its ids or a non-finite weight fails the whole document with an
// INVALID_GRAPH error; text that does not parse fails with INVALID_FORMAT.
// A caller holding a current snapshot keeps it untouched on failure.
//
// # Round trip
//
// For every valid snapshot s:
//
//	data, _ := io.Marshal(s, io.FormatJSON)
//	t, _ := io.Unmarshal(data, io.FormatJSON)
//	graph.Equal(s, t) // true
//
// [Fingerprint] hashes the canonical JSON encoding and is used as a cache
// key by renderers.
package io
