// Package graph is the authoritative in-memory model of an editable graph.
//
// A [Snapshot] is an immutable value holding the nodes, the edges, the two
// mode flags (weighted, directed) and the id allocators of one moment in an
// editing session. Every operation returns a new snapshot and leaves its
// receiver untouched, so a renderer may keep reading an old snapshot while
// the editor moves on.
//
// # Identity
//
// Node and edge ids are small integers allocated monotonically from
// [Snapshot.NextNodeID] and [Snapshot.NextEdgeID]. Ids are never reused
// within a session, even after deletion.
//
// # Adjacency Index
//
// Each snapshot carries an [Index]: the set of ordered pairs (u, v) for
// which an edge u→v exists. It answers duplicate checks and the renderer's
// "is there an anti-parallel edge?" question in O(1):
//
//	s, _, _ = s.InsertEdge(0, 1, graph.DefaultWeight)
//	s, _, _ = s.InsertEdge(1, 0, graph.DefaultWeight)
//	s.HasReverse(0, 1) // true: draw both edges curved
//
// The index is maintained by the snapshot operations themselves and is
// rebuilt from the edge set by [Snapshot.Replace] and [FromParts]; callers
// cannot modify it.
//
// # Invariants
//
// A snapshot produced by this package always satisfies:
//   - allocators are strictly greater than every id present
//   - no self-loops and no duplicate ordered pair
//   - the index equals {(e.U, e.V) : e in edges}
//
// Endpoint existence holds for every snapshot except transiently inside a
// caller that removes a node before its incident edges: [Snapshot.RemoveNode]
// does not cascade. The edit package performs the cascade.
//
// # Concurrency
//
// Snapshots are safe for concurrent reads. There are no writers.
package graph
