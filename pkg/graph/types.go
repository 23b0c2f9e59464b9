package graph

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrSelfLoop is returned by [Snapshot.InsertEdge] when u == v.
	// Self-loops are rejected regardless of graph mode.
	ErrSelfLoop = errors.New("self-loop not allowed")

	// ErrDuplicateEdge is returned by [Snapshot.InsertEdge] when an edge with
	// the same ordered pair (u, v) already exists. The reverse pair is allowed.
	ErrDuplicateEdge = errors.New("duplicate edge")

	// ErrUnknownNode is returned when an edge endpoint does not exist.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned by [Snapshot.SetWeight] for a missing edge id.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrDuplicateID is returned by [FromParts] when a node or edge id occurs twice.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrAllocator is returned by [FromParts] when an allocator is not
	// strictly greater than every id of its kind.
	ErrAllocator = errors.New("allocator must exceed every id")

	// ErrNegativeID is returned by [FromParts] and the explicit-id inserts
	// for ids below zero.
	ErrNegativeID = errors.New("ids must not be negative")

	// ErrIDExhausted is returned for an id of math.MaxInt, which would leave
	// no room for the allocator above it.
	ErrIDExhausted = errors.New("id space exhausted")
)

// checkID fails unless id can be stored with an allocator of id+1 above it.
func checkID(id int) error {
	switch {
	case id < 0:
		return ErrNegativeID
	case id == math.MaxInt:
		return ErrIDExhausted
	}
	return nil
}

// DefaultWeight is the weight given to new edges.
const DefaultWeight = 1.0

// NodeID identifies a node within one editing session.
type NodeID int

// EdgeID identifies an edge within one editing session.
type EdgeID int

// Point is a position in canvas-local coordinates.
type Point struct {
	X float64
	Y float64
}

// String formats the point as "(x,y)".
func (p Point) String() string { return fmt.Sprintf("(%g,%g)", p.X, p.Y) }

// Node is a vertex drawn at Pos. Identity is ID; only Pos ever changes.
type Node struct {
	ID  NodeID
	Pos Point
}

// Edge connects U (tail) to V (head) with weight W.
// Direction matters only when the graph is directed, and W only when the
// graph is weighted; both are always stored.
type Edge struct {
	ID EdgeID
	U  NodeID
	V  NodeID
	W  float64
}

// Pair returns the ordered endpoint pair of the edge.
func (e Edge) Pair() Pair { return Pair{U: e.U, V: e.V} }

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id NodeID) bool { return e.U == id || e.V == id }

// FlagUpdate selects which mode flags [Snapshot.SetFlags] changes.
// Nil fields are left as they are.
type FlagUpdate struct {
	Weighted *bool
	Directed *bool
}

// Parts is a plain, mutable description of a snapshot. Codecs decode into
// Parts and hand them to [FromParts], which validates and builds the index.
type Parts struct {
	NextNodeID NodeID
	NextEdgeID EdgeID
	Weighted   bool
	Directed   bool
	Nodes      []Node
	Edges      []Edge
}
