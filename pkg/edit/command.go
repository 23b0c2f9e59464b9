package edit

import "github.com/matzehuels/graphsketch/pkg/graph"

// Command names as they appear on the wire and in logs.
const (
	NameAddNode        = "add-node"
	NameAddEdge        = "add-edge"
	NameDeleteNode     = "delete-node"
	NameDeleteEdge     = "delete-edge"
	NameEditEdgeWeight = "edit-edge-weight"
	NameSetWeighted    = "set-weighted"
	NameSetDirected    = "set-directed"
	NameReplaceGraph   = "replace-graph"
)

// Command is one graph mutation. The set of implementations is closed.
type Command interface {
	// Name returns the wire name, e.g. "add-edge".
	Name() string
	command()
}

// AddNode places a new node at Pos, or moves node *ID there.
type AddNode struct {
	Pos graph.Point
	ID  *graph.NodeID
}

// AddEdge connects U to V with [graph.DefaultWeight]. ID pins the edge id
// instead of allocating one.
type AddEdge struct {
	U  graph.NodeID
	V  graph.NodeID
	ID *graph.EdgeID
}

// DeleteNode removes a node and every edge touching it.
type DeleteNode struct {
	ID graph.NodeID
}

// DeleteEdge removes an edge.
type DeleteEdge struct {
	ID graph.EdgeID
}

// EditEdgeWeight sets the weight of an edge.
type EditEdgeWeight struct {
	ID     graph.EdgeID
	Weight float64
}

// SetWeighted sets the weighted flag.
type SetWeighted struct {
	Value bool
}

// SetDirected sets the directed flag.
type SetDirected struct {
	Value bool
}

// ReplaceGraph swaps the whole graph for Graph.
type ReplaceGraph struct {
	Graph *graph.Snapshot
}

func (AddNode) Name() string        { return NameAddNode }
func (AddEdge) Name() string        { return NameAddEdge }
func (DeleteNode) Name() string     { return NameDeleteNode }
func (DeleteEdge) Name() string     { return NameDeleteEdge }
func (EditEdgeWeight) Name() string { return NameEditEdgeWeight }
func (SetWeighted) Name() string    { return NameSetWeighted }
func (SetDirected) Name() string    { return NameSetDirected }
func (ReplaceGraph) Name() string   { return NameReplaceGraph }

func (AddNode) command()        {}
func (AddEdge) command()        {}
func (DeleteNode) command()     {}
func (DeleteEdge) command()     {}
func (EditEdgeWeight) command() {}
func (SetWeighted) command()    {}
func (SetDirected) command()    {}
func (ReplaceGraph) command()   {}

// MoveNode returns the AddNode command that drags node id to pos.
func MoveNode(id graph.NodeID, pos graph.Point) AddNode {
	return AddNode{Pos: pos, ID: &id}
}

// Reset returns the ReplaceGraph command that clears the editor.
func Reset() ReplaceGraph {
	return ReplaceGraph{Graph: graph.Empty()}
}
