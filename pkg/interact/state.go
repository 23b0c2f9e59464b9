package interact

import "github.com/matzehuels/graphsketch/pkg/graph"

// State is the controller's gesture state.
type State int

const (
	Idle State = iota
	NodeSelected
	Dragging
	EdgeSelected
)

var stateNames = [...]string{
	Idle:         "idle",
	NodeSelected: "node-selected",
	Dragging:     "dragging",
	EdgeSelected: "edge-selected",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "unknown"
}

// View is a read-only picture of the controller for renderers.
type View struct {
	Graph *graph.Snapshot
	State State

	// SelectedNode and SelectedEdge are nil when nothing of that kind is
	// selected. At most one is set.
	SelectedNode *graph.NodeID
	SelectedEdge *graph.EdgeID

	Dragging bool
	Pointer  graph.Point

	// RubberBand is the pending connection line from the selected node to
	// the pointer. It is nil unless a node is selected and not dragged.
	RubberBand *Segment
}

// Segment is a straight line between two canvas points.
type Segment struct {
	From, To graph.Point
}
