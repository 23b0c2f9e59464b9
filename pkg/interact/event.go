package interact

import (
	"fmt"

	"github.com/matzehuels/graphsketch/pkg/graph"
)

// TargetKind says what a pointer press landed on.
type TargetKind int

const (
	// OnCanvas is empty drawing surface.
	OnCanvas TargetKind = iota
	// OnNode is a node; Target.Node is set.
	OnNode
	// OnEdge is an edge; Target.Edge is set.
	OnEdge
)

// Target is the hit-test result for a press. Renderers produce it.
type Target struct {
	Kind TargetKind
	Node graph.NodeID
	Edge graph.EdgeID
}

// Canvas returns the empty-canvas target.
func Canvas() Target { return Target{Kind: OnCanvas} }

// NodeTarget returns the target for node id.
func NodeTarget(id graph.NodeID) Target { return Target{Kind: OnNode, Node: id} }

// EdgeTarget returns the target for edge id.
func EdgeTarget(id graph.EdgeID) Target { return Target{Kind: OnEdge, Edge: id} }

func (t Target) String() string {
	switch t.Kind {
	case OnNode:
		return fmt.Sprintf("node %d", t.Node)
	case OnEdge:
		return fmt.Sprintf("edge %d", t.Edge)
	default:
		return "canvas"
	}
}

// Key is a keyboard key the controller reacts to.
type Key int

const (
	KeyEscape Key = iota + 1
	KeyDelete
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyDelete:
		return "delete"
	default:
		return fmt.Sprintf("key(%d)", int(k))
	}
}

// Event is an input event for [Controller.Handle].
type Event interface {
	event()
}

// PointerDown is a primary button press at Pos on Target.
type PointerDown struct {
	Pos    graph.Point
	Target Target
}

// PointerMove is a pointer move to Pos, with or without a button held.
type PointerMove struct {
	Pos graph.Point
}

// PointerUp is a primary button release at Pos.
type PointerUp struct {
	Pos graph.Point
}

// KeyPress is a key press.
type KeyPress struct {
	Key Key
}

func (PointerDown) event() {}
func (PointerMove) event() {}
func (PointerUp) event()   {}
func (KeyPress) event()    {}
