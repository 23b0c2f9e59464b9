package io

import (
	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

type document struct {
	NextNodeID *graph.NodeID `json:"nextNodeId,omitempty" yaml:"nextNodeId,omitempty"`
	NextEdgeID *graph.EdgeID `json:"nextEdgeId,omitempty" yaml:"nextEdgeId,omitempty"`
	Weighted   bool          `json:"isWeighted" yaml:"isWeighted"`
	Directed   bool          `json:"isDirected" yaml:"isDirected"`
	Nodes      []node        `json:"nodes" yaml:"nodes"`
	Edges      []edge        `json:"edges" yaml:"edges"`
}

type node struct {
	ID graph.NodeID `json:"id" yaml:"id"`
	X  float64      `json:"x" yaml:"x"`
	Y  float64      `json:"y" yaml:"y"`
}

type edge struct {
	ID graph.EdgeID `json:"id" yaml:"id"`
	U  graph.NodeID `json:"u" yaml:"u"`
	V  graph.NodeID `json:"v" yaml:"v"`
	W  *float64     `json:"w,omitempty" yaml:"w,omitempty"`
}

func fromSnapshot(s *graph.Snapshot) document {
	p := s.Parts()
	doc := document{
		NextNodeID: &p.NextNodeID,
		NextEdgeID: &p.NextEdgeID,
		Weighted:   p.Weighted,
		Directed:   p.Directed,
		Nodes:      make([]node, len(p.Nodes)),
		Edges:      make([]edge, len(p.Edges)),
	}
	for i, n := range p.Nodes {
		doc.Nodes[i] = node{ID: n.ID, X: n.Pos.X, Y: n.Pos.Y}
	}
	for i, e := range p.Edges {
		w := e.W
		doc.Edges[i] = edge{ID: e.ID, U: e.U, V: e.V, W: &w}
	}
	return doc
}

// snapshot validates doc and converts it. Every failure is INVALID_GRAPH.
func (doc document) snapshot() (*graph.Snapshot, error) {
	p := graph.Parts{
		Weighted: doc.Weighted,
		Directed: doc.Directed,
		Nodes:    make([]graph.Node, len(doc.Nodes)),
		Edges:    make([]graph.Edge, len(doc.Edges)),
	}

	var maxNode graph.NodeID = -1
	for i, n := range doc.Nodes {
		p.Nodes[i] = graph.Node{ID: n.ID, Pos: graph.Point{X: n.X, Y: n.Y}}
		maxNode = max(maxNode, n.ID)
	}

	var maxEdge graph.EdgeID = -1
	for i, e := range doc.Edges {
		w := graph.DefaultWeight
		if e.W != nil {
			w = *e.W
		}
		if err := errors.ValidateWeight(w); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d", e.ID)
		}
		p.Edges[i] = graph.Edge{ID: e.ID, U: e.U, V: e.V, W: w}
		maxEdge = max(maxEdge, e.ID)
	}

	p.NextNodeID = maxNode + 1
	if doc.NextNodeID != nil {
		p.NextNodeID = *doc.NextNodeID
	}
	p.NextEdgeID = maxEdge + 1
	if doc.NextEdgeID != nil {
		p.NextEdgeID = *doc.NextEdgeID
	}

	s, err := graph.FromParts(p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "invalid graph")
	}
	return s, nil
}
