package edit

import (
	"encoding/json"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

// Wire argument shapes for Parse.
type (
	nodeArgs struct {
		X  float64       `json:"x"`
		Y  float64       `json:"y"`
		ID *graph.NodeID `json:"id,omitempty"`
	}
	edgeArgs struct {
		U  graph.NodeID  `json:"u"`
		V  graph.NodeID  `json:"v"`
		ID *graph.EdgeID `json:"id,omitempty"`
	}
	idArgs struct {
		ID *int `json:"id"`
	}
	weightArgs struct {
		ID *graph.EdgeID `json:"id"`
		W  *float64      `json:"w"`
	}
	flagArgs struct {
		Value *bool `json:"value"`
	}
)

// Parse decodes a wire command: its name and JSON arguments.
//
//	add-node          {"x": 10, "y": 20, "id": 3}   (id optional)
//	add-edge          {"u": 0, "v": 1, "id": 4}     (id optional)
//	delete-node       {"id": 0}
//	delete-edge       {"id": 0}
//	edit-edge-weight  {"id": 0, "w": 2.5}
//	set-weighted      {"value": true}
//	set-directed      {"value": true}
//
// replace-graph carries a whole graph and is only reachable through the
// import path. An unknown name yields PROTOCOL_MISUSE; malformed arguments
// yield INVALID_INPUT.
func Parse(name string, args []byte) (Command, error) {
	if len(args) == 0 {
		args = []byte("{}")
	}
	switch name {
	case NameAddNode:
		var a nodeArgs
		if err := decode(name, args, &a); err != nil {
			return nil, err
		}
		return AddNode{Pos: graph.Point{X: a.X, Y: a.Y}, ID: a.ID}, nil

	case NameAddEdge:
		var a edgeArgs
		if err := decode(name, args, &a); err != nil {
			return nil, err
		}
		return AddEdge{U: a.U, V: a.V, ID: a.ID}, nil

	case NameDeleteNode, NameDeleteEdge:
		var a idArgs
		if err := decode(name, args, &a); err != nil {
			return nil, err
		}
		if a.ID == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: missing id", name)
		}
		if name == NameDeleteNode {
			return DeleteNode{ID: graph.NodeID(*a.ID)}, nil
		}
		return DeleteEdge{ID: graph.EdgeID(*a.ID)}, nil

	case NameEditEdgeWeight:
		var a weightArgs
		if err := decode(name, args, &a); err != nil {
			return nil, err
		}
		if a.ID == nil || a.W == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: id and w are required", name)
		}
		if err := errors.ValidateWeight(*a.W); err != nil {
			return nil, err
		}
		return EditEdgeWeight{ID: *a.ID, Weight: *a.W}, nil

	case NameSetWeighted, NameSetDirected:
		var a flagArgs
		if err := decode(name, args, &a); err != nil {
			return nil, err
		}
		if a.Value == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "%s: missing value", name)
		}
		if name == NameSetWeighted {
			return SetWeighted{Value: *a.Value}, nil
		}
		return SetDirected{Value: *a.Value}, nil

	default:
		return nil, errors.New(errors.ErrCodeProtocolMisuse, "unknown command %q", name)
	}
}

func decode(name string, args []byte, v any) error {
	if err := json.Unmarshal(args, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "%s: bad arguments", name)
	}
	return nil
}
