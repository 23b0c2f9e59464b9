package server

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/interact"
	graphio "github.com/matzehuels/graphsketch/pkg/io"
)

// viewResponse is the JSON form of an editor view.
type viewResponse struct {
	ID                string           `json:"id"`
	State             string           `json:"state"`
	SelectedNode      *graph.NodeID    `json:"selectedNode"`
	SelectedEdge      *graph.EdgeID    `json:"selectedEdge"`
	PendingWeightEdit *graph.EdgeID    `json:"pendingWeightEdit"`
	Dragging          bool             `json:"dragging"`
	Pointer           graph.Point      `json:"pointer"`
	RubberBand        *segmentResponse `json:"rubberBand,omitempty"`
	Rejected          string           `json:"rejected,omitempty"`
	Graph             json.RawMessage  `json:"graph"`
}

type segmentResponse struct {
	From graph.Point `json:"from"`
	To   graph.Point `json:"to"`
}

func newViewResponse(id string, ed *interact.Controller) (viewResponse, error) {
	v := ed.View()
	g, err := graphio.Marshal(v.Graph, graphio.FormatJSON)
	if err != nil {
		return viewResponse{}, err
	}
	resp := viewResponse{
		ID:           id,
		State:        v.State.String(),
		SelectedNode: v.SelectedNode,
		SelectedEdge: v.SelectedEdge,
		Dragging:     v.Dragging,
		Pointer:      v.Pointer,
		Graph:        json.RawMessage(bytes.TrimSpace(g)),
	}
	if v.RubberBand != nil {
		resp.RubberBand = &segmentResponse{From: v.RubberBand.From, To: v.RubberBand.To}
	}
	if id, ok := ed.PendingWeightEdit(); ok {
		resp.PendingWeightEdit = &id
	}
	return resp, nil
}

// eventRequest is one input event:
//
//	{"type": "pointer-down", "x": 10, "y": 20, "target": {"kind": "node", "id": 3}}
//	{"type": "pointer-move", "x": 11, "y": 20}
//	{"type": "pointer-up", "x": 11, "y": 20}
//	{"type": "key", "key": "escape"}
type eventRequest struct {
	Type   string         `json:"type"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Target *targetRequest `json:"target,omitempty"`
	Key    string         `json:"key,omitempty"`
}

type targetRequest struct {
	Kind string `json:"kind"`
	ID   int    `json:"id"`
}

func (e eventRequest) event() (interact.Event, error) {
	pos := graph.Point{X: e.X, Y: e.Y}
	switch e.Type {
	case "pointer-down":
		t, err := e.Target.target()
		if err != nil {
			return nil, err
		}
		return interact.PointerDown{Pos: pos, Target: t}, nil
	case "pointer-move":
		return interact.PointerMove{Pos: pos}, nil
	case "pointer-up":
		return interact.PointerUp{Pos: pos}, nil
	case "key":
		switch strings.ToLower(e.Key) {
		case "escape", "esc":
			return interact.KeyPress{Key: interact.KeyEscape}, nil
		case "delete", "del", "backspace":
			return interact.KeyPress{Key: interact.KeyDelete}, nil
		}
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown key %q", e.Key)
	}
	return nil, errors.New(errors.ErrCodeProtocolMisuse, "unknown event type %q", e.Type)
}

func (t *targetRequest) target() (interact.Target, error) {
	if t == nil {
		return interact.Canvas(), nil
	}
	switch t.Kind {
	case "", "canvas":
		return interact.Canvas(), nil
	case "node":
		return interact.NodeTarget(graph.NodeID(t.ID)), nil
	case "edge":
		return interact.EdgeTarget(graph.EdgeID(t.ID)), nil
	}
	return interact.Target{}, errors.New(errors.ErrCodeInvalidInput, "unknown target kind %q", t.Kind)
}

// decodeEvents accepts a single event object or an array of them.
func decodeEvents(body []byte) ([]eventRequest, error) {
	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '[' {
		var evs []eventRequest
		if err := json.Unmarshal(body, &evs); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode events")
		}
		return evs, nil
	}
	var ev eventRequest
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode event")
	}
	return []eventRequest{ev}, nil
}

// commandRequest names an edit command and its arguments.
type commandRequest struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args"`
}

type weightRequest struct {
	W *float64 `json:"w"`
}
