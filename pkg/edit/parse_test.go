package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

func TestParse(t *testing.T) {
	nodeID := graph.NodeID(3)
	edgeID := graph.EdgeID(4)

	tests := []struct {
		name string
		args string
		want Command
	}{
		{NameAddNode, `{"x": 1.5, "y": 2}`, AddNode{Pos: graph.Point{X: 1.5, Y: 2}}},
		{NameAddNode, `{"x": 1, "y": 2, "id": 3}`, AddNode{Pos: graph.Point{X: 1, Y: 2}, ID: &nodeID}},
		{NameAddEdge, `{"u": 0, "v": 1}`, AddEdge{U: 0, V: 1}},
		{NameAddEdge, `{"u": 0, "v": 1, "id": 4}`, AddEdge{U: 0, V: 1, ID: &edgeID}},
		{NameDeleteNode, `{"id": 2}`, DeleteNode{ID: 2}},
		{NameDeleteEdge, `{"id": 5}`, DeleteEdge{ID: 5}},
		{NameEditEdgeWeight, `{"id": 0, "w": 2.5}`, EditEdgeWeight{ID: 0, Weight: 2.5}},
		{NameSetWeighted, `{"value": true}`, SetWeighted{Value: true}},
		{NameSetDirected, `{"value": false}`, SetDirected{Value: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name+" "+tt.args, func(t *testing.T) {
			got, err := Parse(tt.name, []byte(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.name, got.Name())
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name     string
		command  string
		args     string
		wantCode errors.Code
	}{
		{"unknown", "teleport-node", `{}`, errors.ErrCodeProtocolMisuse},
		{"replace is not a wire command", NameReplaceGraph, `{}`, errors.ErrCodeProtocolMisuse},
		{"bad json", NameAddNode, `{"x": "far"}`, errors.ErrCodeInvalidInput},
		{"missing id", NameDeleteNode, `{}`, errors.ErrCodeInvalidInput},
		{"missing weight", NameEditEdgeWeight, `{"id": 1}`, errors.ErrCodeInvalidInput},
		{"missing flag", NameSetDirected, ``, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.command, []byte(tt.args))
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errors.GetCode(err))
		})
	}
}
