package edit

import (
	"context"
	"fmt"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/observability"
)

// Apply runs cmd against s and returns the resulting snapshot.
//
// On success the result is a new snapshot and s is untouched. A rejected
// edit returns s itself and an *errors.Error with code REJECTED_EDIT; a
// ReplaceGraph with a malformed graph returns s and INVALID_GRAPH.
//
// Apply panics when cmd is not one of the commands of this package: that
// can only happen through a programming error.
func Apply(ctx context.Context, s *graph.Snapshot, cmd Command) (*graph.Snapshot, error) {
	next, err := apply(s, cmd)
	if err != nil {
		observability.Edit().OnRejected(ctx, cmd.Name(), err)
		return s, err
	}
	observability.Edit().OnApplied(ctx, cmd.Name(), next.NodeCount(), next.EdgeCount())
	return next, nil
}

func apply(s *graph.Snapshot, cmd Command) (*graph.Snapshot, error) {
	switch c := cmd.(type) {
	case AddNode:
		id := s.NextNodeID()
		if c.ID != nil {
			id = *c.ID
		}
		next, err := s.InsertNodeAt(id, c.Pos)
		if err != nil {
			return nil, reject(err, "add node at %v", c.Pos)
		}
		return next, nil

	case AddEdge:
		var (
			next *graph.Snapshot
			err  error
		)
		if c.ID != nil {
			next, err = s.InsertEdgeAt(*c.ID, c.U, c.V, graph.DefaultWeight)
		} else {
			next, _, err = s.InsertEdge(c.U, c.V, graph.DefaultWeight)
		}
		if err != nil {
			return nil, reject(err, "add edge %d→%d", c.U, c.V)
		}
		return next, nil

	case DeleteNode:
		return deleteNode(s, c.ID)

	case DeleteEdge:
		if _, ok := s.Edge(c.ID); !ok {
			return nil, reject(graph.ErrUnknownEdge, "delete edge %d", c.ID)
		}
		return s.RemoveEdge(c.ID), nil

	case EditEdgeWeight:
		if err := errors.ValidateWeight(c.Weight); err != nil {
			return nil, reject(err, "edit weight of edge %d", c.ID)
		}
		next, err := s.SetWeight(c.ID, c.Weight)
		if err != nil {
			return nil, reject(err, "edit weight of edge %d", c.ID)
		}
		return next, nil

	case SetWeighted:
		return s.SetFlags(graph.FlagUpdate{Weighted: graph.Bool(c.Value)}), nil

	case SetDirected:
		return s.SetFlags(graph.FlagUpdate{Directed: graph.Bool(c.Value)}), nil

	case ReplaceGraph:
		if c.Graph == nil {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "replace with no graph")
		}
		next, err := s.Replace(c.Graph)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "replace graph")
		}
		return next, nil

	default:
		panic(errors.New(errors.ErrCodeProtocolMisuse, "unknown command %T", cmd))
	}
}

// deleteNode removes every edge incident to id, enumerated against the
// snapshot as it was before the cascade in ascending edge id order, and
// then the node. The whole cascade is one command.
func deleteNode(s *graph.Snapshot, id graph.NodeID) (*graph.Snapshot, error) {
	if _, ok := s.Node(id); !ok {
		return nil, reject(graph.ErrUnknownNode, "delete node %d", id)
	}
	next := s
	for _, eid := range s.IncidentEdges(id) {
		next = next.RemoveEdge(eid)
	}
	return next.RemoveNode(id), nil
}

func reject(cause error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeRejectedEdit, cause, "%s", fmt.Sprintf(format, args...))
}
