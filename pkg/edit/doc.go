// Package edit is the mutation protocol of the graph editor.
//
// Every change to a graph goes through [Apply] with one of a closed set of
// commands:
//
//	AddNode         insert a node, or move an existing one (ID set)
//	AddEdge         insert u→v with the default weight
//	DeleteNode      remove a node and, first, every incident edge
//	DeleteEdge      remove an edge
//	EditEdgeWeight  change an edge's weight
//	SetWeighted     toggle the weighted interpretation
//	SetDirected     toggle the directed interpretation
//	ReplaceGraph    swap in a whole graph (import, reset)
//
// Apply never mutates its input snapshot. A command whose precondition
// fails (self-loop, duplicate edge, missing id) is a rejected edit: Apply
// returns the input snapshot unchanged together with an error carrying
// [errors.ErrCodeRejectedEdit]. Editors treat those as silent no-ops.
//
// Commands arriving over the wire are decoded with [Parse]; an unknown
// name is a protocol misuse and is reported with
// [errors.ErrCodeProtocolMisuse].
//
// [errors.ErrCodeRejectedEdit]: github.com/matzehuels/graphsketch/pkg/errors.ErrCodeRejectedEdit
// [errors.ErrCodeProtocolMisuse]: github.com/matzehuels/graphsketch/pkg/errors.ErrCodeProtocolMisuse
package edit
