// Package interact turns raw pointer and keyboard events into graph edits.
//
// A [Controller] owns the current [graph.Snapshot] together with the
// transient selection state (selected node or edge, drag flag, pointer
// position) and applies [edit.Command] values through [edit.Apply]. It is
// the only writer of its snapshot; renderers read [Controller.View].
//
// # States
//
//	Idle ──press node──▶ NodeSelected ──dwell──▶ Dragging
//	  ▲                     │  ▲                    │
//	  │    click 2nd node   │  │ release            │ release
//	  └─────────────────────┘  └────────────        ▼
//	                                               Idle
//
// A press on empty canvas in Idle adds a node. A press on a node selects it
// and arms the dwell timer. If the pointer is released before the timer
// fires the press was a click: the first click leaves the node selected,
// a click on a second node while one is selected connects the two. If the
// timer fires first the press becomes a drag and every pointer move
// repositions the node.
//
// The connect happens on release, not on press. Holding the press on the
// second node past the dwell drags that node instead and creates no edge,
// so a renderer should not draw the pending edge as committed until the
// pointer goes up.
//
// A press on an edge selects it (EdgeSelected). Escape clears the
// selection; Delete removes the selected edge or node (with its edges).
//
// # Timer
//
// Exactly one dwell timer is outstanding per press. It is stopped exactly
// once on whichever exit comes first (release, Escape, Delete, a new
// selection, a graph replacement or [Controller.Close]) and each press
// carries a token so a firing that raced with its cancellation is ignored.
// The timer comes from a [Clock]; tests inject a manual one.
//
// # Concurrency
//
// Every method takes the controller's mutex, including the timer callback,
// so the controller behaves as a single sequential state machine even with
// [RealClock] firing on its own goroutine.
package interact
