package interact

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphsketch/pkg/edit"
	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

// Controller is the graph editing state machine. Create one with [New];
// it is safe for concurrent use.
type Controller struct {
	clock    Clock
	dwell    time.Duration
	logger   *log.Logger
	onChange func()

	mu    sync.Mutex
	g     *graph.Snapshot
	state State

	node    graph.NodeID
	hasNode bool
	edge    graph.EdgeID
	hasEdge bool

	// connectFrom is the node that was already selected when the current
	// press began; a click completes the connection from it.
	connectFrom graph.NodeID
	connecting  bool

	pressing bool
	timer    Timer
	token    uint64

	pointer graph.Point
	closed  bool
}

// New returns a controller in Idle on an empty graph.
func New(opts ...Option) *Controller {
	c := &Controller{
		clock:  RealClock{},
		dwell:  DefaultDwell,
		logger: discardLogger(),
		g:      graph.Empty(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Handle dispatches one input event.
func (c *Controller) Handle(ev Event) {
	switch e := ev.(type) {
	case PointerDown:
		c.PointerDown(e.Pos, e.Target)
	case PointerMove:
		c.PointerMove(e.Pos)
	case PointerUp:
		c.PointerUp(e.Pos)
	case KeyPress:
		c.KeyPress(e.Key)
	default:
		panic(errors.New(errors.ErrCodeProtocolMisuse, "unknown event %T", ev))
	}
}

// PointerDown handles a button press at pos on target.
func (c *Controller) PointerDown(pos graph.Point, target Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pointer = pos
	if !c.valid(target) {
		c.logger.Debug("press on unknown target", "target", target)
		return
	}

	switch c.state {
	case Dragging:
		// The button is already down.
		return

	case Idle:
		switch target.Kind {
		case OnCanvas:
			c.apply(edit.AddNode{Pos: pos})
		case OnNode:
			c.press(target.Node, false)
		case OnEdge:
			c.selectEdge(target.Edge)
		}

	case NodeSelected:
		switch target.Kind {
		case OnCanvas:
			c.clear()
		case OnNode:
			from, connect := c.node, !c.pressing
			c.press(target.Node, connect)
			c.connectFrom = from
		case OnEdge:
			c.selectEdge(target.Edge)
		}

	case EdgeSelected:
		switch target.Kind {
		case OnCanvas:
			c.clear()
		case OnNode:
			c.press(target.Node, false)
		case OnEdge:
			c.selectEdge(target.Edge)
		}
	}
}

// PointerMove handles a pointer move. While dragging it moves the dragged
// node; otherwise it only tracks the pointer for the rubber band.
func (c *Controller) PointerMove(pos graph.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pointer = pos
	if c.state == Dragging {
		c.apply(edit.MoveNode(c.node, pos))
	}
}

// PointerUp handles a button release.
func (c *Controller) PointerUp(pos graph.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.pointer = pos

	switch {
	case c.state == Dragging:
		c.logger.Debug("drop", "node", c.node, "pos", pos)
		c.clear()

	case c.state == NodeSelected && c.pressing:
		c.disarm()
		c.pressing = false
		if c.connecting {
			c.apply(edit.AddEdge{U: c.connectFrom, V: c.node})
			c.clear()
		}
	}
}

// KeyPress handles Escape and Delete. Other keys are ignored.
func (c *Controller) KeyPress(k Key) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}

	switch k {
	case KeyEscape:
		c.clear()
	case KeyDelete:
		switch {
		case c.hasEdge:
			c.apply(edit.DeleteEdge{ID: c.edge})
		case c.hasNode:
			c.apply(edit.DeleteNode{ID: c.node})
		}
		c.clear()
	}
}

// PendingWeightEdit returns the edge whose weight the weight editor should
// offer. It is only set while an edge is selected on a weighted graph.
func (c *Controller) PendingWeightEdit() (graph.EdgeID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != EdgeSelected || !c.g.Weighted() {
		return 0, false
	}
	return c.edge, true
}

// SubmitWeight sets the weight of the pending edge and returns to Idle.
// It fails with PROTOCOL_MISUSE when no weight edit is pending and with
// INVALID_WEIGHT for a non-finite weight, leaving the selection in place.
func (c *Controller) SubmitWeight(w float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != EdgeSelected || !c.g.Weighted() {
		return errors.New(errors.ErrCodeProtocolMisuse, "no weight edit pending")
	}
	if err := errors.ValidateWeight(w); err != nil {
		return err
	}
	c.apply(edit.EditEdgeWeight{ID: c.edge, Weight: w})
	c.clear()
	return nil
}

// CancelWeight closes the weight editor without changing the graph.
func (c *Controller) CancelWeight() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == EdgeSelected {
		c.clear()
	}
}

// SetWeighted sets the weighted flag.
func (c *Controller) SetWeighted(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(edit.SetWeighted{Value: v})
}

// SetDirected sets the directed flag.
func (c *Controller) SetDirected(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(edit.SetDirected{Value: v})
}

// Reset replaces the graph with an empty one and clears the selection.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clear()
	c.apply(edit.Reset())
}

// Replace swaps in s wholesale. A malformed s is rejected with
// INVALID_GRAPH and nothing changes.
func (c *Controller) Replace(s *graph.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := edit.Apply(context.Background(), c.g, edit.ReplaceGraph{Graph: s})
	if err != nil {
		return err
	}
	c.clear()
	c.g = next
	return nil
}

// Apply runs cmd directly, bypassing gesture handling. A selection that
// refers to something cmd removed is cleared. Rejected edits are returned
// as REJECTED_EDIT errors so remote callers can report them.
func (c *Controller) Apply(cmd edit.Command) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := cmd.(edit.ReplaceGraph); ok {
		c.clear()
	}
	err := c.apply(cmd)
	if (c.hasNode && !c.exists(c.node)) || (c.hasEdge && !c.edgeExists(c.edge)) {
		c.clear()
	}
	return err
}

// Graph returns the current snapshot.
func (c *Controller) Graph() *graph.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.g
}

// State returns the current gesture state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// View returns a consistent picture of the graph and selection.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Graph:    c.g,
		State:    c.state,
		Dragging: c.state == Dragging,
		Pointer:  c.pointer,
	}
	if c.hasNode {
		id := c.node
		v.SelectedNode = &id
		if n, ok := c.g.Node(id); ok && c.state == NodeSelected {
			v.RubberBand = &Segment{From: n.Pos, To: c.pointer}
		}
	}
	if c.hasEdge {
		id := c.edge
		v.SelectedEdge = &id
	}
	return v
}

// Close stops the pending timer. Events after Close are ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.disarm()
	c.closed = true
}

// =============================================================================
// Internal transitions (c.mu held)
// =============================================================================

// press selects id and arms the dwell timer for it.
func (c *Controller) press(id graph.NodeID, connect bool) {
	c.disarm()
	c.state = NodeSelected
	c.node, c.hasNode = id, true
	c.hasEdge = false
	c.connecting = connect
	c.pressing = true

	c.token++
	tok := c.token
	c.timer = c.clock.AfterFunc(c.dwell, func() { c.fire(tok) })
}

// fire runs when the dwell elapses. A stale token means the press it was
// armed for has already ended.
func (c *Controller) fire(tok uint64) {
	c.mu.Lock()
	if c.closed || tok != c.token || c.timer == nil || !c.pressing || c.state != NodeSelected {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.state = Dragging
	c.connecting = false
	c.logger.Debug("drag", "node", c.node)
	notify := c.onChange
	c.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// disarm stops the outstanding timer, if any, and invalidates its token.
func (c *Controller) disarm() {
	if c.timer == nil {
		return
	}
	c.timer.Stop()
	c.timer = nil
	c.token++
}

func (c *Controller) selectEdge(id graph.EdgeID) {
	c.disarm()
	c.state = EdgeSelected
	c.edge, c.hasEdge = id, true
	c.hasNode = false
	c.connecting = false
	c.pressing = false
}

// clear drops every selection and returns to Idle.
func (c *Controller) clear() {
	c.disarm()
	c.state = Idle
	c.hasNode = false
	c.hasEdge = false
	c.connecting = false
	c.pressing = false
}

// apply runs cmd on the current snapshot. Rejections leave the graph as
// it was and are only logged.
func (c *Controller) apply(cmd edit.Command) error {
	next, err := edit.Apply(context.Background(), c.g, cmd)
	if err != nil {
		if errors.IsRejected(err) {
			c.logger.Debug("edit rejected", "cmd", cmd.Name(), "err", err)
		} else {
			c.logger.Error("edit failed", "cmd", cmd.Name(), "err", err)
		}
		return err
	}
	c.g = next
	return nil
}

func (c *Controller) valid(t Target) bool {
	switch t.Kind {
	case OnNode:
		return c.exists(t.Node)
	case OnEdge:
		return c.edgeExists(t.Edge)
	}
	return true
}

func (c *Controller) exists(id graph.NodeID) bool {
	_, ok := c.g.Node(id)
	return ok
}

func (c *Controller) edgeExists(id graph.EdgeID) bool {
	_, ok := c.g.Edge(id)
	return ok
}

// String summarizes the controller state for logs.
func (c *Controller) String() string {
	v := c.View()
	return fmt.Sprintf("%s nodes=%d edges=%d", v.State, v.Graph.NodeCount(), v.Graph.EdgeCount())
}
