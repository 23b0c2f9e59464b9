package graph

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
)

// Snapshot is an immutable graph value: nodes, edges, mode flags and id
// allocators. Use [Empty] or [FromParts] to create one; the zero value is
// not usable.
type Snapshot struct {
	nextNode NodeID
	nextEdge EdgeID
	weighted bool
	directed bool
	nodes    map[NodeID]Node
	edges    map[EdgeID]Edge
	index    Index
}

// Empty returns the default snapshot: no nodes or edges, unweighted,
// undirected, both allocators at zero.
func Empty() *Snapshot {
	return &Snapshot{
		nodes: map[NodeID]Node{},
		edges: map[EdgeID]Edge{},
	}
}

// FromParts builds a snapshot from p after checking every invariant:
// non-negative and unique ids, allocators past every id, existing
// endpoints, no self-loops and no duplicate ordered pairs. The adjacency
// index is always derived from p.Edges.
func FromParts(p Parts) (*Snapshot, error) {
	s := &Snapshot{
		nextNode: p.NextNodeID,
		nextEdge: p.NextEdgeID,
		weighted: p.Weighted,
		directed: p.Directed,
		nodes:    make(map[NodeID]Node, len(p.Nodes)),
		edges:    make(map[EdgeID]Edge, len(p.Edges)),
	}
	for _, n := range p.Nodes {
		if n.ID < 0 {
			return nil, fmt.Errorf("node %d: %w", n.ID, ErrNegativeID)
		}
		if _, dup := s.nodes[n.ID]; dup {
			return nil, fmt.Errorf("node %d: %w", n.ID, ErrDuplicateID)
		}
		s.nodes[n.ID] = n
	}
	for _, e := range p.Edges {
		if e.ID < 0 {
			return nil, fmt.Errorf("edge %d: %w", e.ID, ErrNegativeID)
		}
		if _, dup := s.edges[e.ID]; dup {
			return nil, fmt.Errorf("edge %d: %w", e.ID, ErrDuplicateID)
		}
		s.edges[e.ID] = e
	}
	s.index = buildIndex(s.edges)
	if err := s.validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Parts returns a mutable copy of the snapshot's contents, nodes and edges
// sorted by id.
func (s *Snapshot) Parts() Parts {
	return Parts{
		NextNodeID: s.nextNode,
		NextEdgeID: s.nextEdge,
		Weighted:   s.weighted,
		Directed:   s.directed,
		Nodes:      s.Nodes(),
		Edges:      s.Edges(),
	}
}

// validate checks all invariants, including endpoint existence and index
// consistency.
func (s *Snapshot) validate() error {
	for _, n := range s.Nodes() {
		if n.ID < 0 {
			return fmt.Errorf("node %d: %w", n.ID, ErrNegativeID)
		}
		if n.ID >= s.nextNode {
			return fmt.Errorf("node %d with next node id %d: %w", n.ID, s.nextNode, ErrAllocator)
		}
	}
	seen := make(map[Pair]EdgeID, len(s.edges))
	for _, e := range s.Edges() {
		if e.ID < 0 {
			return fmt.Errorf("edge %d: %w", e.ID, ErrNegativeID)
		}
		if e.ID >= s.nextEdge {
			return fmt.Errorf("edge %d with next edge id %d: %w", e.ID, s.nextEdge, ErrAllocator)
		}
		if e.U == e.V {
			return fmt.Errorf("edge %d (%d→%d): %w", e.ID, e.U, e.V, ErrSelfLoop)
		}
		if _, ok := s.nodes[e.U]; !ok {
			return fmt.Errorf("edge %d tail %d: %w", e.ID, e.U, ErrUnknownNode)
		}
		if _, ok := s.nodes[e.V]; !ok {
			return fmt.Errorf("edge %d head %d: %w", e.ID, e.V, ErrUnknownNode)
		}
		if other, dup := seen[e.Pair()]; dup {
			return fmt.Errorf("edges %d and %d (%d→%d): %w", other, e.ID, e.U, e.V, ErrDuplicateEdge)
		}
		seen[e.Pair()] = e.ID
	}
	if !s.index.Equal(buildIndex(s.edges)) {
		return fmt.Errorf("adjacency index out of sync with %d edges", len(s.edges))
	}
	return nil
}

// Validate reports the first invariant violation, or nil.
// Snapshots built by this package only fail it after a [Snapshot.RemoveNode]
// whose incident edges were not removed.
func (s *Snapshot) Validate() error { return s.validate() }

// =============================================================================
// Accessors
// =============================================================================

// NextNodeID returns the id the next auto-allocated node will receive.
func (s *Snapshot) NextNodeID() NodeID { return s.nextNode }

// NextEdgeID returns the id the next auto-allocated edge will receive.
func (s *Snapshot) NextEdgeID() EdgeID { return s.nextEdge }

// Weighted reports whether edge weights are meaningful.
func (s *Snapshot) Weighted() bool { return s.weighted }

// Directed reports whether edge direction is meaningful.
func (s *Snapshot) Directed() bool { return s.directed }

// Node returns the node with the given id.
func (s *Snapshot) Node(id NodeID) (Node, bool) {
	n, ok := s.nodes[id]
	return n, ok
}

// Edge returns the edge with the given id.
func (s *Snapshot) Edge(id EdgeID) (Edge, bool) {
	e, ok := s.edges[id]
	return e, ok
}

// Nodes returns all nodes sorted by id.
func (s *Snapshot) Nodes() []Node {
	return slices.SortedFunc(maps.Values(s.nodes), func(a, b Node) int { return cmp.Compare(a.ID, b.ID) })
}

// Edges returns all edges sorted by id.
func (s *Snapshot) Edges() []Edge {
	return slices.SortedFunc(maps.Values(s.edges), func(a, b Edge) int { return cmp.Compare(a.ID, b.ID) })
}

// NodeCount returns the number of nodes.
func (s *Snapshot) NodeCount() int { return len(s.nodes) }

// EdgeCount returns the number of edges.
func (s *Snapshot) EdgeCount() int { return len(s.edges) }

// Index returns the read-only adjacency index.
func (s *Snapshot) Index() Index { return s.index }

// HasEdge reports whether an edge u→v exists.
func (s *Snapshot) HasEdge(u, v NodeID) bool { return s.index.Has(u, v) }

// HasReverse reports whether the edge v→u exists.
func (s *Snapshot) HasReverse(u, v NodeID) bool { return s.index.HasReverse(u, v) }

// IncidentEdges returns the ids of all edges touching node id, ascending.
func (s *Snapshot) IncidentEdges(id NodeID) []EdgeID {
	var out []EdgeID
	for eid, e := range s.edges {
		if e.Touches(id) {
			out = append(out, eid)
		}
	}
	slices.Sort(out)
	return out
}

// Equal reports whether two snapshots hold identical contents.
func Equal(a, b *Snapshot) bool {
	return a.nextNode == b.nextNode &&
		a.nextEdge == b.nextEdge &&
		a.weighted == b.weighted &&
		a.directed == b.directed &&
		maps.Equal(a.nodes, b.nodes) &&
		maps.Equal(a.edges, b.edges) &&
		a.index.Equal(b.index)
}

// =============================================================================
// Operations
// =============================================================================

// clone copies the header. Maps stay shared until a mutator replaces them.
func (s *Snapshot) clone() *Snapshot {
	c := *s
	return &c
}

// InsertNode allocates NextNodeID for a new node at pos. It panics once
// the allocator has reached math.MaxInt, which only an explicit
// [Snapshot.InsertNodeAt] near the top of the id space can cause.
func (s *Snapshot) InsertNode(pos Point) (*Snapshot, NodeID) {
	id := s.nextNode
	next, err := s.InsertNodeAt(id, pos)
	if err != nil {
		panic(fmt.Sprintf("graph: allocate node %d: %v", id, err))
	}
	return next, id
}

// InsertNodeAt inserts or overwrites node id at pos without allocating.
// Dragging an existing node is an overwrite. An id at or beyond the
// allocator advances it past id so ids are never handed out twice.
// Negative ids and math.MaxInt fail with ErrNegativeID and ErrIDExhausted.
func (s *Snapshot) InsertNodeAt(id NodeID, pos Point) (*Snapshot, error) {
	if err := checkID(int(id)); err != nil {
		return s, fmt.Errorf("node %d: %w", id, err)
	}
	c := s.clone()
	c.nodes = maps.Clone(s.nodes)
	c.nodes[id] = Node{ID: id, Pos: pos}
	if id >= c.nextNode {
		c.nextNode = id + 1
	}
	return c, nil
}

// InsertEdge allocates NextEdgeID for a new edge u→v with weight w.
// It fails with ErrSelfLoop, ErrUnknownNode or ErrDuplicateEdge and
// then returns the receiver unchanged.
func (s *Snapshot) InsertEdge(u, v NodeID, w float64) (*Snapshot, EdgeID, error) {
	id := s.nextEdge
	next, err := s.InsertEdgeAt(id, u, v, w)
	return next, id, err
}

// InsertEdgeAt inserts or overwrites edge id as u→v with weight w, under
// the same rules as InsertEdge. Overwriting an edge with its own pair is
// allowed. The id is range-checked like [Snapshot.InsertNodeAt].
func (s *Snapshot) InsertEdgeAt(id EdgeID, u, v NodeID, w float64) (*Snapshot, error) {
	if err := checkID(int(id)); err != nil {
		return s, fmt.Errorf("edge %d: %w", id, err)
	}
	if u == v {
		return s, ErrSelfLoop
	}
	if _, ok := s.nodes[u]; !ok {
		return s, fmt.Errorf("tail %d: %w", u, ErrUnknownNode)
	}
	if _, ok := s.nodes[v]; !ok {
		return s, fmt.Errorf("head %d: %w", v, ErrUnknownNode)
	}
	old, replacing := s.edges[id]
	if s.index.Has(u, v) && !(replacing && old.U == u && old.V == v) {
		return s, ErrDuplicateEdge
	}

	c := s.clone()
	c.edges = maps.Clone(s.edges)
	c.index = s.index
	if replacing {
		c.index = c.index.without(old.Pair())
	}
	e := Edge{ID: id, U: u, V: v, W: w}
	c.edges[id] = e
	c.index = c.index.with(e.Pair())
	if id >= c.nextEdge {
		c.nextEdge = id + 1
	}
	return c, nil
}

// RemoveNode removes node id and nothing else; incident edges are left for
// the caller to remove first. A missing id returns the receiver.
func (s *Snapshot) RemoveNode(id NodeID) *Snapshot {
	if _, ok := s.nodes[id]; !ok {
		return s
	}
	c := s.clone()
	c.nodes = maps.Clone(s.nodes)
	delete(c.nodes, id)
	return c
}

// RemoveEdge removes edge id and its index pair. A missing id returns the
// receiver.
func (s *Snapshot) RemoveEdge(id EdgeID) *Snapshot {
	e, ok := s.edges[id]
	if !ok {
		return s
	}
	c := s.clone()
	c.edges = maps.Clone(s.edges)
	delete(c.edges, id)
	c.index = s.index.without(e.Pair())
	return c
}

// SetWeight changes the weight of edge id.
func (s *Snapshot) SetWeight(id EdgeID, w float64) (*Snapshot, error) {
	e, ok := s.edges[id]
	if !ok {
		return s, fmt.Errorf("edge %d: %w", id, ErrUnknownEdge)
	}
	c := s.clone()
	c.edges = maps.Clone(s.edges)
	e.W = w
	c.edges[id] = e
	return c, nil
}

// SetFlags changes the mode flags selected by f.
func (s *Snapshot) SetFlags(f FlagUpdate) *Snapshot {
	c := s.clone()
	if f.Weighted != nil {
		c.weighted = *f.Weighted
	}
	if f.Directed != nil {
		c.directed = *f.Directed
	}
	return c
}

// Replace returns next with its adjacency index rebuilt from its own edges
// and its invariants rechecked. The receiver only anchors the call; nothing
// of it survives.
func (s *Snapshot) Replace(next *Snapshot) (*Snapshot, error) {
	if next == nil {
		return s, fmt.Errorf("replace with nil snapshot")
	}
	c := next.clone()
	if c.nodes == nil {
		c.nodes = map[NodeID]Node{}
	}
	if c.edges == nil {
		c.edges = map[EdgeID]Edge{}
	}
	c.index = buildIndex(c.edges)
	if err := c.validate(); err != nil {
		return s, err
	}
	return c, nil
}

// Bool returns a pointer to b, for building a [FlagUpdate].
func Bool(b bool) *bool { return &b }
