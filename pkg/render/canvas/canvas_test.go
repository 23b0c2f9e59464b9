package canvas

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/interact"
)

func twoNodes(t *testing.T, weighted, directed bool, edges ...graph.Edge) *graph.Snapshot {
	t.Helper()
	s, err := graph.FromParts(graph.Parts{
		NextNodeID: 2,
		NextEdgeID: graph.EdgeID(len(edges)),
		Weighted:   weighted,
		Directed:   directed,
		Nodes: []graph.Node{
			{ID: 0, Pos: graph.Point{X: 2, Y: 2}},
			{ID: 1, Pos: graph.Point{X: 12, Y: 2}},
		},
		Edges: edges,
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func row(c *Canvas, y int) string {
	return strings.Split(c.Text(), "\n")[y]
}

func TestDrawUndirectedEdge(t *testing.T) {
	c := New(20, 6, 1)
	c.Draw(interact.View{Graph: twoNodes(t, false, false, graph.Edge{ID: 0, U: 0, V: 1, W: 1})})

	if got, want := row(c, 2), "  0 ─────── 1"; got != want {
		t.Errorf("row 2 = %q, want %q", got, want)
	}
}

func TestDrawDirectedWeightedEdge(t *testing.T) {
	c := New(20, 6, 1)
	c.Draw(interact.View{Graph: twoNodes(t, true, true, graph.Edge{ID: 0, U: 0, V: 1, W: 3})})

	if got := c.At(10, 2); got != '→' {
		t.Errorf("arrow cell = %q, want →", got)
	}
	if got := c.At(7, 2); got != '3' {
		t.Errorf("weight label = %q, want 3", got)
	}
}

func TestAntiParallelEdgesOffset(t *testing.T) {
	c := New(20, 6, 1)
	c.Draw(interact.View{Graph: twoNodes(t, false, true,
		graph.Edge{ID: 0, U: 0, V: 1, W: 1},
		graph.Edge{ID: 1, U: 1, V: 0, W: 1},
	)})

	if c.At(7, 3) != '─' || c.At(7, 1) != '─' {
		t.Errorf("expected parallel tracks on rows 1 and 3:\n%s", c.Text())
	}
	if c.At(7, 2) != ' ' {
		t.Errorf("row 2 should be free between the tracks:\n%s", c.Text())
	}
	if got := c.HitTest(graph.Point{X: 7, Y: 3}); got != interact.EdgeTarget(0) {
		t.Errorf("hit (7,3) = %v, want edge 0", got)
	}
	if got := c.HitTest(graph.Point{X: 7, Y: 1}); got != interact.EdgeTarget(1) {
		t.Errorf("hit (7,1) = %v, want edge 1", got)
	}
}

func TestHitTest(t *testing.T) {
	c := New(20, 8, 1)
	c.Draw(interact.View{Graph: twoNodes(t, false, false, graph.Edge{ID: 0, U: 0, V: 1, W: 1})})

	tests := []struct {
		p    graph.Point
		want interact.Target
	}{
		{graph.Point{X: 2, Y: 2}, interact.NodeTarget(0)},
		{graph.Point{X: 3, Y: 2}, interact.NodeTarget(0)},
		{graph.Point{X: 12, Y: 3}, interact.NodeTarget(1)},
		{graph.Point{X: 7, Y: 2}, interact.EdgeTarget(0)},
		{graph.Point{X: 7, Y: 5}, interact.Canvas()},
		{graph.Point{X: 19, Y: 7}, interact.Canvas()},
	}
	for _, tt := range tests {
		if got := c.HitTest(tt.p); got != tt.want {
			t.Errorf("HitTest(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}

func TestRubberBand(t *testing.T) {
	c := New(20, 10, 1)
	sel := graph.NodeID(0)
	c.Draw(interact.View{
		Graph:        twoNodes(t, false, false),
		SelectedNode: &sel,
		RubberBand:   &interact.Segment{From: graph.Point{X: 2, Y: 2}, To: graph.Point{X: 2, Y: 8}},
	})

	for y := 4; y <= 8; y++ {
		if c.At(2, y) != '·' {
			t.Errorf("rubber band missing at (2,%d):\n%s", y, c.Text())
		}
	}
}

func TestDrawClipsAndClears(t *testing.T) {
	s, err := graph.FromParts(graph.Parts{
		NextNodeID: 1,
		Nodes:      []graph.Node{{ID: 0, Pos: graph.Point{X: 100, Y: -5}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	c := New(5, 3, 1)
	c.Draw(interact.View{Graph: s})
	if strings.TrimSpace(c.Text()) != "" {
		t.Errorf("off-grid node drawn:\n%s", c.Text())
	}

	c.Draw(interact.View{Graph: graph.Empty()})
	if got := c.HitTest(graph.Point{X: 100, Y: -5}); got != interact.Canvas() {
		t.Errorf("stale hit target %v after redraw", got)
	}
}
