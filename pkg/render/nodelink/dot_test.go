package nodelink

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/graphsketch/pkg/errors"
	"github.com/matzehuels/graphsketch/pkg/graph"
)

func build(t *testing.T, weighted, directed bool, edges ...[2]graph.NodeID) *graph.Snapshot {
	t.Helper()
	p := graph.Parts{
		NextNodeID: 3,
		Weighted:   weighted,
		Directed:   directed,
		Nodes: []graph.Node{
			{ID: 0, Pos: graph.Point{X: 10, Y: 10}},
			{ID: 1, Pos: graph.Point{X: 50, Y: 50}},
			{ID: 2, Pos: graph.Point{X: 90, Y: 10}},
		},
	}
	for i, e := range edges {
		p.Edges = append(p.Edges, graph.Edge{ID: graph.EdgeID(i), U: e[0], V: e[1], W: float64(i) + 1.5})
	}
	p.NextEdgeID = graph.EdgeID(len(edges))
	s, err := graph.FromParts(p)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestToDOT(t *testing.T) {
	tests := []struct {
		name     string
		s        *graph.Snapshot
		contains []string
		excludes []string
	}{
		{
			name:     "undirected unweighted",
			s:        build(t, false, false, [2]graph.NodeID{0, 1}),
			contains: []string{"graph G {", `0 [label="0", pos="10,-10!"]`, "0 -- 1"},
			excludes: []string{"digraph", "->", "label=\"1.5\"", "splines"},
		},
		{
			name:     "directed weighted",
			s:        build(t, true, true, [2]graph.NodeID{0, 1}, [2]graph.NodeID{1, 2}),
			contains: []string{"digraph G {", "0 -> 1", `label="1.5"`, `label="2.5"`},
		},
		{
			name:     "anti-parallel",
			s:        build(t, false, true, [2]graph.NodeID{0, 1}, [2]graph.NodeID{1, 0}),
			contains: []string{"splines=curved", "0 -> 1", "1 -> 0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dot := ToDOT(tt.s, Options{})
			for _, want := range tt.contains {
				if !strings.Contains(dot, want) {
					t.Errorf("missing %q in:\n%s", want, dot)
				}
			}
			for _, bad := range tt.excludes {
				if strings.Contains(dot, bad) {
					t.Errorf("unexpected %q in:\n%s", bad, dot)
				}
			}
		})
	}
}

func TestToDOTScale(t *testing.T) {
	dot := ToDOT(build(t, false, false), Options{Scale: 2})
	if !strings.Contains(dot, `pos="100,-100!"`) {
		t.Errorf("positions not scaled:\n%s", dot)
	}
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = data
	m.sets++
	return nil
}

func (m *memCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *memCache) Close() error { return nil }

func TestRendererSVGCached(t *testing.T) {
	mc := &memCache{}
	r := &Renderer{Cache: mc}
	s := build(t, true, true, [2]graph.NodeID{0, 1})

	svg, err := r.Render(context.Background(), s, "svg")
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Fatalf("not an SVG: %.80s", svg)
	}

	again, err := r.Render(context.Background(), s, "SVG")
	if err != nil {
		t.Fatal(err)
	}
	if string(again) != string(svg) || mc.sets != 1 {
		t.Errorf("second render missed the cache (sets=%d)", mc.sets)
	}
}

func TestRendererDOTAndErrors(t *testing.T) {
	r := &Renderer{}
	s := build(t, false, false, [2]graph.NodeID{0, 2})

	dot, err := r.Render(context.Background(), s, "dot")
	if err != nil {
		t.Fatal(err)
	}
	if string(dot) != ToDOT(s, Options{}) {
		t.Error("dot output differs from ToDOT")
	}

	if _, err := r.Render(context.Background(), s, "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}
