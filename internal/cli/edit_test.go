package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/interact"
)

// newTestEditor returns a drawn 40x12 editor whose dwell never elapses, so
// every press and release is a click.
func newTestEditor(t *testing.T, path string, s *graph.Snapshot) editModel {
	t.Helper()
	if s == nil {
		s = graph.Empty()
	}
	ctrl := interact.New(interact.WithSnapshot(s), interact.WithDwell(time.Hour))
	t.Cleanup(ctrl.Close)

	m := newEditModel(ctrl, path, 1)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 12 + editHeader + editFooter})
	return m
}

func update(t *testing.T, m editModel, msg tea.Msg) editModel {
	t.Helper()
	next, _ := m.Update(msg)
	em := next.(editModel)
	em.View()
	return em
}

// click presses and releases the left button at screen cell (x, y).
func click(t *testing.T, m editModel, x, y int) editModel {
	t.Helper()
	m = update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return update(t, m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func keys(t *testing.T, m editModel, ks ...string) editModel {
	t.Helper()
	for _, k := range ks {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "delete":
			msg = tea.KeyMsg{Type: tea.KeyDelete}
		case "backspace":
			msg = tea.KeyMsg{Type: tea.KeyBackspace}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		m = update(t, m, msg)
	}
	return m
}

func TestEditClickAddsAndConnects(t *testing.T) {
	m := newTestEditor(t, "", nil)

	m = click(t, m, 5, 3)
	m = click(t, m, 20, 3)
	g := m.ctrl.Graph()
	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", g.NodeCount())
	}
	n, _ := g.Node(0)
	if want := (graph.Point{X: 5, Y: float64(3 - editHeader)}); n.Pos != want {
		t.Errorf("node 0 at %v, want %v", n.Pos, want)
	}

	m = click(t, m, 5, 3)
	if m.ctrl.State() != interact.NodeSelected {
		t.Fatalf("State = %v after clicking a node, want NodeSelected", m.ctrl.State())
	}
	m = click(t, m, 20, 3)
	if m.ctrl.State() != interact.Idle {
		t.Errorf("State = %v after connecting, want Idle", m.ctrl.State())
	}
	if !m.ctrl.Graph().HasEdge(0, 1) {
		t.Error("clicking two nodes should connect them")
	}
}

func TestEditPressOutsideCanvasIgnored(t *testing.T) {
	m := newTestEditor(t, "", nil)
	m = click(t, m, 5, 0) // header row
	if m.ctrl.Graph().NodeCount() != 0 {
		t.Error("a click on the header should not add a node")
	}
}

func TestEditKeys(t *testing.T) {
	m := newTestEditor(t, "", nil)
	m = click(t, m, 5, 3)

	m = keys(t, m, "w", "d")
	g := m.ctrl.Graph()
	if !g.Weighted() || !g.Directed() {
		t.Errorf("flags = weighted %t directed %t, want both set", g.Weighted(), g.Directed())
	}
	if !strings.Contains(m.View(), "directed") {
		t.Error("header should show the directed flag")
	}

	m = click(t, m, 5, 3)
	m = keys(t, m, "delete")
	if m.ctrl.Graph().NodeCount() != 0 {
		t.Error("delete should remove the selected node")
	}

	m = click(t, m, 8, 4)
	m = keys(t, m, "n")
	if m.ctrl.Graph().NodeCount() != 0 {
		t.Error("n should start a new graph")
	}
	if m.ctrl.Graph().Weighted() || m.ctrl.Graph().Directed() {
		t.Error("a new graph starts with default flags")
	}
}

func TestEditWeightPrompt(t *testing.T) {
	s, a := graph.Empty().InsertNode(graph.Point{X: 2, Y: 2})
	s, b := s.InsertNode(graph.Point{X: 12, Y: 2})
	s, _, err := s.InsertEdge(a, b, 1)
	if err != nil {
		t.Fatal(err)
	}
	s = s.SetFlags(graph.FlagUpdate{Weighted: graph.Bool(true)})
	m := newTestEditor(t, "", s)

	// Press the middle of the edge.
	m = update(t, m, tea.MouseMsg{X: 6, Y: 2 + editHeader, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if _, ok := m.ctrl.PendingWeightEdit(); !ok {
		t.Fatalf("State = %v, want a pending weight edit", m.ctrl.State())
	}
	if !strings.Contains(m.View(), "weight of edge 0") {
		t.Error("prompt should name the edge")
	}

	m = keys(t, m, "2", ".", "5", "9", "backspace", "enter")
	e, _ := m.ctrl.Graph().Edge(0)
	if e.W != 2.5 {
		t.Errorf("weight = %g, want 2.5", e.W)
	}
	if m.ctrl.State() != interact.Idle {
		t.Errorf("State = %v, want Idle", m.ctrl.State())
	}

	t.Run("bad number keeps the weight", func(t *testing.T) {
		m := update(t, m, tea.MouseMsg{X: 6, Y: 2 + editHeader, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
		m = keys(t, m, "-", "enter")
		if !m.failed {
			t.Error("status should show an error")
		}
		e, _ := m.ctrl.Graph().Edge(0)
		if e.W != 2.5 {
			t.Errorf("weight = %g, want 2.5", e.W)
		}
	})
}

func TestEditSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "g.yaml")
	m := newTestEditor(t, path, nil)
	m = click(t, m, 5, 3)
	m = keys(t, m, "s")
	if m.failed {
		t.Fatalf("save failed: %s", m.status)
	}

	m = keys(t, m, "n")
	m = keys(t, m, "r")
	if m.failed {
		t.Fatalf("reload failed: %s", m.status)
	}
	if m.ctrl.Graph().NodeCount() != 1 {
		t.Errorf("NodeCount = %d after reload, want 1", m.ctrl.Graph().NodeCount())
	}

	if err := os.WriteFile(path, []byte("nodes: [{id: 0}, {id: 0}]\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = keys(t, m, "r")
	if !m.failed {
		t.Error("reloading an invalid file should fail")
	}
	if m.ctrl.Graph().NodeCount() != 1 {
		t.Error("a failed reload must keep the current graph")
	}
}

func TestEditSaveWithoutFile(t *testing.T) {
	m := newTestEditor(t, "", nil)
	m = keys(t, m, "s")
	if !m.failed {
		t.Error("saving without a file should report an error")
	}
}
