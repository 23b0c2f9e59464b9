package canvas

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphsketch/pkg/graph"
	"github.com/matzehuels/graphsketch/pkg/interact"
)

// kind classifies a cell for styling.
type kind uint8

const (
	blank kind = iota
	edgeLine
	edgeSelected
	weightLabel
	rubberBand
	node
	nodeSelected
	nodeDragged
)

type cell struct {
	r rune
	k kind
}

// segment is an edge as drawn, after any anti-parallel offset.
type segment struct {
	id       graph.EdgeID
	from, to graph.Point
}

// Canvas is a fixed-size character grid. It is not safe for concurrent
// use; the editor redraws it from a single goroutine.
type Canvas struct {
	width, height int
	radius        float64

	cells []cell
	nodes []graph.Node
	segs  []segment
}

// New returns a width×height canvas. radius is the node hit radius in
// cells (values below 0.5 are raised to 0.5).
func New(width, height int, radius float64) *Canvas {
	c := &Canvas{radius: max(radius, 0.5)}
	c.Resize(width, height)
	return c
}

// Resize changes the grid size and clears it.
func (c *Canvas) Resize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
	c.cells = make([]cell, c.width*c.height)
	c.clear()
}

// Size returns the grid dimensions.
func (c *Canvas) Size() (width, height int) { return c.width, c.height }

func (c *Canvas) clear() {
	for i := range c.cells {
		c.cells[i] = cell{r: ' '}
	}
	c.nodes = c.nodes[:0]
	c.segs = c.segs[:0]
}

// Draw rasterizes v, replacing the previous picture.
func (c *Canvas) Draw(v interact.View) {
	c.clear()
	s := v.Graph
	if s == nil {
		return
	}

	for _, e := range s.Edges() {
		seg, ok := c.segmentFor(s, e)
		if !ok {
			continue
		}
		c.segs = append(c.segs, seg)

		k := edgeLine
		if v.SelectedEdge != nil && *v.SelectedEdge == e.ID {
			k = edgeSelected
		}
		c.line(seg.from, seg.to, k, s.Directed())
		if s.Weighted() {
			mid := graph.Point{X: (seg.from.X + seg.to.X) / 2, Y: (seg.from.Y + seg.to.Y) / 2}
			c.text(mid, strconv.FormatFloat(e.W, 'g', 4, 64), weightLabel)
		}
	}

	if rb := v.RubberBand; rb != nil {
		c.line(rb.From, rb.To, rubberBand, false)
	}

	for _, n := range s.Nodes() {
		c.nodes = append(c.nodes, n)
		k := node
		if v.SelectedNode != nil && *v.SelectedNode == n.ID {
			k = nodeSelected
			if v.Dragging {
				k = nodeDragged
			}
		}
		c.text(n.Pos, strconv.Itoa(int(n.ID)), k)
	}
}

// segmentFor returns the drawn geometry of e. Anti-parallel edges are
// moved one cell along their right-hand normal; since the two edges point
// in opposite directions they end up on opposite sides.
func (c *Canvas) segmentFor(s *graph.Snapshot, e graph.Edge) (segment, bool) {
	u, ok := s.Node(e.U)
	if !ok {
		return segment{}, false
	}
	v, ok := s.Node(e.V)
	if !ok {
		return segment{}, false
	}
	seg := segment{id: e.ID, from: u.Pos, to: v.Pos}
	if s.HasReverse(e.U, e.V) {
		dx, dy := v.Pos.X-u.Pos.X, v.Pos.Y-u.Pos.Y
		if l := math.Hypot(dx, dy); l > 0 {
			nx, ny := -dy/l, dx/l
			seg.from = graph.Point{X: u.Pos.X + nx, Y: u.Pos.Y + ny}
			seg.to = graph.Point{X: v.Pos.X + nx, Y: v.Pos.Y + ny}
		}
	}
	return seg, true
}

// line draws a Bresenham line from a to b, leaving the node discs at both
// ends free. With arrow set the last drawn cell points at b.
func (c *Canvas) line(a, b graph.Point, k kind, arrow bool) {
	x0, y0 := round(a.X), round(a.Y)
	x1, y1 := round(b.X), round(b.Y)
	glyph := slopeGlyph(x1-x0, y1-y0)
	if k == rubberBand {
		glyph = '·'
	}

	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	lastX, lastY, drawn := 0, 0, false

	for x, y := x0, y0; ; {
		p := graph.Point{X: float64(x), Y: float64(y)}
		if dist(p, a) > c.radius && (k == rubberBand || dist(p, b) > c.radius) {
			c.set(x, y, glyph, k)
			lastX, lastY, drawn = x, y, true
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}

	if arrow && drawn {
		c.set(lastX, lastY, arrowGlyph(x1-x0, y1-y0), k)
	}
}

func (c *Canvas) text(at graph.Point, s string, k kind) {
	x, y := round(at.X), round(at.Y)
	for i, r := range []rune(s) {
		c.set(x+i, y, r, k)
	}
}

func (c *Canvas) set(x, y int, r rune, k kind) {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return
	}
	c.cells[y*c.width+x] = cell{r: r, k: k}
}

// At returns the rune at column x, row y, or a space outside the grid.
func (c *Canvas) At(x, y int) rune {
	if x < 0 || y < 0 || x >= c.width || y >= c.height {
		return ' '
	}
	return c.cells[y*c.width+x].r
}

// Text returns the grid as plain text, one line per row, trailing spaces
// trimmed.
func (c *Canvas) Text() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		row := make([]rune, c.width)
		for x := range row {
			row[x] = c.cells[y*c.width+x].r
		}
		b.WriteString(strings.TrimRight(string(row), " "))
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

var styles = map[kind]lipgloss.Style{
	edgeLine:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	edgeSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true),
	weightLabel:  lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
	rubberBand:   lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	node:         lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	nodeSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true).Underline(true),
	nodeDragged:  lipgloss.NewStyle().Foreground(lipgloss.Color("35")).Bold(true).Reverse(true),
}

// String returns the grid styled for the terminal.
func (c *Canvas) String() string {
	var b strings.Builder
	for y := 0; y < c.height; y++ {
		row := c.cells[y*c.width : (y+1)*c.width]
		for x := 0; x < len(row); {
			k := row[x].k
			end := x
			var run strings.Builder
			for end < len(row) && row[end].k == k {
				run.WriteRune(row[end].r)
				end++
			}
			if st, ok := styles[k]; ok {
				b.WriteString(st.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			x = end
		}
		if y < c.height-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
